// Package export serializes the final table into a downloadable artifact.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/stageradar/pkg/models"
)

// DefaultFilename is used when no output file is given
const DefaultFilename = "resultats_stages.xlsx"

// Format identifies an export encoding
type Format string

const (
	FormatXLSX     Format = "xlsx"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "md"
)

var contentTypes = map[Format]string{
	FormatXLSX:     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatCSV:      "text/csv; charset=utf-8",
	FormatJSON:     "application/json",
	FormatHTML:     "text/html; charset=utf-8",
	FormatMarkdown: "text/markdown; charset=utf-8",
}

// Artifact is an encoded table ready to be written or served
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// FormatFor picks the format from the file extension. No extension means xlsx.
func FormatFor(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "", "xlsx":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "html", "htm":
		return FormatHTML, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unsupported export format %q", ext)
}

// Export encodes table in the format implied by filename
func Export(table *models.Table, filename string) (*Artifact, error) {
	if filename == "" {
		filename = DefaultFilename
	}
	if table == nil {
		table = &models.Table{Columns: models.Columns}
	}

	format, err := FormatFor(filename)
	if err != nil {
		return nil, err
	}
	if filepath.Ext(filename) == "" {
		filename += ".xlsx"
	}

	var data []byte
	switch format {
	case FormatXLSX:
		data, err = encodeXLSX(table)
	case FormatCSV:
		data, err = encodeCSV(table)
	case FormatJSON:
		data, err = encodeJSON(table)
	case FormatHTML:
		data, err = encodeHTML(table)
	case FormatMarkdown:
		data, err = encodeMarkdown(table)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	return &Artifact{
		Filename:    filename,
		ContentType: contentTypes[format],
		Data:        data,
	}, nil
}

// WriteFile exports table to path and returns the artifact that was written
func WriteFile(table *models.Table, path string) (*Artifact, error) {
	art, err := Export(table, path)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(art.Filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(art.Filename, art.Data, 0644); err != nil {
		return nil, fmt.Errorf("write %s: %w", art.Filename, err)
	}

	log.Debug().
		Str("file", art.Filename).
		Int("rows", table.Len()).
		Int("bytes", len(art.Data)).
		Msg("Results exported")
	return art, nil
}

func columnsOf(table *models.Table) []string {
	if len(table.Columns) == 0 {
		return models.Columns
	}
	return table.Columns
}
