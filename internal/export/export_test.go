package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/law-makers/stageradar/pkg/models"
)

func sampleTable() *models.Table {
	return &models.Table{
		Columns: models.Columns,
		Records: []models.Record{
			{Index: 1, Company: "Acme", Title: "Data Intern", Place: "Paris", Description: "6 months",
				LastNonEmptyInfo: "6 months", Link: "https://example.com/jobs/1"},
			{Index: 2, Company: "Globex", Title: "ML Intern", LastNonEmptyInfo: "ML Intern",
				Link: models.LinkUnavailable},
		},
	}
}

func TestFormatFor(t *testing.T) {
	cases := map[string]Format{
		"out":           FormatXLSX,
		"out.XLSX":      FormatXLSX,
		"out.csv":       FormatCSV,
		"dir/out.json":  FormatJSON,
		"out.htm":       FormatHTML,
		"out.markdown":  FormatMarkdown,
		DefaultFilename: FormatXLSX,
	}
	for name, want := range cases {
		got, err := FormatFor(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := FormatFor("out.pdf")
	assert.Error(t, err)
}

func TestExport_XLSX(t *testing.T) {
	art, err := Export(sampleTable(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultFilename, art.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", art.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(art.Data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.Columns, rows[0])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "https://example.com/jobs/1", rows[1][5])
	assert.Equal(t, models.LinkUnavailable, rows[2][5])

	styleID, err := f.GetCellStyle(SheetName, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestExport_XLSXNoExtension(t *testing.T) {
	art, err := Export(sampleTable(), "results")
	require.NoError(t, err)
	assert.Equal(t, "results.xlsx", art.Filename)
}

func TestExport_CSV(t *testing.T) {
	art, err := Export(sampleTable(), "out.csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(art.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.Columns, rows[0])
	assert.Equal(t, []string{"Globex", "ML Intern", "", "", "ML Intern", models.LinkUnavailable}, rows[2])
}

func TestExport_JSON(t *testing.T) {
	art, err := Export(&models.Table{}, "out.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(art.Data))

	art, err = Export(sampleTable(), "out.json")
	require.NoError(t, err)
	var recs []models.Record
	require.NoError(t, json.Unmarshal(art.Data, &recs))
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Index)
}

func TestExport_HTMLAndMarkdown(t *testing.T) {
	art, err := Export(sampleTable(), "out.html")
	require.NoError(t, err)
	page := string(art.Data)
	assert.Contains(t, page, "<th>lastNonEmptyInfo</th>")
	assert.Contains(t, page, `<a href="https://example.com/jobs/1">`)
	assert.Contains(t, page, "<td>link unavailable</td>")

	art, err = Export(sampleTable(), "out.md")
	require.NoError(t, err)
	doc := string(art.Data)
	assert.Contains(t, doc, "| company | title |")
	assert.Contains(t, doc, "Acme")
	assert.Contains(t, doc, "(https://example.com/jobs/1)")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")
	art, err := WriteFile(sampleTable(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, art.Data, data)
}
