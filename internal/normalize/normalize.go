// Package normalize reshapes raw listings into the final table.
//
// Listing text is split on line breaks and read positionally: company, title,
// place, description. The board can reorder or add lines at any time without
// notice, so the column mapping is a heuristic, not a contract.
package normalize

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/stageradar/pkg/models"
)

// semanticFields is the number of positional fields kept in the final table
const semanticFields = 4

// Row is a listing after its text has been split into positional fields.
// Fields is ragged: each row only holds as many fields as its own text had lines.
type Row struct {
	Text             string
	Link             string
	Fields           []string
	LastNonEmptyInfo string
}

// Normalize runs the four stages in order. The location filter must run first
// because the location column does not survive the later stages.
func Normalize(listings []models.RawListing, locationFilter string) *models.Table {
	kept := FilterByLocation(listings, locationFilter)
	rows := SplitColumns(kept)
	log.Debug().
		Int("listings", len(listings)).
		Int("kept", len(kept)).
		Int("fields", Schema(rows)).
		Msg("Normalizing listings")
	BackfillLastNonEmpty(rows)
	return PruneAndRename(rows)
}

// FilterByLocation keeps listings whose location contains filter, ignoring case.
// A blank filter keeps everything. The unspecified sentinel only matches its
// exact text.
func FilterByLocation(listings []models.RawListing, filter string) []models.RawListing {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return listings
	}

	out := make([]models.RawListing, 0, len(listings))
	for _, l := range listings {
		if l.Location == models.LocationUnspecified {
			if filter == models.LocationUnspecified {
				out = append(out, l)
			}
			continue
		}
		if strings.Contains(strings.ToLower(l.Location), filter) {
			out = append(out, l)
		}
	}
	return out
}

// SplitColumns splits each listing's text into trimmed positional fields
func SplitColumns(listings []models.RawListing) []Row {
	rows := make([]Row, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, Row{
			Text:   l.Text,
			Link:   l.Link,
			Fields: splitLines(l.Text),
		})
	}
	return rows
}

// Schema returns the width of the union of all rows' fields
func Schema(rows []Row) int {
	width := 0
	for _, r := range rows {
		if len(r.Fields) > width {
			width = len(r.Fields)
		}
	}
	return width
}

// BackfillLastNonEmpty stores in each row the right-most non-empty field. All
// split fields count, including those dropped later. A row without any falls
// back to its link.
func BackfillLastNonEmpty(rows []Row) {
	for i := range rows {
		rows[i].LastNonEmptyInfo = lastNonEmpty(rows[i])
	}
}

// PruneAndRename drops the raw text and fields past the fourth, names the
// first four fields, puts link last and numbers rows from 1.
func PruneAndRename(rows []Row) *models.Table {
	table := &models.Table{
		Columns: append([]string(nil), models.Columns...),
		Records: make([]models.Record, 0, len(rows)),
	}

	for i, r := range rows {
		var f [semanticFields]string
		copy(f[:], r.Fields)

		table.Records = append(table.Records, models.Record{
			Index:            i + 1,
			Company:          f[0],
			Title:            f[1],
			Place:            f[2],
			Description:      f[3],
			LastNonEmptyInfo: r.LastNonEmptyInfo,
			Link:             r.Link,
		})
	}
	return table
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func lastNonEmpty(r Row) string {
	for i := len(r.Fields) - 1; i >= 0; i-- {
		if r.Fields[i] != "" {
			return r.Fields[i]
		}
	}
	return strings.TrimSpace(r.Link)
}
