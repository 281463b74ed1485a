package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/stageradar/pkg/models"
)

func raw(text, link, location string) models.RawListing {
	return models.RawListing{Text: text, Link: link, Location: location}
}

func TestNormalize_Total(t *testing.T) {
	listings := []models.RawListing{
		raw("Acme\nData Intern\nParis\n6 months\nextra\nmore", "https://x/1", "Paris"),
		raw("Solo", models.LinkUnavailable, models.LocationUnspecified),
		raw("A\r\nB", "https://x/3", "Lyon"),
	}

	table := Normalize(listings, "")

	require.Equal(t, 3, table.Len())
	assert.Equal(t, models.Columns, table.Columns)
	assert.Equal(t, "link", table.Columns[len(table.Columns)-1])
	for i, rec := range table.Records {
		assert.Equal(t, i+1, rec.Index)
	}

	assert.Equal(t, models.Record{
		Index: 1, Company: "Acme", Title: "Data Intern", Place: "Paris", Description: "6 months",
		LastNonEmptyInfo: "more", Link: "https://x/1",
	}, table.Records[0])
	assert.Equal(t, models.Record{
		Index: 2, Company: "Solo", LastNonEmptyInfo: "Solo", Link: models.LinkUnavailable,
	}, table.Records[1])
	assert.Equal(t, "B", table.Records[2].Title)
}

func TestNormalize_Empty(t *testing.T) {
	table := Normalize(nil, "paris")
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, models.Columns, table.Columns)
}

func TestFilterByLocation(t *testing.T) {
	listings := []models.RawListing{
		raw("a", "", "Paris 75011"),
		raw("b", "", "Lyon"),
		raw("c", "", models.LocationUnspecified),
		raw("d", "", "PARIS LA DEFENSE"),
	}

	kept := FilterByLocation(listings, " paris ")
	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].Text)
	assert.Equal(t, "d", kept[1].Text)

	assert.Len(t, FilterByLocation(listings, ""), 4)
	assert.Len(t, FilterByLocation(listings, "   "), 4)
	assert.Len(t, FilterByLocation(listings, "unspecified"), 1)
	assert.Len(t, FilterByLocation(listings, " Unspecified "), 1)
}

func TestFilterByLocation_UnspecifiedNeedsExactFilter(t *testing.T) {
	listings := []models.RawListing{
		raw("a", "", models.LocationUnspecified),
		raw("b", "", "Specifique"),
	}

	for _, filter := range []string{"spec", "if", "Fied", "nsp"} {
		kept := FilterByLocation(listings, filter)
		for _, l := range kept {
			assert.NotEqual(t, models.LocationUnspecified, l.Location, "filter %q", filter)
		}
	}
	assert.Len(t, FilterByLocation(listings, "spec"), 1)
}

func TestSplitColumnsAndSchema(t *testing.T) {
	rows := SplitColumns([]models.RawListing{
		raw(" Acme \n  Intern", "l1", ""),
		raw("A\nB\nC\nD\nE", "l2", ""),
	})

	assert.Equal(t, []string{"Acme", "Intern"}, rows[0].Fields)
	assert.Len(t, rows[1].Fields, 5)
	assert.Equal(t, 5, Schema(rows))
	assert.Equal(t, 0, Schema(nil))
}

func TestBackfillLastNonEmpty(t *testing.T) {
	rows := []Row{
		{Fields: []string{"Acme", "", "Paris", ""}, Link: "l1"},
		{Fields: []string{"", "", ""}, Link: " l2 "},
		{Fields: nil, Link: ""},
		{Fields: []string{"A", "B", "C", "D", "", "F"}, Link: "l4"},
	}
	BackfillLastNonEmpty(rows)

	assert.Equal(t, "Paris", rows[0].LastNonEmptyInfo)
	assert.Equal(t, "l2", rows[1].LastNonEmptyInfo)
	assert.Equal(t, "", rows[2].LastNonEmptyInfo)
	assert.Equal(t, "F", rows[3].LastNonEmptyInfo)
}

func TestPruneAndRename(t *testing.T) {
	table := PruneAndRename([]Row{
		{Text: "ignored", Fields: []string{"A", "B"}, Link: "l1", LastNonEmptyInfo: "B"},
	})

	require.Equal(t, 1, table.Len())
	rec := table.Records[0]
	assert.Equal(t, []string{"A", "B", "", "", "B", "l1"}, rec.Values())
	assert.Equal(t, 1, rec.Index)
}
