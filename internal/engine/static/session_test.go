package static

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/stageradar/internal/engine"
)

const (
	itemSelector    = "li[data-testid='search-results-list-item-wrapper']"
	consentSelector = "#axeptio_btn_acceptAll"
)

func pageURL(n string) string {
	return "https://www.welcometothejungle.com/fr/jobs?query=data&page=" + n
}

func TestSession_Snapshot(t *testing.T) {
	pages, err := ReadPages(filepath.Join("testdata", "results_page1.html"))
	require.NoError(t, err)
	s := New(pages...)
	ctx := context.Background()

	require.NoError(t, s.Navigate(ctx, pageURL("1"), itemSelector, time.Second))

	s.DismissConsent(ctx, consentSelector, time.Second)
	consent, err := s.QueryAll(ctx, consentSelector)
	require.NoError(t, err)
	assert.Empty(t, consent)

	items, err := s.QueryAll(ctx, itemSelector)
	require.NoError(t, err)
	require.Len(t, items, 2)

	text, err := items[0].Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme\nData Analyst Intern\nParis\nStage de 6 mois", text)

	anchor, found, err := items[0].Query(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	href, ok, err := anchor.Attr(ctx, "href")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/fr/companies/acme/jobs/data-analyst-intern", href)

	_, found, err = items[1].Query(ctx, "a")
	require.NoError(t, err)
	assert.False(t, found)

	loc, found, err := items[1].Query(ctx, "div[data-testid='job-location']")
	require.NoError(t, err)
	require.True(t, found)
	city, err := loc.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lyon", city)
}

func TestSession_MissingPageTimesOut(t *testing.T) {
	s := New("<ul><li data-testid='search-results-list-item-wrapper'>x</li></ul>")
	ctx := context.Background()

	err := s.Navigate(ctx, pageURL("2"), itemSelector, time.Second)
	assert.ErrorIs(t, err, engine.ErrPageTimeout)

	err = s.Navigate(ctx, pageURL("1"), "section.results", time.Second)
	assert.ErrorIs(t, err, engine.ErrPageTimeout)
}

func TestSession_PageDefaultsToFirst(t *testing.T) {
	s := New("<p>one</p>", "<p>two</p>")
	ctx := context.Background()

	require.NoError(t, s.Navigate(ctx, "https://example.com/fr/jobs", "", time.Second))
	items, err := s.QueryAll(ctx, "p")
	require.NoError(t, err)
	require.Len(t, items, 1)
	text, _ := items[0].Text(ctx)
	assert.Equal(t, "one", text)

	assert.Error(t, s.Navigate(ctx, pageURL("two"), "", time.Second))
}

func TestSession_Lifecycle(t *testing.T) {
	s := New("<p>one</p>")
	ctx := context.Background()

	_, err := s.QueryAll(ctx, "p")
	assert.ErrorIs(t, err, engine.ErrNavigation)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Navigate(ctx, pageURL("1"), "", time.Second), engine.ErrNavigation)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, New("<p/>").Navigate(cancelled, pageURL("1"), "", time.Second), context.Canceled)
}

func TestReadPages_MissingFile(t *testing.T) {
	_, err := ReadPages(filepath.Join(t.TempDir(), "nope.html"))
	assert.True(t, engine.IsFatal(err))
}

func TestElement_Empty(t *testing.T) {
	e := NewElement(&goquery.Selection{})
	_, err := e.Text(context.Background())
	assert.ErrorIs(t, err, engine.ErrStaleElement)
	_, _, err = e.Query(context.Background(), "a")
	assert.ErrorIs(t, err, engine.ErrStaleElement)
}
