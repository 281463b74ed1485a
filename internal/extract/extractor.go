// Package extract turns listing containers into raw listing records.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/law-makers/stageradar/internal/engine"
	urlutil "github.com/law-makers/stageradar/internal/utils/url"
	"github.com/law-makers/stageradar/pkg/models"
)

// ErrEmptyText is reported for containers that render no visible text
var ErrEmptyText = errors.New("listing container has no text")

// Stage names the extraction step an item failed in
type Stage string

const (
	StageText Stage = "text"
	StageLink Stage = "link"
)

// ItemError describes one dropped container
type ItemError struct {
	Index int
	Stage Stage
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %s: %v", e.Index, e.Stage, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// Selectors locates the parts of a listing container
type Selectors struct {
	Anchor   string
	Location string
}

// Extractor reads listing containers one at a time. A failing container never
// affects its siblings.
type Extractor struct {
	sel Selectors
}

// New creates an Extractor. Empty selectors fall back to the board defaults.
func New(sel Selectors) *Extractor {
	if sel.Anchor == "" {
		sel.Anchor = "a"
	}
	if sel.Location == "" {
		sel.Location = "div[data-testid='job-location']"
	}
	return &Extractor{sel: sel}
}

// Extract converts containers into listings, preserving their order. Relative
// links are resolved against pageURL. Dropped containers are returned as
// ItemErrors.
func (x *Extractor) Extract(ctx context.Context, pageURL string, containers []engine.Element) ([]models.RawListing, []*ItemError) {
	listings := make([]models.RawListing, 0, len(containers))
	var skipped []*ItemError

	for i, el := range containers {
		listing, itemErr := x.extractOne(ctx, pageURL, el)
		if itemErr != nil {
			itemErr.Index = i
			log.Debug().Err(itemErr).Int("item", i).Msg("Skipping listing container")
			skipped = append(skipped, itemErr)
			continue
		}
		listings = append(listings, listing)
	}

	return listings, skipped
}

func (x *Extractor) extractOne(ctx context.Context, pageURL string, el engine.Element) (models.RawListing, *ItemError) {
	text, err := el.Text(ctx)
	if err != nil {
		return models.RawListing{}, &ItemError{Stage: StageText, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.RawListing{}, &ItemError{Stage: StageText, Err: ErrEmptyText}
	}

	link, err := x.link(ctx, pageURL, el)
	if err != nil {
		return models.RawListing{}, &ItemError{Stage: StageLink, Err: err}
	}

	return models.RawListing{
		Text:     text,
		Link:     link,
		Location: x.location(ctx, el),
	}, nil
}

// link returns the resolved href of the first anchor, or the sentinel when the
// container has no usable anchor. Only a failing lookup is an error.
func (x *Extractor) link(ctx context.Context, pageURL string, el engine.Element) (string, error) {
	anchor, found, err := el.Query(ctx, x.sel.Anchor)
	if err != nil {
		return "", err
	}
	if !found {
		return models.LinkUnavailable, nil
	}

	href, ok, err := anchor.Attr(ctx, "href")
	if err != nil {
		return "", err
	}
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return models.LinkUnavailable, nil
	}
	return urlutil.ResolveURL(pageURL, href), nil
}

// location never fails; anything short of a non-empty text gives the sentinel
func (x *Extractor) location(ctx context.Context, el engine.Element) string {
	node, found, err := el.Query(ctx, x.sel.Location)
	if err != nil || !found {
		return models.LocationUnspecified
	}
	text, err := node.Text(ctx)
	if err != nil {
		return models.LocationUnspecified
	}
	if text = strings.TrimSpace(text); text == "" {
		return models.LocationUnspecified
	}
	return text
}
