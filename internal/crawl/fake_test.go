package crawl

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/law-makers/stageradar/internal/engine"
)

type fakeElement struct {
	text     string
	href     string
	location string
	textErr  error
}

func (e *fakeElement) Text(ctx context.Context) (string, error) {
	return e.text, e.textErr
}

func (e *fakeElement) Query(ctx context.Context, selector string) (engine.Element, bool, error) {
	switch selector {
	case "a":
		if e.href == "" {
			return nil, false, nil
		}
		return &fakeAttr{href: e.href}, true, nil
	default:
		if e.location == "" {
			return nil, false, nil
		}
		return &fakeElement{text: e.location}, true, nil
	}
}

func (e *fakeElement) Attr(ctx context.Context, name string) (string, bool, error) {
	return "", false, nil
}

type fakeAttr struct{ href string }

func (a *fakeAttr) Text(ctx context.Context) (string, error) { return "", nil }
func (a *fakeAttr) Query(ctx context.Context, selector string) (engine.Element, bool, error) {
	return nil, false, nil
}
func (a *fakeAttr) Attr(ctx context.Context, name string) (string, bool, error) {
	return a.href, name == "href", nil
}

// fakeSession serves pages keyed by the URL's page parameter
type fakeSession struct {
	pages    map[int][]engine.Element
	navErr   map[int]error
	visited  []int
	closes   int
	current  int
	queryErr error
}

func (s *fakeSession) Navigate(ctx context.Context, rawURL, readySelector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	n, _ := strconv.Atoi(u.Query().Get("page"))
	s.visited = append(s.visited, n)
	if err := s.navErr[n]; err != nil {
		return err
	}
	s.current = n
	return nil
}

func (s *fakeSession) DismissConsent(ctx context.Context, selector string, timeout time.Duration) {}

func (s *fakeSession) QueryAll(ctx context.Context, selector string) ([]engine.Element, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	return s.pages[s.current], nil
}

func (s *fakeSession) Close() error {
	s.closes++
	return nil
}

func (s *fakeSession) opener() engine.Opener {
	return func(ctx context.Context) (engine.Session, error) {
		return s, nil
	}
}

func failingOpener(err error) engine.Opener {
	return func(ctx context.Context) (engine.Session, error) {
		return nil, err
	}
}

var errBoom = errors.New("boom")

func listing(company, title, place, href string) engine.Element {
	return &fakeElement{
		text:     company + "\n" + title + "\n" + place,
		href:     href,
		location: place,
	}
}

func page(prefix string, n int) []engine.Element {
	out := make([]engine.Element, n)
	for i := range out {
		id := prefix + strconv.Itoa(i)
		out[i] = listing("Company "+id, "Intern "+id, "Paris", "/jobs/"+id)
	}
	return out
}
