// internal/engine/static/element.go
package static

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/law-makers/stageradar/internal/engine"
)

// Element wraps a goquery selection of one node
type Element struct {
	sel *goquery.Selection
}

// NewElement wraps the first node of sel
func NewElement(sel *goquery.Selection) *Element {
	return &Element{sel: sel.First()}
}

// Text approximates the browser's visible text: every non-blank text node
// becomes its own line.
func (e *Element) Text(ctx context.Context) (string, error) {
	if len(e.sel.Nodes) == 0 {
		return "", engine.ErrStaleElement
	}
	var lines []string
	collectText(e.sel.Nodes[0], &lines)
	return strings.Join(lines, "\n"), nil
}

// Query returns the first matching descendant
func (e *Element) Query(ctx context.Context, selector string) (engine.Element, bool, error) {
	if len(e.sel.Nodes) == 0 {
		return nil, false, engine.ErrStaleElement
	}
	found := e.sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, false, nil
	}
	return &Element{sel: found}, true, nil
}

// Attr returns the named attribute
func (e *Element) Attr(ctx context.Context, name string) (string, bool, error) {
	if len(e.sel.Nodes) == 0 {
		return "", false, engine.ErrStaleElement
	}
	v, ok := e.sel.Attr(name)
	return v, ok, nil
}

func collectText(n *html.Node, lines *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.Join(strings.Fields(n.Data), " "); t != "" {
			*lines = append(*lines, t)
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "template", "svg":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, lines)
	}
}
