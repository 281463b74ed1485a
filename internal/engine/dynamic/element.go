// internal/engine/dynamic/element.go
package dynamic

import (
	"context"
	"errors"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/law-makers/stageradar/internal/engine"
)

// Element is a node of the page a Session currently shows
type Element struct {
	s    *Session
	node *cdp.Node
}

// Text returns the node's innerText
func (e *Element) Text(ctx context.Context) (string, error) {
	runCtx, cancel := e.s.bind(ctx, e.s.itemTimeout)
	defer cancel()

	var text string
	err := chromedp.Run(runCtx, chromedp.Text([]cdp.NodeID{e.node.NodeID}, &text, chromedp.ByNodeID))
	if err != nil {
		return "", e.wrap(ctx, err)
	}
	return text, nil
}

// Query returns the first descendant matching selector
func (e *Element) Query(ctx context.Context, selector string) (engine.Element, bool, error) {
	runCtx, cancel := e.s.bind(ctx, e.s.itemTimeout)
	defer cancel()

	var nodes []*cdp.Node
	err := chromedp.Run(runCtx, chromedp.Nodes(selector, &nodes,
		chromedp.ByQuery, chromedp.FromNode(e.node), chromedp.AtLeast(0)))
	if err != nil {
		return nil, false, e.wrap(ctx, err)
	}
	if len(nodes) == 0 {
		return nil, false, nil
	}
	return &Element{s: e.s, node: nodes[0]}, true, nil
}

// Attr reads the attribute from the node snapshot taken by the query
func (e *Element) Attr(_ context.Context, name string) (string, bool, error) {
	v, ok := e.node.Attribute(name)
	return v, ok, nil
}

func (e *Element) wrap(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return engine.NewEngineError(engine.ErrCodeExtract, "element did not answer in time", errors.Join(engine.ErrStaleElement, err))
	}
	return engine.NewEngineError(engine.ErrCodeExtract, "element lookup failed", errors.Join(engine.ErrStaleElement, err))
}
