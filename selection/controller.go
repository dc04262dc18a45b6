// Package selection tracks keyboard navigation over a ranked result list.
package selection

import (
	"context"

	"github.com/letmevibethatforyou/tripsearch"
	"github.com/letmevibethatforyou/tripsearch/recent"
)

// NoSelection is the active index when no result is highlighted.
const NoSelection = -1

// Ranker produces the result list for a query.
type Ranker interface {
	Rank(query string) []tripsearch.Item
}

// RankerFunc adapts a function to the Ranker interface.
type RankerFunc func(query string) []tripsearch.Item

// Rank implements Ranker.
func (f RankerFunc) Rank(query string) []tripsearch.Item {
	return f(query)
}

// Activation describes a chosen result. The caller performs the navigation
// to Item.TargetRef.
type Activation struct {
	Item  tripsearch.Item `json:"item"`
	Index int             `json:"index"`
	Query string          `json:"query"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecent records every activated query in store.
func WithRecent(store *recent.Store) Option {
	return func(c *Controller) {
		c.recent = store
	}
}

// Controller is the selection state machine. It is meant to be driven by a
// single event loop and is not safe for concurrent use.
type Controller struct {
	ranker  Ranker
	recent  *recent.Store
	query   string
	results []tripsearch.Item
	active  int
}

// New creates a Controller with an empty query.
func New(ranker Ranker, opts ...Option) *Controller {
	c := &Controller{ranker: ranker}
	for _, opt := range opts {
		opt(c)
	}
	c.SetQuery("")
	return c
}

// Query returns the current query text.
func (c *Controller) Query() string { return c.query }

// Results returns the current result list.
func (c *Controller) Results() []tripsearch.Item {
	return append([]tripsearch.Item(nil), c.results...)
}

// Active returns the highlighted index, or NoSelection.
func (c *Controller) Active() int { return c.active }

// Selected returns the highlighted item, if any.
func (c *Controller) Selected() (tripsearch.Item, bool) {
	if c.active == NoSelection {
		return tripsearch.Item{}, false
	}
	return c.results[c.active], true
}

// SetQuery replaces the query text, recomputes results and clears the
// selection.
func (c *Controller) SetQuery(query string) {
	c.query = query
	c.results = c.ranker.Rank(query)
	c.active = NoSelection
}

// Handle applies key. It returns an Activation and true when the key
// chose a result.
func (c *Controller) Handle(ctx context.Context, key Key) (Activation, bool) {
	switch key {
	case KeyDown, KeyRight:
		c.next()
	case KeyUp, KeyLeft:
		c.previous()
	case KeyEnter:
		return c.activate(ctx)
	case KeyEscape:
		c.SetQuery("")
	}
	return Activation{}, false
}

func (c *Controller) next() {
	if len(c.results) == 0 {
		return
	}
	c.active = (c.active + 1) % len(c.results)
}

func (c *Controller) previous() {
	if len(c.results) == 0 {
		return
	}
	if c.active <= 0 {
		c.active = len(c.results) - 1
		return
	}
	c.active--
}

func (c *Controller) activate(ctx context.Context) (Activation, bool) {
	if len(c.results) == 0 {
		return Activation{}, false
	}

	index := c.active
	if index == NoSelection {
		index = 0
	}

	if c.recent != nil {
		c.recent.Push(ctx, c.query)
	}
	return Activation{Item: c.results[index], Index: index, Query: c.query}, true
}
