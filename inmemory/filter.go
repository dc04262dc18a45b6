package inmemory

import (
	"context"

	"github.com/letmevibethatforyou/tripsearch"
)

// Filter returns the items satisfying every predicate of c, in their
// original order. It allocates a new slice and never reorders.
func Filter[T tripsearch.Fielder](items []T, c tripsearch.Criteria) []T {
	exprs := c.Expressions()
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(item, exprs...) {
			out = append(out, item)
		}
	}
	return out
}

// Catalog is an immutable in-memory package list implementing
// tripsearch.Finder.
type Catalog struct {
	packages []tripsearch.Package
}

var _ tripsearch.Finder = (*Catalog)(nil)

// NewCatalog copies packages into a new catalog.
func NewCatalog(packages ...tripsearch.Package) *Catalog {
	return &Catalog{packages: append([]tripsearch.Package(nil), packages...)}
}

// Size returns the number of packages in the catalog.
func (c *Catalog) Size() int {
	return len(c.packages)
}

// Find implements the tripsearch.Finder interface. Unsupported filter
// expressions are rejected with tripsearch.ErrInvalidExpression.
func (c *Catalog) Find(ctx context.Context, opts ...tripsearch.SearchOption) ([]tripsearch.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, tripsearch.ContextError(err)
	}

	cfg := tripsearch.NewSearchConfig(opts...)
	if err := Validate(cfg.Filters...); err != nil {
		return nil, err
	}

	matches := make([]tripsearch.Package, 0, len(c.packages))
	for _, p := range c.packages {
		if Matches(p, cfg.Filters...) {
			matches = append(matches, p)
		}
	}

	start, end := cfg.Window(len(matches))
	return matches[start:end], nil
}
