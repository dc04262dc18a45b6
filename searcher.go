package tripsearch

import "context"

// Searcher defines the help-center search interface.
type Searcher interface {
	// Search ranks the catalog against the given query and options.
	Search(ctx context.Context, query string, opts ...SearchOption) (*Results, error)
}

// SearcherFunc is a function type that implements the Searcher interface.
// This allows using a function as a Searcher, similar to http.HandlerFunc.
type SearcherFunc func(context.Context, string, ...SearchOption) (*Results, error)

// Search implements the Searcher interface for SearcherFunc.
func (f SearcherFunc) Search(ctx context.Context, query string, opts ...SearchOption) (*Results, error) {
	return f(ctx, query, opts...)
}

// Finder lists tour packages matching the filter expressions carried by opts.
type Finder interface {
	Find(ctx context.Context, opts ...SearchOption) ([]Package, error)
}

// FinderFunc is a function type that implements the Finder interface.
type FinderFunc func(context.Context, ...SearchOption) ([]Package, error)

// Find implements the Finder interface for FinderFunc.
func (f FinderFunc) Find(ctx context.Context, opts ...SearchOption) ([]Package, error) {
	return f(ctx, opts...)
}
