package inmemory

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/tripsearch"
)

// Searcher ranks a fixed help-center catalog. It implements
// tripsearch.Searcher and is safe for concurrent use because the catalog
// and synonym table never change after New returns.
type Searcher struct {
	catalog   []tripsearch.Item
	scorer    Scorer
	idleCount int
}

var _ tripsearch.Searcher = (*Searcher)(nil)

// New creates a searcher over a copy of catalog.
// It returns tripsearch.ErrDuplicateID if two items share an ID.
func New(catalog []tripsearch.Item, opts ...Option) (*Searcher, error) {
	seen := make(map[string]struct{}, len(catalog))
	for _, item := range catalog {
		if _, dup := seen[item.ID]; dup {
			return nil, errors.Wrapf(tripsearch.ErrDuplicateID, "item %q", item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	o := newOptions(opts)
	return &Searcher{
		catalog:   append([]tripsearch.Item(nil), catalog...),
		scorer:    Scorer{Synonyms: o.synonyms, Weights: o.weights},
		idleCount: o.idleCount,
	}, nil
}

// Size returns the number of catalog items.
func (s *Searcher) Size() int {
	return len(s.catalog)
}

// Rank returns the ranked items for query without scores.
func (s *Searcher) Rank(query string) []tripsearch.Item {
	results := rank(s.catalog, s.scorer, s.idleCount, query)
	items := make([]tripsearch.Item, len(results))
	for i, r := range results {
		items[i] = r.Item
	}
	return items
}

// Search implements the tripsearch.Searcher interface. Filter expressions
// are rejected with tripsearch.ErrInvalidOption because help topics carry
// no filterable fields.
func (s *Searcher) Search(ctx context.Context, query string, opts ...tripsearch.SearchOption) (*tripsearch.Results, error) {
	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, tripsearch.ContextError(err)
	}

	cfg := tripsearch.NewSearchConfig(opts...)
	if len(cfg.Filters) > 0 {
		return nil, errors.WithDetail(tripsearch.ErrInvalidOption, "help search does not support filters")
	}

	ranked := rank(s.catalog, s.scorer, s.idleCount, query)
	start, end := cfg.Window(len(ranked))

	results := &tripsearch.Results{
		Items: make([]tripsearch.Result, 0, end-start),
		Total: int64(len(ranked)),
		Query: query,
	}
	for _, r := range ranked[start:end] {
		if r.Score > results.MaxScore {
			results.MaxScore = r.Score
		}
		results.Items = append(results.Items, r)
	}

	if end < len(ranked) {
		nextOffset := end
		results.NextOffset = &nextOffset
	}

	results.Took = time.Since(startTime).Milliseconds()
	return results, nil
}
