package inmemory

import (
	"sort"

	"github.com/letmevibethatforyou/tripsearch"
	"github.com/letmevibethatforyou/tripsearch/textnorm"
)

// DefaultIdleCount is the number of leading catalog items shown for a
// blank query.
const DefaultIdleCount = 4

// Option configures ranking.
type Option func(*options)

type options struct {
	synonyms  tripsearch.Synonyms
	weights   Weights
	idleCount int
}

func newOptions(opts []Option) options {
	o := options{weights: DefaultWeights, idleCount: DefaultIdleCount}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSynonyms sets the synonym table used for scoring.
func WithSynonyms(s tripsearch.Synonyms) Option {
	return func(o *options) {
		o.synonyms = s
	}
}

// WithWeights overrides DefaultWeights.
func WithWeights(w Weights) Option {
	return func(o *options) {
		o.weights = w
	}
}

// WithIdleCount sets how many leading catalog items a blank query returns.
// Negative values are treated as zero.
func WithIdleCount(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.idleCount = n
	}
}

// Rank orders catalog by relevance to query.
//
// A query without tokens returns the first idle-count items in catalog
// order with zero scores. Otherwise items scoring zero or less are dropped
// and the rest are sorted by descending score; equal scores keep catalog
// order.
func Rank(catalog []tripsearch.Item, query string, opts ...Option) []tripsearch.Result {
	o := newOptions(opts)
	return rank(catalog, Scorer{Synonyms: o.synonyms, Weights: o.weights}, o.idleCount, query)
}

func rank(catalog []tripsearch.Item, scorer Scorer, idleCount int, query string) []tripsearch.Result {
	tokens := textnorm.Tokenize(query)
	if len(tokens) == 0 {
		n := min(idleCount, len(catalog))
		results := make([]tripsearch.Result, n)
		for i := 0; i < n; i++ {
			results[i] = tripsearch.Result{Item: catalog[i]}
		}
		return results
	}

	var results []tripsearch.Result
	for _, item := range catalog {
		if score := scorer.Score(item, tokens); score > 0 {
			results = append(results, tripsearch.Result{Item: item, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
