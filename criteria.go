package tripsearch

import "math"

// NoLimit marks an unrestricted upper bound in Criteria.
var NoLimit = math.Inf(1)

// DefaultDuration is the duration in days assumed for packages that do not
// specify one when a duration bound is active.
const DefaultDuration = 1

// Criteria is a conjunction of independent package predicates.
// Criteria implements SearchOption, so it can be passed directly to a Finder.
type Criteria struct {
	// AllowedCities restricts packages to these cities. Empty means any city.
	AllowedCities []string

	// MaxPrice is an inclusive upper bound. NoLimit disables the bound.
	MaxPrice float64

	// MaxDuration is an inclusive upper bound in days. NoLimit disables the bound.
	MaxDuration float64
}

// Unrestricted returns criteria that let every package through.
func Unrestricted() Criteria {
	return Criteria{MaxPrice: NoLimit, MaxDuration: NoLimit}
}

// Expressions translates the criteria into filter expressions.
// Unrestricted predicates produce no expression.
func (c Criteria) Expressions() []Expression {
	var exprs []Expression
	if len(c.AllowedCities) > 0 {
		exprs = append(exprs, In(FieldCity, c.AllowedCities...))
	}
	if bounded(c.MaxPrice) {
		exprs = append(exprs, Lte(FieldPrice, c.MaxPrice))
	}
	if bounded(c.MaxDuration) {
		exprs = append(exprs, Lte(FieldDuration, c.MaxDuration).OrDefault(DefaultDuration))
	}
	return exprs
}

// Apply implements the SearchOption interface for Criteria.
func (c Criteria) Apply(cfg *SearchConfig) {
	cfg.Filters = append(cfg.Filters, c.Expressions()...)
}

func bounded(v float64) bool {
	return !math.IsInf(v, 1) && !math.IsNaN(v)
}
