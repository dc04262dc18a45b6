package tripsearch

// Expression represents a composable filter expression.
// All Expressions are SearchOptions, but not all SearchOptions are Expressions.
type Expression interface {
	SearchOption
	// expr is a marker method to distinguish expressions from other options.
	expr()
}

// baseExpr provides the expr marker method for all expression types.
type baseExpr struct{}

func (baseExpr) expr() {}

// AndExpr represents an AND combination of expressions.
type AndExpr struct {
	baseExpr
	// Exprs contains the expressions to combine with AND logic.
	Exprs []Expression
}

// Apply implements the SearchOption interface for AndExpr.
func (a AndExpr) Apply(cfg *SearchConfig) {
	cfg.Filters = append(cfg.Filters, a)
}

// And creates an AND expression combining multiple expressions.
func And(exprs ...Expression) Expression {
	return AndExpr{Exprs: exprs}
}

// InExpr represents set membership of a string field.
// An empty value set matches everything.
type InExpr struct {
	baseExpr
	// Field is the name of the field to compare.
	Field string
	// Values is the set of accepted values.
	Values []string
}

// Apply implements the SearchOption interface for InExpr.
func (e InExpr) Apply(cfg *SearchConfig) {
	cfg.Filters = append(cfg.Filters, e)
}

// In creates a set membership expression.
func In(field string, values ...string) Expression {
	return InExpr{Field: field, Values: values}
}

// LteExpr represents an inclusive numeric upper bound.
type LteExpr struct {
	baseExpr
	// Field is the name of the field to compare.
	Field string
	// Value is the inclusive upper bound.
	Value float64
	// Default is compared instead of the field when the field is missing.
	// A nil Default lets documents without the field pass.
	Default *float64
}

// Apply implements the SearchOption interface for LteExpr.
func (l LteExpr) Apply(cfg *SearchConfig) {
	cfg.Filters = append(cfg.Filters, l)
}

// OrDefault returns a copy of the expression that compares v when the
// field is missing.
func (l LteExpr) OrDefault(v float64) LteExpr {
	l.Default = &v
	return l
}

// Lte creates a less-than-or-equal comparison expression.
func Lte(field string, value float64) LteExpr {
	return LteExpr{Field: field, Value: value}
}
