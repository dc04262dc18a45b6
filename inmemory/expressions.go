package inmemory

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/tripsearch"
)

// Validate checks that every expression is one the evaluator supports.
// It returns tripsearch.ErrInvalidExpression for nil expressions, unknown
// expression types and empty field names.
func Validate(exprs ...tripsearch.Expression) error {
	for _, expr := range exprs {
		if err := validateExpression(expr); err != nil {
			return err
		}
	}
	return nil
}

func validateExpression(expr tripsearch.Expression) error {
	switch e := expr.(type) {
	case tripsearch.AndExpr:
		return Validate(e.Exprs...)
	case tripsearch.InExpr:
		if e.Field == "" {
			return errors.WithDetail(tripsearch.ErrInvalidExpression, "in: empty field")
		}
	case tripsearch.LteExpr:
		if e.Field == "" {
			return errors.WithDetail(tripsearch.ErrInvalidExpression, "lte: empty field")
		}
	case nil:
		return errors.WithDetail(tripsearch.ErrInvalidExpression, "nil expression")
	default:
		return errors.WithDetailf(tripsearch.ErrInvalidExpression, "unsupported expression %T", expr)
	}
	return nil
}

// Matches reports whether doc satisfies every expression. Expressions
// rejected by Validate never match.
func Matches(doc tripsearch.Fielder, exprs ...tripsearch.Expression) bool {
	for _, expr := range exprs {
		if !evaluateExpression(doc, expr) {
			return false
		}
	}
	return true
}

// evaluateExpression evaluates a single expression against a document.
func evaluateExpression(doc tripsearch.Fielder, expr tripsearch.Expression) bool {
	switch e := expr.(type) {
	case tripsearch.AndExpr:
		return evaluateAnd(doc, e)
	case tripsearch.InExpr:
		return evaluateIn(doc, e)
	case tripsearch.LteExpr:
		return evaluateLte(doc, e)
	default:
		return false
	}
}

// evaluateAnd evaluates an AND expression.
func evaluateAnd(doc tripsearch.Fielder, expr tripsearch.AndExpr) bool {
	for _, e := range expr.Exprs {
		if !evaluateExpression(doc, e) {
			return false
		}
	}
	return true
}

// evaluateIn evaluates a set membership expression.
func evaluateIn(doc tripsearch.Fielder, expr tripsearch.InExpr) bool {
	if len(expr.Values) == 0 {
		return true
	}

	docValue, exists := doc.Field(expr.Field)
	if !exists || docValue == nil {
		return false
	}

	s := fmt.Sprintf("%v", docValue)
	for _, v := range expr.Values {
		if s == v {
			return true
		}
	}
	return false
}

// evaluateLte evaluates an inclusive upper bound.
func evaluateLte(doc tripsearch.Fielder, expr tripsearch.LteExpr) bool {
	docValue, exists := doc.Field(expr.Field)
	if !exists || docValue == nil {
		if expr.Default == nil {
			return true
		}
		return *expr.Default <= expr.Value
	}

	f, ok := toFloat64(docValue)
	if !ok {
		return false
	}
	return f <= expr.Value
}

// toFloat64 attempts to convert a value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}
