package algolia

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/algolia/algoliasearch-client-go/v3/algolia/opt"
	"github.com/cockroachdb/errors"
	"github.com/letmevibethatforyou/tripsearch"
	"github.com/letmevibethatforyou/tripsearch/inmemory"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBrowseBatch is the number of records fetched per browse request.
const DefaultBrowseBatch = 1000

// Finder implements tripsearch.Finder over an Algolia index.
//
// City membership is pushed to Algolia as a facet filter. Numeric bounds
// are evaluated locally because Algolia cannot express "missing field
// passes" or per-field defaults, so the matching records are read in full
// with the browse API and pagination is applied after the local pass.
type Finder struct {
	client    *Client
	indexName string
	index     func() (packageIndex, error)
}

var _ tripsearch.Finder = (*Finder)(nil)

// NewFinder creates a Finder for the specified index.
func NewFinder(client *Client, indexName string) *Finder {
	return &Finder{
		client:    client,
		indexName: indexName,
		index: func() (packageIndex, error) {
			return client.index(indexName)
		},
	}
}

// Find implements tripsearch.Finder. Unsupported filter expressions are
// rejected with tripsearch.ErrInvalidExpression before any request.
func (f *Finder) Find(ctx context.Context, opts ...tripsearch.SearchOption) ([]tripsearch.Package, error) {
	startTime := time.Now()

	ctx, span := f.client.tracer.Start(ctx, "algolia.find",
		trace.WithAttributes(
			attribute.String("algolia.index_name", f.indexName),
		),
	)
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, tripsearch.ContextError(err)
	}

	cfg := tripsearch.NewSearchConfig(opts...)
	if err := inmemory.Validate(cfg.Filters...); err != nil {
		return nil, err
	}

	index, err := f.index()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get Algolia client")
		return nil, errors.WithSecondaryError(
			tripsearch.ErrBackendUnavailable,
			errors.Wrapf(err, "failed to get Algolia client"),
		)
	}

	it, err := index.Browse(browseParams(ctx, cfg)...)
	if err != nil {
		return nil, f.browseError(ctx, span, err)
	}

	var (
		matched []tripsearch.Package
		scanned int
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, tripsearch.ContextError(err)
		}

		var r record
		if _, err := it.Next(&r); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, f.browseError(ctx, span, err)
		}
		scanned++

		p := r.Package
		if p.ID == "" {
			p.ID = r.ObjectID
		}
		if inmemory.Matches(p, cfg.Filters...) {
			matched = append(matched, p)
		}
	}

	start, end := cfg.Window(len(matched))
	out := make([]tripsearch.Package, end-start)
	copy(out, matched[start:end])

	span.SetAttributes(
		attribute.Int("algolia.scanned", scanned),
		attribute.Int("algolia.matched", len(matched)),
		attribute.Int64("algolia.took_ms", time.Since(startTime).Milliseconds()),
	)
	span.SetStatus(codes.Ok, "find completed")
	return out, nil
}

// browseError maps a browse failure onto the tripsearch error codes.
func (f *Finder) browseError(ctx context.Context, span trace.Span, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return tripsearch.ContextError(err)
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return tripsearch.ContextError(ctxErr)
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, fmt.Sprintf("browse failed on index %s", f.indexName))
	return errors.WithSecondaryError(
		tripsearch.ErrBackendUnavailable,
		errors.Wrapf(err, "Algolia browse failed"),
	)
}

// browseParams converts a SearchConfig to Algolia browse parameters. The
// context is passed through so that every page request honors it.
func browseParams(ctx context.Context, cfg *tripsearch.SearchConfig) []interface{} {
	params := []interface{}{ctx, opt.HitsPerPage(DefaultBrowseBatch)}
	if filter := filterString(cfg.Filters); filter != "" {
		params = append(params, opt.Filters(filter))
	}
	return params
}

// filterString joins the server-side part of every filter with AND.
func filterString(exprs []tripsearch.Expression) string {
	filters := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		if f := convertExpressionToFilter(expr); f != "" {
			filters = append(filters, f)
		}
	}
	return strings.Join(filters, " AND ")
}

// convertExpressionToFilter converts an expression to an Algolia filter
// string. Expressions evaluated locally convert to "".
func convertExpressionToFilter(expr tripsearch.Expression) string {
	switch e := expr.(type) {
	case tripsearch.AndExpr:
		return convertAndExpression(e)
	case tripsearch.InExpr:
		return convertInExpression(e)
	default:
		return ""
	}
}

func convertAndExpression(expr tripsearch.AndExpr) string {
	filters := make([]string, 0, len(expr.Exprs))
	for _, e := range expr.Exprs {
		if filter := convertExpressionToFilter(e); filter != "" {
			filters = append(filters, filter)
		}
	}
	switch len(filters) {
	case 0:
		return ""
	case 1:
		return filters[0]
	}
	for i, f := range filters {
		filters[i] = "(" + f + ")"
	}
	return strings.Join(filters, " AND ")
}

// convertInExpression converts set membership into an OR of facet filters.
func convertInExpression(expr tripsearch.InExpr) string {
	if len(expr.Values) == 0 {
		return ""
	}
	terms := make([]string, len(expr.Values))
	for i, v := range expr.Values {
		terms[i] = fmt.Sprintf("%s:%s", escapeField(expr.Field), escapeValue(v))
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return "(" + strings.Join(terms, " OR ") + ")"
}

// escapeField quotes field names containing filter syntax characters.
func escapeField(field string) string {
	if strings.ContainsAny(field, " :-()") {
		return fmt.Sprintf(`"%s"`, field)
	}
	return field
}

// escapeValue quotes a string value and escapes internal quotes.
func escapeValue(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `\"`) + `"`
}
