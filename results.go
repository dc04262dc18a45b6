package tripsearch

// Result pairs a catalog item with its relevance score for one query.
type Result struct {
	// Item is the matched catalog entry.
	Item Item `json:"item"`

	// Score is the additive relevance score. Idle (empty query) results
	// carry a zero score.
	Score int `json:"score"`
}

// Results represents a ranked list of help topics with metadata.
type Results struct {
	// Items contains the individual search results.
	Items []Result

	// Total is the number of ranked items before pagination.
	Total int64

	// Took is the time taken to execute the search in milliseconds.
	Took int64

	// MaxScore is the maximum relevance score across the returned items.
	MaxScore int

	// Query is the original query string for reference.
	Query string

	// NextOffset can be used for pagination.
	NextOffset *int
}

// Catalog returns the items of the results in ranked order.
func (r *Results) Catalog() []Item {
	if r == nil {
		return nil
	}
	items := make([]Item, len(r.Items))
	for i, res := range r.Items {
		items[i] = res.Item
	}
	return items
}
