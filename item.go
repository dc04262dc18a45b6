package tripsearch

// Item is a searchable help-center topic.
type Item struct {
	// ID is the stable identifier of the topic, unique within a catalog.
	ID string `json:"id" yaml:"id"`

	// Title is the display text matched against query tokens.
	Title string `json:"title" yaml:"title"`

	// TargetRef is an opaque navigation reference (anchor or route).
	TargetRef string `json:"target,omitempty" yaml:"target,omitempty"`
}

// Synonyms maps item IDs to related keywords that broaden recall beyond
// literal title matches. Keyword order and duplicates do not affect scoring.
type Synonyms map[string][]string

// For returns the keywords registered for id.
func (s Synonyms) For(id string) []string {
	if s == nil {
		return nil
	}
	return s[id]
}
