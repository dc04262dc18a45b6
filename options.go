package tripsearch

// SearchOption represents a search configuration option.
type SearchOption interface {
	Apply(*SearchConfig)
}

// SearchConfig holds all search configuration parameters.
type SearchConfig struct {
	// Limit caps the number of returned items. Zero means no limit.
	Limit int

	// Offset specifies the number of results to skip for pagination.
	Offset int

	// Filters contains filter expressions to apply.
	Filters []Expression
}

// NewSearchConfig applies opts to an empty configuration.
func NewSearchConfig(opts ...SearchOption) *SearchConfig {
	cfg := &SearchConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt.Apply(cfg)
		}
	}
	return cfg
}

// Window returns the [start, end) bounds of the page described by the
// configuration over a list of n items.
func (cfg *SearchConfig) Window(n int) (start, end int) {
	start = cfg.Offset
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end = n
	if cfg.Limit > 0 && start+cfg.Limit < n {
		end = start + cfg.Limit
	}
	return start, end
}

// optionFunc is a function that implements SearchOption.
type optionFunc func(*SearchConfig)

// Apply implements the SearchOption interface for optionFunc.
func (f optionFunc) Apply(cfg *SearchConfig) {
	f(cfg)
}

// WithLimit sets the maximum number of results to return.
func WithLimit(n int) SearchOption {
	return optionFunc(func(cfg *SearchConfig) {
		cfg.Limit = n
	})
}

// WithOffset sets the number of results to skip for pagination.
func WithOffset(n int) SearchOption {
	return optionFunc(func(cfg *SearchConfig) {
		cfg.Offset = n
	})
}
