// Package recent keeps a small, deduplicated, most-recent-first history of
// accepted search queries on top of a pluggable Storage.
//
// The history is a convenience: storage failures are logged and swallowed,
// and a missing or malformed stored value reads as an empty history.
package recent

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
)

const (
	// DefaultKey is the storage key holding the JSON-encoded history.
	DefaultKey = "tripsearch:recent-queries"

	// DefaultCapacity is the maximum number of remembered queries.
	DefaultCapacity = 6
)

// Option configures a Store.
type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithCapacity overrides DefaultCapacity. Values below one are ignored.
func WithCapacity(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithLogger sets the logger used to report swallowed storage errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the recent-query history. It is safe for concurrent use.
type Store struct {
	storage  Storage
	key      string
	capacity int
	logger   *slog.Logger

	mu      sync.Mutex
	queries []string
}

// New creates a Store and loads the persisted history once.
func New(ctx context.Context, storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		key:      DefaultKey,
		capacity: DefaultCapacity,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.queries = s.load(ctx)
	return s
}

// List returns the remembered queries, most recent first.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Push records query as the most recent entry. The query is trimmed;
// blank queries are ignored. An existing equal entry is moved to the front.
func (s *Store) Push(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, s.capacity)
	next = append(next, query)
	for _, q := range s.queries {
		if len(next) == s.capacity {
			break
		}
		if q != query {
			next = append(next, q)
		}
	}
	s.queries = next
	s.save(ctx)
}

// Clear forgets every remembered query.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries = nil
	if err := s.storage.Remove(ctx, s.key); err != nil {
		s.logger.WarnContext(ctx, "failed to clear recent queries", "key", s.key, "error", err)
	}
}

func (s *Store) load(ctx context.Context) []string {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load recent queries", "key", s.key, "error", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.WarnContext(ctx, "ignoring malformed recent queries", "key", s.key, "error", err)
		return nil
	}

	// Stored values may come from older writers; re-apply the invariants.
	queries := make([]string, 0, min(len(stored), s.capacity))
	seen := make(map[string]struct{}, len(stored))
	for _, q := range stored {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
		if len(queries) == s.capacity {
			break
		}
	}
	return queries
}

func (s *Store) save(ctx context.Context) {
	data, err := json.Marshal(s.queries)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode recent queries", "error", err)
		return
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		s.logger.WarnContext(ctx, "failed to persist recent queries", "key", s.key, "error", err)
	}
}
