package flatfile

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/abdidvp/flooring/internal/domain"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Logger returns the logger selected by opts, or a discarding one.
func Logger(opts ...Option) *slog.Logger {
	return buildOptions(opts).logger
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Store is an in-memory map of records mirrored to a single flat file.
// The file is always the serialized image of the map after the last
// successful mutation.
type Store[K cmp.Ordered, V any] struct {
	mu     sync.RWMutex
	path   string
	codec  Codec[V]
	key    func(V) K
	items  map[K]V
	logger *slog.Logger
}

// NewStore creates a Store over path. Call Load before use.
func NewStore[K cmp.Ordered, V any](path string, codec Codec[V], key func(V) K, opts ...Option) *Store[K, V] {
	o := buildOptions(opts)
	return &Store[K, V]{
		path:   path,
		codec:  codec,
		key:    key,
		items:  make(map[K]V),
		logger: o.logger,
	}
}

// Path returns the backing file.
func (s *Store[K, V]) Path() string { return s.path }

// Load replaces the in-memory map with the file's contents. When two rows
// share a key the later one wins.
func (s *Store[K, V]) Load() error {
	values, err := ReadFile(s.path, s.codec, s.logger)
	if err != nil {
		return err
	}

	items := make(map[K]V, len(values))
	for _, v := range values {
		k := s.key(v)
		if _, dup := items[k]; dup {
			s.logger.Warn("duplicate key in file, keeping last row",
				slog.String("file", s.path), slog.String("key", fmt.Sprint(k)))
		}
		items[k] = v
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.logger.Debug("loaded records", slog.String("file", s.path), slog.Int("count", len(items)))
	return nil
}

// All returns every record ordered by key.
func (s *Store[K, V]) All() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked()
}

// Get returns the record stored under k.
func (s *Store[K, V]) Get(k K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[k]
	return v, ok
}

// Len returns the number of records.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Insert adds v. It fails with domain.ErrDuplicateKey if the key exists.
func (s *Store[K, V]) Insert(v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.key(v)
	if _, exists := s.items[k]; exists {
		return fmt.Errorf("%v: %w", k, domain.ErrDuplicateKey)
	}
	s.items[k] = v
	if err := s.persistLocked(); err != nil {
		delete(s.items, k)
		return err
	}
	return nil
}

// Update replaces the record with v's key. It reports false, without
// touching the file, when the key is absent.
func (s *Store[K, V]) Update(v V) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.key(v)
	prev, exists := s.items[k]
	if !exists {
		return false, nil
	}
	s.items[k] = v
	if err := s.persistLocked(); err != nil {
		s.items[k] = prev
		return false, err
	}
	return true, nil
}

// Delete removes the record under k. It reports false, without touching
// the file, when the key is absent.
func (s *Store[K, V]) Delete(k K) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, exists := s.items[k]
	if !exists {
		return false, nil
	}
	delete(s.items, k)
	if err := s.persistLocked(); err != nil {
		s.items[k] = prev
		return false, err
	}
	return true, nil
}

func (s *Store[K, V]) persistLocked() error {
	return WriteFile(s.path, s.codec, s.sortedLocked())
}

func (s *Store[K, V]) sortedLocked() []V {
	keys := make([]K, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.items[k])
	}
	return out
}
