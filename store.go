package linkdex

import (
	"log"
	"sync"

	"linkdex/cuckoo"
	"linkdex/rbtree"
	"linkdex/topk"
)

type storeOptions struct {
	cuckooOptions []cuckoo.Option
	errorLogger   func(err error)
}

// Option ...
type Option func(opts *storeOptions)

func defaultErrorLogger(err error) {
	log.Println("[ERROR] linkdex: accelerator write:", err)
}

func computeOptions(options []Option) *storeOptions {
	opts := &storeOptions{
		errorLogger: defaultErrorLogger,
	}
	for _, fn := range options {
		fn(opts)
	}
	return opts
}

// WithCuckooOptions passes options through to the cuckoo accelerator
func WithCuckooOptions(options ...cuckoo.Option) Option {
	return func(opts *storeOptions) {
		opts.cuckooOptions = options
	}
}

// WithErrorLogger configures the logger for absorbed accelerator failures
// default logs through the log package
func WithErrorLogger(logger func(err error)) Option {
	return func(opts *storeOptions) {
		opts.errorLogger = logger
	}
}

// Store keeps three independently maintained lookup structures
// consistent: a red-black tree holding the authoritative copy, a cuckoo
// hash accelerator, and an access-frequency tracker. Writes go to both
// indexes, lookups probe the accelerator first and fall back to the
// tree, successful lookups feed the tracker.
//
// All operations take a single lock across the three structures. Get is
// a write operation as far as the tracker is concerned, and per-structure
// locks would let a reader observe a half-applied Put.
type Store struct {
	opts *storeOptions

	mut     sync.Mutex
	tree    *rbtree.Tree
	table   *cuckoo.Table
	tracker *topk.Tracker
}

var _ Storage = &Store{}
var _ Snapshotter = &Store{}

// NewStore ...
func NewStore(options ...Option) *Store {
	opts := computeOptions(options)
	return &Store{
		opts: opts,

		tree:    rbtree.New(),
		table:   cuckoo.New(opts.cuckooOptions...),
		tracker: topk.New(),
	}
}

// Put stores the key-value pair in both indexes. A full accelerator is
// not an error, the tree keeps the authoritative copy and the failure
// is only logged.
func (s *Store) Put(key string, value string) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.tree.Set(key, value)

	if err := s.table.Set(key, value); err != nil {
		s.opts.errorLogger(err)
	}
}

// Get returns the value stored under key and records the access,
// ErrKeyNotFound on a miss. Misses leave the tracker untouched.
func (s *Store) Get(key string) (string, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	value, ok := s.table.Get(key)
	if ok {
		s.tracker.Record(key)
		return value, nil
	}

	value, ok = s.tree.Get(key)
	if !ok {
		return "", ErrKeyNotFound
	}

	// the accelerator lost this key, likely to an abandoned eviction
	// chain, repair it from the authoritative copy
	if err := s.table.Set(key, value); err != nil {
		s.opts.errorLogger(err)
	}

	s.tracker.Record(key)
	return value, nil
}

// TopPopular returns the k most accessed entries in descending count
// order, ties broken by ascending key. Resolving values does not count
// as an access.
func (s *Store) TopPopular(k int) []PopularEntry {
	s.mut.Lock()
	defer s.mut.Unlock()

	top := s.tracker.Top(k)
	if len(top) == 0 {
		return nil
	}

	result := make([]PopularEntry, 0, len(top))
	for _, kc := range top {
		value, ok := s.table.Get(kc.Key)
		if !ok {
			value, ok = s.tree.Get(kc.Key)
		}
		if !ok {
			// tracked keys enter through successful lookups,
			// so they are always resolvable
			continue
		}
		result = append(result, PopularEntry{
			Key:   kc.Key,
			Value: value,
			Count: kc.Count,
		})
	}
	return result
}

// All returns every entry in ascending key order,
// for export and persistence.
func (s *Store) All() []Entry {
	s.mut.Lock()
	defer s.mut.Unlock()

	entries := s.tree.InOrder()

	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		result = append(result, Entry{Key: e.Key, Value: e.Value})
	}
	return result
}

// Counts exports all access counts, for persistence.
func (s *Store) Counts() map[string]uint64 {
	s.mut.Lock()
	defer s.mut.Unlock()

	return s.tracker.Counts()
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mut.Lock()
	defer s.mut.Unlock()

	return s.tree.Len()
}

// Restore replaces the store contents with a loaded snapshot.
func (s *Store) Restore(entries []Entry, counts map[string]uint64) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.tree = rbtree.New()
	s.table = cuckoo.New(s.opts.cuckooOptions...)

	for _, e := range entries {
		s.tree.Set(e.Key, e.Value)
		if err := s.table.Set(e.Key, e.Value); err != nil {
			s.opts.errorLogger(err)
		}
	}

	s.tracker.Restore(counts)
}
