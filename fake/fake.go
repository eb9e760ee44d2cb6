package fake

import (
	"sort"
	"sync"

	"linkdex"
)

// Store is a plain-map model of the real store, for tests of code that
// consumes linkdex.Storage and as a behavior oracle in property tests.
type Store struct {
	mut     sync.Mutex
	entries map[string]string
	counts  map[string]uint64
}

var _ linkdex.Storage = &Store{}
var _ linkdex.Snapshotter = &Store{}

// New ...
func New() *Store {
	return &Store{
		entries: map[string]string{},
		counts:  map[string]uint64{},
	}
}

// Put ...
func (s *Store) Put(key string, value string) {
	s.mut.Lock()
	defer s.mut.Unlock()

	s.entries[key] = value
}

// Get ...
func (s *Store) Get(key string) (string, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	value, ok := s.entries[key]
	if !ok {
		return "", linkdex.ErrKeyNotFound
	}
	s.counts[key]++
	return value, nil
}

// TopPopular ...
func (s *Store) TopPopular(k int) []linkdex.PopularEntry {
	s.mut.Lock()
	defer s.mut.Unlock()

	if k <= 0 || len(s.counts) == 0 {
		return nil
	}

	result := make([]linkdex.PopularEntry, 0, len(s.counts))
	for key, count := range s.counts {
		result = append(result, linkdex.PopularEntry{
			Key:   key,
			Value: s.entries[key],
			Count: count,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Key < result[j].Key
	})

	if k > len(result) {
		k = len(result)
	}
	return result[:k]
}

// All ...
func (s *Store) All() []linkdex.Entry {
	s.mut.Lock()
	defer s.mut.Unlock()

	result := make([]linkdex.Entry, 0, len(s.entries))
	for key, value := range s.entries {
		result = append(result, linkdex.Entry{Key: key, Value: value})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}

// Counts ...
func (s *Store) Counts() map[string]uint64 {
	s.mut.Lock()
	defer s.mut.Unlock()

	result := make(map[string]uint64, len(s.counts))
	for key, count := range s.counts {
		result[key] = count
	}
	return result
}
