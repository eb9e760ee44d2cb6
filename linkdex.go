package linkdex

// Entry is a key-value pair held by the store.
type Entry struct {
	Key   string
	Value string
}

// PopularEntry is an entry together with its access count.
type PopularEntry struct {
	Key   string
	Value string
	Count uint64
}

// Storage is the surface the HTTP layer depends on.
// Implementations of this interface must be thread safe.
type Storage interface {
	// Put stores the key-value pair, overwriting any previous value
	Put(key string, value string)

	// Get returns the value stored under key and counts the access,
	// ErrKeyNotFound on a miss
	Get(key string) (string, error)

	// TopPopular returns the k most accessed entries in ranking order
	TopPopular(k int) []PopularEntry

	// All returns every entry in ascending key order
	All() []Entry
}

// Snapshotter is the export surface the persistence layer depends on.
// Exports are logical (key, value, count) data only, no index internals.
type Snapshotter interface {
	All() []Entry
	Counts() map[string]uint64
}
