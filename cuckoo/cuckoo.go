package cuckoo

import (
	"errors"

	"github.com/spaolacci/murmur3"
)

// ErrTableFull returned by Set when the displacement chain exceeds the
// configured kick budget without finding an empty slot
var ErrTableFull = errors.New("cuckoo: table full")

// HashFunc maps a key to a slot index in [0, capacity)
type HashFunc func(key string, capacity uint32) uint32

const (
	// DefaultCapacity is the number of slots per table
	DefaultCapacity = 1024

	// DefaultMaxKicks is the displacement chain budget of a single Set
	DefaultMaxKicks = 100
)

const (
	seedTable1 = 0x9e3779b9
	seedTable2 = 0x85ebca6b
)

func defaultHash1(key string, capacity uint32) uint32 {
	return murmur3.Sum32WithSeed([]byte(key), seedTable1) % capacity
}

func defaultHash2(key string, capacity uint32) uint32 {
	return murmur3.Sum32WithSeed([]byte(key), seedTable2) % capacity
}

type tableOptions struct {
	capacity uint32
	maxKicks int
	hash1    HashFunc
	hash2    HashFunc
}

// Option ...
type Option func(opts *tableOptions)

func computeOptions(options []Option) *tableOptions {
	opts := &tableOptions{
		capacity: DefaultCapacity,
		maxKicks: DefaultMaxKicks,
		hash1:    defaultHash1,
		hash2:    defaultHash2,
	}
	for _, fn := range options {
		fn(opts)
	}
	return opts
}

// WithCapacity configures the number of slots per table
// default is DefaultCapacity
func WithCapacity(capacity uint32) Option {
	return func(opts *tableOptions) {
		opts.capacity = capacity
	}
}

// WithMaxKicks configures the displacement chain budget
// default is DefaultMaxKicks
func WithMaxKicks(maxKicks int) Option {
	return func(opts *tableOptions) {
		opts.maxKicks = maxKicks
	}
}

// WithHashFuncs overrides the two hash functions,
// mostly for deterministic collision setups in tests
func WithHashFuncs(hash1 HashFunc, hash2 HashFunc) Option {
	return func(opts *tableOptions) {
		opts.hash1 = hash1
		opts.hash2 = hash2
	}
}

type slot struct {
	occupied bool
	key      string
	value    string
}

// Table is a fixed-capacity two-table cuckoo hash map.
// Lookup takes at most two probes. A key present in the table occupies
// exactly one slot, either at hash1 in the first table or at hash2 in
// the second. The table never grows, Set reports ErrTableFull instead.
type Table struct {
	opts *tableOptions

	table1 []slot
	table2 []slot

	size int
}

// New ...
func New(options ...Option) *Table {
	opts := computeOptions(options)
	return &Table{
		opts:   opts,
		table1: make([]slot, opts.capacity),
		table2: make([]slot, opts.capacity),
	}
}

// Len returns the number of keys currently held.
func (t *Table) Len() int {
	return t.size
}

// Set inserts the key-value pair, evicting and relocating existing
// entries as needed. On chain exhaustion it returns ErrTableFull and the
// pair held at that point in the chain is not stored, the caller keeps
// the authoritative copy elsewhere.
func (t *Table) Set(key string, value string) error {
	// overwrite in place when the key is already present,
	// keeping the one-slot-per-key invariant
	pos1 := t.opts.hash1(key, t.opts.capacity)
	if t.table1[pos1].occupied && t.table1[pos1].key == key {
		t.table1[pos1].value = value
		return nil
	}
	pos2 := t.opts.hash2(key, t.opts.capacity)
	if t.table2[pos2].occupied && t.table2[pos2].key == key {
		t.table2[pos2].value = value
		return nil
	}

	for i := 0; i < t.opts.maxKicks; i++ {
		pos1 := t.opts.hash1(key, t.opts.capacity)
		if !t.table1[pos1].occupied {
			t.table1[pos1] = slot{occupied: true, key: key, value: value}
			t.size++
			return nil
		}
		key, value, t.table1[pos1] = t.table1[pos1].key, t.table1[pos1].value,
			slot{occupied: true, key: key, value: value}

		pos2 := t.opts.hash2(key, t.opts.capacity)
		if !t.table2[pos2].occupied {
			t.table2[pos2] = slot{occupied: true, key: key, value: value}
			t.size++
			return nil
		}
		key, value, t.table2[pos2] = t.table2[pos2].key, t.table2[pos2].value,
			slot{occupied: true, key: key, value: value}
	}

	// the pair displaced on the last kick ends up without a slot, the
	// occupied-slot count is unchanged since no empty slot was filled
	return ErrTableFull
}

// Get returns the value stored under key using at most two probes.
func (t *Table) Get(key string) (string, bool) {
	pos1 := t.opts.hash1(key, t.opts.capacity)
	if t.table1[pos1].occupied && t.table1[pos1].key == key {
		return t.table1[pos1].value, true
	}

	pos2 := t.opts.hash2(key, t.opts.capacity)
	if t.table2[pos2].occupied && t.table2[pos2].key == key {
		return t.table2[pos2].value, true
	}

	return "", false
}
