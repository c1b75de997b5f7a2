// Package checker provides login membership structures that count the key
// comparisons they perform, so their cost can be compared independently of
// wall time.
package checker

import (
	"errors"
	"fmt"
)

// Algorithm names in the order they are reported.
const (
	ListLinearSearch        = "ListLinearSearch"
	SortedArrayBinarySearch = "SortedArrayBinarySearch"
	HashTable               = "HashTable"
	BloomFilter             = "BloomFilter"
	CuckooFilter            = "CuckooFilter"
	BTree                   = "BTree"
	Trie                    = "Trie"
)

const (
	DefaultCapacity  = 1_000_000
	DefaultErrorRate = 0.001
)

// ErrUnknownAlgorithm is returned by New for a name not in Algorithms.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Checker answers whether a login is already known.
type Checker interface {
	// Add stores login and reports whether it was new.
	Add(login string) bool
	// Exists reports whether login was added before.
	Exists(login string) bool
	// Comparisons returns the number of comparisons since the last ResetStats.
	Comparisons() int64
	ResetStats()
	// Len returns the number of stored logins.
	Len() int
	Name() string
}

// Options tunes the probabilistic checkers. Zero values select defaults.
type Options struct {
	Capacity  int     `json:"capacity"`
	ErrorRate float64 `json:"error_rate"`
}

func (o Options) withDefaults() Options {
	if o.Capacity <= 0 {
		o.Capacity = DefaultCapacity
	}
	if o.ErrorRate <= 0 || o.ErrorRate >= 1 {
		o.ErrorRate = DefaultErrorRate
	}
	return o
}

// Factory creates an empty checker.
type Factory func() Checker

var registry = []struct {
	name string
	new  func(Options) Checker
}{
	{ListLinearSearch, func(Options) Checker { return NewListLinearSearch() }},
	{SortedArrayBinarySearch, func(Options) Checker { return NewSortedArrayBinarySearch() }},
	{HashTable, func(Options) Checker { return NewHashTable() }},
	{BloomFilter, func(o Options) Checker { return NewBloomFilter(o.Capacity, o.ErrorRate) }},
	{CuckooFilter, func(o Options) Checker { return NewCuckooFilter(o.Capacity) }},
	{BTree, func(Options) Checker { return NewBTree() }},
	{Trie, func(Options) Checker { return NewTrie() }},
}

// Algorithms returns all known algorithm names.
func Algorithms() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.name)
	}
	return names
}

// IsKnown reports whether name is a registered algorithm.
func IsKnown(name string) bool {
	for _, r := range registry {
		if r.name == name {
			return true
		}
	}
	return false
}

// NewFactory returns a factory for the named algorithm.
func NewFactory(name string, opts Options) (Factory, error) {
	opts = opts.withDefaults()
	for _, r := range registry {
		if r.name == name {
			ctor := r.new
			return func() Checker { return ctor(opts) }, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// New creates an empty checker for the named algorithm.
func New(name string, opts Options) (Checker, error) {
	f, err := NewFactory(name, opts)
	if err != nil {
		return nil, err
	}
	return f(), nil
}

// stats is embedded by every checker.
type stats struct {
	comparisons int64
	count       int
}

func (s *stats) Comparisons() int64 { return s.comparisons }

func (s *stats) ResetStats() { s.comparisons = 0 }

func (s *stats) Len() int { return s.count }
