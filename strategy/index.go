// SPDX-License-Identifier: MIT
// Package: modgraph/strategy
//
// index.go - bounded index resolution.
//
// Contract:
//   • An Index is sampled before the target collection exists (or while its
//     size is still changing) and is resolved at use time as raw mod n.
//   • Resolution is total for n > 0 and undefined for n == 0; Index panics,
//     Resolve returns ErrEmptyCollection.

package strategy

import (
	"fmt"
	"math/rand"
)

// Index is a raw sampled integer that selects an element of a collection
// whose size is only known when the index is used.
type Index uint64

// NewIndex wraps a raw value.
func NewIndex(raw uint64) Index { return Index(raw) }

// Raw returns the underlying sampled value.
func (i Index) Raw() uint64 { return uint64(i) }

// Index returns the position this index selects in a collection of size n.
// Panics if n <= 0: callers must guarantee a non-empty collection.
//
// Complexity: O(1).
func (i Index) Index(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("strategy: Index(%d) on empty collection", n))
	}

	return int(uint64(i) % uint64(n))
}

// Resolve is the non-panicking form of Index.
func (i Index) Resolve(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("Resolve(n=%d): %w", n, ErrEmptyCollection)
	}

	return i.Index(n), nil
}

// String renders the raw value, e.g. "Index(17)".
func (i Index) String() string { return fmt.Sprintf("Index(%d)", uint64(i)) }

// Get returns the element of s selected by idx.
// Panics if s is empty, like Index.
func Get[T any](idx Index, s []T) T {
	return s[idx.Index(len(s))]
}

// AnyIndex returns a strategy drawing uniformly over the full uint64 domain.
func AnyIndex() Strategy[Index] {
	return Func[Index](func(r *rand.Rand) Index { return Index(r.Uint64()) })
}
