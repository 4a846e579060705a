// SPDX-License-Identifier: MIT
// Package: modgraph/strategy
//
// strategy.go - the Strategy interface, primitive generators and combinators.
//
// Design contract:
//   • Strategy[T] has a single method Generate(*rand.Rand) T.
//   • Constructors validate their parameters and panic on programmer error;
//     Generate never fails.
//   • Draw order is fixed per strategy so that a seed pins the whole tree.

package strategy

import (
	"fmt"
	"math/rand"
)

// Strategy generates values of type T from a random source.
type Strategy[T any] interface {
	Generate(r *rand.Rand) T
}

// Func adapts a plain function to Strategy.
type Func[T any] func(r *rand.Rand) T

// Generate calls f(r).
func (f Func[T]) Generate(r *rand.Rand) T { return f(r) }

// Just always yields v and draws nothing.
func Just[T any](v T) Strategy[T] {
	return Func[T](func(*rand.Rand) T { return v })
}

// SizeRange is an inclusive [Min, Max] bound on a count.
type SizeRange struct {
	Min int
	Max int
}

// Between builds an inclusive SizeRange; panics if the range is invalid.
func Between(lo, hi int) SizeRange {
	sr := SizeRange{Min: lo, Max: hi}
	if err := sr.Validate(); err != nil {
		panic(err.Error())
	}

	return sr
}

// Exactly is the degenerate range [n, n].
func Exactly(n int) SizeRange { return Between(n, n) }

// Validate reports ErrBadRange for negative or inverted bounds.
func (sr SizeRange) Validate() error {
	if sr.Min < 0 || sr.Min > sr.Max {
		return fmt.Errorf("SizeRange[%d,%d]: %w", sr.Min, sr.Max, ErrBadRange)
	}

	return nil
}

// draw picks a size uniformly in [Min, Max].
func (sr SizeRange) draw(r *rand.Rand) int {
	if sr.Min == sr.Max {
		return sr.Min
	}

	return sr.Min + r.Intn(sr.Max-sr.Min+1)
}

// IntRange draws uniformly in the inclusive range [lo, hi].
func IntRange(lo, hi int) Strategy[int] {
	if lo > hi {
		panic(fmt.Sprintf("strategy: IntRange(%d,%d): %v", lo, hi, ErrBadRange))
	}
	return Func[int](func(r *rand.Rand) int {
		if lo == hi {
			return lo
		}
		return lo + r.Intn(hi-lo+1)
	})
}

// Uint64Range draws uniformly in the half-open range [lo, hi).
func Uint64Range(lo, hi uint64) Strategy[uint64] {
	if lo >= hi {
		panic(fmt.Sprintf("strategy: Uint64Range(%d,%d): %v", lo, hi, ErrBadRange))
	}
	span := hi - lo
	return Func[uint64](func(r *rand.Rand) uint64 {
		return lo + r.Uint64()%span
	})
}

// Uint16 draws over the full uint16 domain.
func Uint16() Strategy[uint16] {
	return Func[uint16](func(r *rand.Rand) uint16 { return uint16(r.Intn(1 << 16)) })
}

// lowercase is the alphabet used by Lowercase.
const lowercase = "abcdefghijklmnopqrstuvwxyz"

// Lowercase draws strings matching [a-z]{n}.
func Lowercase(n int) Strategy[string] {
	if n < 1 {
		panic(fmt.Sprintf("strategy: Lowercase(%d): %v", n, ErrBadRange))
	}
	return Func[string](func(r *rand.Rand) string {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = lowercase[r.Intn(len(lowercase))]
		}
		return string(buf)
	})
}

// SliceOf draws a length from size, then that many elements from elem.
func SliceOf[T any](elem Strategy[T], size SizeRange) Strategy[[]T] {
	if err := size.Validate(); err != nil {
		panic("strategy: SliceOf: " + err.Error())
	}
	return Func[[]T](func(r *rand.Rand) []T {
		n := size.draw(r)
		out := make([]T, n)
		for i := range out {
			out[i] = elem.Generate(r)
		}
		return out
	})
}

// Map transforms the output of s with fn.
func Map[T, U any](s Strategy[T], fn func(T) U) Strategy[U] {
	return Func[U](func(r *rand.Rand) U { return fn(s.Generate(r)) })
}

// Tuple is a generated pair.
type Tuple[A, B any] struct {
	First  A
	Second B
}

// Pair draws a then b, in that order.
func Pair[A, B any](a Strategy[A], b Strategy[B]) Strategy[Tuple[A, B]] {
	return Func[Tuple[A, B]](func(r *rand.Rand) Tuple[A, B] {
		first := a.Generate(r)
		return Tuple[A, B]{First: first, Second: b.Generate(r)}
	})
}

// Choice is one weighted alternative for Weighted.
type Choice[T any] struct {
	Weight   int
	Strategy Strategy[T]
}

// Weighted picks one alternative with probability proportional to its weight,
// then delegates to it. Zero-weight choices are never picked.
// Panics with ErrNoChoices if the total weight is not positive.
func Weighted[T any](choices ...Choice[T]) Strategy[T] {
	total := 0
	for _, c := range choices {
		if c.Weight < 0 {
			panic(fmt.Sprintf("strategy: Weighted: negative weight %d: %v", c.Weight, ErrBadRange))
		}
		total += c.Weight
	}
	if total == 0 {
		panic(ErrNoChoices.Error())
	}
	picked := append([]Choice[T](nil), choices...)

	return Func[T](func(r *rand.Rand) T {
		n := r.Intn(total)
		for _, c := range picked {
			if n < c.Weight {
				return c.Strategy.Generate(r)
			}
			n -= c.Weight
		}
		// unreachable: n < total by construction
		return picked[len(picked)-1].Strategy.Generate(r)
	})
}
