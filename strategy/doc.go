// Package strategy provides seeded random generators for building randomized
// test cases, and the bounded Index used to pick "some existing element" of a
// collection whose size is unknown at sampling time.
//
// What:
//
//   - Index: a raw sampled integer resolved lazily against a collection size
//     (raw mod n). Indices survive shrinking and replay because they never
//     encode the size they were drawn for.
//   - Strategy[T]: anything that can Generate a T from a *rand.Rand.
//   - Primitive strategies: Just, AnyIndex, IntRange, Uint16, Uint64Range, Lowercase.
//   - Combinators: SliceOf, Map, Pair, Weighted.
//
// Determinism:
//
//	Every strategy draws exclusively from the *rand.Rand it is given. The same
//	seed and the same composition always yield the same values, which is what
//	makes a failing case replayable from its seed alone.
//
// Concurrency:
//
//	Strategies are immutable values and safe to share. A *rand.Rand is not;
//	each test case owns its own generator (see NewRand).
//
// Errors:
//
//   - ErrEmptyCollection  Index resolved against an empty collection.
//   - ErrBadRange         a range whose lower bound exceeds its upper bound.
//   - ErrNoChoices        Weighted called without any positive weight.
package strategy
