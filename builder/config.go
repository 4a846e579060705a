// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"
	"strconv"
)

const defaultSelfValue = uint64(1)

// config is resolved once per Build and passed by value to constructors.
type config struct {
	nameFn       func(int) string
	selfFn       func(int, *rand.Rand) uint64
	multiplicity int
	rng          *rand.Rand
}

func newConfig(opts ...Option) config {
	cfg := config{
		nameFn:       defaultName,
		selfFn:       func(int, *rand.Rand) uint64 { return defaultSelfValue },
		multiplicity: 1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// defaultName renders "m0", "m1", ...
func defaultName(i int) string { return "m" + strconv.Itoa(i) }
