package engine

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
)

// Source kinds
const (
	SourceMT64 = "mt19937_64"
	SourcePCG  = "pcg"

	// DefaultSeed is used when no seed is configured
	DefaultSeed uint64 = 42
)

// ErrUnknownSource is returned for an unregistered source kind
var ErrUnknownSource = errors.New("unknown random source")

// pcgStreamSalt derives the PCG stream selector from the seed
const pcgStreamSalt = 0x9E3779B97F4A7C15

// PCG wraps the math/rand/v2 PCG generator in the RandomSource contract
type PCG struct {
	pcg *rand.PCG
}

// NewPCG creates a PCG source from a single 64-bit seed
func NewPCG(seed uint64) *PCG {
	return &PCG{pcg: rand.NewPCG(seed, seed^pcgStreamSalt)}
}

// UniformInt returns an integer in [lo, hi]. Panics if lo > hi.
func (p *PCG) UniformInt(lo, hi int) int {
	return uniformInt(p.pcg.Uint64, lo, hi)
}

// UniformReal01 returns a float in [0, 1)
func (p *PCG) UniformReal01() float64 {
	return uniformReal01(p.pcg.Uint64)
}

// SourceFactory builds a seeded source
type SourceFactory func(seed uint64) RandomSource

var sources = map[string]SourceFactory{
	SourceMT64: func(seed uint64) RandomSource { return NewMT64(seed) },
	SourcePCG:  func(seed uint64) RandomSource { return NewPCG(seed) },
	SourceHMAC: func(seed uint64) RandomSource { return NewHMACStream(seed) },
}

// NewSource creates a source of the given kind. An empty kind selects MT19937-64.
func NewSource(kind string, seed uint64) (RandomSource, error) {
	if kind == "" {
		kind = SourceMT64
	}
	factory, ok := sources[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
	}
	return factory(seed), nil
}

// ListSources returns the registered source kinds in sorted order
func ListSources() []string {
	kinds := make([]string, 0, len(sources))
	for kind := range sources {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}
