// Package rng reproduces the firmware's libc-style rand() stream.
//
// Each LCG owns its state; there is no package-level generator. Create one
// per sequence computation and share it with nothing else.
package rng

import "github.com/herlein/gocat-hops/pkg/firmware"

// Source is a deterministic stream of pseudo-random values
type Source interface {
	// Next advances the stream and returns the new value
	Next() uint32

	// NextBounded returns Next() % bound
	NextBounded(bound uint32) uint32
}

// LCG is a linear congruential generator:
//
//	state = (multiplier*state + increment) & mask
//
// computed in uint32 so the product wraps exactly as it does on the
// 32-bit target. Next returns the raw masked state, as the firmware does.
type LCG struct {
	state      uint32
	multiplier uint32
	increment  uint32
	mask       uint32
}

// New creates an LCG with the default firmware constants
func New(seed uint32) *LCG {
	return NewWithProfile(seed, firmware.Default())
}

// NewWithProfile creates an LCG using the constants of a firmware profile
func NewWithProfile(seed uint32, profile firmware.Profile) *LCG {
	return &LCG{
		state:      seed,
		multiplier: profile.LCGMultiplier,
		increment:  profile.LCGIncrement,
		mask:       profile.LCGMask,
	}
}

// Next advances the generator and returns the new state
func (l *LCG) Next() uint32 {
	l.state = (l.multiplier*l.state + l.increment) & l.mask
	return l.state
}

// NextBounded returns a value in [0, bound). A zero bound returns 0 without
// advancing the generator.
func (l *LCG) NextBounded(bound uint32) uint32 {
	if bound == 0 {
		return 0
	}
	return l.Next() % bound
}
