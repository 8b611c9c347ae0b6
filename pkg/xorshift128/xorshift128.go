// Package xorshift128 implements the xorshift128+ pseudo-random number
// generator from Firefox's mfbt/XorShift128PlusRNG.h, following the algorithm
// described in Vigna, "Further scramblings of Marsaglia's xorshift generators"
// (arXiv:1404.0390). The stream repeats every 2^128 - 1 calls; zero appears
// 2^64 - 1 times, every other value 2^64 times. It is fast and statistically
// solid but NOT cryptographically secure.
//
// An RNG is not safe for concurrent use. Use one generator per goroutine or
// synchronize externally.
//
// The in-memory layout of RNG is a binary contract, not an implementation
// detail: consumers that compute field addresses from a base pointer (the way
// SpiderMonkey's JIT reads the state words) rely on state0 at byte offset 0,
// state1 at byte offset 8, 16 bytes total with no padding. The OffsetOfState0,
// OffsetOfState1 and Size constants are part of the public contract and are
// enforced at compile time.
package xorshift128

import (
	"errors"
	"unsafe"
)

// ErrInvalidSeed is returned when both seed words are zero. The all-zero
// state is a fixed point of the transition function and would yield an
// all-zero output stream forever.
var ErrInvalidSeed = errors.New("xorshift128: seed words must not both be zero")

// RNG holds the 128 bits of generator state. The field order and the absence
// of padding are load-bearing; see the package comment.
type RNG struct {
	state0 uint64
	state1 uint64
}

// Layout contract, derived from the struct itself so it cannot drift.
const (
	OffsetOfState0 = unsafe.Offsetof(RNG{}.state0)
	OffsetOfState1 = unsafe.Offsetof(RNG{}.state1)
	Size           = unsafe.Sizeof(RNG{})
)

// Compile-time layout guards: a drifted layout makes one of these array
// lengths negative.
var (
	_ [Size - 16]byte
	_ [16 - Size]byte
	_ [OffsetOfState1 - 8]byte
	_ [8 - OffsetOfState1]byte
	_ [OffsetOfState0]byte
)

// New returns a generator seeded with the two given state words. At least one
// word must be nonzero or ErrInvalidSeed is returned.
//
// If the seed words contain many zero bits the first few outputs will too; if
// that matters, run the seeds through a mixer such as SplitMix64 first.
func New(seed0, seed1 uint64) (*RNG, error) {
	if seed0 == 0 && seed1 == 0 {
		return nil, ErrInvalidSeed
	}
	return &RNG{state0: seed0, state1: seed1}, nil
}

// Next advances the generator and returns the next pseudo-random 64-bit
// value. Wraparound in the final addition is part of the algorithm.
func (r *RNG) Next() uint64 {
	s1 := r.state0
	s0 := r.state1
	r.state0 = s0
	s1 ^= s1 << 23
	r.state1 = s1 ^ s0 ^ (s1 >> 17) ^ (s0 >> 26)
	return r.state1 + s0
}

// mantissaBits is the full significand width of a float64: 52 stored bits
// plus the implicit leading 1.
const mantissaBits = 53

// NextDouble returns a pseudo-random float64 in [0, 1). It draws a 53-bit
// integer from Next and divides by 2^53; every integer below 2^53 is exactly
// representable, so the conversion is exact. Consumes exactly one state
// transition.
func (r *RNG) NextDouble() float64 {
	m := r.Next() & (1<<mantissaBits - 1)
	return float64(m) / (1 << mantissaBits)
}

// SetState overwrites both state words, for deterministic replay and for
// forking generator state. The all-zero pair is rejected with ErrInvalidSeed
// and leaves the current state untouched.
func (r *RNG) SetState(state0, state1 uint64) error {
	if state0 == 0 && state1 == 0 {
		return ErrInvalidSeed
	}
	r.state0 = state0
	r.state1 = state1
	return nil
}

// State returns the current state words in order.
func (r *RNG) State() (state0, state1 uint64) {
	return r.state0, r.state1
}
