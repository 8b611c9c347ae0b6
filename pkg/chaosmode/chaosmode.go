// Package chaosmode ports Firefox's mfbt/ChaosMode: switches that introduce
// controlled nondeterminism (scheduling jitter, short reads, randomized hash
// iteration) to shake out race conditions and timing bugs in test runs.
//
// Activation nests: each Enter must be matched by a Leave, and a feature is
// active only while the nesting level is above zero and the feature bit is
// set. SetFeatures must be called before concurrent work starts; the random
// helpers are intentionally unsynchronized, matching the original.
package chaosmode

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/opd-ai/firefox/pkg/xorshift128"
)

// Feature is a bit flag selecting one kind of induced chaos.
type Feature uint32

const (
	None              Feature = 0x0
	ThreadScheduling  Feature = 0x1  // altering thread scheduling
	NetworkScheduling Feature = 0x2  // altering network request scheduling
	TimerScheduling   Feature = 0x4  // altering timer scheduling
	IOAmounts         Feature = 0x8  // read/write less than requested
	HashTableIter     Feature = 0x10 // iterate hash tables in random order
	ImageCache        Feature = 0x20 // randomly refuse cached images
	TaskDispatching   Feature = 0x40 // delay dispatching to other threads
	TaskRunning       Feature = 0x80 // delay task running
	Any               Feature = 0xffffffff
)

var (
	// counter tracks the nesting depth of Enter/Leave.
	counter atomic.Uint32
	// features holds the enabled feature mask. Stored atomically so late
	// reads are defined, but the contract is still "configure before you
	// spin up goroutines".
	features atomic.Uint32

	rng *xorshift128.RNG
)

func init() {
	features.Store(uint32(Any))
	rng = newSeededRNG()
}

// newSeededRNG seeds a generator from crypto/rand, falling back to the clock
// if that fails. Chaos decisions do not need secure randomness, only
// non-repeating runs.
func newSeededRNG() *xorshift128.RNG {
	var seed [16]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		now := uint64(time.Now().UnixNano())
		binary.LittleEndian.PutUint64(seed[0:8], now)
		binary.LittleEndian.PutUint64(seed[8:16], now^0x9E3779B97F4A7C15)
	}
	s0 := binary.LittleEndian.Uint64(seed[0:8])
	s1 := binary.LittleEndian.Uint64(seed[8:16])
	r, err := xorshift128.New(s0, s1)
	if err != nil {
		// Both words zero from the entropy source; any fixed nonzero
		// state is fine at that point.
		r, _ = xorshift128.New(1, uint64(time.Now().UnixNano())|1)
	}
	return r
}

// SetFeatures selects which chaos features Enter activates. Call it once,
// before any goroutines consult Active.
func SetFeatures(f Feature) {
	features.Store(uint32(f))
}

// Active reports whether f is currently in force: chaos mode has been
// entered and the feature bit is enabled.
func Active(f Feature) bool {
	return counter.Load() > 0 && features.Load()&uint32(f) != 0
}

// Enter raises the chaos activation level. Calls nest.
func Enter() {
	counter.Add(1)
}

// Leave lowers the chaos activation level. Calling it without a matching
// Enter is a caller bug and panics.
func Leave() {
	for {
		c := counter.Load()
		if c == 0 {
			panic("chaosmode: Leave without matching Enter")
		}
		if counter.CompareAndSwap(c, c-1) {
			return
		}
	}
}

// RandomUint32LessThan returns a pseudo-random value in [0, bound). A zero
// bound is a caller bug and panics. Not safe for concurrent use.
func RandomUint32LessThan(bound uint32) uint32 {
	if bound == 0 {
		panic("chaosmode: bound must not be zero")
	}
	return uint32(rng.Next()) % bound
}

// RandomInt32InRange returns a pseudo-random value in [low, high], both ends
// inclusive. Panics if high < low. Not safe for concurrent use.
func RandomInt32InRange(low, high int32) int32 {
	if high < low {
		panic("chaosmode: high must be >= low")
	}
	span := uint32(high-low) + 1 // wraps to 0 for the full int32 range
	if span == 0 {
		return int32(rng.Next())
	}
	return low + int32(uint32(rng.Next())%span)
}
