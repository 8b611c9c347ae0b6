// Package rngffi exposes the xorshift128 generator through an opaque integer
// handle, mirroring the C boundary the host application consumes. The host
// never sees the generator struct: it creates a handle, draws through it and
// destroys it when done.
//
// Boundary rules: operations on the zero handle, an unknown handle or a
// destroyed handle return the documented safe default (0, 0.0, or a no-op)
// instead of failing, and no internal fault may escape an exported function.
// Every entry point runs behind a recover barrier that converts a panic into
// the safe default.
package rngffi

import (
	"sync"

	"github.com/opd-ai/firefox/pkg/xorshift128"
)

// Handle identifies a live generator instance. The zero Handle is never
// valid.
type Handle uint64

// InvalidHandle is returned by New when construction fails.
const InvalidHandle Handle = 0

var (
	mu     sync.RWMutex
	nextID Handle = 1
	table         = make(map[Handle]*xorshift128.RNG)
)

// lookup returns the generator for h, or nil.
func lookup(h Handle) *xorshift128.RNG {
	mu.RLock()
	r := table[h]
	mu.RUnlock()
	return r
}

// New creates a generator seeded with the two given words and returns its
// handle. It returns InvalidHandle if both seeds are zero or if anything goes
// wrong internally.
func New(seed0, seed1 uint64) (h Handle) {
	defer func() {
		if recover() != nil {
			h = InvalidHandle
		}
	}()
	r, err := xorshift128.New(seed0, seed1)
	if err != nil {
		return InvalidHandle
	}
	mu.Lock()
	h = nextID
	nextID++
	table[h] = r
	mu.Unlock()
	return h
}

// Destroy releases the generator behind h. Destroying the zero handle, an
// unknown handle or an already-destroyed handle is a safe no-op.
func Destroy(h Handle) {
	defer func() { _ = recover() }()
	if h == InvalidHandle {
		return
	}
	mu.Lock()
	delete(table, h)
	mu.Unlock()
}

// Next draws the next 64-bit value from the generator behind h. Returns 0 if
// h is not a live handle.
func Next(h Handle) (v uint64) {
	defer func() {
		if recover() != nil {
			v = 0
		}
	}()
	r := lookup(h)
	if r == nil {
		return 0
	}
	return r.Next()
}

// NextDouble draws the next float64 in [0, 1) from the generator behind h.
// Returns 0.0 if h is not a live handle.
func NextDouble(h Handle) (v float64) {
	defer func() {
		if recover() != nil {
			v = 0
		}
	}()
	r := lookup(h)
	if r == nil {
		return 0
	}
	return r.NextDouble()
}

// SetState overwrites the state of the generator behind h. A dead handle or
// an all-zero state pair makes this a no-op, matching the void signature at
// the C boundary.
func SetState(h Handle, state0, state1 uint64) {
	defer func() { _ = recover() }()
	r := lookup(h)
	if r == nil {
		return
	}
	_ = r.SetState(state0, state1)
}

// State reads the two state words of the generator behind h. Returns
// (0, 0, false) if h is not a live handle.
func State(h Handle) (state0, state1 uint64, ok bool) {
	defer func() {
		if recover() != nil {
			state0, state1, ok = 0, 0, false
		}
	}()
	r := lookup(h)
	if r == nil {
		return 0, 0, false
	}
	state0, state1 = r.State()
	return state0, state1, true
}

// OffsetOfState0 returns the byte offset of the first state word: 0.
func OffsetOfState0() uintptr { return xorshift128.OffsetOfState0 }

// OffsetOfState1 returns the byte offset of the second state word: 8.
func OffsetOfState1() uintptr { return xorshift128.OffsetOfState1 }

// SizeOfInstance returns the size of a generator instance in bytes: 16. The
// host uses it to validate its binary layout assumptions before doing raw
// pointer arithmetic.
func SizeOfInstance() uintptr { return xorshift128.Size }
