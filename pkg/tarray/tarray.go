// Package tarray ports the support pieces of Firefox's xpcom/ds/nsTArray.cpp:
// the array header whose layout the nsTArray template reads directly, the
// shared empty-header sentinel, and the overflow predicate guarding the
// capacity-doubling growth strategy.
package tarray

import (
	"math"
	"unsafe"
)

const (
	capacityMask = 0x7FFFFFFF
	autoFlag     = 0x80000000
)

// Header is the bookkeeping block that precedes array element storage:
// a 32-bit length, then a packed word with a 31-bit capacity and the
// auto-array bit on top. The leading zero-length field forces the 8-byte
// alignment the original demands with alignas(8) without changing the size
// or the field offsets. It must come first: Go pads a struct whose final
// field is zero-sized, which would double the size to 16.
type Header struct {
	_                [0]uint64
	Length           uint32
	CapacityAndFlags uint32
}

// Layout guards; the header is read by offset, so drift is corruption.
var (
	_ [unsafe.Sizeof(Header{}) - 8]byte
	_ [8 - unsafe.Sizeof(Header{})]byte
	_ [unsafe.Alignof(Header{}) - 8]byte
	_ [8 - unsafe.Alignof(Header{})]byte
)

// EmptyHeader is the shared sentinel every zero-length array points at:
// length 0, capacity 0, not auto. It must never be written through.
var EmptyHeader = Header{}

// Capacity returns the element capacity (the low 31 bits).
func (h *Header) Capacity() uint32 {
	return h.CapacityAndFlags & capacityMask
}

// SetCapacity stores c in the low 31 bits, preserving the auto bit.
// Capacities above 2^31-1 are a caller bug and panic.
func (h *Header) SetCapacity(c uint32) {
	if c > capacityMask {
		panic("tarray: capacity exceeds 31 bits")
	}
	h.CapacityAndFlags = h.CapacityAndFlags&autoFlag | c
}

// IsAutoArray reports whether the storage is inline (stack) allocation.
func (h *Header) IsAutoArray() bool {
	return h.CapacityAndFlags&autoFlag != 0
}

// SetAutoArray sets or clears the auto-array bit.
func (h *Header) SetAutoArray(auto bool) {
	if auto {
		h.CapacityAndFlags |= autoFlag
	} else {
		h.CapacityAndFlags &^= autoFlag
	}
}

// FitsInTwiceUint32 reports whether capacity*elemSize*2 is representable as
// a uint32. Array growth doubles allocations, so any capacity request that
// fails this check would overflow the header on the next doubling.
func FitsInTwiceUint32(capacity, elemSize uint64) bool {
	if elemSize != 0 && capacity > math.MaxUint64/elemSize {
		return false
	}
	bytes := capacity * elemSize
	return bytes <= math.MaxUint32/2
}
