package tarray

import (
	"math"
	"testing"
	"unsafe"
)

func TestLayout(t *testing.T) {
	if got := unsafe.Sizeof(Header{}); got != 8 {
		t.Fatalf("sizeof Header = %d, want 8", got)
	}
	if got := unsafe.Alignof(Header{}); got != 8 {
		t.Fatalf("alignof Header = %d, want 8", got)
	}
	if off := unsafe.Offsetof(Header{}.Length); off != 0 {
		t.Fatalf("Length offset = %d, want 0", off)
	}
	if off := unsafe.Offsetof(Header{}.CapacityAndFlags); off != 4 {
		t.Fatalf("CapacityAndFlags offset = %d, want 4", off)
	}
}

func TestEmptyHeaderSentinel(t *testing.T) {
	if EmptyHeader.Length != 0 {
		t.Errorf("sentinel length = %d, want 0", EmptyHeader.Length)
	}
	if EmptyHeader.Capacity() != 0 {
		t.Errorf("sentinel capacity = %d, want 0", EmptyHeader.Capacity())
	}
	if EmptyHeader.IsAutoArray() {
		t.Error("sentinel must not be an auto array")
	}
}

func TestCapacityPacking(t *testing.T) {
	var h Header
	h.SetAutoArray(true)
	h.SetCapacity(0x7FFFFFFF)
	if h.Capacity() != 0x7FFFFFFF {
		t.Errorf("capacity = %#x, want 0x7FFFFFFF", h.Capacity())
	}
	if !h.IsAutoArray() {
		t.Error("SetCapacity clobbered the auto bit")
	}
	h.SetCapacity(42)
	if h.Capacity() != 42 || !h.IsAutoArray() {
		t.Errorf("after SetCapacity(42): capacity=%d auto=%v", h.Capacity(), h.IsAutoArray())
	}
	h.SetAutoArray(false)
	if h.IsAutoArray() {
		t.Error("auto bit still set after clear")
	}
	if h.Capacity() != 42 {
		t.Errorf("SetAutoArray clobbered capacity: %d", h.Capacity())
	}
}

func TestSetCapacityOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for capacity > 31 bits")
		}
	}()
	var h Header
	h.SetCapacity(0x80000000)
}

func TestFitsInTwiceUint32(t *testing.T) {
	cases := []struct {
		capacity uint64
		elemSize uint64
		want     bool
	}{
		{0, 1, true},
		{1, 1, true},
		{1 << 30, 2, false},
		{(1 << 31) - 1, 1, true},
		{1 << 31, 1, false},
		{math.MaxUint32, 1, false},
		{math.MaxUint64, 8, false},
		{1 << 27, 16, false},
		{(1 << 27) - 1, 16, true},
		{100, 0, true},
	}
	for _, c := range cases {
		if got := FitsInTwiceUint32(c.capacity, c.elemSize); got != c.want {
			t.Errorf("FitsInTwiceUint32(%d, %d) = %v, want %v", c.capacity, c.elemSize, got, c.want)
		}
	}
}
