// Package observerarray ports the iterator bookkeeping of Firefox's
// xpcom/ds/nsTObserverArray: an array whose live iterators stay coherent
// while the array is mutated underneath them. Each array keeps a linked list
// of its active iterators; insertions and removals walk the list and shift
// any iterator positioned past the modification point, and clearing the
// array rewinds every iterator to the start.
//
// Not safe for concurrent use; observer arrays are a single-thread pattern.
package observerarray

// Array is an ordered collection with iteration-stable mutation.
type Array[T any] struct {
	items []T
	// iters heads the linked list of live iterators.
	iters *Iterator[T]
}

// Iterator walks an Array while staying registered with it. Callers must
// Done an iterator when finished so the array stops adjusting it.
type Iterator[T any] struct {
	// pos is the index of the next element to return. The field order
	// (position word, then link) matches the original's Iterator_base.
	pos  int
	next *Iterator[T]
	arr  *Array[T]
}

// New returns an empty array.
func New[T any]() *Array[T] {
	return &Array[T]{}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.items) }

// ElementAt returns the element at index i.
func (a *Array[T]) ElementAt(i int) T { return a.items[i] }

// AppendElement adds v at the end. No iterator adjustment is needed: the
// new element lands after every position already handed out at the tail.
func (a *Array[T]) AppendElement(v T) {
	a.items = append(a.items, v)
}

// InsertElementAt inserts v at index i and shifts live iterators positioned
// past i so they keep pointing at the element they were about to visit.
func (a *Array[T]) InsertElementAt(i int, v T) {
	a.items = append(a.items, v)
	copy(a.items[i+1:], a.items[i:])
	a.items[i] = v
	a.adjustIterators(i, +1)
}

// RemoveElementAt removes the element at index i, pulling back iterators
// positioned past it.
func (a *Array[T]) RemoveElementAt(i int) {
	a.items = append(a.items[:i], a.items[i+1:]...)
	a.adjustIterators(i, -1)
}

// Clear drops every element and rewinds all live iterators to the start.
func (a *Array[T]) Clear() {
	a.items = a.items[:0]
	a.clearIterators()
}

// adjustIterators shifts every live iterator whose position lies beyond the
// modification point. adjustment is +1 for an insertion, -1 for a removal.
func (a *Array[T]) adjustIterators(modPos int, adjustment int) {
	if adjustment != 1 && adjustment != -1 {
		panic("observerarray: adjustment must be -1 or +1")
	}
	for it := a.iters; it != nil; it = it.next {
		if it.pos > modPos {
			it.pos += adjustment
		}
	}
}

// clearIterators resets every live iterator to position 0.
func (a *Array[T]) clearIterators() {
	for it := a.iters; it != nil; it = it.next {
		it.pos = 0
	}
}

// Iterate registers and returns a forward iterator starting at the first
// element. Pair it with Done.
func (a *Array[T]) Iterate() *Iterator[T] {
	it := &Iterator[T]{arr: a, next: a.iters}
	a.iters = it
	return it
}

// Next returns the next element and true, or the zero value and false when
// the iterator has passed the end.
func (it *Iterator[T]) Next() (T, bool) {
	if it.pos >= len(it.arr.items) {
		var zero T
		return zero, false
	}
	v := it.arr.items[it.pos]
	it.pos++
	return v, true
}

// Position returns the index the iterator will read next.
func (it *Iterator[T]) Position() int { return it.pos }

// Done unregisters the iterator from its array. Calling Done twice is a
// no-op.
func (it *Iterator[T]) Done() {
	a := it.arr
	if a == nil {
		return
	}
	for p := &a.iters; *p != nil; p = &(*p).next {
		if *p == it {
			*p = it.next
			break
		}
	}
	it.arr = nil
	it.next = nil
}
