package observerarray

import "testing"

func fill(vals ...string) *Array[string] {
	a := New[string]()
	for _, v := range vals {
		a.AppendElement(v)
	}
	return a
}

func TestBasicIteration(t *testing.T) {
	a := fill("A", "B", "C")
	it := a.Iterate()
	defer it.Done()

	var got []string
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != "A" || got[2] != "C" {
		t.Errorf("iterated %v, want [A B C]", got)
	}
}

func TestInsertBeforeIterator(t *testing.T) {
	// Iterator has consumed A and B and sits at position 2 (pointing at C).
	// Inserting at position 1 must move it to 3 so it still points at C.
	a := fill("A", "B", "C", "D")
	it := a.Iterate()
	defer it.Done()
	it.Next()
	it.Next()

	a.InsertElementAt(1, "X")
	if it.Position() != 3 {
		t.Fatalf("position = %d after insert, want 3", it.Position())
	}
	if v, ok := it.Next(); !ok || v != "C" {
		t.Errorf("Next = %q, want C", v)
	}
}

func TestInsertAtIteratorPosition(t *testing.T) {
	// An insert exactly at the iterator's position is NOT adjusted: the
	// iterator visits the new element next.
	a := fill("A", "B")
	it := a.Iterate()
	defer it.Done()
	it.Next() // consumed A, pos 1

	a.InsertElementAt(1, "X")
	if v, ok := it.Next(); !ok || v != "X" {
		t.Errorf("Next = %q, want the inserted X", v)
	}
}

func TestRemoveBeforeIterator(t *testing.T) {
	a := fill("A", "B", "C", "D")
	it := a.Iterate()
	defer it.Done()
	it.Next()
	it.Next() // pos 2, pointing at C

	a.RemoveElementAt(1) // drop B
	if it.Position() != 1 {
		t.Fatalf("position = %d after remove, want 1", it.Position())
	}
	if v, ok := it.Next(); !ok || v != "C" {
		t.Errorf("Next = %q, want C", v)
	}
}

func TestRemoveDuringIterationSkipsNothing(t *testing.T) {
	// Remove every element as it is visited; all elements must be seen.
	a := fill("A", "B", "C", "D")
	it := a.Iterate()
	defer it.Done()

	var got []string
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
		a.RemoveElementAt(it.Position() - 1)
	}
	if len(got) != 4 {
		t.Errorf("visited %v, want all four elements", got)
	}
	if a.Len() != 0 {
		t.Errorf("array still has %d elements", a.Len())
	}
}

func TestClearRewindsIterators(t *testing.T) {
	a := fill("A", "B", "C")
	it1 := a.Iterate()
	it2 := a.Iterate()
	defer it1.Done()
	defer it2.Done()
	it1.Next()
	it1.Next()
	it2.Next()

	a.Clear()
	if it1.Position() != 0 || it2.Position() != 0 {
		t.Errorf("positions after Clear = %d, %d, want 0, 0", it1.Position(), it2.Position())
	}

	a.AppendElement("fresh")
	if v, ok := it1.Next(); !ok || v != "fresh" {
		t.Errorf("Next after Clear = %q, want fresh", v)
	}
}

func TestMultipleIteratorsAdjustIndependently(t *testing.T) {
	a := fill("A", "B", "C", "D", "E")
	early := a.Iterate()
	late := a.Iterate()
	defer early.Done()
	defer late.Done()
	early.Next() // pos 1
	late.Next()
	late.Next()
	late.Next() // pos 3

	a.InsertElementAt(2, "X")
	if early.Position() != 1 {
		t.Errorf("early position = %d, want 1 (before mod point)", early.Position())
	}
	if late.Position() != 4 {
		t.Errorf("late position = %d, want 4 (after mod point)", late.Position())
	}
}

func TestDoneUnregisters(t *testing.T) {
	a := fill("A", "B", "C")
	it := a.Iterate()
	it.Next()
	it.Done()
	it.Done() // second Done is a no-op

	// A finished iterator must no longer be adjusted.
	a.InsertElementAt(0, "X")
	if it.Position() != 1 {
		t.Errorf("position changed after Done: %d", it.Position())
	}
}

func TestAdjustIteratorsRejectsBadAdjustment(t *testing.T) {
	a := fill("A")
	defer func() {
		if recover() == nil {
			t.Error("adjustment of +2 did not panic")
		}
	}()
	a.adjustIterators(0, 2)
}
