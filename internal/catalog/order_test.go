package catalog

import "testing"

type idOnly ID

func (i idOnly) ID() ID { return ID(i) }

func TestOrderedListInsertAfterFront(t *testing.T) {
	o := newOrderedList[idOnly]()
	if err := o.InsertAfter(0, idOnly(1)); err != nil {
		t.Fatal(err)
	}
	if err := o.InsertAfter(0, idOnly(2)); err != nil {
		t.Fatal(err)
	}
	want := []ID{2, 1}
	got := o.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v", got, want)
		}
	}
}

func TestOrderedListInsertAfterAnchor(t *testing.T) {
	o := newOrderedList[idOnly]()
	o.InsertAfter(0, idOnly(1))
	o.InsertAfter(1, idOnly(2))
	o.InsertAfter(1, idOnly(3))

	got := o.IDs()
	want := []ID{1, 3, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v", got, want)
		}
	}
}

func TestOrderedListInsertAfterUnknownAnchor(t *testing.T) {
	o := newOrderedList[idOnly]()
	if err := o.InsertAfter(99, idOnly(1)); err == nil {
		t.Fatal("expected error for unknown anchor")
	}
}

func TestOrderedListRemove(t *testing.T) {
	o := newOrderedList[idOnly]()
	o.InsertAfter(0, idOnly(1))
	o.InsertAfter(1, idOnly(2))

	if !o.Remove(1) {
		t.Fatal("Remove(1) = false, want true")
	}
	if o.Has(1) {
		t.Fatal("id 1 still present after Remove")
	}
	if o.Remove(1) {
		t.Fatal("Remove of an already-removed id should report false")
	}
	if o.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", o.Len())
	}
}

func TestOrderedListGet(t *testing.T) {
	o := newOrderedList[idOnly]()
	o.InsertAfter(0, idOnly(5))
	v, ok := o.Get(5)
	if !ok || v != idOnly(5) {
		t.Fatalf("Get(5) = %v, %v, want 5, true", v, ok)
	}
	if _, ok := o.Get(6); ok {
		t.Fatal("Get(6) should report false")
	}
}

func TestOrderedListRemoveAll(t *testing.T) {
	o := newOrderedList[idOnly]()
	o.InsertAfter(0, idOnly(1))
	o.InsertAfter(1, idOnly(2))
	o.RemoveAll()
	if o.Len() != 0 {
		t.Fatalf("Len() after RemoveAll = %d, want 0", o.Len())
	}
	if o.Has(1) || o.Has(2) {
		t.Fatal("ids still present after RemoveAll")
	}
}
