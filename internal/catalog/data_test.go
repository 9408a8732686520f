package catalog

import (
	"strings"
	"testing"
)

func TestPlaylistDataInsertAndRead(t *testing.T) {
	d := newPlaylistData(1, "1.txt")
	id, err := d.Insert(0, "file://a.flac", "meta-a")
	if err != nil {
		t.Fatal(err)
	}
	tr, err := d.Read(id)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Udn() != "file://a.flac" || tr.Metadata() != "meta-a" {
		t.Fatalf("Read(%d) = %+v", id, tr)
	}
}

func TestPlaylistDataInsertOrder(t *testing.T) {
	d := newPlaylistData(1, "1.txt")
	first, _ := d.Insert(0, "a", "")
	second, _ := d.Insert(first, "b", "")
	third, _ := d.Insert(first, "c", "")

	got := d.IDArray()
	want := []ID{first, third, second}
	if len(got) != len(want) {
		t.Fatalf("IDArray() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDArray() = %v, want %v", got, want)
		}
	}
}

func TestPlaylistDataInsertRejectsOversizedUdn(t *testing.T) {
	d := newPlaylistData(1, "1.txt")
	udn := strings.Repeat("u", maxUdnBytes+1)
	_, err := d.Insert(0, udn, "")
	assertInvalidRequest(t, err)
}

func TestPlaylistDataInsertFull(t *testing.T) {
	d := newPlaylistData(1, "1.txt")
	afterID := ID(0)
	for i := 0; i < maxTracks; i++ {
		id, err := d.Insert(afterID, "u", "")
		if err != nil {
			t.Fatalf("unexpected error at track %d: %v", i, err)
		}
		afterID = id
	}
	_, err := d.Insert(afterID, "one too many", "")
	var cErr *CatalogError
	if err == nil {
		t.Fatal("expected Full error once maxTracks is reached")
	}
	if ce, ok := err.(*CatalogError); ok {
		cErr = ce
	}
	if cErr == nil || cErr.Code != CodeFull {
		t.Fatalf("error = %v, want CodeFull", err)
	}
}

func TestPlaylistDataDeleteIsNoopWhenAbsent(t *testing.T) {
	d := newPlaylistData(1, "1.txt")
	d.Delete(999) // must not panic
	if d.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", d.Len())
	}
}

func TestPlaylistDataDeleteAll(t *testing.T) {
	d := newPlaylistData(1, "1.txt")
	id, _ := d.Insert(0, "a", "")
	d.Insert(id, "b", "")
	d.DeleteAll()
	if d.Len() != 0 {
		t.Fatalf("Len() after DeleteAll = %d, want 0", d.Len())
	}
}

func TestPlaylistDataReadMissing(t *testing.T) {
	d := newPlaylistData(1, "1.txt")
	_, err := d.Read(42)
	var cErr *CatalogError
	if ce, ok := err.(*CatalogError); ok {
		cErr = ce
	}
	if cErr == nil || cErr.Code != CodeNotFound {
		t.Fatalf("error = %v, want CodeNotFound", err)
	}
}
