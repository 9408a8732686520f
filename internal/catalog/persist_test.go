package catalog

import (
	"path/filepath"
	"testing"
)

func TestStoreWriteReadToc(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	names := []string{"1.txt", "2.txt"}
	if err := s.WriteToc(names); err != nil {
		t.Fatal(err)
	}
	got, err := s.ReadToc()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "1.txt" || got[1] != "2.txt" {
		t.Fatalf("ReadToc() = %v, want %v", got, names)
	}
}

func TestStoreReadTocMissingIsNotError(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.ReadToc()
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("ReadToc() on fresh dir = %v, want nil", got)
	}
}

func TestStoreWritePlaylistLoadHeaderAndData(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	header, err := newPlaylistHeader(7, "My List", "a description", 3)
	if err != nil {
		t.Fatal(err)
	}
	data := newPlaylistData(7, header.Filename())
	first, _ := data.Insert(0, "file://a.flac", "<DIDL-Lite/>")
	data.Insert(first, `file://b & c.flac`, "meta with <tags> & amp")

	if err := s.WritePlaylist(header, data); err != nil {
		t.Fatal(err)
	}

	loadedHeader, err := s.LoadHeader(7, header.Filename())
	if err != nil {
		t.Fatal(err)
	}
	if loadedHeader.Name() != "My List" || loadedHeader.Description() != "a description" || loadedHeader.ImageID() != 3 {
		t.Fatalf("LoadHeader() = %+v", loadedHeader)
	}

	loadedData, err := s.LoadData(7, header.Filename())
	if err != nil {
		t.Fatal(err)
	}
	if loadedData.Len() != 2 {
		t.Fatalf("LoadData().Len() = %d, want 2", loadedData.Len())
	}
	ids := loadedData.IDArray()
	first2, err := loadedData.Read(ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if first2.Udn() != "file://a.flac" {
		t.Fatalf("first track udn = %q", first2.Udn())
	}
	second2, err := loadedData.Read(ids[1])
	if err != nil {
		t.Fatal(err)
	}
	if second2.Udn() != `file://b & c.flac` {
		t.Fatalf("second track udn roundtrip = %q, want unescaped ampersand", second2.Udn())
	}
}

func TestStoreDeletePlaylistFile(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	header, _ := newPlaylistHeader(1, "n", "d", 0)
	data := newPlaylistData(1, header.Filename())
	if err := s.WritePlaylist(header, data); err != nil {
		t.Fatal(err)
	}
	if err := s.DeletePlaylistFile(header.Filename()); err != nil {
		t.Fatal(err)
	}
	// deleting an already-absent file must not error
	if err := s.DeletePlaylistFile(header.Filename()); err != nil {
		t.Fatal(err)
	}
}

func TestFilenameFor(t *testing.T) {
	if filenameFor(42) != "42.txt" {
		t.Fatalf("filenameFor(42) = %q", filenameFor(42))
	}
}

func TestStorePath(t *testing.T) {
	s, _ := NewStore(t.TempDir())
	want := filepath.Join(s.dir, "1.txt")
	if s.path("1.txt") != want {
		t.Fatalf("path() = %q, want %q", s.path("1.txt"), want)
	}
}
