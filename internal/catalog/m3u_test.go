package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeM3U(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestResolveM3UPathHTTP(t *testing.T) {
	got, ok := resolveM3UPath("/music/lists/a.m3u", "http://example.com/song.flac")
	if !ok || got != "http://example.com/song.flac" {
		t.Fatalf("resolveM3UPath() = %q, %v", got, ok)
	}
}

func TestResolveM3UPathRelative(t *testing.T) {
	got, ok := resolveM3UPath("/music/lists/a.m3u", "../tracks/song.flac")
	if !ok {
		t.Fatal("expected relative path to resolve")
	}
	want := "file:///music/tracks/song.flac"
	if got != want {
		t.Fatalf("resolveM3UPath() = %q, want %q", got, want)
	}
}

func TestResolveM3UPathAbsolute(t *testing.T) {
	got, ok := resolveM3UPath("/music/lists/a.m3u", "/music/tracks/song.flac")
	if !ok || got != "file:///music/tracks/song.flac" {
		t.Fatalf("resolveM3UPath() = %q, %v", got, ok)
	}
}

func TestResolveM3UPathEmptyIsUnusable(t *testing.T) {
	if _, ok := resolveM3UPath("/a.m3u", "   "); ok {
		t.Fatal("expected empty entry path to be unusable")
	}
}

func TestResolveM3UPathUnknownSchemeIsUnusable(t *testing.T) {
	if _, ok := resolveM3UPath("/a.m3u", "ftp://host/song.flac"); ok {
		t.Fatal("expected a non-http(s) scheme to be unusable")
	}
}

func TestCatalogImportM3U(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	plID, err := c.PlaylistInsert(0, "Imported", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	m3uPath := writeM3U(t, dir, "list.m3u", "#EXTM3U\n#EXTINF:-1,Track One\n./song1.flac\n#EXTINF:-1,Track Two\nhttp://example.com/song2.flac\n")

	inserted, err := c.ImportM3U(plID, m3uPath)
	if err != nil {
		t.Fatal(err)
	}
	if inserted != 2 {
		t.Fatalf("inserted = %d, want 2", inserted)
	}

	ids, err := c.IDArray(plID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("IDArray() = %v, want 2 tracks", ids)
	}
	first, err := c.Read(plID, ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if first.Udn() != "file://"+dir+"/song1.flac" {
		t.Fatalf("first track udn = %q", first.Udn())
	}
	second, err := c.Read(plID, ids[1])
	if err != nil {
		t.Fatal(err)
	}
	if second.Udn() != "http://example.com/song2.flac" {
		t.Fatalf("second track udn = %q", second.Udn())
	}
}
