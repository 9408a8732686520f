package catalog

import "testing"

type countingSink struct {
	metadata, playlists, playlist int
}

func (s *countingSink) MetadataChanged()  { s.metadata++ }
func (s *countingSink) PlaylistsChanged() { s.playlists++ }
func (s *countingSink) PlaylistChanged()  { s.playlist++ }

func TestCatalogPlaylistInsertReadDelete(t *testing.T) {
	sink := &countingSink{}
	c, err := New(t.TempDir(), WithSink(sink))
	if err != nil {
		t.Fatal(err)
	}

	id, err := c.PlaylistInsert(0, "Favorites", "my favs", 1)
	if err != nil {
		t.Fatal(err)
	}
	if sink.playlists != 1 {
		t.Fatalf("sink.playlists = %d, want 1", sink.playlists)
	}

	name, desc, imageID, err := c.PlaylistRead(id)
	if err != nil {
		t.Fatal(err)
	}
	if name != "Favorites" || desc != "my favs" || imageID != 1 {
		t.Fatalf("PlaylistRead() = %q, %q, %d", name, desc, imageID)
	}

	if err := c.PlaylistDelete(id); err != nil {
		t.Fatal(err)
	}
	if sink.playlists != 2 {
		t.Fatalf("sink.playlists after delete = %d, want 2", sink.playlists)
	}
	if _, _, _, err := c.PlaylistRead(id); err == nil {
		t.Fatal("expected NotFound after delete")
	}
}

func TestCatalogPlaylistDeleteUnknownIsNoop(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.PlaylistDelete(999); err != nil {
		t.Fatal(err)
	}
	if err := c.PlaylistDelete(0); err != nil {
		t.Fatal(err)
	}
}

func TestCatalogPlaylistInsertFullCatalog(t *testing.T) {
	c, err := New(t.TempDir(), WithMaxPlaylists(2))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.PlaylistInsert(0, "a", "", 0); err != nil {
		t.Fatal(err)
	}
	if _, err := c.PlaylistInsert(0, "b", "", 0); err != nil {
		t.Fatal(err)
	}
	_, err = c.PlaylistInsert(0, "c", "", 0)
	var cErr *CatalogError
	if ce, ok := err.(*CatalogError); ok {
		cErr = ce
	}
	if cErr == nil || cErr.Code != CodeFull {
		t.Fatalf("error = %v, want CodeFull", err)
	}
}

func TestCatalogTrackInsertReadDeletePersists(t *testing.T) {
	sink := &countingSink{}
	dir := t.TempDir()
	c, err := New(dir, WithSink(sink))
	if err != nil {
		t.Fatal(err)
	}

	plID, err := c.PlaylistInsert(0, "List", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	trackID, err := c.Insert(plID, 0, "file://song.flac", "<DIDL-Lite/>")
	if err != nil {
		t.Fatal(err)
	}
	if sink.playlist == 0 {
		t.Fatal("expected PlaylistChanged on track insert")
	}

	tr, err := c.Read(plID, trackID)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Udn() != "file://song.flac" {
		t.Fatalf("Read().Udn() = %q", tr.Udn())
	}

	// reopen the catalog from disk and confirm the track survived
	c2, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	ids, err := c2.IDArray(plID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 {
		t.Fatalf("IDArray() after reopen = %v, want one track", ids)
	}
	tr2, err := c2.Read(plID, ids[0])
	if err != nil {
		t.Fatal(err)
	}
	if tr2.Udn() != "file://song.flac" {
		t.Fatalf("reopened track Udn() = %q", tr2.Udn())
	}

	if err := c.Delete(plID, trackID); err != nil {
		t.Fatal(err)
	}
	ids, err = c.IDArray(plID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("IDArray() after delete = %v, want empty", ids)
	}
}

func TestCatalogPlaylistMove(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.PlaylistInsert(0, "a", "", 0)
	b, _ := c.PlaylistInsert(a, "b", "", 0)
	cc, _ := c.PlaylistInsert(b, "c", "", 0)

	// order is a, b, c; move c to the front
	if err := c.PlaylistMove(cc, 0); err != nil {
		t.Fatal(err)
	}
	ids := c.PlaylistIDArray()
	want := []ID{cc, a, b}
	if len(ids) != len(want) {
		t.Fatalf("PlaylistIDArray() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("PlaylistIDArray() = %v, want %v", ids, want)
		}
	}
}

func TestCatalogPlaylistMoveUnknownID(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	a, _ := c.PlaylistInsert(0, "a", "", 0)
	if err := c.PlaylistMove(a, 999); err == nil {
		t.Fatal("expected NotFound for unknown destination anchor")
	}
}

func TestCatalogPlaylistSetNameAdvancesToken(t *testing.T) {
	sink := &countingSink{}
	c, err := New(t.TempDir(), WithSink(sink))
	if err != nil {
		t.Fatal(err)
	}
	id, _ := c.PlaylistInsert(0, "old", "", 0)

	tokensBefore := c.PlaylistTokenArray()
	if err := c.PlaylistSetName(id, "new"); err != nil {
		t.Fatal(err)
	}
	tokensAfter := c.PlaylistTokenArray()
	if tokensBefore[0] == tokensAfter[0] {
		t.Fatal("PlaylistSetName must advance the playlist's own revision token")
	}

	name, _, _, err := c.PlaylistRead(id)
	if err != nil {
		t.Fatal(err)
	}
	if name != "new" {
		t.Fatalf("PlaylistRead().name = %q, want new", name)
	}
}

func TestCatalogIDArrayUnknownPlaylist(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.IDArray(42); err == nil {
		t.Fatal("expected NotFound for an unknown playlist id")
	}
}

func TestCatalogRecoversWatermarkAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	first, err := c.PlaylistInsert(0, "a", "", 0)
	if err != nil {
		t.Fatal(err)
	}

	c2, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c2.PlaylistInsert(first, "b", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if second <= first {
		t.Fatalf("expected the id generator to resume above the recovered watermark: first=%d second=%d", first, second)
	}
}

// TestCatalogTokenProgression exercises scenario S6 of spec.md §8: the
// catalog token strictly advances on both a catalog-level mutation and
// a track-level mutation, and TokenChanged tracks it.
func TestCatalogTokenProgression(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	t0 := c.Token()
	id, err := c.PlaylistInsert(0, "A", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	t1 := c.Token()
	if t1 <= t0 {
		t.Fatalf("token after PlaylistInsert = %d, want > %d", t1, t0)
	}

	if _, err := c.Insert(id, 0, "u", "m"); err != nil {
		t.Fatal(err)
	}
	t2 := c.Token()
	if t2 <= t1 {
		t.Fatalf("token after Insert = %d, want > %d", t2, t1)
	}

	if !c.TokenChanged(t0) {
		t.Fatal("TokenChanged(t0) = false, want true")
	}
	if c.TokenChanged(t2) {
		t.Fatal("TokenChanged(t2) = true, want false")
	}
}
