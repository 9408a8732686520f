package catalog

// maxTracks is the per-playlist track list ceiling (spec.md §3,
// PlaylistData.kMaxTracks in the original).
const maxTracks = 1000

// PlaylistData is a playlist's track list: the expensive-to-hold part of
// a playlist, evicted from memory under the Cache's LRU policy when it
// isn't the most recently used. It is lazily (re)loaded from its
// persisted file on demand.
//
// Track ids are minted by PlaylistData's own IdGenerator, which is
// re-seeded from scratch every time a PlaylistData is loaded from disk -
// track ids are therefore only stable for the lifetime of one in-memory
// PlaylistData, not across an eviction-then-reload or a process
// restart. This mirrors the original implementation and is recorded as
// a deliberate, spec-sanctioned behavior in DESIGN.md.
type PlaylistData struct {
	id       ID
	filename string
	idGen    *IdGenerator
	tracks   *orderedList[Track]
}

func newPlaylistData(id ID, filename string) *PlaylistData {
	return &PlaylistData{
		id:       id,
		filename: filename,
		idGen:    NewIdGenerator(),
		tracks:   newOrderedList[Track](),
	}
}

// IDArray returns the ids of every track, in order.
func (d *PlaylistData) IDArray() []ID {
	return d.tracks.IDs()
}

// Read returns the track with the given id.
func (d *PlaylistData) Read(trackID ID) (Track, error) {
	t, ok := d.tracks.Get(trackID)
	if !ok {
		return Track{}, errNotFound("track %d not found", trackID)
	}
	return t, nil
}

// Insert creates a track after afterID (0 meaning prepend) and returns
// its newly minted id. udn longer than maxUdnBytes is rejected;
// metadata longer than maxMetadataBytes is condensed rather than
// rejected (spec.md §4.2/§6.3).
func (d *PlaylistData) Insert(afterID ID, udn, metadata string) (ID, error) {
	if d.tracks.Len() >= maxTracks {
		return 0, errFull("playlist already holds %d tracks", maxTracks)
	}
	if len(udn) > maxUdnBytes {
		return 0, errInvalidRequest("udn exceeds %d bytes", maxUdnBytes)
	}

	id := d.idGen.Next()
	t := newTrack(id, udn, metadata)
	if err := d.tracks.InsertAfter(afterID, t); err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes the track with the given id, if present. Deleting an
// absent id is a silent no-op, matching PlaylistData::Delete in the
// original implementation.
func (d *PlaylistData) Delete(trackID ID) {
	d.tracks.Remove(trackID)
}

// DeleteAll empties the track list.
func (d *PlaylistData) DeleteAll() {
	d.tracks.RemoveAll()
}

// Len returns the number of tracks currently held.
func (d *PlaylistData) Len() int {
	return d.tracks.Len()
}
