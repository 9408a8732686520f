package catalog

import (
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	l "github.com/sirupsen/logrus"
)

var log *l.Entry = l.WithFields(l.Fields{"pkg": "catalog"})

// defaultMaxPlaylists is the catalog-level ceiling on the number of
// playlists it will hold, carried forward from the original's
// kMaxPlaylists (SPEC_FULL.md, Supplemented Features #1).
const defaultMaxPlaylists = 500

// Catalog is the top-level aggregate: an ordered collection of
// playlists, each independently lazily loaded through a shared Cache,
// all persisted under a Store. It is the Go counterpart of the
// original's PlaylistManager class (spec.md §4.7).
//
// Locking: mu guards the playlist list and the id generator. Mutating
// operations take mu for the list manipulation, then release it before
// calling into an individual Playlist - per spec.md §5's lock order
// (Catalog -> Playlist -> Cache), mu is never held while a Playlist's
// own mutex is being acquired for anything beyond list membership.
type Catalog struct {
	mu           sync.Mutex
	store        *Store
	cache        *Cache
	idGen        *IdGenerator
	playlists    *orderedList[*Playlist]
	maxPlaylists int
	sink         ChangeSink
	token        uint32
}

// Option configures a Catalog at construction time.
type Option func(*Catalog)

// WithSink installs the change-notification sink a Catalog reports
// mutations to.
func WithSink(sink ChangeSink) Option {
	return func(c *Catalog) { c.sink = sink }
}

// SetSink installs sink after construction, for callers that must build
// their dispatch layer around an already-created Catalog (the UPnP
// server wraps a *Catalog, so the sink it hands back can only exist
// once that wrapping is done).
func (c *Catalog) SetSink(sink ChangeSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sink = sink
}

// WithMaxPlaylists overrides the default playlist-count ceiling.
func WithMaxPlaylists(n int) Option {
	return func(c *Catalog) { c.maxPlaylists = n }
}

// WithCacheCapacity overrides the default PlaylistData cache capacity.
func WithCacheCapacity(n int) Option {
	return func(c *Catalog) { c.cache = NewCache(n) }
}

// New constructs a Catalog, recovering its state from dir if a Toc.txt
// already exists there. Persistence failures for individual playlist
// files are logged and skipped, exactly as the original's constructor
// swallows ReaderFileError per entry, yielding a partial catalog rather
// than refusing to start (spec.md §7).
func New(dir string, opts ...Option) (*Catalog, error) {
	store, err := NewStore(dir)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		store:        store,
		cache:        NewCache(defaultCacheCapacity),
		idGen:        NewIdGenerator(),
		playlists:    newOrderedList[*Playlist](),
		maxPlaylists: defaultMaxPlaylists,
		sink:         nopSink{},
	}
	for _, opt := range opts {
		opt(c)
	}

	filenames, err := store.ReadToc()
	if err != nil {
		return nil, errors.Wrap(err, "cannot recover catalog")
	}

	var watermark ID
	for _, filename := range filenames {
		id, err := idFromFilename(filename)
		if err != nil {
			log.WithError(err).Warnf("skipping table-of-contents entry %q", filename)
			continue
		}

		header, err := store.LoadHeader(id, filename)
		if err != nil {
			log.WithError(err).Warnf("skipping playlist file %q", filename)
			continue
		}

		hdrID, hdrFilename := id, filename
		p := newPlaylist(c.cache, header, func() (*PlaylistData, error) {
			return store.LoadData(hdrID, hdrFilename)
		})
		c.playlists.InsertAfter(lastPlaylistID(c.playlists), p)

		if id > watermark {
			watermark = id
		}
	}
	c.idGen = NewIdGeneratorFrom(watermark)

	return c, nil
}

func lastPlaylistID(pl *orderedList[*Playlist]) ID {
	ids := pl.IDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// Token returns the catalog's current revision token. It advances on
// every catalog-level change (playlist insert/delete/move) and on
// every mutation of any contained playlist's header or track list
// (spec.md §3, §4.7.3).
func (c *Catalog) Token() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// TokenChanged reports whether clientToken differs from the catalog's
// current token, i.e. whether a client holding clientToken has stale
// state (spec.md §4.7.3).
func (c *Catalog) TokenChanged(clientToken uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clientToken != c.token
}

// bumpToken advances the catalog token. Called for every mutation that
// is not already holding mu when it completes.
func (c *Catalog) bumpToken() {
	c.mu.Lock()
	c.token++
	c.mu.Unlock()
}

// PlaylistCount returns the number of playlists currently held.
func (c *Catalog) PlaylistCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlists.Len()
}

// MaxPlaylists returns the catalog's playlist-count ceiling.
func (c *Catalog) MaxPlaylists() int { return c.maxPlaylists }

// MaxTracks returns the per-playlist track-count ceiling.
func (c *Catalog) MaxTracks() int { return maxTracks }

// PlaylistIDArray returns the ids of every playlist, in order.
func (c *Catalog) PlaylistIDArray() []ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playlists.IDs()
}

// PlaylistTokenArray returns the revision token of every playlist, in
// the same order as PlaylistIDArray.
func (c *Catalog) PlaylistTokenArray() []uint32 {
	c.mu.Lock()
	playlists := c.playlists.Values()
	c.mu.Unlock()

	tokens := make([]uint32, len(playlists))
	for i, p := range playlists {
		tokens[i] = p.Token()
	}
	return tokens
}

// playlist returns the Playlist with the given id, under mu.
func (c *Catalog) playlist(id ID) (*Playlist, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.playlists.Get(id)
	if !ok {
		return nil, errNotFound("playlist %d not found", id)
	}
	return p, nil
}

// PlaylistRead returns a playlist's header fields.
func (c *Catalog) PlaylistRead(id ID) (name, description string, imageID uint32, err error) {
	p, err := c.playlist(id)
	if err != nil {
		return "", "", 0, err
	}
	return p.Name(), p.Description(), p.ImageID(), nil
}

// PlaylistInsert creates a new, empty playlist after afterID (0 meaning
// prepend) and returns its id. It fails with Full once the catalog
// already holds MaxPlaylists playlists, and with NotFound if afterID is
// non-zero and unknown (spec.md §4.7.2).
func (c *Catalog) PlaylistInsert(afterID ID, name, description string, imageID uint32) (ID, error) {
	c.mu.Lock()
	if c.playlists.Len() >= c.maxPlaylists {
		c.mu.Unlock()
		return 0, errFull("catalog already holds %d playlists", c.maxPlaylists)
	}

	id := c.idGen.Next()
	header, err := newPlaylistHeader(id, name, description, imageID)
	if err != nil {
		c.mu.Unlock()
		return 0, err
	}

	data := newPlaylistData(id, header.Filename())
	store, filename := c.store, header.Filename()
	p := newPlaylist(c.cache, header, func() (*PlaylistData, error) {
		return store.LoadData(id, filename)
	})
	p.seedData(data)

	if err := c.playlists.InsertAfter(afterID, p); err != nil {
		c.mu.Unlock()
		return 0, err
	}

	names := c.filenamesLocked()
	err = c.store.WriteToc(names)
	if err == nil {
		err = c.store.WritePlaylist(header, data)
	}
	if err != nil {
		err = errPersistence("cannot persist new playlist %d: %v", id, err)
	} else {
		c.token++
	}
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}

	c.sink.PlaylistsChanged()
	return id, nil
}

// PlaylistDelete removes a playlist. Deleting id 0, or an id that isn't
// present, is a silent no-op, matching PlaylistDelete in the original.
func (c *Catalog) PlaylistDelete(id ID) error {
	if id == 0 {
		return nil
	}

	c.mu.Lock()
	p, ok := c.playlists.Get(id)
	if !ok {
		c.mu.Unlock()
		return nil
	}
	c.playlists.Remove(id)

	err := c.store.WriteToc(c.filenamesLocked())
	if err != nil {
		err = errPersistence("cannot persist table of contents after deleting playlist %d: %v", id, err)
	} else {
		c.token++
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}

	if err := c.store.DeletePlaylistFile(p.Filename()); err != nil {
		log.WithError(err).Warnf("cannot delete stale playlist file for id %d", id)
	}

	c.sink.PlaylistsChanged()
	return nil
}

// PlaylistMove relocates a playlist to follow afterID (0 meaning move
// to the front). Both ids must exist, or NotFound is returned
// (SPEC_FULL.md Supplemented Features #3).
func (c *Catalog) PlaylistMove(id, afterID ID) error {
	c.mu.Lock()
	p, ok := c.playlists.Get(id)
	if !ok {
		c.mu.Unlock()
		return errNotFound("playlist %d not found", id)
	}
	c.playlists.Remove(id)
	if err := c.playlists.InsertAfter(afterID, p); err != nil {
		// restore original position's neighbor is not tracked; reinsert
		// at front is the safest recovery since afterID was rejected.
		c.playlists.InsertAfter(0, p)
		c.mu.Unlock()
		return err
	}
	c.token++
	c.mu.Unlock()

	c.sink.PlaylistsChanged()
	return nil
}

// PlaylistSetName replaces a playlist's name and persists it.
func (c *Catalog) PlaylistSetName(id ID, name string) error {
	p, err := c.playlist(id)
	if err != nil {
		return err
	}
	if err := p.SetName(name); err != nil {
		return err
	}
	if err := c.persistOne(p); err != nil {
		return err
	}
	c.bumpToken()
	c.sink.PlaylistChanged()
	return nil
}

// PlaylistSetDescription replaces a playlist's description and persists
// it.
func (c *Catalog) PlaylistSetDescription(id ID, description string) error {
	p, err := c.playlist(id)
	if err != nil {
		return err
	}
	if err := p.SetDescription(description); err != nil {
		return err
	}
	if err := c.persistOne(p); err != nil {
		return err
	}
	c.bumpToken()
	c.sink.PlaylistChanged()
	return nil
}

// PlaylistSetImageID replaces a playlist's cover image id and persists
// it.
func (c *Catalog) PlaylistSetImageID(id ID, imageID uint32) error {
	p, err := c.playlist(id)
	if err != nil {
		return err
	}
	p.SetImageID(imageID)
	if err := c.persistOne(p); err != nil {
		return err
	}
	c.bumpToken()
	c.sink.PlaylistChanged()
	return nil
}

// IDArray returns the ids of every track in the given playlist.
func (c *Catalog) IDArray(id ID) ([]ID, error) {
	p, err := c.playlist(id)
	if err != nil {
		return nil, err
	}
	return p.IDArray()
}

// Read returns the metadata of one track in the given playlist.
func (c *Catalog) Read(id, trackID ID) (Track, error) {
	p, err := c.playlist(id)
	if err != nil {
		return Track{}, err
	}
	return p.Read(trackID)
}

// PlaylistReadList returns a DIDL-Lite envelope containing one
// <container> per id that resolves to a playlist, silently skipping
// unknown ids (spec.md §4.7.3, §6.2).
func (c *Catalog) PlaylistReadList(ids []ID) string {
	c.mu.Lock()
	playlists := make([]*Playlist, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.playlists.Get(id); ok {
			playlists = append(playlists, p)
		}
	}
	c.mu.Unlock()

	entries := make([]playlistEntry, len(playlists))
	for i, p := range playlists {
		entries[i] = playlistEntry{id: p.ID(), name: p.Name(), imageID: p.ImageID()}
	}
	return encodePlaylistContainers(entries)
}

// ReadList returns a <TrackList> XML fragment containing one <Entry>
// per trackID that resolves within the given playlist, silently
// skipping unknown track ids. NotFound is returned if the playlist
// itself does not exist (spec.md §4.7.3, §6.2).
func (c *Catalog) ReadList(id ID, trackIDs []ID) (string, error) {
	p, err := c.playlist(id)
	if err != nil {
		return "", err
	}

	tracks := make([]Track, 0, len(trackIDs))
	for _, trackID := range trackIDs {
		tr, err := p.Read(trackID)
		if err != nil {
			continue
		}
		tracks = append(tracks, tr)
	}
	return encodeTrackList(tracks), nil
}

// Insert creates a track in the given playlist and persists the
// playlist's track list.
func (c *Catalog) Insert(id, afterID ID, udn, metadata string) (ID, error) {
	p, err := c.playlist(id)
	if err != nil {
		return 0, err
	}
	trackID, err := p.Insert(afterID, udn, metadata)
	if err != nil {
		return 0, err
	}
	if err := c.persistOne(p); err != nil {
		return 0, err
	}
	c.bumpToken()
	c.sink.PlaylistChanged()
	return trackID, nil
}

// Delete removes a track from the given playlist and persists it.
func (c *Catalog) Delete(id, trackID ID) error {
	p, err := c.playlist(id)
	if err != nil {
		return err
	}
	if err := p.Delete(trackID); err != nil {
		return err
	}
	if err := c.persistOne(p); err != nil {
		return err
	}
	c.bumpToken()
	c.sink.PlaylistChanged()
	return nil
}

// DeleteAll empties the given playlist's track list and persists it.
func (c *Catalog) DeleteAll(id ID) error {
	p, err := c.playlist(id)
	if err != nil {
		return err
	}
	if err := p.DeleteAll(); err != nil {
		return err
	}
	if err := c.persistOne(p); err != nil {
		return err
	}
	c.bumpToken()
	c.sink.PlaylistChanged()
	return nil
}

// persistOne writes a single playlist's file.
func (c *Catalog) persistOne(p *Playlist) error {
	header, data, err := p.snapshot()
	if err != nil {
		return err
	}
	if err := c.store.WritePlaylist(header, data); err != nil {
		return errPersistence("cannot persist playlist %d: %v", header.ID(), err)
	}
	return nil
}

// filenamesLocked returns every playlist's filename, in order. Caller
// must hold mu.
func (c *Catalog) filenamesLocked() []string {
	playlists := c.playlists.Values()
	names := make([]string, len(playlists))
	for i, p := range playlists {
		names[i] = p.Filename()
	}
	return names
}

// idFromFilename extracts the leading decimal id from a "<id>.txt"
// filename, matching the original's Ascii::Uint(nameReader.ReadUntil('.')).
func idFromFilename(filename string) (ID, error) {
	base := strings.TrimSuffix(filename, ".txt")
	n, err := strconv.ParseUint(base, 10, 32)
	if err != nil {
		return 0, errParse("filename %q has no leading id", filename)
	}
	return ID(n), nil
}
