package catalog

import "sync"

// Playlist combines a PlaylistHeader (always resident) with a lazily
// loaded PlaylistData (evictable), plus a revision token that advances
// on every mutation of the header or the track list. Clients poll
// PlaylistArraysChanged-style against this token to learn a playlist
// changed without re-reading it (spec.md §4.6).
//
// Locking: every exported method takes mu for its whole duration,
// matching the original's iMutex.Wait()/iMutex.Signal() bracketing.
// mu is acquired after any Catalog-level lock and before the Cache is
// consulted, per spec.md §5's lock order.
type Playlist struct {
	mu     sync.Mutex
	cache  *Cache
	header PlaylistHeader
	token  uint32
	data   *PlaylistData
	load   func() (*PlaylistData, error)
}

func newPlaylist(cache *Cache, header PlaylistHeader, load func() (*PlaylistData, error)) *Playlist {
	return &Playlist{cache: cache, header: header, load: load}
}

// ID returns the playlist's id, so *Playlist satisfies identified and
// can live in an orderedList.
func (p *Playlist) ID() ID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.header.ID()
}

// Token returns the playlist's current revision token.
func (p *Playlist) Token() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.token
}

// Name returns the playlist's display name.
func (p *Playlist) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.header.Name()
}

// Description returns the playlist's description.
func (p *Playlist) Description() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.header.Description()
}

// ImageID returns the playlist's cover image id.
func (p *Playlist) ImageID() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.header.ImageID()
}

// Filename returns the playlist's persisted file name.
func (p *Playlist) Filename() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.header.Filename()
}

// SetName replaces the playlist's name and advances its token: the
// token increments on any header or data mutation (spec.md §3, §4.7.2).
func (p *Playlist) SetName(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.header.SetName(name); err != nil {
		return err
	}
	p.token++
	return nil
}

// SetDescription replaces the playlist's description and advances its
// token.
func (p *Playlist) SetDescription(description string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.header.SetDescription(description); err != nil {
		return err
	}
	p.token++
	return nil
}

// SetImageID replaces the playlist's cover image id and advances its
// token.
func (p *Playlist) SetImageID(imageID uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.header.SetImageID(imageID)
	p.token++
}

// ensureData loads the track list on first access or after eviction.
// Caller must hold mu.
func (p *Playlist) ensureData() (*PlaylistData, error) {
	if p.data != nil {
		return p.data, nil
	}
	d, err := p.cache.Data(p.header.ID(), p, p.load)
	if err != nil {
		return nil, err
	}
	p.data = d
	return d, nil
}

// seedData registers data as the playlist's already-resident
// PlaylistData, for a playlist that was just created in memory and has
// nothing to load from disk yet.
func (p *Playlist) seedData(data *PlaylistData) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache.Put(p.header.ID(), p, data)
	p.data = data
}

// RemovedFromCache implements CacheListener: it drops the playlist's
// local reference so the next access reloads through the Cache.
func (p *Playlist) RemovedFromCache() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = nil
}

// IDArray returns the ids of every track, in order.
func (p *Playlist) IDArray() ([]ID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, err := p.ensureData()
	if err != nil {
		return nil, err
	}
	return d.IDArray(), nil
}

// Read returns the track with the given id.
func (p *Playlist) Read(trackID ID) (Track, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, err := p.ensureData()
	if err != nil {
		return Track{}, err
	}
	return d.Read(trackID)
}

// Insert creates a track and advances the playlist's token.
func (p *Playlist) Insert(afterID ID, udn, metadata string) (ID, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, err := p.ensureData()
	if err != nil {
		return 0, err
	}
	id, err := d.Insert(afterID, udn, metadata)
	if err != nil {
		return 0, err
	}
	p.token++
	return id, nil
}

// Delete removes a track and advances the playlist's token.
func (p *Playlist) Delete(trackID ID) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, err := p.ensureData()
	if err != nil {
		return err
	}
	d.Delete(trackID)
	p.token++
	return nil
}

// DeleteAll empties the track list and advances the playlist's token.
func (p *Playlist) DeleteAll() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, err := p.ensureData()
	if err != nil {
		return err
	}
	d.DeleteAll()
	p.token++
	return nil
}

// snapshot returns the header and the (loaded) track data together,
// for persistence. Used only by Catalog.persistOne.
func (p *Playlist) snapshot() (PlaylistHeader, *PlaylistData, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, err := p.ensureData()
	if err != nil {
		return PlaylistHeader{}, nil, err
	}
	return p.header, d, nil
}
