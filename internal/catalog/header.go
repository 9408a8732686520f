package catalog

const (
	maxNameBytes        = 100
	maxDescriptionBytes = 100
)

// PlaylistHeader is the mutable, lightweight part of a playlist: the
// metadata a client can browse without paying the cost of loading the
// playlist's (potentially large) track list from the Cache. It is kept
// resident in memory for every playlist in the Catalog for as long as
// the catalog exists, unlike PlaylistData which is evicted under the
// Cache's LRU policy.
type PlaylistHeader struct {
	id          ID
	filename    string
	name        string
	description string
	imageID     uint32
}

// newPlaylistHeader validates name/description against their byte
// ceilings and constructs a header. filename is the persisted file's
// base name (without directory), derived from id.
func newPlaylistHeader(id ID, name, description string, imageID uint32) (PlaylistHeader, error) {
	if len(name) > maxNameBytes {
		return PlaylistHeader{}, errInvalidRequest("playlist name exceeds %d bytes", maxNameBytes)
	}
	if len(description) > maxDescriptionBytes {
		return PlaylistHeader{}, errInvalidRequest("playlist description exceeds %d bytes", maxDescriptionBytes)
	}
	return PlaylistHeader{
		id:          id,
		filename:    filenameFor(id),
		name:        name,
		description: description,
		imageID:     imageID,
	}, nil
}

// ID returns the playlist's id.
func (h PlaylistHeader) ID() ID { return h.id }

// Filename returns the base name of the file this playlist's track list
// is persisted under, e.g. "42.txt" for id 42.
func (h PlaylistHeader) Filename() string { return h.filename }

// Name returns the playlist's display name.
func (h PlaylistHeader) Name() string { return h.name }

// Description returns the playlist's description.
func (h PlaylistHeader) Description() string { return h.description }

// ImageID returns the id of the playlist's cover image, 0 meaning none.
func (h PlaylistHeader) ImageID() uint32 { return h.imageID }

// SetName replaces the playlist's name, validating its byte length.
func (h *PlaylistHeader) SetName(name string) error {
	if len(name) > maxNameBytes {
		return errInvalidRequest("playlist name exceeds %d bytes", maxNameBytes)
	}
	h.name = name
	return nil
}

// SetDescription replaces the playlist's description, validating its
// byte length.
func (h *PlaylistHeader) SetDescription(description string) error {
	if len(description) > maxDescriptionBytes {
		return errInvalidRequest("playlist description exceeds %d bytes", maxDescriptionBytes)
	}
	h.description = description
	return nil
}

// SetImageID replaces the playlist's cover image id.
func (h *PlaylistHeader) SetImageID(imageID uint32) {
	h.imageID = imageID
}
