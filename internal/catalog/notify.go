package catalog

// ChangeSink receives change notifications from a Catalog. It is the
// interface the UPnP dispatch layer implements (internal/upnp's
// playlistSink) to turn catalog mutations into evented state variable
// updates; the catalog core only ever calls through this interface and
// never knows about SOAP or state variables itself (spec.md §4.8).
//
// Every Catalog mutation calls exactly one of these methods, never more
// than one, reflecting which level of the tree actually changed:
//
//   - MetadataChanged: the service-level Metadata (PlaylistsMax,
//     TracksMax, or similar manager-wide descriptive state) changed.
//   - PlaylistsChanged: the set or order of playlists changed
//     (PlaylistInsert, PlaylistDelete, PlaylistMove).
//   - PlaylistChanged: one playlist's own data changed - its header
//     (PlaylistSetName/Description/ImageId) or its track list
//     (Insert/Delete/DeleteAll).
type ChangeSink interface {
	MetadataChanged()
	PlaylistsChanged()
	PlaylistChanged()
}

// nopSink is used when a Catalog is constructed without an explicit
// sink (e.g. in tests), so mutation methods never need a nil check.
type nopSink struct{}

func (nopSink) MetadataChanged()  {}
func (nopSink) PlaylistsChanged() {}
func (nopSink) PlaylistChanged()  {}
