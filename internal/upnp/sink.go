package upnp

// playlistSink adapts a *Server to catalog.ChangeSink, translating
// catalog mutations into evented state variable refreshes (spec.md
// §4.8). It is installed on the Catalog once the Server wrapping it
// exists, via catalog.SetSink.
type playlistSink struct {
	srv *Server
}

func (s playlistSink) MetadataChanged() {
	s.srv.refreshMetadata()
}

func (s playlistSink) PlaylistsChanged() {
	s.srv.announcePlaylistsChanged()
}

func (s playlistSink) PlaylistChanged() {
	s.srv.announcePlaylistChanged()
}
