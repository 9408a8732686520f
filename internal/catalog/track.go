package catalog

// condensedMetadata is the DIDL-Lite fragment substituted for a track's
// metadata when the caller-supplied value exceeds maxMetadataBytes. It is
// returned verbatim rather than truncated, so that it always parses as a
// well-formed (if uninformative) DIDL-Lite document.
const condensedMetadata = `<DIDL-Lite xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/" xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/"><item id="" parentID="" restricted="True"><dc:title>Metadata too large</dc:title><upnp:class>object.item</upnp:class></item></DIDL-Lite>`

const (
	maxUdnBytes      = 1024
	maxMetadataBytes = 4096
)

// condenseMetadata returns metadata unchanged if it fits within
// maxMetadataBytes, or the fixed condensedMetadata sentinel otherwise.
func condenseMetadata(metadata string) string {
	if len(metadata) > maxMetadataBytes {
		return condensedMetadata
	}
	return metadata
}

// Track is an immutable reference to a piece of content: a UDN (the UPnP
// unique device/content name the track's source is addressed by) and a
// DIDL-Lite metadata blob describing it. Tracks are never mutated after
// creation; replacing a track's metadata means deleting and re-inserting
// it under a new id.
type Track struct {
	id       ID
	udn      string
	metadata string
}

// newTrack creates a track, condensing metadata if it is too large.
// udn longer than maxUdnBytes is rejected by the caller (PlaylistData.Insert)
// before this constructor is reached; see spec.md §4.2 and §7.
func newTrack(id ID, udn, metadata string) Track {
	return Track{id: id, udn: udn, metadata: condenseMetadata(metadata)}
}

// ID returns the track's id, unique within its owning playlist.
func (t Track) ID() ID { return t.id }

// Udn returns the track's UDN.
func (t Track) Udn() string { return t.udn }

// Metadata returns the track's (possibly condensed) DIDL-Lite metadata.
func (t Track) Metadata() string { return t.metadata }
