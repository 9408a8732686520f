package catalog

// this file contains the logic to marshal catalog objects to the wire
// formats the Playlist service's evented state variables and actions
// use: big-endian uint32 id/token arrays, and DIDL-Lite escaping.

import (
	"bytes"
	"encoding/binary"
	"html"
	"strconv"
	"strings"
)

// maxIDListCount is the maximum number of ids accepted in one
// space-separated PlaylistReadList/ReadList request, matching the
// original's kMaxNumIds-equivalent bound on the list before it returns
// InvalidRequest (spec.md §6.4).
const maxIDListCount = 1000

// EncodeIDArray packs ids as a sequence of big-endian uint32s, the wire
// format PlaylistReadArray/IdArray/PlaylistArrays emit (spec.md §6.2).
func EncodeIDArray(ids []ID) []byte {
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(id))
	}
	return buf
}

// DecodeIDArray unpacks a big-endian uint32 sequence into ids. It
// returns an InvalidRequest error if the input length isn't a multiple
// of 4, matching the "malformed wire payload" half of spec.md §7.
func DecodeIDArray(data []byte) ([]ID, error) {
	if len(data)%4 != 0 {
		return nil, errInvalidRequest("id array length %d is not a multiple of 4", len(data))
	}
	ids := make([]ID, len(data)/4)
	for i := range ids {
		ids[i] = ID(binary.BigEndian.Uint32(data[i*4:]))
	}
	return ids, nil
}

// EncodeTokenArray packs tokens as a sequence of big-endian uint32s, the
// wire format for the PlaylistManager service's per-playlist token
// array (spec.md §6.2).
func EncodeTokenArray(tokens []uint32) []byte {
	buf := make([]byte, 4*len(tokens))
	for i, tok := range tokens {
		binary.BigEndian.PutUint32(buf[i*4:], tok)
	}
	return buf
}

// escapeXML escapes a string for embedding inside the persisted flat
// tag format and DIDL-Lite fragments. html.EscapeString is used rather
// than encoding/xml's escaper because it escapes the same character set
// the original Converter::ToXmlEscaped does without pulling in a full
// XML encoder for one string.
func escapeXML(s string) string {
	return html.EscapeString(s)
}

// unescapeXML reverses escapeXML, matching Converter::FromXmlEscaped in
// the original - called on Metadata when it is read back from the
// persisted flat tag format (spec.md §6.1).
func unescapeXML(s string) string {
	return html.UnescapeString(s)
}

// joinIDList renders ids as the space-separated decimal list the
// PlaylistReadList/ReadList actions accept and return (spec.md §6.4).
func joinIDList(ids []ID) string {
	var buf bytes.Buffer
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return buf.String()
}

// didlLiteHeader and didlLiteFooter wrap the per-item/per-container
// fragments PlaylistReadList and the catalog Metadata property emit,
// the canonical envelope of spec.md §6.2.
const didlLiteHeader = `<DIDL-Lite xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/" xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/">`
const didlLiteFooter = `</DIDL-Lite>`

// ParseIDList parses a space-separated decimal id list, as accepted by
// the PlaylistReadList/ReadList actions' input arguments (spec.md
// §6.4). It is the exported counterpart of parseIDList, for the UPnP
// dispatch layer to validate input before calling into the Catalog.
func ParseIDList(s string) ([]ID, error) { return parseIDList(s) }

// JoinIDList renders ids as the space-separated decimal list
// PlaylistReadList/ReadList actions accept and return (spec.md §6.4).
func JoinIDList(ids []ID) string { return joinIDList(ids) }

// encodePlaylistContainers renders one <container> element per
// (id, name, imageID) triplet, wrapped in the canonical DIDL-Lite
// envelope - the wire format PlaylistReadList emits (spec.md §6.2).
func encodePlaylistContainers(entries []playlistEntry) string {
	var buf bytes.Buffer
	buf.WriteString(didlLiteHeader)
	for _, e := range entries {
		buf.WriteString(`<container id="`)
		buf.WriteString(strconv.FormatUint(uint64(e.id), 10))
		buf.WriteString(`" restricted="True"><dc:title>`)
		buf.WriteString(escapeXML(e.name))
		buf.WriteString(`</dc:title><upnp:albumArtURI>image:`)
		buf.WriteString(strconv.FormatUint(uint64(e.imageID), 10))
		buf.WriteString(`</upnp:albumArtURI></container>`)
	}
	buf.WriteString(didlLiteFooter)
	return buf.String()
}

// playlistEntry is the information encodePlaylistContainers needs about
// one resolved playlist.
type playlistEntry struct {
	id      ID
	name    string
	imageID uint32
}

// encodeTrackList renders one <Entry> element per resolved track,
// wrapped in a <TrackList> element - the wire format ReadList emits
// (spec.md §6.2).
func encodeTrackList(tracks []Track) string {
	var buf bytes.Buffer
	buf.WriteString("<TrackList>")
	for _, tr := range tracks {
		buf.WriteString("<Entry><Id>")
		buf.WriteString(strconv.FormatUint(uint64(tr.ID()), 10))
		buf.WriteString("</Id><Udn>")
		buf.WriteString(escapeXML(tr.Udn()))
		buf.WriteString("</Udn><Metadata>")
		buf.WriteString(escapeXML(tr.Metadata()))
		buf.WriteString("</Metadata></Entry>")
	}
	buf.WriteString("</TrackList>")
	return buf.String()
}

// parseIDList parses a space-separated decimal id list, as accepted by
// PlaylistReadList/ReadList. Any non-numeric token, or a list
// exceeding maxIDListCount entries, yields an InvalidRequest error -
// the "space separated id request list invalid" case (spec.md §6.4/§7,
// kInvalidRequestMsg in the original).
func parseIDList(s string) ([]ID, error) {
	fields := strings.Fields(s)
	if len(fields) > maxIDListCount {
		return nil, errInvalidRequest("id list exceeds %d entries", maxIDListCount)
	}
	ids := make([]ID, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, errInvalidRequest("id list entry %q is not a valid id", f)
		}
		ids[i] = ID(n)
	}
	return ids, nil
}
