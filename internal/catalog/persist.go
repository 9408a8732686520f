package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// tocFilename is the catalog-level table of contents file, holding the
// count of playlists followed by one persisted filename per line
// (spec.md §6.1, WriteToc in the original).
const tocFilename = "Toc.txt"

// Store persists Catalog state under a base directory the way the
// original PlaylistManager persists under the process's working
// directory: a Toc.txt table of contents plus one "<id>.txt" file per
// playlist.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir, creating it if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "cannot create persistence directory %q", dir)
	}
	return &Store{dir: dir}, nil
}

func filenameFor(id ID) string {
	return fmt.Sprintf("%d.txt", id)
}

func (s *Store) path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// WriteToc writes the table of contents listing the given filenames, in
// order.
func (s *Store) WriteToc(filenames []string) error {
	f, err := os.Create(s.path(tocFilename))
	if err != nil {
		return errors.Wrap(err, "cannot write table of contents")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d\n", len(filenames))
	for _, name := range filenames {
		fmt.Fprintf(w, "%s\n", name)
	}
	return errors.Wrap(w.Flush(), "cannot write table of contents")
}

// ReadToc returns the persisted filenames in order. A missing Toc.txt
// (first run) is reported as an empty list, not an error, matching the
// original's silent ReaderFileError recovery.
func (s *Store) ReadToc() ([]string, error) {
	f, err := os.Open(s.path(tocFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "cannot read table of contents")
	}
	defer f.Close()

	r := bufio.NewReader(f)
	countLine, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "cannot read table of contents")
	}
	count, err := strconv.Atoi(strings.TrimSpace(countLine))
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse table of contents count")
	}

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, errors.Wrap(err, "cannot read table of contents")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		names = append(names, line)
	}
	return names, nil
}

// WritePlaylist writes a playlist's header and track list to its own
// file, in the flat tag format spec.md §6.1 describes.
func (s *Store) WritePlaylist(header PlaylistHeader, data *PlaylistData) error {
	f, err := os.Create(s.path(header.Filename()))
	if err != nil {
		return errors.Wrapf(err, "cannot write playlist file %q", header.Filename())
	}
	defer f.Close()

	// Name, Description and Udn are written plain; only Metadata is
	// XML-escaped (spec.md §6.1), matching PlaylistHeader::ToXml and
	// PlaylistData::ToXml in the original, which write those three
	// fields via plain ascii.Write and only pass Metadata through
	// Converter::ToXmlEscaped.
	w := bufio.NewWriter(f)
	fmt.Fprint(w, "<Playlist>\n")
	fmt.Fprintf(w, "  <Name>%s</Name>\n", header.Name())
	fmt.Fprintf(w, "  <Description>%s</Description>\n", header.Description())
	fmt.Fprintf(w, "  <ImageId>%d</ImageId>\n", header.ImageID())
	for _, t := range data.tracks.Values() {
		fmt.Fprint(w, "  <Track>\n")
		fmt.Fprintf(w, "    <Udn>%s</Udn>\n", t.Udn())
		fmt.Fprintf(w, "    <Metadata>%s</Metadata>\n", escapeXML(t.Metadata()))
		fmt.Fprint(w, "  </Track>\n")
	}
	fmt.Fprint(w, "</Playlist>\n")

	return errors.Wrapf(w.Flush(), "cannot write playlist file %q", header.Filename())
}

// DeletePlaylistFile removes a playlist's persisted file. spec.md §9
// leaves the choice of deleting vs. leaving a stale file on
// PlaylistDelete open; this Store deletes it, so a removed playlist
// never leaves orphaned state behind.
func (s *Store) DeletePlaylistFile(filename string) error {
	err := os.Remove(s.path(filename))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "cannot delete playlist file %q", filename)
	}
	return nil
}

// tagReader is a tiny lenient scanner over the flat tag format: it
// reads up to and including a delimiter the same way the original's
// IReader::ReadUntil does, so the header/track parser below can be
// written as the same straight-line sequence of ReadUntil calls the
// original PlaylistHeader/PlaylistData readers use.
type tagReader struct {
	r *bufio.Reader
}

func newTagReader(r io.Reader) *tagReader {
	return &tagReader{r: bufio.NewReader(r)}
}

// readUntil consumes and discards bytes up to and including delim,
// returning everything read before it.
func (t *tagReader) readUntil(delim byte) (string, error) {
	s, err := t.r.ReadString(delim)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(s, string(delim)), nil
}

// openPlaylistTags opens a playlist file and positions a tagReader just
// past its opening <Playlist> tag.
func (s *Store) openPlaylistTags(filename string) (*os.File, *tagReader, error) {
	f, err := os.Open(s.path(filename))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot read playlist file %q", filename)
	}
	tr := newTagReader(f)
	if _, err := tr.readUntil('<'); err != nil {
		f.Close()
		return nil, nil, errors.Wrapf(err, "cannot parse playlist file %q", filename)
	}
	tag, err := tr.readUntil('>')
	if err != nil || tag != "Playlist" {
		f.Close()
		return nil, nil, errParse("playlist file %q has no <Playlist> tag", filename)
	}
	return f, tr, nil
}

// LoadHeader parses only a playlist file's header fields (Name,
// Description, ImageId), leaving the track list unread. This is what
// Catalog recovery calls for every entry in Toc.txt at startup -
// mirroring the original's reader-based PlaylistHeader constructor,
// which stops once it has read through </ImageId> and never touches
// the tracks that follow.
func (s *Store) LoadHeader(id ID, filename string) (PlaylistHeader, error) {
	f, tr, err := s.openPlaylistTags(filename)
	if err != nil {
		return PlaylistHeader{}, err
	}
	defer f.Close()

	header := PlaylistHeader{id: id, filename: filename}

	if _, err := tr.readUntil('<'); err == nil {
		if tag, err := tr.readUntil('>'); err == nil && tag == "Name" {
			if v, err := tr.readUntil('<'); err == nil {
				header.name = v
			}
			if _, err := tr.readUntil('>'); err == nil {
				if _, err := tr.readUntil('<'); err == nil {
					if tag, err := tr.readUntil('>'); err == nil && tag == "Description" {
						if v, err := tr.readUntil('<'); err == nil {
							header.description = v
						}
						if _, err := tr.readUntil('>'); err == nil {
							if _, err := tr.readUntil('<'); err == nil {
								if tag, err := tr.readUntil('>'); err == nil && tag == "ImageId" {
									if v, err := tr.readUntil('<'); err == nil {
										if n, err := strconv.ParseUint(v, 10, 32); err == nil {
											header.imageID = uint32(n)
										}
									}
									tr.readUntil('>')
								}
							}
						}
					}
				}
			}
		}
	}

	return header, nil
}

// LoadData parses a playlist file's full track list. This is the lazy
// load path a Playlist's Cache miss calls - it re-opens and re-scans
// the file independently of LoadHeader, exactly as the original's
// Cache::Data() constructs a fresh PlaylistData (which re-reads the
// file from the top, skipping the header) rather than reusing anything
// already parsed for the header.
func (s *Store) LoadData(id ID, filename string) (*PlaylistData, error) {
	f, tr, err := s.openPlaylistTags(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// skip header fields up through </ImageId>
	for {
		if _, err := tr.readUntil('<'); err != nil {
			break
		}
		tag, err := tr.readUntil('>')
		if err != nil {
			break
		}
		if tag == "/ImageId" {
			break
		}
	}

	data := newPlaylistData(id, filename)
	for {
		if _, err := tr.readUntil('<'); err != nil {
			break
		}
		tag, err := tr.readUntil('>')
		if err != nil || tag != "Track" {
			break
		}

		if _, err := tr.readUntil('<'); err != nil {
			break
		}
		if tag, err := tr.readUntil('>'); err != nil || tag != "Udn" {
			break
		}
		udn, err := tr.readUntil('<')
		if err != nil {
			break
		}
		tr.readUntil('>') // "/Udn"

		if _, err := tr.readUntil('<'); err != nil {
			break
		}
		if tag, err := tr.readUntil('>'); err != nil || tag != "Metadata" {
			break
		}
		metadata, err := tr.readUntil('<')
		if err != nil {
			break
		}
		tr.readUntil('>') // "/Metadata"

		trackID := data.idGen.Next()
		_ = data.tracks.InsertAfter(lastTrackID(data), newTrack(trackID, udn, unescapeXML(metadata)))

		tr.readUntil('<') // "/Track"
		tr.readUntil('>')
	}

	return data, nil
}

// lastTrackID returns the id of the last (most recently appended)
// track, or 0, so sequential file-load appends can reuse
// orderedList.InsertAfter instead of a dedicated append method.
func lastTrackID(d *PlaylistData) ID {
	ids := d.tracks.IDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}
