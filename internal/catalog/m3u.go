package catalog

import (
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/ushis/m3u"
)

// ImportM3U bulk-loads an M3U playlist file into an existing playlist,
// inserting one track per usable entry at the tail of the list. It is
// not part of the OpenHome Playlist service's action surface - SPEC_FULL.md's
// Domain Stack section adds it as a home for github.com/ushis/m3u,
// covering the "how does a playlist's track list get populated in bulk"
// gap spec.md leaves to the Insert action alone.
//
// Local, relative paths are resolved against the M3U file's own
// directory and turned into "file://" UDNs; absolute http(s) URLs are
// used as the UDN unchanged. Entries with any other scheme, or an empty
// path, are skipped and logged, mirroring the original content
// package's playlist loader.
func (c *Catalog) ImportM3U(id ID, m3uPath string) (inserted int, err error) {
	f, err := os.Open(m3uPath)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot open M3U file %q", m3uPath)
	}
	defer f.Close()

	playlist, err := m3u.Parse(f)
	if err != nil {
		return 0, errors.Wrapf(err, "cannot parse M3U file %q", m3uPath)
	}

	ids, err := c.IDArray(id)
	if err != nil {
		return 0, err
	}
	afterID := ID(0)
	if len(ids) > 0 {
		afterID = ids[len(ids)-1]
	}
	for _, item := range playlist {
		udn, ok := resolveM3UPath(m3uPath, item.Path)
		if !ok {
			log.Warnf("skipping M3U entry %q: unusable path", item.Path)
			continue
		}

		newID, err := c.Insert(id, afterID, udn, item.Title)
		if err != nil {
			return inserted, err
		}
		afterID = newID
		inserted++
	}

	return inserted, nil
}

// resolveM3UPath turns an M3U entry's path into a track UDN: absolute
// http(s) URLs pass through unchanged, relative local paths are
// resolved against the M3U file's directory, and every local path is
// turned into a "file://" UDN (absolute paths unchanged otherwise).
func resolveM3UPath(m3uPath, entryPath string) (string, bool) {
	entryPath = strings.TrimSpace(entryPath)
	if entryPath == "" {
		return "", false
	}

	if uri, err := url.ParseRequestURI(entryPath); err == nil && uri.Scheme != "" {
		if uri.Scheme != "http" && uri.Scheme != "https" {
			return "", false
		}
		return entryPath, true
	}

	if !path.IsAbs(entryPath) {
		dir, _ := path.Split(m3uPath)
		entryPath = path.Join(dir, entryPath)
	}
	return "file://" + entryPath, true
}
