package catalog

// ID identifies a playlist or a track within the scope of its owning
// container. Playlist ids are never reused within a process lifetime;
// track ids are unique only within one in-memory PlaylistData and are
// minted afresh when a track list is reloaded. Zero is the sentinel
// value meaning "none" / "before the first element", and is never
// handed out by an IdGenerator.
type ID uint32

// IdGenerator hands out strictly increasing, never-reused ids. Each
// Catalog owns one IdGenerator for playlist ids, and each PlaylistData
// owns one for the ids of the tracks it holds.
//
// Track ids are not stable across a process restart: a PlaylistData
// loaded from its persisted file re-mints fresh ids for every track it
// parses, seeded from 1, exactly as the original implementation does.
// Playlist ids, in contrast, are recovered from the persisted catalog
// table of contents at startup so they do survive a restart.
type IdGenerator struct {
	next ID
}

// NewIdGenerator returns a generator whose first Next() call yields 1.
func NewIdGenerator() *IdGenerator {
	return &IdGenerator{next: 1}
}

// NewIdGeneratorFrom returns a generator whose first Next() call yields
// watermark+1. Used to recover a generator's state from the highest id
// observed in a persisted representation.
func NewIdGeneratorFrom(watermark ID) *IdGenerator {
	return &IdGenerator{next: watermark + 1}
}

// Next returns the next id and advances the generator.
func (g *IdGenerator) Next() ID {
	id := g.next
	g.next++
	return id
}

// Observe advances the generator's watermark so that Next() will never
// return an id less than or equal to id. Used while replaying a
// persisted list of ids whose maximum is only known once the whole list
// has been read.
func (g *IdGenerator) Observe(id ID) {
	if id >= g.next {
		g.next = id + 1
	}
}
