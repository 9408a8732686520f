package catalog

import (
	"strings"
	"testing"
)

func TestCondenseMetadataUnderLimit(t *testing.T) {
	small := "<DIDL-Lite/>"
	if got := condenseMetadata(small); got != small {
		t.Fatalf("condenseMetadata(small) = %q, want unchanged", got)
	}
}

func TestCondenseMetadataOverLimit(t *testing.T) {
	big := strings.Repeat("x", maxMetadataBytes+1)
	got := condenseMetadata(big)
	if got != condensedMetadata {
		t.Fatalf("condenseMetadata(big) did not substitute the sentinel fragment")
	}
}

func TestNewTrackCondensesMetadata(t *testing.T) {
	big := strings.Repeat("y", maxMetadataBytes+1)
	tr := newTrack(1, "file://a.flac", big)
	if tr.Metadata() != condensedMetadata {
		t.Fatal("newTrack did not condense oversized metadata")
	}
	if tr.Udn() != "file://a.flac" {
		t.Fatalf("Udn() = %q", tr.Udn())
	}
	if tr.ID() != 1 {
		t.Fatalf("ID() = %d, want 1", tr.ID())
	}
}
