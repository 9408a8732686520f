package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestNewPlaylistHeaderFilename(t *testing.T) {
	h, err := newPlaylistHeader(42, "name", "desc", 7)
	if err != nil {
		t.Fatal(err)
	}
	if h.Filename() != "42.txt" {
		t.Fatalf("Filename() = %q, want 42.txt", h.Filename())
	}
	if h.ImageID() != 7 {
		t.Fatalf("ImageID() = %d, want 7", h.ImageID())
	}
}

func TestNewPlaylistHeaderRejectsOversizedName(t *testing.T) {
	name := strings.Repeat("n", maxNameBytes+1)
	_, err := newPlaylistHeader(1, name, "", 0)
	assertInvalidRequest(t, err)
}

func TestNewPlaylistHeaderRejectsOversizedDescription(t *testing.T) {
	desc := strings.Repeat("d", maxDescriptionBytes+1)
	_, err := newPlaylistHeader(1, "", desc, 0)
	assertInvalidRequest(t, err)
}

func TestPlaylistHeaderSetNameValidates(t *testing.T) {
	h, _ := newPlaylistHeader(1, "ok", "ok", 0)
	if err := h.SetName(strings.Repeat("n", maxNameBytes+1)); err == nil {
		t.Fatal("expected error for oversized name")
	}
	if err := h.SetName("new name"); err != nil {
		t.Fatal(err)
	}
	if h.Name() != "new name" {
		t.Fatalf("Name() = %q", h.Name())
	}
}

func assertInvalidRequest(t *testing.T, err error) {
	t.Helper()
	var cErr *CatalogError
	if !errors.As(err, &cErr) {
		t.Fatalf("error %v does not unwrap to *CatalogError", err)
	}
	if cErr.Code != CodeInvalidRequest {
		t.Fatalf("Code = %v, want InvalidRequest", cErr.Code)
	}
}
