package catalog

import "fmt"

// Code is the UPnP error code family a CatalogError maps to. The numeric
// values match the errors defined by the OpenHome Playlist service
// (kIdNotFound, kPlaylistFull, kInvalidRequest).
type Code int

const (
	// CodeNotFound means a playlist id or track id referenced by a
	// mutation or read could not be found.
	CodeNotFound Code = 800
	// CodeFull means a playlist's track list, or the catalog's playlist
	// list, is already at its maximum size.
	CodeFull Code = 801
	// CodeInvalidRequest means the caller supplied a malformed id list
	// or an id count exceeding the protocol limit.
	CodeInvalidRequest Code = 802
	// CodePersistence means a read or write against the persisted
	// representation failed. Write-time failures are surfaced to the
	// caller; read-time failures during startup recovery are logged and
	// the offending entry is skipped.
	CodePersistence Code = 900
	// CodeParse means a persisted file or filename could not be parsed.
	// It is returned on read paths: a lazy track-list load surfaces it to
	// the caller, while parse failures during startup recovery are logged
	// and skipped, yielding a partial catalog.
	CodeParse Code = 901
)

func (c Code) String() string {
	switch c {
	case CodeNotFound:
		return "NotFound"
	case CodeFull:
		return "Full"
	case CodeInvalidRequest:
		return "InvalidRequest"
	case CodePersistence:
		return "Persistence"
	case CodeParse:
		return "Parse"
	default:
		return "Unknown"
	}
}

// CatalogError is the sentinel error type returned by every catalog
// operation that fails for a reason the caller is expected to handle
// (as opposed to a programmer error, which panics). Use errors.As to
// recover it through any errors.Wrap layers added above the call site.
type CatalogError struct {
	Code Code
	Msg  string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func newErr(code Code, format string, a ...interface{}) *CatalogError {
	return &CatalogError{Code: code, Msg: fmt.Sprintf(format, a...)}
}

func errNotFound(format string, a ...interface{}) error {
	return newErr(CodeNotFound, format, a...)
}

func errFull(format string, a ...interface{}) error {
	return newErr(CodeFull, format, a...)
}

func errInvalidRequest(format string, a ...interface{}) error {
	return newErr(CodeInvalidRequest, format, a...)
}

func errPersistence(format string, a ...interface{}) error {
	return newErr(CodePersistence, format, a...)
}

func errParse(format string, a ...interface{}) error {
	return newErr(CodeParse, format, a...)
}
