// Package fileserver implements an HTTP static-file responder: given a
// request and a filesystem root, it produces a complete, correctly formed
// HTTP response — a streamed file, a cache-validation reply, a redirect,
// or a well-formed error. It owns only the file-serving decision and its
// response; the caller owns the server loop, TLS, and routing.
package fileserver

import (
	"net/http"
	"time"
)

// DotfilesPolicy controls how path components beginning with "." are
// treated.
type DotfilesPolicy int

const (
	// DotfilesLegacy is the default: only the leading path segment is
	// checked, so files under a dot-prefixed directory deeper in the path
	// (e.g. /a/.hidden/file) remain reachable. Kept distinct from DotfilesIgnore for backward
	// compatibility with callers that rely on this quirk.
	DotfilesLegacy DotfilesPolicy = iota
	DotfilesAllow
	DotfilesDeny
	DotfilesIgnore
)

// maxMaxAgeMillis is the upper clamp for Options.MaxAge: one year, in
// milliseconds.
const maxMaxAgeMillis int64 = 31_536_000_000

// Options configures a Responder or Mount. The zero value is not ready to
// use; call NewOptions to get the documented defaults.
type Options struct {
	// AcceptRanges advertises and honors the Range header.
	AcceptRanges bool
	// CacheControl emits a Cache-Control header.
	CacheControl bool
	// ETag emits an ETag header.
	ETag bool
	// LastModified emits a Last-Modified header.
	LastModified bool
	// MaxAge is clamped to [0, 31_536_000_000] milliseconds. Negative
	// values are treated as 0.
	MaxAge time.Duration
	// Dotfiles selects the dotfile access policy.
	Dotfiles DotfilesPolicy
	// Extensions are tried, in order, as suffixes when the bare path
	// does not exist.
	Extensions []string
	// Index is the ordered list of index file names tried when a
	// pathname ends in "/".
	Index []string
	// Root sandboxes path resolution to this absolute directory. When
	// empty, no sandboxing is performed (paths resolve to an absolute
	// path on the host filesystem).
	Root string
	// Redirect controls whether Mount redirects bare directory requests
	// to a trailing-slash URL.
	Redirect bool
	// Fallthrough controls whether Mount defers non-GET/HEAD requests
	// and pre-file errors to the next handler instead of answering them
	// itself.
	Fallthrough bool
	// Immutable appends ", immutable" to Cache-Control when MaxAge > 0.
	Immutable bool
	// SetHeaders is a synchronous, late-binding hook invoked after the
	// base response headers are composed but before conditional-GET and
	// Range logic run. It must not block or spawn work that could race
	// with the response.
	SetHeaders func(w http.ResponseWriter, path string, stat FileStat)
	// Start and End describe the byte window of the file the Responder
	// is willing to serve, applied before Range processing. End is
	// inclusive; a nil End means "through the end of the file".
	Start uint64
	End   *uint64
}

// NewOptions returns Options populated with the documented defaults.
func NewOptions() Options {
	return Options{
		AcceptRanges: true,
		CacheControl: true,
		ETag:         true,
		LastModified: true,
		MaxAge:       0,
		Dotfiles:     DotfilesLegacy,
		Index:        []string{"index.html"},
		Redirect:     true,
		Fallthrough:  true,
	}
}

// clampedMaxAgeMillis returns o.MaxAge clamped into [0, 31_536_000_000]
// milliseconds, per spec: negative or otherwise invalid durations become 0.
func (o Options) clampedMaxAgeMillis() int64 {
	ms := o.MaxAge.Milliseconds()
	if ms < 0 {
		return 0
	}
	if ms > maxMaxAgeMillis {
		return maxMaxAgeMillis
	}
	return ms
}
