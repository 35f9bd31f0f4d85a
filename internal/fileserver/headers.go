package fileserver

import (
	"net/http"
	"strconv"
	"strings"
)

// setIfAbsent sets h[name] = value only if the header is not already
// present, matching spec.md §4.1.3 step 2 ("each only if not already
// present on response").
func setIfAbsent(h http.Header, name, value string) {
	if h.Get(name) == "" {
		h.Set(name, value)
	}
}

// composeHeaders writes the base response headers for a file about to be
// served: Accept-Ranges, Cache-Control, Last-Modified, ETag, and
// Content-Type, each gated by the matching Option and each left alone if
// the caller already set it. Returns the ETag value actually on the
// response (for later conditional-GET comparisons), which may have been
// set by a previous caller rather than by this call.
func composeHeaders(h http.Header, opts Options, path string, stat FileStat) (etagValue string) {
	if opts.AcceptRanges {
		setIfAbsent(h, "Accept-Ranges", "bytes")
	}
	if opts.CacheControl {
		cc := "public, max-age=" + strconv.FormatInt(opts.clampedMaxAgeMillis()/1000, 10)
		if opts.Immutable && opts.clampedMaxAgeMillis() > 0 {
			cc += ", immutable"
		}
		setIfAbsent(h, "Cache-Control", cc)
	}
	if opts.LastModified {
		setIfAbsent(h, "Last-Modified", stat.ModTime.UTC().Format(http.TimeFormat))
	}
	if opts.ETag {
		setIfAbsent(h, "ETag", etag(stat.Size, stat.ModTime.Unix()))
	}
	if h.Get("Content-Type") == "" {
		if ct, ok := contentType(path); ok {
			h.Set("Content-Type", ct)
		}
	}
	return h.Get("ETag")
}

// stripContentHeaders removes all "Content-*" response headers except
// Content-Location, per spec.md §6's 304 contract.
func stripContentHeaders(h http.Header) {
	loc := h.Get("Content-Location")
	for name := range h {
		if strings.HasPrefix(name, "Content-") && !strings.EqualFold(name, "Content-Location") {
			h.Del(name)
		}
	}
	if loc != "" {
		h.Set("Content-Location", loc)
	}
}
