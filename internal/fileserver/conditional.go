package fileserver

import (
	"net/http"
	"strings"
	"time"
)

// parseTokenList splits an HTTP list header on commas and trims ASCII
// spaces from each token, per spec.md §4.3. An empty final token is kept
// only when the source ended with a separator (so "a," yields ["a", ""]
// while "a" yields ["a"]).
func parseTokenList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.Trim(p, " \t"))
	}
	return out
}

// etagMatches implements the strong-equality-with-weak-prefix comparison
// spec.md §4.1.3 describes for If-Match: tok == etag, or "W/"+etag ==
// tok, or tok == "W/"+etag.
func etagMatches(tok, currentETag string) bool {
	if tok == "*" {
		return currentETag != ""
	}
	if tok == currentETag {
		return true
	}
	if "W/"+currentETag == tok {
		return true
	}
	if tok == "W/"+currentETag {
		return true
	}
	return false
}

// checkPreconditions implements spec.md §4.1.3 step 3. ok=false means
// respond 412 immediately. notModified=true means respond 304 (caller
// strips Content-* headers and writes no body).
func checkPreconditions(h http.Header, currentETag string, lastModified time.Time, hasLastModified bool) (ok bool, notModified bool) {
	ifMatch := h.Get("If-Match")
	ifUnmodifiedSince := h.Get("If-Unmodified-Since")
	ifNoneMatch := h.Get("If-None-Match")
	ifModifiedSince := h.Get("If-Modified-Since")

	if ifMatch != "" && ifMatch != "*" {
		matched := false
		for _, tok := range parseTokenList(ifMatch) {
			if etagMatches(tok, currentETag) {
				matched = true
				break
			}
		}
		if !matched || currentETag == "" {
			return false, false
		}
	} else if ifMatch == "*" && currentETag == "" {
		return false, false
	}

	if ifUnmodifiedSince != "" {
		t, err := http.ParseTime(ifUnmodifiedSince)
		if err == nil {
			if !hasLastModified || lastModified.Truncate(time.Second).After(t) {
				return false, false
			}
		}
	}

	if ifNoneMatch != "" || ifModifiedSince != "" {
		if fresh(ifNoneMatch, ifModifiedSince, currentETag, lastModified, hasLastModified) {
			return true, true
		}
	}

	return true, false
}

// fresh implements the external fresh(request_headers, validators)
// contract (spec.md §1): reports whether the client's cached
// representation (per If-None-Match / If-Modified-Since) is still
// current.
func fresh(ifNoneMatch, ifModifiedSince string, currentETag string, lastModified time.Time, hasLastModified bool) bool {
	if ifNoneMatch != "" {
		if ifNoneMatch == "*" {
			return currentETag != ""
		}
		for _, tok := range parseTokenList(ifNoneMatch) {
			if etagMatches(tok, currentETag) {
				return true
			}
		}
		return false
	}
	if ifModifiedSince != "" && hasLastModified {
		t, err := http.ParseTime(ifModifiedSince)
		if err != nil {
			return false
		}
		return !lastModified.Truncate(time.Second).After(t)
	}
	return false
}
