package fileserver

import "strings"

// collapseLeadingSlashes replaces a run of two or more leading "/" with a
// single one, preventing path-based open redirects through a Location
// header built from attacker-controlled input (spec.md §4.3).
func collapseLeadingSlashes(s string) string {
	i := 0
	for i < len(s) && s[i] == '/' {
		i++
	}
	if i <= 1 {
		return s
	}
	return "/" + s[i:]
}

const upperhex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '~', '!', '*', '\'', '(', ')',
		';', ':', '@', '&', '=', '+', '$', ',', '/', '?', '#', '[', ']':
		// Everything encodeURI in the source library leaves alone. '%' is
		// handled by encodeURL itself.
		return true
	}
	return false
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// encodeURL idempotently percent-encodes s: bytes outside the set a
// browser's encodeURI leaves alone are escaped, except that a "%" which
// begins a valid percent-triplet (e.g. "%2F") is left untouched so that
// encodeURL(encodeURL(x)) == encodeURL(x), matching the source library's
// encodeurl contract (spec.md §4.3, §8).
func encodeURL(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(c)
			continue
		}
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}
