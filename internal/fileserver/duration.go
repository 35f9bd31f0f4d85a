package fileserver

import (
	"strconv"
	"time"
)

// parseDuration parses a human-readable max-age value into a duration in
// milliseconds, matching spec.md's ms(string) -> Option<u64 ms> contract.
// Plain integers are taken as milliseconds (matching the "ms" npm
// package's default unit); anything parseable by time.ParseDuration
// ("2h45m", "500ms", "1s") is honored as well. Invalid or negative input
// reports ok=false.
func parseDuration(s string) (ms int64, ok bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, false
		}
		return n, true
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, false
	}
	return d.Milliseconds(), true
}

// ParseMaxAge is the exported form of parseDuration, for callers (such as
// config loading) that need to turn a human-written max-age string into
// an Options.MaxAge value.
func ParseMaxAge(s string) (time.Duration, bool) {
	ms, ok := parseDuration(s)
	if !ok {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}
