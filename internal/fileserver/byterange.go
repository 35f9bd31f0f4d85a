package fileserver

import (
	"sort"
	"strconv"
	"strings"
)

const (
	rangeMalformed     = -2
	rangeUnsatisfiable = -1
)

// parseByteRanges implements spec.md §4.3's range-parser contract:
// parses a Range header value against size, returning rangeMalformed
// (-2) if the header doesn't even look like "bytes=...", rangeUnsatisfiable
// (-1) if no parsed range is satisfiable, or the ordered list of
// satisfiable ranges (request order preserved) otherwise. When combine is
// true, overlapping or adjacent ranges are merged first and the result is
// stably re-sorted back into the order the client presented.
func parseByteRanges(size int64, header string, combine bool) ([]byteRange, int) {
	const prefix = "bytes="
	trimmed := strings.TrimLeft(header, " ")
	if !strings.HasPrefix(trimmed, prefix) {
		return nil, rangeMalformed
	}
	spec := trimmed[len(prefix):]
	if size == 0 {
		return nil, rangeUnsatisfiable
	}

	type indexed struct {
		r   byteRange
		idx int
	}
	var parsed []indexed
	for i, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dash := strings.IndexByte(part, '-')
		if dash < 0 {
			continue
		}
		startStr, endStr := part[:dash], part[dash+1:]

		var start, end int64
		switch {
		case startStr == "" && endStr == "":
			continue
		case startStr == "":
			// "-nnn": last nnn bytes.
			n, err := strconv.ParseInt(endStr, 10, 64)
			if err != nil || n <= 0 {
				continue
			}
			if n > size {
				n = size
			}
			start = size - n
			end = size - 1
		case endStr == "":
			// "nnn-": from nnn through the end.
			n, err := strconv.ParseInt(startStr, 10, 64)
			if err != nil || n < 0 {
				continue
			}
			if n >= size {
				continue // unsatisfiable entry, simply dropped
			}
			start = n
			end = size - 1
		default:
			s, err1 := strconv.ParseInt(startStr, 10, 64)
			e, err2 := strconv.ParseInt(endStr, 10, 64)
			if err1 != nil || err2 != nil || s < 0 || s > e {
				continue
			}
			if s >= size {
				continue
			}
			start = s
			end = e
			if end > size-1 {
				end = size - 1
			}
		}
		parsed = append(parsed, indexed{byteRange{Start: start, End: end}, i})
	}

	if len(parsed) == 0 {
		return nil, rangeUnsatisfiable
	}

	if combine {
		sort.Slice(parsed, func(i, j int) bool { return parsed[i].r.Start < parsed[j].r.Start })
		merged := make([]indexed, 0, len(parsed))
		for _, p := range parsed {
			if n := len(merged); n > 0 && p.r.Start <= merged[n-1].r.End+1 {
				if p.r.End > merged[n-1].r.End {
					merged[n-1].r.End = p.r.End
				}
				if p.idx < merged[n-1].idx {
					merged[n-1].idx = p.idx
				}
				continue
			}
			merged = append(merged, p)
		}
		parsed = merged
	}

	// Stable-sort back into the order the client originally presented,
	// per spec.md's design note: the output preserves client order via a
	// stable sort key (the minimum original index contributing to each
	// merged range).
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].idx < parsed[j].idx })

	out := make([]byteRange, len(parsed))
	for i, p := range parsed {
		out[i] = p.r
	}
	return out, len(out)
}
