package fileserver

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Responder is the per-request state machine (spec.md §4.1): given a
// request, a pathname, and Options, it resolves the path, probes the
// filesystem, evaluates conditional-GET and Range, and streams the
// response. A Responder holds no state between requests; create one per
// request with NewResponder.
type Responder struct {
	Options Options
	Events  Events
}

// NewResponder builds a Responder over opts, firing the callbacks in
// events at the lifecycle points documented on the Events type.
func NewResponder(opts Options, events Events) *Responder {
	return &Responder{Options: opts, Events: events}
}

// Run resolves pathname against the Responder's Options and writes (or
// delegates) exactly one response: an error, a directory event, a
// not-modified reply, or a file body. pathname is the percent-encoded
// request path, as Mount extracts it from the request URL.
func (re *Responder) Run(w http.ResponseWriter, r *http.Request, pathname string) {
	tw := newTrackingWriter(w)

	resolved, herr, ok := resolvePath(pathname, re.Options.Root)
	if !ok {
		re.fail(tw, herr)
		return
	}
	if herr, ok := checkDotfiles(re.Options.Dotfiles, resolved.components); !ok {
		re.fail(tw, herr)
		return
	}

	var result statResult
	if resolved.trailingSlash && len(re.Options.Index) > 0 {
		var ok bool
		result, herr, ok = probeIndex(resolved.fsPath, re.Options.Index)
		if !ok {
			re.fail(tw, herr)
			return
		}
	} else {
		var ok, isDir bool
		result, herr, ok, isDir = probeFile(resolved.fsPath, re.Options.Extensions, resolved.trailingSlash)
		if !ok {
			re.fail(tw, herr)
			return
		}
		if isDir {
			if re.Events.OnDirectory != nil {
				re.Events.OnDirectory(tw, resolved.fsPath)
			} else {
				re.fail(tw, newError(404, nil))
			}
			return
		}
	}

	re.serve(tw, r, result.path, result.stat)
}

// effectiveWindow computes the byte offset and length of the file this
// Responder is willing to serve, from Options.Start/End, before Range
// processing narrows it further (spec.md §4.1.3, "Effective window").
func (re *Responder) effectiveWindow(size int64) (offset, length int64) {
	offset = int64(re.Options.Start)
	if offset > size {
		offset = size
	}
	length = size - offset
	if re.Options.End != nil {
		window := int64(*re.Options.End) - int64(re.Options.Start) + 1
		if window < 0 {
			window = 0
		}
		if window < length {
			length = window
		}
	}
	if length < 0 {
		length = 0
	}
	return offset, length
}

func (re *Responder) serve(w *trackingWriter, r *http.Request, path string, stat FileStat) {
	if w.wroteHeader {
		re.fail(w, newError(500, errHeadersSent))
		return
	}

	offset, length := re.effectiveWindow(stat.Size)

	h := w.Header()
	etagValue := composeHeaders(h, re.Options, path, stat)
	if re.Events.OnHeaders != nil {
		re.Events.OnHeaders(w, path, stat)
	}
	if re.Events.OnFile != nil {
		re.Events.OnFile(path, stat)
	}

	ok, notModified := checkPreconditions(r.Header, etagValue, stat.ModTime, re.Options.LastModified)
	if !ok {
		re.fail(w, newError(412, nil))
		return
	}
	if notModified {
		stripContentHeaders(h)
		w.WriteHeader(http.StatusNotModified)
		if re.Events.OnEnd != nil {
			re.Events.OnEnd()
		}
		return
	}

	status := http.StatusOK
	if rangeHeader := r.Header.Get("Range"); re.Options.AcceptRanges && rangeHeader != "" {
		var ok bool
		status, offset, length, ok = re.applyRange(w, r, rangeHeader, etagValue, stat.ModTime, length, offset)
		if !ok {
			return // 416 already written (or delivered to the error observer)
		}
	}

	h.Set("Content-Length", strconv.FormatInt(length, 10))

	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		if re.Events.OnEnd != nil {
			re.Events.OnEnd()
		}
		return
	}

	w.WriteHeader(status)
	re.stream(w, r, path, offset, length)
}

// applyRange implements spec.md §4.1.3 step 4. The returned ok is false
// when the range was unsatisfiable and the 416 response has already been
// finalized (built-in or via the error observer); the caller must not
// write anything further in that case.
func (re *Responder) applyRange(w *trackingWriter, r *http.Request, rangeHeader, etagValue string, lastModified time.Time, length, offset int64) (status int, newOffset, newLength int64, ok bool) {
	if ifRange := r.Header.Get("If-Range"); ifRange != "" {
		var fresh bool
		if strings.ContainsRune(ifRange, '"') {
			fresh = ifRange == etagValue
		} else if t, err := http.ParseTime(ifRange); err == nil {
			fresh = !lastModified.Truncate(time.Second).After(t)
		}
		if !fresh {
			return http.StatusOK, offset, length, true
		}
	}

	ranges, n := parseByteRanges(length, rangeHeader, true)
	switch n {
	case rangeUnsatisfiable:
		re.failRangeNotSatisfiable(w, length)
		return 0, 0, 0, false
	case rangeMalformed:
		return http.StatusOK, offset, length, true
	case 1:
		rg := ranges[0]
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", rg.Start, rg.End, length))
		return http.StatusPartialContent, offset + rg.Start, rg.length(), true
	default:
		// Multiple ranges: fall back to a full 200 body rather than
		// multipart/byteranges (spec.md §9, open question).
		return http.StatusOK, offset, length, true
	}
}

func (re *Responder) stream(w *trackingWriter, r *http.Request, path string, offset, length int64) {
	f, err := os.Open(path)
	if err != nil {
		re.streamError(newError(500, err))
		return
	}
	defer f.Close()

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		re.streamError(newError(500, err))
		return
	}

	reader := &boundedReader{r: f, remaining: length}
	if re.Events.OnStream != nil {
		re.Events.OnStream(reader)
	}
	if err := pipeStream(r.Context(), w, reader); err != nil {
		re.streamError(newError(500, err))
		return
	}
	if re.Events.OnEnd != nil {
		re.Events.OnEnd()
	}
}

// fail delivers herr to the error observer if one is attached, otherwise
// writes the canonical HTML error page (spec.md §6, §7).
func (re *Responder) fail(w *trackingWriter, herr HandlerError) {
	if re.Events.OnError != nil {
		re.Events.OnError(herr)
		return
	}
	writeErrorPage(w, herr)
}

// streamError reports a post-headers failure: it never attempts to write
// another status line (spec.md §4.1.3 "Streaming"), only notifying the
// error observer if one is attached.
func (re *Responder) streamError(herr HandlerError) {
	if re.Events.OnError != nil {
		re.Events.OnError(herr)
	}
}

// failRangeNotSatisfiable implements the no-body 416 response spec.md
// §4.1.3 step 4 requires — distinct from the generic HTML error page,
// which every other status renders.
func (re *Responder) failRangeNotSatisfiable(w *trackingWriter, length int64) {
	herr := newError(http.StatusRequestedRangeNotSatisfiable, nil).
		withHeader("Content-Range", fmt.Sprintf("bytes */%d", length))
	if re.Events.OnError != nil {
		re.Events.OnError(herr)
		return
	}
	h := w.Header()
	for name := range h {
		h.Del(name)
	}
	for name, value := range herr.Header {
		h.Set(name, value)
	}
	h.Set("Content-Length", "0")
	w.WriteHeader(herr.StatusCode)
}

// writeErrorPage clears any previously-set headers, applies the error's
// own headers, and renders the canonical HTML error body (spec.md §6).
// It takes the http.ResponseWriter interface (not *trackingWriter)
// because Mount's directory-redirect policy also calls it directly.
func writeErrorPage(w http.ResponseWriter, herr HandlerError) {
	h := w.Header()
	for name := range h {
		h.Del(name)
	}
	for name, value := range herr.Header {
		h.Set(name, value)
	}
	setErrorSecurityHeaders(h)
	body := renderErrorPage(herr.Message())
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(herr.StatusCode)
	_, _ = w.Write(body)
}
