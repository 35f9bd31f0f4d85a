package fileserver

import (
	"io"
	"net/http"
	"time"
)

// FileStat is the subset of file metadata the responder needs to compose
// headers and drive streaming.
type FileStat struct {
	Size        int64
	ModTime     time.Time
	IsDirectory bool
}

// byteRange is a half-open-free, inclusive byte range: both Start and End
// are included in the window, with Start <= End.
type byteRange struct {
	Start, End int64
}

func (r byteRange) length() int64 { return r.End - r.Start + 1 }

// Events is a struct of optional callbacks a caller can attach to a
// Responder to observe (or take over) its lifecycle. Each field defaults
// to a no-op when nil. This replaces the source library's event-emitter
// semantics with a fixed, ordered set of hooks: within one request,
// callbacks fire either as OnDirectory alone (terminal; OnHeaders does not
// fire for a directory) or in the order OnHeaders, OnFile, OnStream, ...,
// OnEnd. OnError can preempt any later event; once it fires, no further
// callback runs.
type Events struct {
	// OnHeaders fires once base response headers are composed, before
	// any conditional-GET or Range logic runs.
	OnHeaders func(w http.ResponseWriter, path string, stat FileStat)
	// OnFile fires once a concrete file has been chosen to serve (after
	// index/extension probing, before headers are sent).
	OnFile func(path string, stat FileStat)
	// OnStream fires when the bounded file reader begins piping into the
	// response.
	OnStream func(r io.Reader)
	// OnDirectory fires when the resolved path is a directory and no
	// index file will be served; the observer decides the response
	// (e.g. Mount's redirect-or-404 policy).
	OnDirectory func(w http.ResponseWriter, path string)
	// OnEnd fires once the response body has been fully written.
	OnEnd func()
	// OnError fires instead of the built-in HTML error writer when set;
	// no response is written by the Responder in that case.
	OnError func(err HandlerError)
}
