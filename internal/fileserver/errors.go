package fileserver

import (
	"errors"
	"fmt"
	weakrand "math/rand"
	"net/http"
)

// errHeadersSent is the programmer-error case spec.md §4.1.3 step 1 and
// §9 single out: serve was entered a second time after headers were
// already written.
var errHeadersSent = errors.New("can't set headers after they are sent")

// HandlerError carries an HTTP status code and the error that produced
// it, plus any response headers that must accompany it (e.g.
// Content-Range on a 416). It is the value delivered to Events.OnError,
// and the value rendered into the canonical HTML error page when no
// OnError observer is attached.
type HandlerError struct {
	StatusCode int
	Err        error
	Header     map[string]string // extra headers to set before the body (e.g. "Content-Range", "Allow")
	id         string
}

// newError builds a HandlerError for statusCode wrapping err. err may be
// nil, in which case the status text is used as the message.
func newError(statusCode int, err error) HandlerError {
	if err == nil {
		err = errors.New(http.StatusText(statusCode))
	}
	return HandlerError{
		StatusCode: statusCode,
		Err:        err,
		id:         randID(8),
	}
}

func (e HandlerError) withHeader(name, value string) HandlerError {
	if e.Header == nil {
		e.Header = make(map[string]string, 1)
	}
	e.Header[name] = value
	return e
}

// Message returns the bare error text, without the correlation id or
// status code prefix Error() adds — this is what the canonical HTML
// error page renders (spec.md §6).
func (e HandlerError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e HandlerError) Error() string {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("{id=%s} HTTP %d: %s", e.id, e.StatusCode, msg)
}

func (e HandlerError) Unwrap() error { return e.Err }

// randID returns a short, non-cryptographic identifier used to correlate
// an error across logs; it excludes easily-confused characters.
func randID(n int) string {
	const dict = "abcdefghijkmnpqrstuvwxyz0123456789"
	b := make([]byte, n)
	for i := range b {
		//nolint:gosec // not security sensitive, just a log-correlation id
		b[i] = dict[weakrand.Int63()%int64(len(dict))]
	}
	return string(b)
}
