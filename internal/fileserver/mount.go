package fileserver

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
)

// Mount implements spec.md §4.2: it binds root and opts into an
// http.Handler that resolves GET/HEAD requests into file responses and
// defers everything else to next. prefix is the URL path this handler is
// bound to (e.g. "/static"); pass "" when it is mounted at the server
// root. next receives requests Mount declines to answer itself: other
// methods when Fallthrough is set, and pre-file errors under the same
// policy (spec.md §4.2, §7).
func Mount(prefix, root string, opts Options, next http.Handler) (http.Handler, error) {
	if root == "" {
		return nil, errors.New("fileserver: root must not be empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if next == nil {
		next = http.HandlerFunc(http.NotFound)
	}
	opts.Root = abs
	return &mount{prefix: prefix, opts: opts, next: next}, nil
}

type mount struct {
	prefix string
	opts   Options
	next   http.Handler
}

func (m *mount) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		if m.opts.Fallthrough {
			m.next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", "GET, HEAD")
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	originalPath := r.URL.EscapedPath()
	pathname := originalPath
	if m.prefix != "" {
		trimmed := strings.TrimPrefix(originalPath, m.prefix)
		if trimmed == originalPath {
			// Routed to us without actually matching our prefix; nothing
			// sensible to serve.
			m.next.ServeHTTP(w, r)
			return
		}
		pathname = trimmed
	}
	if pathname == "" {
		pathname = "/"
	}
	// §4.2 step 3: a bare request for the mount point itself (no trailing
	// slash on the original URL) must fall into the directory-redirect
	// path rather than being treated as already having a trailing slash.
	if pathname == "/" && !strings.HasSuffix(originalPath, "/") {
		pathname = ""
	}

	forwardError := false
	events := Events{
		OnHeaders: m.opts.SetHeaders,
		OnFile: func(string, FileStat) {
			forwardError = true
		},
		OnDirectory: func(w http.ResponseWriter, _ string) {
			m.redirectDirectory(w, originalPath)
		},
		OnError: func(herr HandlerError) {
			if forwardError || herr.StatusCode >= http.StatusInternalServerError || !m.opts.Fallthrough {
				if herr.StatusCode == http.StatusRequestedRangeNotSatisfiable {
					// 416 carries its Content-Range header and no body.
					h := w.Header()
					for name := range h {
						h.Del(name)
					}
					for name, value := range herr.Header {
						h.Set(name, value)
					}
					h.Set("Content-Length", "0")
					w.WriteHeader(herr.StatusCode)
					return
				}
				writeErrorPage(w, herr)
				return
			}
			m.next.ServeHTTP(w, r)
		},
	}

	NewResponder(m.opts, events).Run(w, r, pathname)
}

// redirectDirectory implements spec.md §4.2.1.
func (m *mount) redirectDirectory(w http.ResponseWriter, originalPath string) {
	if strings.HasSuffix(originalPath, "/") || !m.opts.Redirect {
		writeErrorPage(w, newError(http.StatusNotFound, nil))
		return
	}

	location := encodeURL(collapseLeadingSlashes(originalPath + "/"))
	body := renderRedirectPage(location)

	h := w.Header()
	for name := range h {
		h.Del(name)
	}
	setErrorSecurityHeaders(h)
	h.Set("Location", location)
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusMovedPermanently)
	_, _ = w.Write(body)
}
