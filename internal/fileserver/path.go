package fileserver

import (
	"errors"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

var (
	errNulByte   = errors.New("pathname contains a NUL byte")
	errForbidden = errors.New("path traversal outside of root")
)

// resolvedPath is the outcome of path resolution: the filesystem path to
// stat/open, and the decoded path components (for dotfile inspection).
type resolvedPath struct {
	fsPath        string
	components    []string
	trailingSlash bool
}

// containsDotDot reports whether any "/"-separated component of p is
// literally "..", checked lexically before any normalization collapses
// it away.
func containsDotDot(p string) bool {
	for _, c := range strings.Split(p, "/") {
		if c == ".." {
			return true
		}
	}
	return false
}

// resolvePath implements spec.md §4.1 "Path resolution" steps 1-5.
func resolvePath(rawPathname string, root string) (resolvedPath, HandlerError, bool) {
	decoded, err := url.PathUnescape(rawPathname)
	if err != nil {
		return resolvedPath{}, newError(400, err), false
	}
	if strings.ContainsRune(decoded, 0) {
		return resolvedPath{}, newError(400, errNulByte), false
	}
	trailingSlash := strings.HasSuffix(decoded, "/")

	if root != "" {
		// Normalize as if relative to "./<path>", and reject any raw ".."
		// component before joining with root.
		relative := "." + "/" + strings.TrimPrefix(decoded, "/")
		if containsDotDot(relative) {
			return resolvedPath{}, newError(403, errForbidden), false
		}
		trimmed := strings.TrimPrefix(path.Clean("/"+decoded), "/")
		if trimmed == "." {
			trimmed = ""
		}
		var components []string
		if trimmed != "" {
			components = strings.Split(trimmed, "/")
		}
		fsPath := filepath.Join(root, filepath.FromSlash(trimmed))
		return resolvedPath{fsPath: fsPath, components: components, trailingSlash: trailingSlash}, HandlerError{}, true
	}

	// No root: reject raw ".." components, then resolve to an absolute path.
	if containsDotDot(decoded) {
		return resolvedPath{}, newError(403, errForbidden), false
	}
	clean := path.Join("/", decoded)
	trimmed := strings.TrimPrefix(clean, "/")
	var components []string
	if trimmed != "" {
		components = strings.Split(trimmed, "/")
	}
	return resolvedPath{fsPath: clean, components: components, trailingSlash: trailingSlash}, HandlerError{}, true
}

// dotfileComponent reports whether name is a "dotfile component": a path
// segment longer than one character beginning with ".".
func dotfileComponent(name string) bool {
	return len(name) > 1 && name[0] == '.'
}

// checkDotfiles applies the Dotfiles policy (spec.md §4.1 "Dotfile
// policy") to a resolved path's components. ok=false means the request
// must be rejected with the returned HandlerError.
func checkDotfiles(policy DotfilesPolicy, components []string) (HandlerError, bool) {
	switch policy {
	case DotfilesAllow:
		return HandlerError{}, true
	case DotfilesDeny:
		for _, c := range components {
			if dotfileComponent(c) {
				return newError(403, errForbidden), false
			}
		}
		return HandlerError{}, true
	case DotfilesIgnore:
		for _, c := range components {
			if dotfileComponent(c) {
				return newError(404, nil), false
			}
		}
		return HandlerError{}, true
	default: // DotfilesLegacy: only the leading segment is checked.
		if len(components) > 0 && dotfileComponent(components[0]) {
			return newError(404, nil), false
		}
		return HandlerError{}, true
	}
}
