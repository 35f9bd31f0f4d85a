package fileserver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// statResult is the outcome of probing a candidate path on disk.
type statResult struct {
	path string
	stat FileStat
}

// isNotFoundClass reports whether err corresponds to one of the three
// stat/open failures spec.md §4.1.2 maps to 404: ENOENT, ENOTDIR, or
// ENAMETOOLONG.
func isNotFoundClass(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, syscall.ENOTDIR) ||
		errors.Is(err, syscall.ENAMETOOLONG)
}

// classifyStatError maps a stat/open error to the status code spec.md
// §4.1.2 assigns it: ENAMETOOLONG|ENOENT|ENOTDIR -> 404, anything else
// -> 500.
func classifyStatError(err error) int {
	if isNotFoundClass(err) {
		return 404
	}
	return 500
}

func toFileStat(info os.FileInfo) FileStat {
	return FileStat{Size: info.Size(), ModTime: info.ModTime(), IsDirectory: info.IsDir()}
}

// probeIndex implements spec.md §4.1.1: try each index name under dir in
// order, serving the first non-directory hit. ENOENT/ENOTDIR/ENAMETOOLONG
// are skipped; any other stat error stops the probe and is surfaced.
func probeIndex(dir string, names []string) (statResult, HandlerError, bool) {
	for _, name := range names {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil {
			if isNotFoundClass(err) {
				continue
			}
			return statResult{}, newError(classifyStatError(err), err), false
		}
		if info.IsDir() {
			continue
		}
		return statResult{path: candidate, stat: toFileStat(info)}, HandlerError{}, true
	}
	return statResult{}, newError(404, nil), false
}

// probeFile implements spec.md §4.1.2: stat the bare path; on ENOENT with
// no extension and no trailing separator, try each configured extension
// as a suffix. The fourth return value reports whether the bare path
// resolved to a directory.
func probeFile(fsPath string, extensions []string, trailingSlash bool) (statResult, HandlerError, bool, bool) {
	info, err := os.Stat(fsPath)
	if err == nil {
		return statResult{path: fsPath, stat: toFileStat(info)}, HandlerError{}, true, info.IsDir()
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return statResult{}, newError(classifyStatError(err), err), false, false
	}
	if filepath.Ext(fsPath) != "" || trailingSlash {
		return statResult{}, newError(404, err), false, false
	}
	for _, ext := range extensions {
		candidate := fsPath + "." + strings.TrimPrefix(ext, ".")
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}
		return statResult{path: candidate, stat: toFileStat(info)}, HandlerError{}, true, false
	}
	return statResult{}, newError(404, err), false, false
}
