package fileserver

import (
	"mime"
	"path/filepath"
	"strings"
	"sync"
)

var registerExtraTypesOnce sync.Once

// registerExtraTypes seeds mime.TypeByExtension with a handful of
// extensions that vary across host /etc/mime.types files (and are
// missing entirely on some platforms), the same small gap the teacher's
// own static-serving code works around by calling mime.AddExtensionType
// for types it cares about.
func registerExtraTypes() {
	for ext, typ := range map[string]string{
		".wasm": "application/wasm",
		".mjs":  "text/javascript; charset=utf-8",
		".map":  "application/json; charset=utf-8",
		".avif": "image/avif",
		".webp": "image/webp",
	} {
		_ = mime.AddExtensionType(ext, typ)
	}
}

// contentType implements the mime(path) -> Option<string> contract: a
// pure lookup keyed on the file's extension only, never its content.
func contentType(path string) (string, bool) {
	registerExtraTypesOnce.Do(registerExtraTypes)
	ext := filepath.Ext(path)
	if ext == "" {
		return "", false
	}
	typ := mime.TypeByExtension(ext)
	if typ == "" {
		return "", false
	}
	if strings.HasPrefix(typ, "text/") && !strings.Contains(typ, "charset") {
		typ += "; charset=utf-8"
	}
	return typ, true
}
