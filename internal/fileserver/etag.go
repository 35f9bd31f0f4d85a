package fileserver

import "strconv"

// etag produces a strong-syntax ETag from a file's size and modification
// time (as a Unix timestamp), without reading its contents — the same
// efficiency tradeoff the teacher corpus's own etag helpers make
// (caddyserver-caddy's staticfiles.calculateEtag, the teacher's own
// deploymentID+path identity tag). Format: "<size>-<mtime-hex>".
func etag(size int64, mtimeUnix int64) string {
	return `"` + strconv.FormatInt(size, 10) + "-" + strconv.FormatInt(mtimeUnix, 16) + `"`
}
