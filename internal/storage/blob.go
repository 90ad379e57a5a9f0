// Package storage supplies report files to the batch importer and receives
// exported reports, from the local disk or an S3-compatible bucket.
package storage

import (
	"errors"
	"mime"
	"path/filepath"
	"strings"
)

// MaxBlobSize caps how much of a single file is read into memory.
const MaxBlobSize = 64 << 20

// ErrTooLarge is returned for files above MaxBlobSize.
var ErrTooLarge = errors.New("file exceeds size limit")

// Blob is one named file held in memory.
type Blob struct {
	Name        string
	ContentType string
	Data        []byte

	// Err is set when the file could not be read. The importer counts such
	// blobs as rejected instead of failing the whole batch.
	Err error
}

// Ext returns the lower-cased extension of the blob name.
func (b Blob) Ext() string {
	return strings.ToLower(filepath.Ext(b.Name))
}

func contentTypeFor(name string) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if ct == "" {
		return "application/octet-stream"
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
