// Package storage is the blob-storage collaborator used for post images.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage stores an uploaded blob and returns the public reference for it.
type Storage interface {
	Store(src io.Reader, suggestedName string) (string, error)
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Local writes blobs under baseDir/YYYY/MM/DD and serves them from urlPrefix.
type Local struct {
	baseDir   string
	urlPrefix string
	maxBytes  int64
	now       func() time.Time
}

// NewLocal creates a Local store. maxBytes <= 0 disables the size cap.
func NewLocal(baseDir, urlPrefix string, maxBytes int64) *Local {
	return &Local{baseDir: baseDir, urlPrefix: urlPrefix, maxBytes: maxBytes, now: time.Now}
}

// Store saves the blob with a collision-free name and returns its public URL
// path. Non-image extensions and oversized blobs are rejected.
func (l *Local) Store(src io.Reader, suggestedName string) (string, error) {
	name := filepath.Base(strings.TrimSpace(suggestedName))
	ext := strings.ToLower(filepath.Ext(name))
	if !imageExtensions[ext] {
		return "", fmt.Errorf("unsupported image extension %q", ext)
	}

	now := l.now()
	relDir := filepath.Join(now.Format("2006"), now.Format("01"), now.Format("02"))
	dir := filepath.Join(l.baseDir, relDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	safeName := uuid.NewString() + "_" + name
	dstPath := filepath.Join(dir, safeName)
	out, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	reader := src
	if l.maxBytes > 0 {
		reader = &io.LimitedReader{R: src, N: l.maxBytes + 1}
	}
	written, err := io.Copy(out, reader)
	if err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if l.maxBytes > 0 && written > l.maxBytes {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("file exceeds %d bytes", l.maxBytes)
	}

	return path.Join(l.urlPrefix, filepath.ToSlash(relDir), safeName), nil
}
