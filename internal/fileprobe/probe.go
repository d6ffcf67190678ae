// Package fileprobe provides content probing primitives over single
// paths: digests, sizes, modification times and text classification.
//
// Every function degrades to a sentinel value (empty hash, zero size,
// zero time, empty content) instead of returning an error. Callers
// treat an empty hash as "file absent or unreadable", so a single bad
// file never aborts a whole-project scan.
package fileprobe

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/mmap"
)

// chunkSize bounds memory while hashing: files are fed to the digest in
// fixed-size reads rather than loaded whole.
const chunkSize = 4 << 20 // 4 MiB

// textExtensions is the allow-list used to classify files as text.
var textExtensions = map[string]bool{
	".txt": true, ".py": true, ".js": true, ".html": true, ".css": true,
	".json": true, ".xml": true, ".md": true, ".yml": true, ".yaml": true,
	".ini": true, ".cfg": true, ".conf": true, ".log": true, ".sql": true,
	".c": true, ".cpp": true, ".h": true, ".java": true, ".cs": true,
	".php": true, ".rb": true, ".go": true, ".rs": true, ".kt": true,
	".swift": true, ".scala": true, ".sh": true, ".bat": true, ".ps1": true,
}

// Hash returns the hex xxh3-128 digest of the file content, streamed in
// fixed-size chunks. Returns "" if the file is missing or unreadable.
func Hash(path string) string {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return ""
	}

	h := xxh3.New()

	if r, err := mmap.Open(path); err == nil {
		defer r.Close()
		buf := make([]byte, chunkSize)
		for off := int64(0); off < int64(r.Len()); off += chunkSize {
			n, err := r.ReadAt(buf, off)
			if n > 0 {
				_, _ = h.Write(buf[:n])
			}
			if err != nil && err != io.EOF {
				return ""
			}
		}
		return fmt.Sprintf("%x", h.Sum128().Bytes())
	}

	// mmap can fail on exotic filesystems; fall back to buffered reads.
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()
	if _, err := io.CopyBuffer(h, f, make([]byte, chunkSize)); err != nil {
		return ""
	}
	return fmt.Sprintf("%x", h.Sum128().Bytes())
}

// Size returns the file size in bytes, or 0 on any failure.
func Size(path string) int64 {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return fi.Size()
}

// ModTime returns the file modification time, or the zero time on any
// failure.
func ModTime(path string) time.Time {
	fi, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}

// IsText classifies a path as text by its extension.
func IsText(path string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(path))]
}

// ReadText reads the whole file as a string, tolerating encoding
// errors (bytes pass through untouched). Returns "" on any failure.
func ReadText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// IsLarge reports whether the file exceeds thresholdMB megabytes.
func IsLarge(path string, thresholdMB int64) bool {
	return Size(path) > thresholdMB<<20
}
