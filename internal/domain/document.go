package domain

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Allowed upload extensions. Advisory only: the server re-validates, the
// client just filters what can be selected.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
}

// Document is a client-side handle to an uploadable file. Open must be
// restartable so a failed upload can be retried with the same handle.
type Document struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileDocument builds a handle backed by a file on disk. The file is
// opened at upload time, not at selection time.
func FileDocument(path string) Document {
	return Document{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// BytesDocument builds an in-memory handle.
func BytesDocument(name string, data []byte) Document {
	return Document{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// SupportedUpload reports whether the filename carries a whitelisted
// extension.
func SupportedUpload(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}
