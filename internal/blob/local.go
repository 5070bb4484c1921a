package blob

import (
	"context"
	"os"
	"path/filepath"
)

// DirUploader writes output files into a local directory. Used for
// development runs without storage credentials, and in tests.
type DirUploader struct {
	Dir string
}

// Upload writes data to Dir/name, creating the directory if needed.
func (u *DirUploader) Upload(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return &WriteError{Op: "upload", Err: err}
	}
	if err := os.WriteFile(filepath.Join(u.Dir, name), data, 0o644); err != nil {
		return &WriteError{Op: "upload", Err: err}
	}
	return nil
}
