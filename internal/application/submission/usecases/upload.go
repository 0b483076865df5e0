package usecases

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

var acceptedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// Upload is a workbook received from a client.
type Upload struct {
	Name   string
	Reader io.Reader
}

func checkExtension(name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !acceptedExtensions[ext] {
		return "", errors.NewValidationError(
			"unsupported file type",
			fmt.Sprintf("%q: expected .xlsx or .xlsm", filepath.Base(name)))
	}
	return ext, nil
}

// stage copies the upload to a uniquely named file under dir. The returned
// cleanup removes it and must be called on every path.
func stage(dir string, up Upload) (path string, cleanup func(), err error) {
	ext, err := checkExtension(up.Name)
	if err != nil {
		return "", nil, err
	}
	if up.Reader == nil {
		return "", nil, errors.NewValidationError("file is required")
	}
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", nil, fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	path = filepath.Join(dir, uuid.NewString()+ext)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create upload file: %w", err)
	}
	cleanup = func() { _ = os.Remove(path) }

	if _, err := io.Copy(f, up.Reader); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to store upload: %w", err)
	}
	return path, cleanup, nil
}
