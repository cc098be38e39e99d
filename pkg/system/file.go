package system

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jdziat/simple-crontab/pkg/core"
	"github.com/jdziat/simple-crontab/pkg/security"
)

// File keeps crontab text in a regular file, such as a drop-in under
// /etc/cron.d or a fixture in a repository.
type File struct {
	path string
	perm os.FileMode
}

var _ core.Backend = (*File)(nil)

// NewFile creates a backend for path. The file need not exist yet.
func NewFile(path string, opts ...FileOption) *File {
	f := &File{path: path, perm: 0o600}
	for _, opt := range opts {
		opt.apply(f)
	}
	return f
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the file. A missing file loads as empty text.
func (f *File) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("crontab: read %s: %w", f.path, err)
	}
	text := string(data)
	if err := security.ValidateTableSize(text); err != nil {
		return "", err
	}
	return text, nil
}

// Save writes text to a temporary file next to the target and renames it
// into place.
func (f *File) Save(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := security.ValidateTableSize(text); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("crontab: write %s: %w", f.path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("crontab: write %s: %w", f.path, err)
	}
	if err := tmp.Chmod(f.perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("crontab: write %s: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("crontab: write %s: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("crontab: write %s: %w", f.path, err)
	}
	return nil
}
