package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/starford/folio/internal/checksum"
)

const tempPrefix = ".folio-tmp-"

// ErrOutsideRoot is returned for paths that are absolute or climb out of the
// root directory.
var ErrOutsideRoot = errors.New("storage: path outside root")

// FS implements Provider on a directory opened as an os.Root, so symlinks
// cannot lead reads or writes outside it either.
type FS struct {
	dir  string
	root *os.Root
}

// NewFS opens dir, which must already exist. Close releases the handle.
func NewFS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: open root: %w", err)
	}
	return &FS{dir: abs, root: root}, nil
}

// Close releases the root handle.
func (f *FS) Close() error { return f.root.Close() }

func local(path string) (string, error) {
	name := filepath.FromSlash(path)
	if name == "" {
		return ".", nil
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return name, nil
}

// List walks dir and returns metadata for every content file, sorted by path.
func (f *FS) List(dir string) ([]FileInfo, error) {
	base, err := local(dir)
	if err != nil {
		return nil, err
	}
	fsys := f.root.FS()

	var out []FileInfo
	err = fs.WalkDir(fsys, filepath.ToSlash(base), func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !IsContentFile(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		out = append(out, FileInfo{
			Path:      p,
			Checksum:  checksum.Sum(data),
			UpdatedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", dir, err)
	}
	slices.SortFunc(out, func(a, b FileInfo) int { return strings.Compare(a.Path, b.Path) })
	return out, nil
}

// IsContentFile reports whether name is a file the vault loader reads.
// Hidden files, including in-flight temp files, are skipped.
func IsContentFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".yaml", ".yml":
		return true
	}
	return false
}

// Read returns the raw bytes of the file at path.
func (f *FS) Read(path string) ([]byte, error) {
	name, err := local(path)
	if err != nil {
		return nil, err
	}
	data, err := f.root.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, nil
}

// Write replaces path in one step: the bytes go to a hidden temp file next to
// it, which is synced and then renamed over the target.
func (f *FS) Write(path string, content []byte) error {
	name, err := local(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(name)
	if dir != "." {
		if err := f.root.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: mkdir %s: %w", dir, err)
		}
	}

	tmpName := filepath.Join(dir, tempPrefix+uuid.NewString())
	tmp, err := f.root.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = f.root.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := f.root.Rename(tmpName, name); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	committed = true
	return nil
}

// Delete removes the file at path.
func (f *FS) Delete(path string) error {
	name, err := local(path)
	if err != nil {
		return err
	}
	if err := f.root.Remove(name); err != nil {
		return fmt.Errorf("storage: delete %s: %w", path, err)
	}
	return nil
}
