// Package storage provides api.Backend implementations.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/HenryVilani/directory-lint/api"
)

// Billy adapts a billy.Filesystem to api.Backend.
type Billy struct {
	fs billy.Filesystem
}

// NewBilly wraps fs.
func NewBilly(fs billy.Filesystem) *Billy {
	return &Billy{fs: fs}
}

// NewOS returns a backend on the real filesystem rooted at base.
// Paths given to the backend are resolved inside base.
func NewOS(base string) *Billy {
	return NewBilly(osfs.New(base))
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Billy {
	return NewBilly(memfs.New())
}

// Filesystem exposes the wrapped billy filesystem.
func (b *Billy) Filesystem() billy.Filesystem {
	return b.fs
}

func (b *Billy) ListEntries(ctx context.Context, path string) ([]api.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	infos, err := b.fs.ReadDir(path)
	if err != nil {
		return nil, translate("readdir", path, err)
	}
	entries := make([]api.DirEntry, 0, len(infos))
	for _, fi := range infos {
		typ := api.FileType
		if fi.IsDir() {
			typ = api.DirectoryType
		}
		entries = append(entries, api.DirEntry{Name: fi.Name(), Type: typ})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (b *Billy) ReadContent(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := util.ReadFile(b.fs, path)
	if err != nil {
		return nil, translate("read", path, err)
	}
	return data, nil
}

func (b *Billy) WriteContent(_ context.Context, path string, content []byte) error {
	if err := util.WriteFile(b.fs, path, content, 0o644); err != nil {
		return translate("write", path, err)
	}
	return nil
}

func (b *Billy) CreateDirectory(_ context.Context, path string, recursive bool) error {
	if !recursive {
		parent := filepath.Dir(filepath.Clean(path))
		if !isTop(parent) {
			fi, err := b.fs.Stat(parent)
			if err != nil {
				return translate("mkdir", path, err)
			}
			if !fi.IsDir() {
				return &os.PathError{Op: "mkdir", Path: path, Err: fmt.Errorf("parent %s is not a directory", parent)}
			}
		}
	}
	if err := b.fs.MkdirAll(path, 0o755); err != nil {
		return translate("mkdir", path, err)
	}
	return nil
}

func (b *Billy) Exists(_ context.Context, path string) (bool, error) {
	_, err := b.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func isTop(p string) bool {
	return p == "." || p == "/" || p == "" || p == filepath.VolumeName(p)+string(filepath.Separator)
}

// translate maps billy not-exist errors onto api.ErrNotFound.
func translate(op, path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s %s: %w", op, path, api.ErrNotFound)
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}

var _ api.Backend = (*Billy)(nil)
