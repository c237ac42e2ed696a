package fs

import (
	"errors"
	iofs "io/fs"
	"path"
	"strings"
)

var errReadOnly = errors.New("filesystem is read-only")

// ReadOnlyFileSystem serves sources out of any io/fs.FS, such as an
// embed.FS or a fstest.MapFS. Paths are slash separated and relative.
type ReadOnlyFileSystem struct {
	fs iofs.FS
}

func NewReadOnlyFileSystem(fsys iofs.FS) *ReadOnlyFileSystem {
	return &ReadOnlyFileSystem{fs: fsys}
}

func (fs *ReadOnlyFileSystem) ReadFile(name string) ([]byte, error) {
	return iofs.ReadFile(fs.fs, clean(name))
}

func (fs *ReadOnlyFileSystem) ReadDir(name string) ([]iofs.DirEntry, error) {
	return iofs.ReadDir(fs.fs, clean(name))
}

func (fs *ReadOnlyFileSystem) FileExists(name string) bool {
	_, err := iofs.Stat(fs.fs, clean(name))
	return err == nil
}

func (fs *ReadOnlyFileSystem) WriteFile(string, []byte, iofs.FileMode) error {
	return errReadOnly
}

func (fs *ReadOnlyFileSystem) MkdirAll(string, iofs.FileMode) error {
	return errReadOnly
}

func (fs *ReadOnlyFileSystem) Remove(string) error {
	return errReadOnly
}

func (fs *ReadOnlyFileSystem) WalkDir(root string, fn iofs.WalkDirFunc) error {
	return iofs.WalkDir(fs.fs, clean(root), fn)
}

func clean(name string) string {
	name = path.Clean(strings.TrimPrefix(name, "/"))
	if name == "" {
		return "."
	}
	return name
}
