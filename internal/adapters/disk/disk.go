// Package disk reads component documents from and writes artifacts to a
// FileSystem.
package disk

import (
	"context"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
	"github.com/3-lines-studio/vuebuild/internal/core"
	"github.com/3-lines-studio/vuebuild/internal/usecase"
)

// FileDocument is a component source read lazily from a FileSystem.
type FileDocument struct {
	files fs.FileSystem
	name  string
	path  string
}

// NewFileDocument cleans path, so spellings of the same file such as
// "./A.vue" and "A.vue" share a source path and scope id.
func NewFileDocument(fsys fs.FileSystem, name, path string) *FileDocument {
	return &FileDocument{files: fsys, name: name, path: filepath.Clean(path)}
}

func (d *FileDocument) Name() string       { return d.name }
func (d *FileDocument) SourcePath() string { return filepath.ToSlash(d.path) }

func (d *FileDocument) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := d.files.ReadFile(d.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", d.path, err)
	}
	return string(data), nil
}

// Discover walks root and returns a document for every component file
// under it, named relative to root, in path order. Directories whose name
// starts with "." and node_modules are skipped.
func Discover(fsys fs.FileSystem, root string) ([]*FileDocument, error) {
	var docs []*FileDocument
	err := fsys.WalkDir(root, func(path string, entry iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			name := entry.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return iofs.SkipDir
			}
			return nil
		}
		if !core.HasComponentSuffix(entry.Name()) {
			return nil
		}
		docs = append(docs, NewFileDocument(fsys, core.DocumentName(root, path), path))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover components in %s: %w", root, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].name < docs[j].name })
	return docs, nil
}

// OutputDir writes artifacts under a root directory, keeping each
// artifact's relative path.
type OutputDir struct {
	files fs.FileSystem
	root  string
}

func NewOutputDir(fsys fs.FileSystem, root string) *OutputDir {
	return &OutputDir{files: fsys, root: root}
}

func (o *OutputDir) Root() string { return o.root }

func (o *OutputDir) MakeOutputTarget(name string) (usecase.OutputTarget, error) {
	rel := filepath.FromSlash(name)
	if filepath.IsAbs(rel) || strings.HasPrefix(filepath.Clean(rel), "..") {
		return nil, fmt.Errorf("artifact %s escapes the output directory", name)
	}
	return &FileTarget{files: o.files, path: filepath.Join(o.root, rel)}, nil
}

type FileTarget struct {
	files   fs.FileSystem
	path    string
	written bool
}

func (t *FileTarget) Path() string { return t.path }

func (t *FileTarget) Write(content string) error {
	if t.written {
		return fmt.Errorf("%s already written", t.path)
	}
	if err := t.files.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return err
	}
	if err := t.files.WriteFile(t.path, []byte(content), 0644); err != nil {
		return err
	}
	t.written = true
	return nil
}

var (
	_ usecase.Document   = (*FileDocument)(nil)
	_ usecase.OutputSink = (*OutputDir)(nil)
)
