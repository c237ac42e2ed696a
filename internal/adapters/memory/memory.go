// Package memory holds documents and artifacts entirely in memory, for
// library callers and tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/3-lines-studio/vuebuild/internal/usecase"
)

type Document struct {
	name    string
	path    string
	content string
}

// NewDocument creates a document whose source path is its name.
func NewDocument(name, content string) *Document {
	return &Document{name: name, path: name, content: content}
}

// WithSourcePath changes the path the scope id is derived from.
func (d *Document) WithSourcePath(path string) *Document {
	d.path = path
	return d
}

func (d *Document) Name() string       { return d.name }
func (d *Document) SourcePath() string { return d.path }

func (d *Document) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return d.content, nil
}

// Sink collects artifacts by name. It is safe for concurrent use.
// A name is reserved by MakeOutputTarget and only shows up in Get and
// Names once its target has been written.
type Sink struct {
	mu       sync.Mutex
	reserved map[string]bool
	files    map[string]string
}

func NewSink() *Sink {
	return &Sink{reserved: make(map[string]bool), files: make(map[string]string)}
}

func (s *Sink) MakeOutputTarget(name string) (usecase.OutputTarget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reserved[name] {
		return nil, fmt.Errorf("output %s already exists", name)
	}
	s.reserved[name] = true
	return &target{sink: s, name: name}, nil
}

// Get returns the content written for name.
func (s *Sink) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.files[name]
	return content, ok
}

// Names lists every written artifact in sorted order.
func (s *Sink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type target struct {
	sink    *Sink
	name    string
	written bool
}

func (t *target) Write(content string) error {
	if t.written {
		return fmt.Errorf("output %s already written", t.name)
	}
	t.sink.mu.Lock()
	t.sink.files[t.name] = content
	t.sink.mu.Unlock()
	t.written = true
	return nil
}

var (
	_ usecase.Document   = (*Document)(nil)
	_ usecase.OutputSink = (*Sink)(nil)
)
