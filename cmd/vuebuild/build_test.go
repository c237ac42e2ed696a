package main

import (
	"testing"
	"testing/fstest"

	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
)

func TestCollectDocumentsDedupes(t *testing.T) {
	fsys := fs.NewReadOnlyFileSystem(fstest.MapFS{
		"A.vue":     {Data: []byte("<script>export default {}</script>")},
		"src/B.vue": {Data: []byte("<script>export default {}</script>")},
	})

	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{name: "directory and dotted file", paths: []string{".", "./A.vue"}, want: []string{"A.vue", "src/B.vue"}},
		{name: "file then directory", paths: []string{"./A.vue", "."}, want: []string{"A.vue", "src/B.vue"}},
		{name: "nested dotted file", paths: []string{"src", "src/./B.vue"}, want: []string{"src/B.vue"}},
		{name: "same file twice", paths: []string{"A.vue", "./A.vue"}, want: []string{"A.vue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := collectDocuments(fsys, tt.paths)
			if err != nil {
				t.Fatalf("collectDocuments() error: %v", err)
			}
			if len(docs) != len(tt.want) {
				t.Fatalf("collectDocuments() = %d documents, want %d", len(docs), len(tt.want))
			}
			for i, want := range tt.want {
				if got := docs[i].SourcePath(); got != want {
					t.Errorf("docs[%d].SourcePath() = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestCollectDocumentsMissing(t *testing.T) {
	fsys := fs.NewReadOnlyFileSystem(fstest.MapFS{})
	if _, err := collectDocuments(fsys, []string{"nope.vue"}); err == nil {
		t.Fatal("collectDocuments() of a missing path succeeded")
	}
}
