package usecase_test

import (
	"bytes"
	"context"
	"fmt"
	iofs "io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/3-lines-studio/vuebuild/internal/adapters/cli"
	"github.com/3-lines-studio/vuebuild/internal/adapters/fs"
	"github.com/3-lines-studio/vuebuild/internal/adapters/memory"
	"github.com/3-lines-studio/vuebuild/internal/core"
	"github.com/3-lines-studio/vuebuild/internal/usecase"
)

// recordingFS keeps writes in memory on top of a read-only tree.
type recordingFS struct {
	*fs.ReadOnlyFileSystem
	writes map[string][]byte
}

func newRecordingFS() *recordingFS {
	return &recordingFS{
		ReadOnlyFileSystem: fs.NewReadOnlyFileSystem(fstest.MapFS{}),
		writes:             make(map[string][]byte),
	}
}

func (r *recordingFS) WriteFile(path string, data []byte, _ iofs.FileMode) error {
	r.writes[path] = data
	return nil
}

func (r *recordingFS) MkdirAll(string, iofs.FileMode) error { return nil }

func newBatch(t *testing.T, fsys usecase.FileSystem) (*usecase.BatchService, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	out := cli.NewOutputTo(&stdout, &stderr, false)
	return usecase.NewBatchService(newBuildService(), fsys, out, nil), &stdout, &stderr
}

func component(name string) usecase.Document {
	return memory.NewDocument(name, fmt.Sprintf("<template><div>%s</div></template>\n<script>export default {}</script>\n<style scoped>.x { color: red; }</style>", name))
}

func TestBatchBuildAll(t *testing.T) {
	fsys := newRecordingFS()
	batch, stdout, _ := newBatch(t, fsys)
	sink := memory.NewSink()

	docs := []usecase.Document{component("a.vue"), component("b.vue"), component("nested/c.vue")}
	out := batch.BuildAll(context.Background(), usecase.BatchInput{
		Documents:    docs,
		Settings:     core.DefaultSettings(),
		Sink:         sink,
		Jobs:         2,
		OutputDir:    "dist",
		ManifestPath: "dist/manifest.json",
	})
	if !out.Success || out.Error != nil {
		t.Fatalf("BuildAll() = %+v", out)
	}

	if got := len(sink.Names()); got != 6 {
		t.Errorf("artifacts written = %d, want 6: %v", got, sink.Names())
	}
	for i, outcome := range out.Outcomes {
		if outcome.Document != docs[i].Name() {
			t.Errorf("outcome %d = %q, want %q", i, outcome.Document, docs[i].Name())
		}
	}

	data, ok := fsys.writes["dist/manifest.json"]
	if !ok {
		t.Fatalf("manifest not written: %v", fsys.writes)
	}
	manifest, err := core.ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest() error: %v", err)
	}
	entry := manifest.Entries["nested/c.vue"]
	if entry.Script != "nested/c.vue.js" || len(entry.Styles) != 1 || entry.ScopeID != core.ScopeID("nested/c.vue") {
		t.Errorf("manifest entry = %+v", entry)
	}

	report := stdout.String()
	for _, want := range []string{"vuebuild", "3 components found", "6 artifacts written", "Output: dist"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestBatchKeepsGoingAfterFailure(t *testing.T) {
	batch, _, stderr := newBatch(t, newRecordingFS())
	sink := memory.NewSink()

	broken := memory.NewDocument("broken.vue", "<template><div></div></template>")
	out := batch.BuildAll(context.Background(), usecase.BatchInput{
		Documents: []usecase.Document{component("a.vue"), broken, component("b.vue")},
		Settings:  core.DefaultSettings(),
		Sink:      sink,
		Jobs:      1,
	})

	if out.Success || out.Error == nil {
		t.Fatalf("BuildAll() succeeded with a broken document")
	}
	if got, want := out.Error.Error(), "1 of 3 components failed to build"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if out.Outcomes[1].Err == nil || out.Outcomes[0].Err != nil || out.Outcomes[2].Err != nil {
		t.Errorf("outcomes = %+v", out.Outcomes)
	}
	if _, ok := sink.Get("b.vue.js"); !ok {
		t.Errorf("b.vue.js not built after an earlier failure")
	}
	if _, ok := sink.Get("broken.vue.js"); ok {
		t.Errorf("broken.vue.js written")
	}
	if len(out.Manifest.Entries) != 2 {
		t.Errorf("manifest entries = %v", out.Manifest.Documents())
	}

	report := stderr.String()
	if !strings.Contains(report, "broken.vue") || !strings.Contains(report, "must have a <script> section") {
		t.Errorf("report does not name the failure:\n%s", report)
	}
}

func TestBatchNoDocuments(t *testing.T) {
	batch, _, _ := newBatch(t, newRecordingFS())
	out := batch.BuildAll(context.Background(), usecase.BatchInput{Settings: core.DefaultSettings()})
	if out.Success || out.Error == nil {
		t.Fatalf("BuildAll() = %+v, want failure", out)
	}
}

func TestBatchManifestWriteFailure(t *testing.T) {
	// the read-only filesystem rejects the manifest
	batch, _, _ := newBatch(t, fs.NewReadOnlyFileSystem(fstest.MapFS{}))
	out := batch.BuildAll(context.Background(), usecase.BatchInput{
		Documents:    []usecase.Document{component("a.vue")},
		Settings:     core.DefaultSettings(),
		Sink:         memory.NewSink(),
		ManifestPath: "out/manifest.json",
	})
	if out.Success {
		t.Fatalf("BuildAll() succeeded without a manifest")
	}
}
