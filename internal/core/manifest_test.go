package core

import (
	"reflect"
	"testing"
)

func TestManifestRoundTrip(t *testing.T) {
	m := NewManifest()
	m.Add(&BuildResult{
		Document: "ui/Button.vue",
		ScopeID:  "data-v-1",
		Artifacts: []Artifact{
			{Name: "ui/Button.vue.js", Kind: ArtifactScript, Ext: "js"},
			{Name: "ui/Button.vue.css", Kind: ArtifactStyle, Ext: "css"},
			{Name: "ui/Button.vue.scss", Kind: ArtifactStyle, Ext: "scss"},
		},
	})
	m.Add(&BuildResult{
		Document:  "App.vue",
		ScopeID:   "data-v-2",
		Artifacts: []Artifact{{Name: "App.vue.js", Kind: ArtifactScript, Ext: "js"}},
	})
	m.Add(nil)

	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	parsed, err := ParseManifest(data)
	if err != nil {
		t.Fatalf("ParseManifest() error: %v", err)
	}

	if !reflect.DeepEqual(parsed, m) {
		t.Errorf("ParseManifest() = %+v, want %+v", parsed, m)
	}
	if got := parsed.Documents(); !reflect.DeepEqual(got, []string{"App.vue", "ui/Button.vue"}) {
		t.Errorf("Documents() = %v", got)
	}
	if got := parsed.Entries["ui/Button.vue"].Styles; len(got) != 2 || got[1] != "ui/Button.vue.scss" {
		t.Errorf("Styles = %v", got)
	}
}

func TestParseManifestInvalid(t *testing.T) {
	if _, err := ParseManifest([]byte("{")); err == nil {
		t.Error("ParseManifest() expected error for invalid JSON")
	}
}
