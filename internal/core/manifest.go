package core

import (
	"encoding/json"
	"sort"
)

type ManifestEntry struct {
	Script  string   `json:"script"`
	Styles  []string `json:"styles,omitempty"`
	ScopeID string   `json:"scopeId"`
}

// Manifest maps each document name to the artifacts built from it.
type Manifest struct {
	Entries map[string]ManifestEntry `json:"entries"`
}

func NewManifest() *Manifest {
	return &Manifest{Entries: make(map[string]ManifestEntry)}
}

func (m *Manifest) Add(result *BuildResult) {
	if result == nil {
		return
	}
	entry := ManifestEntry{ScopeID: result.ScopeID}
	if script := result.Script(); script != nil {
		entry.Script = script.Name
	}
	for _, style := range result.Styles() {
		entry.Styles = append(entry.Styles, style.Name)
	}
	m.Entries[result.Document] = entry
}

// Documents returns the document names in sorted order.
func (m *Manifest) Documents() []string {
	names := make([]string, 0, len(m.Entries))
	for name := range m.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Manifest) Marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Entries == nil {
		m.Entries = make(map[string]ManifestEntry)
	}
	return &m, nil
}
