package core

import (
	"cmp"
	"slices"
)

type SectionType string

const (
	SectionTemplate SectionType = "template"
	SectionScript   SectionType = "script"
	SectionStyle    SectionType = "style"
	SectionCustom   SectionType = "custom"
)

// Section is one top-level block of a component document.
type Section struct {
	Type SectionType
	// Tag is the element name as written; only meaningful for custom blocks.
	Tag     string
	Content string
	Lang    string
	Src     string
	Attrs   map[string]string
	Scoped  bool
	Module  bool
	Start   int
	End     int
	Line    int
}

// Attr reports the value of an attribute and whether it was set at all.
// Valueless attributes read as "true".
func (s *Section) Attr(name string) (string, bool) {
	if s == nil || s.Attrs == nil {
		return "", false
	}
	v, ok := s.Attrs[name]
	return v, ok
}

func (s *Section) HasAttr(name string) bool {
	_, ok := s.Attr(name)
	return ok
}

// Descriptor is the parsed form of a component document.
type Descriptor struct {
	Template     *Section
	Script       *Section
	Styles       []*Section
	CustomBlocks []*Section
}

// Sections returns every block in document order.
func (d *Descriptor) Sections() []*Section {
	var out []*Section
	if d.Template != nil {
		out = append(out, d.Template)
	}
	if d.Script != nil {
		out = append(out, d.Script)
	}
	out = append(out, d.Styles...)
	out = append(out, d.CustomBlocks...)
	slices.SortStableFunc(out, func(a, b *Section) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return out
}

// RenderInfo is the lowered template, ready to be attached to the
// component's default export.
type RenderInfo struct {
	Render          string
	StaticRenderFns string
	IsFunctional    bool
}

type ArtifactKind string

const (
	ArtifactScript ArtifactKind = "script"
	ArtifactStyle  ArtifactKind = "style"
)

type Artifact struct {
	Name    string
	Kind    ArtifactKind
	Ext     string
	Content string
}

// BuildResult is the ordered artifact set of one document: the script
// first, then one stylesheet per extension in first-seen order.
type BuildResult struct {
	Document  string
	ScopeID   string
	Artifacts []Artifact
}

func (r *BuildResult) Script() *Artifact {
	for i := range r.Artifacts {
		if r.Artifacts[i].Kind == ArtifactScript {
			return &r.Artifacts[i]
		}
	}
	return nil
}

func (r *BuildResult) Styles() []Artifact {
	var out []Artifact
	for _, a := range r.Artifacts {
		if a.Kind == ArtifactStyle {
			out = append(out, a)
		}
	}
	return out
}

// Augmentation carries everything the export rewrite injects.
type Augmentation struct {
	Render    *RenderInfo
	HasStyles bool
	ScopeID   string
}

// Empty reports whether there is nothing to inject.
func (a Augmentation) Empty() bool {
	return a.Render == nil && !a.HasStyles
}
