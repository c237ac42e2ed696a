package core

import (
	"path"
	"path/filepath"
	"strings"
)

const ComponentSuffix = ".vue"

// HasComponentSuffix reports whether name has a non-empty stem followed by
// the component suffix.
func HasComponentSuffix(name string) bool {
	return strings.HasSuffix(name, ComponentSuffix) && len(name) > len(ComponentSuffix)
}

func ScriptArtifactName(documentName string) string {
	return documentName + ".js"
}

func StyleArtifactName(documentName, ext string) string {
	return documentName + "." + ext
}

// ImportPath is the specifier the script artifact uses to pull in a sibling
// artifact. Artifacts of one document always share a directory.
func ImportPath(artifactName string) string {
	return "./" + path.Base(filepath.ToSlash(artifactName))
}

// DocumentName turns a source path into the slash separated name used for
// artifacts, relative to root when possible.
func DocumentName(root, sourcePath string) string {
	name := sourcePath
	if root != "" {
		if rel, err := filepath.Rel(root, sourcePath); err == nil && !strings.HasPrefix(rel, "..") {
			name = rel
		}
	}
	name = filepath.ToSlash(name)
	name = strings.TrimPrefix(name, "./")
	return strings.TrimPrefix(name, "/")
}
