package linters

import (
	"path/filepath"
	"strings"
)

// Scopes of files by extension, used by hosts that have no syntax information of their own.
var scopesByExtension = map[string]string{
	".po":       "source.po",
	".pot":      "source.po",
	".glsl":     "source.glsl",
	".vert":     "source.glsl",
	".frag":     "source.glsl",
	".geom":     "source.glsl",
	".comp":     "source.glsl",
	".tesc":     "source.glsl",
	".tese":     "source.glsl",
	".yaml":     "source.yaml",
	".yml":      "source.yaml",
	".md":       "text.html.markdown.gfm",
	".markdown": "text.html.markdown",
	".mmd":      "text.html.markdown.multimarkdown",
	".c":        "source.c",
	".h":        "source.c",
	".cc":       "source.c++",
	".cpp":      "source.c++",
	".cxx":      "source.c++",
	".hh":       "source.c++",
	".hpp":      "source.c++",
	".hxx":      "source.c++",
}

// ScopeForFile returns the scope of path based on its extension, or "" if unknown.
func ScopeForFile(path string) string {
	return scopesByExtension[strings.ToLower(filepath.Ext(path))]
}
