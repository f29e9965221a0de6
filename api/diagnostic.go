package api

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// DefaultFormat used to print a diagnostic.
const DefaultFormat = "{{.Path}}:{{.Line}}:{{if .Col}}{{.Col}}{{end}}:{{.Severity}}: {{.Message}} ({{.Adapter}})"

// Severity of a diagnostic.
type Severity string

// Diagnostic severity levels.
const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

var severityRank = map[Severity]int{Warning: 1, Error: 2}

// Less returns true if s is less severe than other.
func (s Severity) Less(other Severity) bool {
	return severityRank[s] < severityRank[other]
}

// Diagnostic is one finding extracted from the output of an external linter.
//
// Line and Col are 1-based. A zero Col means the linter did not report a column.
type Diagnostic struct {
	Adapter  string   `json:"linter" yaml:"linter"`
	Severity Severity `json:"severity" yaml:"severity"`
	// Path of the linted file, set by the host.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Filename as reported by the linter.
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
	Line     int    `json:"line" yaml:"line"`
	Col      int    `json:"col,omitempty" yaml:"col,omitempty"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty"`
	Message  string `json:"message" yaml:"message"`
	// Text the linter reported the diagnostic near, if any.
	Near string `json:"near,omitempty" yaml:"near,omitempty"`
}

// Location of the diagnostic, the host path if known or the reported filename.
func (d *Diagnostic) Location() string {
	if d.Path != "" {
		return d.Path
	}
	return d.Filename
}

func (d *Diagnostic) String() string {
	col := ""
	if d.Col != 0 {
		col = fmt.Sprintf("%d", d.Col)
	}
	message := strings.TrimSpace(d.Message)
	if d.Code != "" {
		message = d.Code + " " + message
	}
	return fmt.Sprintf("%s:%d:%s:%s: %s (%s)", strings.TrimSpace(d.Location()), d.Line, col, d.Severity, message, d.Adapter)
}

// Format the diagnostic with tmpl.
func (d *Diagnostic) Format(tmpl *template.Template) (string, error) {
	if tmpl == nil {
		return d.String(), nil
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SortKeys are the keys accepted by CompareDiagnostic.
var SortKeys = []string{"none", "path", "line", "column", "severity", "message", "linter"}

// CompareDiagnostic returns true if l should sort before r.
// nolint: gocyclo
func CompareDiagnostic(l, r Diagnostic, order []string) bool {
	for _, key := range order {
		switch {
		case key == "path" && l.Location() != r.Location():
			return l.Location() < r.Location()
		case key == "line" && l.Line != r.Line:
			return l.Line < r.Line
		case key == "column" && l.Col != r.Col:
			return l.Col < r.Col
		case key == "severity" && l.Severity != r.Severity:
			return r.Severity.Less(l.Severity)
		case key == "message" && l.Message != r.Message:
			return l.Message < r.Message
		case key == "linter" && l.Adapter != r.Adapter:
			return l.Adapter < r.Adapter
		}
	}
	return false
}

// Span is the text matched by an adapter's word pattern, with 1-based inclusive Col and exclusive
// EndCol.
type Span struct {
	Col    int
	EndCol int
	Text   string
}
