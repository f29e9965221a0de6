package api

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Stream selects which output stream of an external linter carries its diagnostics.
type Stream int

const (
	StreamStdout Stream = iota
	StreamStderr
	StreamBoth
)

func (s Stream) String() string {
	switch s {
	case StreamStdout:
		return "stdout"
	case StreamStderr:
		return "stderr"
	case StreamBoth:
		return "both"
	default:
		panic("unknown stream")
	}
}

func (s Stream) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Stream) UnmarshalText(text []byte) error {
	switch string(text) {
	case "stdout":
		*s = StreamStdout
	case "stderr":
		*s = StreamStderr
	case "both":
		*s = StreamBoth
	default:
		return fmt.Errorf("unknown stream %q", string(text))
	}
	return nil
}

// ParseOptions describe how the output of an external linter is read.
type ParseOptions struct {
	// Stream the diagnostics are read from.
	Stream Stream
	// If true the pattern is applied to the whole output, otherwise line by line.
	Multiline bool
	// Number of the first line and column as reported by the linter.
	LineBase int
	ColBase  int
	// Suffix of the temp file the host materializes for unsaved content. Empty or "-" keeps the
	// extension of the linted file.
	TempFileSuffix string
}

// Adapter describes how to run one external linter and how to read its output.
//
// Adapters are immutable once registered.
type Adapter struct {
	Name        string
	Description string
	// Where to get the linter binary from.
	InstallHint string
	// Program followed by its arguments. Tokens may contain ${file}, ${temp_file}, ${file_on_disk},
	// ${file_path}, ${file_name} and ${args} placeholders.
	Command []string
	// Scopes this adapter applies to.
	Selector Selector
	// Default settings, merged with user overrides for each invocation.
	Defaults Settings
	// Pattern applied to the linter output. Named groups: line, message (both required), col,
	// error, warning, code, filename and near.
	Pattern *regexp.Regexp
	// Optional pattern matching the word at a reported column.
	WordPattern *regexp.Regexp
	Options     ParseOptions
	// The linter is a Node package, preferably run from the project's node_modules/.bin.
	NodePackage bool
	// Severity used when neither the error nor the warning group matched.
	DefaultSeverity Severity
}

func (a *Adapter) String() string {
	return a.Name
}

// Clone returns a deep copy of the adapter.
func (a *Adapter) Clone() *Adapter {
	out := *a
	out.Command = append([]string(nil), a.Command...)
	out.Defaults = a.Defaults.Copy()
	return &out
}

// HasPlaceholder returns true if any command token references the named placeholder.
func (a *Adapter) HasPlaceholder(name string) bool {
	placeholder := "${" + name + "}"
	for _, token := range a.Command {
		if strings.Contains(token, placeholder) {
			return true
		}
	}
	return false
}

// TempFileRequired returns true if the host must materialize a temp file before running the
// adapter with ctx: always for ${temp_file}, and for ${file_on_disk} when the buffer is modified
// or has no file. Adapters that only reference ${file} lint the file on disk.
func (a *Adapter) TempFileRequired(ctx LintContext) bool {
	if a.HasPlaceholder("temp_file") {
		return true
	}
	return a.HasPlaceholder("file_on_disk") && (ctx.Modified || ctx.File == "")
}

// Severity returns the effective default severity.
func (a *Adapter) Severity() Severity {
	if a.DefaultSeverity == "" {
		return Error
	}
	return a.DefaultSeverity
}

// Validate checks the adapter invariants.
func (a *Adapter) Validate() error {
	var result *multierror.Error
	invalid := func(format string, args ...interface{}) {
		result = multierror.Append(result, &InvalidAdapterError{Adapter: a.Name, Reason: fmt.Sprintf(format, args...)})
	}
	if a.Name == "" {
		invalid("missing name")
	}
	if len(a.Command) == 0 || a.Command[0] == "" {
		invalid("missing command")
	}
	if a.Pattern == nil {
		invalid("missing output pattern")
	} else {
		names := map[string]bool{}
		for _, name := range a.Pattern.SubexpNames() {
			names[name] = true
		}
		for _, required := range []string{"line", "message"} {
			if !names[required] {
				invalid("output pattern %q has no %q group", a.Pattern, required)
			}
		}
	}
	if a.Options.LineBase < 0 || a.Options.ColBase < 0 {
		invalid("negative line/column base (%d, %d)", a.Options.LineBase, a.Options.ColBase)
	}
	switch a.DefaultSeverity {
	case "", Error, Warning:
	default:
		invalid("unknown severity %q", a.DefaultSeverity)
	}
	return result.ErrorOrNil()
}
