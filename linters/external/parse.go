package external

import (
	"iter"
	"regexp"
	"strconv"
	"strings"

	"github.com/odylint/odylint/api"
)

// ParseOutput extracts diagnostics from the output of an adapter's linter.
//
// The pattern is applied line by line, where it must match at the start of the line, or to the
// whole text if the adapter is multiline. Units that do not bind both a line number and a message
// are skipped. The returned sequence is lazy and can be iterated any number of times.
func ParseOutput(adapter *api.Adapter, text string) iter.Seq[api.Diagnostic] {
	return func(yield func(api.Diagnostic) bool) {
		if adapter.Pattern == nil {
			return
		}
		if adapter.Options.Multiline {
			re := regexp.MustCompile("(?m:" + adapter.Pattern.String() + ")")
			for _, indices := range re.FindAllStringSubmatchIndex(text, -1) {
				if diagnostic, ok := newDiagnostic(adapter, re, text, indices); ok {
					if !yield(diagnostic) {
						return
					}
				}
			}
			return
		}
		for rest := text; rest != ""; {
			var line string
			line, rest, _ = strings.Cut(rest, "\n")
			line = strings.TrimSuffix(line, "\r")
			indices := adapter.Pattern.FindStringSubmatchIndex(line)
			if indices == nil || indices[0] != 0 {
				continue
			}
			if diagnostic, ok := newDiagnostic(adapter, adapter.Pattern, line, indices); ok {
				if !yield(diagnostic) {
					return
				}
			}
		}
	}
}

// Collect all diagnostics parsed from text.
func Collect(adapter *api.Adapter, text string) []api.Diagnostic {
	out := []api.Diagnostic{}
	for diagnostic := range ParseOutput(adapter, text) {
		out = append(out, diagnostic)
	}
	return out
}

// nolint: gocyclo
func newDiagnostic(adapter *api.Adapter, re *regexp.Regexp, text string, indices []int) (api.Diagnostic, bool) {
	groups := map[string]string{}
	for i, name := range re.SubexpNames() {
		if name == "" || indices[2*i] < 0 {
			continue
		}
		// With duplicate group names the first participating group wins.
		if _, ok := groups[name]; !ok {
			groups[name] = text[indices[2*i]:indices[2*i+1]]
		}
	}

	diagnostic := api.Diagnostic{Adapter: adapter.Name}
	line, err := strconv.Atoi(groups["line"])
	if err != nil {
		return diagnostic, false
	}
	diagnostic.Line = line - adapter.Options.LineBase + 1
	diagnostic.Message = strings.TrimSpace(groups["message"])
	if diagnostic.Message == "" {
		return diagnostic, false
	}
	if part, ok := groups["col"]; ok {
		col, err := strconv.Atoi(part)
		if err != nil {
			return diagnostic, false
		}
		diagnostic.Col = col - adapter.Options.ColBase + 1
	}

	// Text of a severity group doubles as the code unless it is just the severity name, eg. MD013.
	switch {
	case groups["error"] != "":
		diagnostic.Severity = api.Error
		diagnostic.Code = groups["error"]
	case groups["warning"] != "":
		diagnostic.Severity = api.Warning
		diagnostic.Code = groups["warning"]
	default:
		diagnostic.Severity = adapter.Severity()
	}
	if strings.EqualFold(diagnostic.Code, string(diagnostic.Severity)) {
		diagnostic.Code = ""
	}
	if code := groups["code"]; code != "" {
		diagnostic.Code = code
	}
	diagnostic.Filename = strings.TrimSpace(groups["filename"])
	diagnostic.Near = groups["near"]
	return diagnostic, true
}

// SelectOutput returns the part of a linter's output the adapter reads diagnostics from.
func SelectOutput(adapter *api.Adapter, stdout, stderr string) string {
	switch adapter.Options.Stream {
	case api.StreamStderr:
		return stderr
	case api.StreamBoth:
		if stdout != "" && stderr != "" && !strings.HasSuffix(stdout, "\n") {
			return stdout + "\n" + stderr
		}
		return stdout + stderr
	default:
		return stdout
	}
}
