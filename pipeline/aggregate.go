package pipeline

import (
	"sort"
	"strings"

	"github.com/odylint/odylint/api"
)

type diagnosticKey struct {
	path      string
	line, col int
	message   string
}

type multiDiagnostic struct {
	*api.Diagnostic
	adapters []string
}

// Aggregate reads diagnostics from a channel and merges those with the same path, line, column
// and message into one, listing every adapter that reported it.
//
// Aggregated diagnostics are emitted in the order they were first seen once the input is closed.
func Aggregate(diagnostics chan *api.Diagnostic) chan *api.Diagnostic {
	out := make(chan *api.Diagnostic, 1)
	seen := map[diagnosticKey]*multiDiagnostic{}
	order := []diagnosticKey{}
	go func() {
		defer close(out)
		for diagnostic := range diagnostics {
			key := diagnosticKey{
				path:    diagnostic.Location(),
				line:    diagnostic.Line,
				col:     diagnostic.Col,
				message: diagnostic.Message,
			}
			if existing, ok := seen[key]; ok {
				existing.adapters = append(existing.adapters, diagnostic.Adapter)
				if existing.Severity.Less(diagnostic.Severity) {
					existing.Severity = diagnostic.Severity
				}
				continue
			}
			copied := *diagnostic
			seen[key] = &multiDiagnostic{Diagnostic: &copied, adapters: []string{diagnostic.Adapter}}
			order = append(order, key)
		}
		for _, key := range order {
			multi := seen[key]
			sort.Strings(multi.adapters)
			multi.Adapter = strings.Join(multi.adapters, ", ")
			out <- multi.Diagnostic
		}
	}()
	return out
}
