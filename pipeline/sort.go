package pipeline

import (
	"sort"

	"github.com/odylint/odylint/api"
)

// Sort collects all diagnostics from one channel and emits them in order on another.
//
// An empty order, or "none", passes diagnostics through in arrival order.
func Sort(diagnostics chan *api.Diagnostic, order []string) chan *api.Diagnostic {
	if len(order) == 0 || (len(order) == 1 && order[0] == "none") {
		return diagnostics
	}
	out := make(chan *api.Diagnostic, 1)
	sorted := &sortedDiagnostics{
		diagnostics: []*api.Diagnostic{},
		order:       order,
	}
	go func() {
		defer close(out)
		for diagnostic := range diagnostics {
			sorted.diagnostics = append(sorted.diagnostics, diagnostic)
		}
		sort.Stable(sorted)
		for _, diagnostic := range sorted.diagnostics {
			out <- diagnostic
		}
	}()
	return out
}

type sortedDiagnostics struct {
	diagnostics []*api.Diagnostic
	order       []string
}

func (s *sortedDiagnostics) Len() int { return len(s.diagnostics) }
func (s *sortedDiagnostics) Swap(i, j int) {
	s.diagnostics[i], s.diagnostics[j] = s.diagnostics[j], s.diagnostics[i]
}

func (s *sortedDiagnostics) Less(i, j int) bool {
	return api.CompareDiagnostic(*s.diagnostics[i], *s.diagnostics[j], s.order)
}
