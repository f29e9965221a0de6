package pipeline

import (
	"github.com/odylint/odylint/api"
	. "github.com/odylint/odylint/util" // nolint: golint
)

// Filter passes on the diagnostics for which keep returns true. The number of dropped
// diagnostics is logged under name once the input is closed.
func Filter(name string, diagnostics chan *api.Diagnostic, keep func(diagnostic *api.Diagnostic) bool) chan *api.Diagnostic {
	out := make(chan *api.Diagnostic, 1)
	go func() {
		defer close(out)
		dropped := 0
		for diagnostic := range diagnostics {
			if keep(diagnostic) {
				out <- diagnostic
			} else {
				dropped++
			}
		}
		if dropped > 0 {
			Debug("%s: dropped %d diagnostics", name, dropped)
		}
	}()
	return out
}
