package pipeline

import (
	"github.com/odylint/odylint/api"
)

// Levelled shows only diagnostics at or above the minimum severity. An empty minimum shows all
// diagnostics.
func Levelled(diagnostics chan *api.Diagnostic, minimum api.Severity) chan *api.Diagnostic {
	if minimum == "" {
		return diagnostics
	}
	return Filter("severity "+string(minimum), diagnostics, func(diagnostic *api.Diagnostic) bool {
		return !diagnostic.Severity.Less(minimum)
	})
}
