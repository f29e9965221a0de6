package pipeline

import (
	"github.com/odylint/odylint/api"
)

// Status passes diagnostics through and, once the input is closed, sends the exit status they
// imply: bit 0 is set if there were warnings and bit 1 if there were errors.
func Status(diagnostics chan *api.Diagnostic) (chan int, chan *api.Diagnostic) {
	status := make(chan int, 1)
	out := make(chan *api.Diagnostic, 1)
	go func() {
		defer close(out)
		defer close(status)
		code := 0
		for diagnostic := range diagnostics {
			switch diagnostic.Severity {
			case api.Warning:
				code |= 1
			case api.Error:
				code |= 2
			}
			out <- diagnostic
		}
		status <- code
	}()
	return status, out
}
