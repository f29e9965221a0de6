package engine

import (
	"sync"

	"github.com/odylint/odylint/api"
)

// Contains all of the context required for linting and emitting diagnostics.
type lintContext struct {
	errors      chan error
	diagnostics chan *api.Diagnostic
	concurrency chan bool
	wg          sync.WaitGroup
}

func newLintContext(concurrency, jobs int) *lintContext {
	if concurrency < 1 {
		concurrency = 1
	}
	return &lintContext{
		// Sized so that reporting an error never blocks on a reader still draining diagnostics.
		errors:      make(chan error, jobs+1),
		diagnostics: make(chan *api.Diagnostic, 1),
		concurrency: make(chan bool, concurrency),
	}
}

// Go runs f concurrently, respecting the concurrency limit of the context.
func (l *lintContext) Go(f func()) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.concurrency <- true
		defer func() { <-l.concurrency }()
		f()
	}()
}

// Emit diagnostics within the context.
func (l *lintContext) Emit(diagnostics []*api.Diagnostic) {
	for _, d := range diagnostics {
		l.diagnostics <- d
	}
}

func (l *lintContext) Error(err error) {
	l.errors <- err
}

// Close waits for all running jobs and closes the output channels.
func (l *lintContext) Close() {
	l.wg.Wait()
	close(l.diagnostics)
	close(l.errors)
}

// Apply diagnostics and error and return true if no error occurred.
func (l *lintContext) Apply(diagnostics []*api.Diagnostic, err error) bool {
	if len(diagnostics) > 0 {
		l.Emit(diagnostics)
	}
	if err != nil {
		l.Error(err)
	}
	return err == nil
}
