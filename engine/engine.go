package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/odylint/odylint/api"
	"github.com/odylint/odylint/config"
	"github.com/odylint/odylint/linters"
	"github.com/odylint/odylint/linters/external"
	. "github.com/odylint/odylint/util" // nolint: golint
)

// Target is a file to lint.
type Target struct {
	Path string
	// Scope of the file. If empty it is derived from the file extension.
	Scope string
	// Unsaved content of the file, or nil to lint the file on disk.
	Content []byte
}

type Engine struct {
	config   *config.Config
	registry *linters.Registry
	adapters []*api.Adapter
	include  *regexp.Regexp
	exclude  *regexp.Regexp
}

// New creates a new lint engine.
//
// Adapters defined in the configuration are added to a copy of registry.
func New(conf *config.Config, registry *linters.Registry) (*Engine, error) {
	registry = registry.Clone()
	defined, err := conf.Adapters()
	if err != nil {
		return nil, err
	}
	var result *multierror.Error
	for _, adapter := range defined {
		result = multierror.Append(result, registry.Register(adapter))
	}
	for _, name := range append(append([]string{}, conf.Enabled...), conf.Disabled...) {
		if _, err := registry.Get(name); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	adapters := []*api.Adapter{}
	for _, adapter := range registry.All() {
		if conf.IsEnabled(adapter.Name) {
			adapters = append(adapters, adapter)
		}
	}
	return &Engine{
		config:   conf,
		registry: registry,
		adapters: adapters,
		include:  joinRegexps(conf.Include),
		exclude:  joinRegexps(conf.Exclude),
	}, nil
}

func joinRegexps(regexps []config.Regexp) *regexp.Regexp {
	if len(regexps) == 0 {
		return nil
	}
	parts := []string{}
	for _, r := range regexps {
		parts = append(parts, r.String())
	}
	return regexp.MustCompile(strings.Join(parts, "|"))
}

// Registry holding the built-in and configured adapters.
func (e *Engine) Registry() *linters.Registry {
	return e.registry
}

// Adapters enabled for scope.
func (e *Engine) Adapters(scope string) []*api.Adapter {
	out := []*api.Adapter{}
	if scope == "" {
		return out
	}
	for _, adapter := range e.adapters {
		selector := adapter.Selector
		if settings, err := e.config.Overrides(adapter.Name); err == nil {
			if s, ok := settings.String("selector"); ok {
				selector = api.Selector(s)
			}
		}
		if selector.Matches(scope) {
			out = append(out, adapter)
		}
	}
	return out
}

type job struct {
	target  Target
	adapter *api.Adapter
}

// Lint targets.
//
// Both channels are closed once every adapter finished. A failing adapter only reports an error,
// it does not stop the others.
func (e *Engine) Lint(ctx context.Context, targets []Target) (chan *api.Diagnostic, chan error) {
	jobs := []job{}
	for _, target := range targets {
		scope := target.Scope
		if scope == "" {
			scope = linters.ScopeForFile(target.Path)
		}
		adapters := e.Adapters(scope)
		if len(adapters) == 0 {
			Debug("no adapter for %s (scope %q)", target.Path, scope)
			continue
		}
		for _, adapter := range adapters {
			jobs = append(jobs, job{target: target, adapter: adapter})
		}
	}

	lc := newLintContext(e.config.Concurrency, len(jobs))
	go func() {
		defer lc.Close()
		for _, j := range jobs {
			lc.Go(func() { lc.Apply(e.lintTarget(ctx, j.target, j.adapter)) })
		}
	}()
	return lc.diagnostics, lc.errors
}

func (e *Engine) lintTarget(ctx context.Context, target Target, adapter *api.Adapter) ([]*api.Diagnostic, error) {
	debug := NamespacedDebug(adapter.Name + ": ")
	settings, err := e.config.Settings(adapter)
	if err != nil {
		return nil, err
	}
	lintCtx := api.LintContext{
		File:     target.Path,
		Modified: target.Content != nil,
		Settings: settings,
	}
	if adapter.TempFileRequired(lintCtx) {
		content, err := targetContent(target)
		if err != nil {
			return nil, err
		}
		tempFile, cleanup, err := materializeTempFile(adapter, target.Path, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", adapter.Name, target.Path, err)
		}
		defer cleanup()
		lintCtx.TempFile = tempFile
		debug("materialized %s as %s", target.Path, tempFile)
	}

	output, err := Execute(ctx, adapter, lintCtx)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", adapter.Name, target.Path, err)
	}
	diagnostics := []*api.Diagnostic{}
	for diagnostic := range external.ParseOutput(adapter, output) {
		if !sameFile(diagnostic.Filename, target.Path, lintCtx.TempFile) {
			debug("skipping diagnostic for %s", diagnostic.Filename)
			continue
		}
		diagnostic.Path = target.Path
		if diagnostic.Filename == lintCtx.TempFile {
			diagnostic.Filename = target.Path
		}
		text := diagnostic.String()
		if e.exclude != nil && e.exclude.MatchString(text) {
			continue
		}
		if e.include != nil && !e.include.MatchString(text) {
			continue
		}
		diagnostics = append(diagnostics, &diagnostic)
	}
	debug("%d diagnostics for %s", len(diagnostics), target.Path)
	return diagnostics, nil
}

func targetContent(target Target) (io.Reader, error) {
	if target.Content != nil {
		return bytes.NewReader(target.Content), nil
	}
	data, err := os.ReadFile(target.Path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// sameFile returns true if a filename reported by a linter refers to the linted file or its temp
// file. Linters that do not report filenames always match.
func sameFile(reported, file, tempFile string) bool {
	if reported == "" {
		return true
	}
	for _, candidate := range []string{file, tempFile} {
		if candidate == "" {
			continue
		}
		if filepath.Clean(reported) == filepath.Clean(candidate) {
			return true
		}
		a, errA := filepath.Abs(reported)
		b, errB := filepath.Abs(candidate)
		if errA == nil && errB == nil && a == b {
			return true
		}
	}
	return false
}
