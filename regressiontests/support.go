// Package regressiontests runs the odylint binary against real linters.
//
// Tests for a linter are skipped when it is not installed.
package regressiontests

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
	"gotest.tools/v3/fs"
)

type Diagnostic struct {
	Linter   string `json:"linter"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Line     int    `json:"line"`
	Col      int    `json:"col"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

func (d *Diagnostic) String() string {
	col := ""
	if d.Col != 0 {
		col = fmt.Sprintf("%d", d.Col)
	}
	return fmt.Sprintf("%s:%d:%s:%s: %s (%s)", strings.TrimSpace(d.Path), d.Line, col, d.Severity, strings.TrimSpace(d.Message), d.Linter)
}

type Diagnostics []Diagnostic

// RequireLinter skips the test if program is not installed.
func RequireLinter(t *testing.T, program string) {
	t.Helper()
	if _, err := exec.LookPath(program); err != nil {
		t.Skipf("%s is not installed", program)
	}
}

// ExpectDiagnostics writes source to filename in a temporary directory, lints it with adapter and
// expects exactly the diagnostics provided.
func ExpectDiagnostics(t *testing.T, adapter, filename, source, config string, expected Diagnostics) {
	dir := fs.NewDir(t, "odylint-regression",
		fs.WithFile(filename, source),
		fs.WithFile("odylint.toml", config))
	defer dir.Remove()

	actual := RunLinter(t, adapter, dir.Path(), filename)
	assert.Check(t, is.DeepEqual(expected, actual))
}

// RunLinter runs the odylint binary against the files at path and returns the diagnostics it
// reported.
func RunLinter(t *testing.T, adapter string, dir string, files ...string) Diagnostics {
	binary, cleanup := buildBinary(t)
	defer cleanup()

	args := []string{
		"-d", "--config", "odylint.toml", "lint", "--enable", adapter, "--json",
		"--sort=path", "--sort=line", "--sort=column", "--sort=message",
	}
	args = append(args, files...)
	cmd := exec.Command(binary, args...)
	cmd.Dir = dir

	errBuffer := new(bytes.Buffer)
	cmd.Stderr = errBuffer

	output, _ := cmd.Output()

	var actual Diagnostics
	err := json.Unmarshal(output, &actual)
	if !assert.Check(t, is.Nil(err)) {
		fmt.Printf("Stderr: %s\n", errBuffer)
		fmt.Printf("Output: %s\n", output)
		return nil
	}
	return filterDiagnostics(actual, adapter, dir)
}

func buildBinary(t *testing.T) (string, func()) {
	tmpdir := fs.NewDir(t, "regression-test-binary")
	path := tmpdir.Join("odylint")
	cmd := exec.Command("go", "build", "-o", path, "..")
	assert.NilError(t, cmd.Run())
	return path, tmpdir.Remove
}

// filterDiagnostics to those of the adapter, removing the directory from paths and messages.
func filterDiagnostics(diagnostics Diagnostics, adapter string, dir string) Diagnostics {
	filtered := Diagnostics{}
	for _, diagnostic := range diagnostics {
		if diagnostic.Linter == adapter || adapter == "" {
			diagnostic.Path = strings.Replace(diagnostic.Path, dir+string(os.PathSeparator), "", -1)
			diagnostic.Message = strings.Replace(diagnostic.Message, dir+string(os.PathSeparator), "", -1)
			filtered = append(filtered, diagnostic)
		}
	}
	return filtered
}
