package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"gotest.tools/v3/fs"

	"github.com/odylint/odylint/api"
	"github.com/odylint/odylint/config"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	status := run(context.Background(), args, strings.NewReader(stdin), stdout, stderr)
	return status, stdout.String(), stderr.String()
}

func TestList(t *testing.T) {
	status, stdout, _ := runCLI(t, "", "list")
	require.Equal(t, 0, status)
	for _, name := range []string{"Dennis", "GLSL", "YamlLint", "MDLint", "CppCheck"} {
		assert.Contains(t, stdout, name)
	}

	status, stdout, _ = runCLI(t, "", "list", "--yaml")
	require.Equal(t, 0, status)
	adapters := []map[string]interface{}{}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &adapters))
	assert.Len(t, adapters, 5)
}

func TestResolve(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	status, stdout, stderr := runCLI(t, "", "resolve", "YamlLint", "conf/app.yaml")
	require.Equal(t, 0, status, stderr)
	assert.Equal(t, "yamllint -c /home/user/.config/yamllint/config/.yamllint.yaml --format parsable conf/app.yaml\n", stdout)

	status, stdout, stderr = runCLI(t, "", "resolve", "GLSL", "my shader.frag", "--modified", "--temp-file", "/tmp/x.frag")
	require.Equal(t, 0, status, stderr)
	assert.Equal(t, "glslangValidator /tmp/x.frag\n", stdout)
}

func TestResolveErrors(t *testing.T) {
	status, _, stderr := runCLI(t, "", "resolve", "yamlint", "a.yaml")
	assert.Equal(t, 2, status)
	assert.Contains(t, stderr, "maybe you meant YamlLint")

	status, _, stderr = runCLI(t, "", "resolve", "Dennis", "fr.po")
	assert.Equal(t, 2, status)
	assert.Contains(t, stderr, "temp_file")
}

func TestParse(t *testing.T) {
	status, stdout, stderr := runCLI(t, "a.yaml:4:2: [warning] wrong indentation\nnoise\n", "parse", "YamlLint", "--file", "a.yaml")
	require.Equal(t, 1, status, stderr)
	assert.Equal(t, "a.yaml:4:2:warning: wrong indentation (YamlLint)\n", stdout)

	status, stdout, stderr = runCLI(t, "main.c:10:5:error:nullPointer:possible null pointer dereference\n", "parse", "CppCheck", "--output", "json")
	require.Equal(t, 2, status, stderr)
	actual := []api.Diagnostic{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &actual))
	assert.Equal(t, []api.Diagnostic{{
		Adapter:  "CppCheck",
		Severity: api.Error,
		Filename: "main.c",
		Line:     10,
		Col:      5,
		Code:     "nullPointer",
		Message:  "possible null pointer dereference",
	}}, actual)

	status, stdout, _ = runCLI(t, "nothing to see\n", "parse", "GLSL")
	assert.Equal(t, 0, status)
	assert.Empty(t, stdout)
}

func TestWord(t *testing.T) {
	status, stdout, stderr := runCLI(t, "key: some-value\n", "word", "YamlLint", "6")
	require.Equal(t, 0, status, stderr)
	assert.Equal(t, "6:16:some-value\n", stdout)

	status, _, stderr = runCLI(t, "int x;\n", "word", "CppCheck", "1")
	assert.Equal(t, 2, status)
	assert.Contains(t, stderr, "no word")
}

func TestLint(t *testing.T) {
	dir := fs.NewDir(t, "odylint-main")
	defer dir.Remove()
	file := dir.Join("a.yaml")
	require.NoError(t, os.WriteFile(file, []byte(file+":1:3: wrong thing\n"), 0600))
	conf := dir.Join("odylint.toml")
	require.NoError(t, os.WriteFile(conf, []byte(`
enabled = ["cat"]

[define.cat]
command = ["sh", "-c", "cat \"$0\"", "${file}"]
selector = "source.yaml"
pattern = "FILE:LINE:COL:MESSAGE"
`), 0600))

	status, stdout, stderr := runCLI(t, "", "--config", conf, "lint", dir.Path())
	require.Equal(t, 2, status, stderr)
	assert.Equal(t, file+":1:3:error: wrong thing (cat)\n", stdout)

	status, stdout, _ = runCLI(t, "", "--config", conf, "lint", "--format", "{{.Line}}", "--exclude", "wrong", file)
	assert.Equal(t, 0, status)
	assert.Empty(t, stdout)

	status, stdout, _ = runCLI(t, "", "--config", conf, "lint", "--checkstyle", file)
	assert.Equal(t, 2, status)
	assert.Contains(t, stdout, `<error column="3" line="1" message="wrong thing" severity="error" source="cat">`)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteDiagnosticsReportsWriteErrors(t *testing.T) {
	conf := config.Default()
	conf.Output = config.OutputJSON
	diagnostics := make(chan *api.Diagnostic, 1)
	diagnostics <- &api.Diagnostic{Adapter: "YamlLint", Severity: api.Warning, Line: 1, Message: "x"}
	close(diagnostics)
	status, err := writeDiagnostics(failingWriter{}, conf, diagnostics)
	assert.EqualError(t, err, "broken pipe")
	assert.Equal(t, 1, status)
}

func TestLintUnknownAdapter(t *testing.T) {
	status, _, stderr := runCLI(t, "", "lint", "--enable", "CppChek", "nothing.c")
	assert.Equal(t, 2, status)
	assert.Contains(t, stderr, "CppCheck")
}

func TestInvalidFlags(t *testing.T) {
	status, _, stderr := runCLI(t, "", "lint", "--output", "xml")
	assert.Equal(t, 2, status)
	assert.Contains(t, stderr, "xml")
}
