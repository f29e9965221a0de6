package external

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odylint/odylint/api"
	"github.com/odylint/odylint/linters"
)

func TestParseYamlLint(t *testing.T) {
	actual := Collect(linters.YamlLint(), "file.yaml:4:2: [warning] wrong indentation\n")
	expected := []api.Diagnostic{{
		Adapter:  "YamlLint",
		Line:     4,
		Col:      2,
		Severity: api.Warning,
		Message:  "wrong indentation",
	}}
	require.Equal(t, expected, actual)
}

func TestParseCppCheck(t *testing.T) {
	actual := Collect(linters.CppCheck(), "main.c:10:5:error:nullPointer:possible null pointer dereference")
	expected := []api.Diagnostic{{
		Adapter:  "CppCheck",
		Filename: "main.c",
		Line:     10,
		Col:      5,
		Severity: api.Error,
		Code:     "nullPointer",
		Message:  "possible null pointer dereference",
	}}
	require.Equal(t, expected, actual)
}

func TestParseCppCheckStyleIsWarning(t *testing.T) {
	actual := Collect(linters.CppCheck(), `C:\src\util.c:3:1:style:unusedFunction:The function 'f' is never used.`)
	require.Len(t, actual, 1)
	assert.Equal(t, `C:\src\util.c`, actual[0].Filename)
	assert.Equal(t, api.Warning, actual[0].Severity)
	assert.Equal(t, "unusedFunction", actual[0].Code)
}

func TestParseMarkdownLint(t *testing.T) {
	actual := Collect(linters.MarkdownLint(), "README.md:12 MD013/line-length Line too long")
	require.Len(t, actual, 1)
	assert.Equal(t, 12, actual[0].Line)
	assert.Equal(t, 0, actual[0].Col)
	assert.Equal(t, "MD013", actual[0].Code)
	assert.Equal(t, api.Error, actual[0].Severity)
}

func TestParseDennis(t *testing.T) {
	output := "messages.po:42:0:E101:Unbalanced variable\nmessages.po:50:0:W301:Translated string is all whitespace\n"
	actual := Collect(linters.Dennis(), output)
	require.Len(t, actual, 2)
	assert.Equal(t, api.Diagnostic{Adapter: "Dennis", Line: 42, Severity: api.Error, Code: "E101", Message: "Unbalanced variable"}, actual[0])
	assert.Equal(t, api.Warning, actual[1].Severity)
	assert.Equal(t, "W301", actual[1].Code)
}

func TestParseGLSL(t *testing.T) {
	output := "shader.frag\nERROR: shader.frag:7: 'colour' : undeclared identifier\nERROR: 1 compilation errors.  No code generated.\n"
	actual := Collect(linters.GLSL(), output)
	require.Len(t, actual, 1)
	assert.Equal(t, api.Diagnostic{Adapter: "GLSL", Line: 7, Severity: api.Error, Message: "undeclared identifier", Near: "colour"}, actual[0])
}

func TestParseSkipsNoiseWithoutShifting(t *testing.T) {
	output := "yamllint 1.35\n" +
		"a.yaml:1:1: [error] syntax error\n" +
		"\n" +
		"  noise: 3:4: [warning] no column\n" +
		"a.yaml:x:1: [error] not a number\n" +
		"a.yaml:9:3: [warning] trailing spaces\r\n" +
		"2 problems found"
	actual := Collect(linters.YamlLint(), output)
	require.Len(t, actual, 2)
	assert.Equal(t, 1, actual[0].Line)
	assert.Equal(t, "syntax error", actual[0].Message)
	assert.Equal(t, 9, actual[1].Line)
	assert.Equal(t, 3, actual[1].Col)
	assert.Equal(t, "trailing spaces", actual[1].Message)
}

func TestParseNeverPanics(t *testing.T) {
	inputs := []string{"", "\n\n", ":::::", "a:1:", "\x00\xff", "ERROR: :: '' :", "README.md:99999999999999999999 MD001/x y"}
	for _, adapter := range linters.Default().All() {
		for _, input := range inputs {
			assert.NotPanics(t, func() { Collect(adapter, input) }, "%s %q", adapter.Name, input)
		}
	}
}

func TestParseOutputIsRestartable(t *testing.T) {
	seq := ParseOutput(linters.YamlLint(), "a.yaml:1:1: [error] one\na.yaml:2:1: [error] two\n")
	first := []int{}
	for d := range seq {
		first = append(first, d.Line)
	}
	second := []int{}
	for d := range seq {
		second = append(second, d.Line)
		break
	}
	assert.Equal(t, []int{1, 2}, first)
	assert.Equal(t, []int{1}, second)
}

func TestParseMultilineAndBase(t *testing.T) {
	adapter := &api.Adapter{
		Name:            "multi",
		Pattern:         regexp.MustCompile(`^Location: (?P<line>\d+),(?P<col>\d+)$\s+Error: (?P<message>.+)$`),
		DefaultSeverity: api.Warning,
		Options:         api.ParseOptions{Multiline: true, LineBase: 0, ColBase: 0},
	}
	output := "header\nLocation: 0,4\n  Error: broken thing\nLocation: 9,0\nno error line\n"
	actual := Collect(adapter, output)
	require.Equal(t, []api.Diagnostic{{Adapter: "multi", Line: 1, Col: 5, Severity: api.Warning, Message: "broken thing"}}, actual)
}

func TestSelectOutput(t *testing.T) {
	adapter := &api.Adapter{}
	assert.Equal(t, "out", SelectOutput(adapter, "out", "err"))
	adapter.Options.Stream = api.StreamStderr
	assert.Equal(t, "err", SelectOutput(adapter, "out", "err"))
	adapter.Options.Stream = api.StreamBoth
	assert.Equal(t, "out\nerr", SelectOutput(adapter, "out", "err"))
	assert.Equal(t, "out\nerr", SelectOutput(adapter, "out\n", "err"))
}

func TestWordAt(t *testing.T) {
	adapter := linters.YamlLint()
	tests := []struct {
		line     string
		col      int
		expected api.Span
		ok       bool
	}{
		{`key: some-value`, 6, api.Span{Col: 6, EndCol: 16, Text: "some-value"}, true},
		{`key: "quoted value" # x`, 6, api.Span{Col: 6, EndCol: 20, Text: `"quoted value"`}, true},
		{`ключ: value`, 7, api.Span{Col: 7, EndCol: 12, Text: "value"}, true},
		{`key:  `, 5, api.Span{}, false},
		{`key`, 4, api.Span{}, false},
		{`key`, 0, api.Span{}, false},
	}
	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			span, ok := WordAt(adapter, test.line, test.col)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.expected, span)
		})
	}

	_, ok := WordAt(linters.CppCheck(), "int x;", 1)
	assert.False(t, ok)
}

func TestResolveCommand(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	tests := []struct {
		name     string
		adapter  *api.Adapter
		ctx      api.LintContext
		expected []string
	}{
		{
			name:     "YamlLintInsertsArgsAfterProgram",
			adapter:  linters.YamlLint(),
			ctx:      api.LintContext{File: "conf/app.yaml"},
			expected: []string{"yamllint", "-c", "/home/user/.config/yamllint/config/.yamllint.yaml", "--format", "parsable", "conf/app.yaml"},
		},
		{
			name:     "YamlLintModifiedUsesTempFile",
			adapter:  linters.YamlLint(),
			ctx:      api.LintContext{File: "conf/app.yaml", TempFile: "/tmp/x.yaml", Modified: true, Settings: api.Settings{"args": "-d relaxed"}},
			expected: []string{"yamllint", "-d", "relaxed", "--format", "parsable", "/tmp/x.yaml"},
		},
		{
			name:     "Dennis",
			adapter:  linters.Dennis(),
			ctx:      api.LintContext{File: "fr.po", TempFile: "/tmp/fr.dennis-linter"},
			expected: []string{"dennis-cmd", "lint", "--reporter", "line", "--excluderules", "W302", "/tmp/fr.dennis-linter"},
		},
		{
			name:    "CppCheckFlags",
			adapter: linters.CppCheck(),
			ctx: api.LintContext{File: "main.c", Settings: api.Settings{
				"--std=,+":   []interface{}{"c99", "c89"},
				"--enable=,": []string{"style", "warning", "performance"},
				"args":       []string{"-I", "include"},
			}},
			expected: []string{
				"cppcheck", "--template={file}:{line}:{column}:{severity}:{id}:{message}", "--inline-suppr", "--quiet",
				"-I", "include", "--enable=style,warning,performance", "--std=c99", "--std=c89", "main.c",
			},
		},
		{
			name:    "CppCheckDefaults",
			adapter: linters.CppCheck(),
			ctx:     api.LintContext{File: "main.c"},
			expected: []string{
				"cppcheck", "--template={file}:{line}:{column}:{severity}:{id}:{message}", "--inline-suppr", "--quiet",
				"--enable=style,warning", "main.c",
			},
		},
		{
			name: "EmbeddedPlaceholders",
			adapter: &api.Adapter{
				Name:    "embedded",
				Command: []string{"tool", "--root=${file_path}", "--name=${file_name}", "--level=${level}"},
			},
			ctx:      api.LintContext{File: "a/b/c.txt", Settings: api.Settings{"level": 3, "-v": true, "--quiet": false, "-o:": "out"}},
			expected: []string{"tool", "-o", "out", "-v", "--root=a/b", "--name=c.txt", "--level=3"},
		},
		{
			name:     "EmbeddedArgsAppearOnce",
			adapter:  &api.Adapter{Name: "embedded", Command: []string{"tool", "--opts=${args}", "${file}"}},
			ctx:      api.LintContext{File: "a.txt", Settings: api.Settings{"args": []string{"-v"}}},
			expected: []string{"tool", "--opts=-v", "a.txt"},
		},
		{
			name:    "CppCheckModifiedLintsFileOnDisk",
			adapter: linters.CppCheck(),
			ctx:     api.LintContext{File: "main.c", Modified: true},
			expected: []string{
				"cppcheck", "--template={file}:{line}:{column}:{severity}:{id}:{message}", "--inline-suppr", "--quiet",
				"--enable=style,warning", "main.c",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := ResolveCommand(test.adapter, test.ctx)
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestResolveCommandMissingTempFile(t *testing.T) {
	_, err := ResolveCommand(linters.Dennis(), api.LintContext{File: "fr.po"})
	var missing *api.MissingContextError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "Dennis", missing.Adapter)
	assert.Equal(t, "temp_file", missing.Placeholder)

	_, err = ResolveCommand(linters.YamlLint(), api.LintContext{File: "a.yaml", Modified: true})
	require.True(t, errors.As(err, &missing))
}

func TestResolveCommandMissingPlaceholder(t *testing.T) {
	_, err := ResolveCommand(linters.MarkdownLint(), api.LintContext{})
	var missing *api.MissingContextError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "file", missing.Placeholder)

	adapter := &api.Adapter{Name: "unknown", Command: []string{"tool", "${definitely_not_set_anywhere}"}}
	_, err = ResolveCommand(adapter, api.LintContext{File: "x"})
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "definitely_not_set_anywhere", missing.Placeholder)
}

func TestResolveCommandDoesNotMutateAdapter(t *testing.T) {
	adapter := linters.CppCheck()
	before := adapter.Clone()
	_, err := ResolveCommand(adapter, api.LintContext{File: "main.c"})
	require.NoError(t, err)
	assert.Equal(t, before, adapter)
}

func TestBuildArgsInvalid(t *testing.T) {
	_, err := BuildArgs(api.Settings{"args": `"unterminated`})
	assert.Error(t, err)
	_, err = BuildArgs(api.Settings{"-=bad key": "x"})
	assert.Error(t, err)
}
