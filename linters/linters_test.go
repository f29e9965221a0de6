package linters

import (
	"errors"
	"regexp"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odylint/odylint/api"
)

func testAdapter(name string) *api.Adapter {
	return &api.Adapter{
		Name:     name,
		Command:  []string{"tool", "${file}"},
		Selector: "source.test",
		Pattern:  regexp.MustCompile(`^(?P<line>\d+): (?P<message>.+)$`),
	}
}

func TestBuiltinAdaptersAreRegistered(t *testing.T) {
	assert.Equal(t, []string{"CppCheck", "Dennis", "GLSL", "MDLint", "YamlLint"}, sortedNames(Default()))
}

func TestBuiltinAdaptersAreValid(t *testing.T) {
	for _, adapter := range []*api.Adapter{Dennis(), GLSL(), YamlLint(), MarkdownLint(), CppCheck()} {
		t.Run(adapter.Name, func(t *testing.T) {
			require.NoError(t, adapter.Validate())
			assert.Equal(t, 1, adapter.Options.LineBase)
			assert.Equal(t, 1, adapter.Options.ColBase)
			assert.False(t, adapter.Options.Multiline)
			assert.Equal(t, adapter.Name == "MDLint", adapter.NodePackage)
		})
	}
}

func TestNamesArePairwiseDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, adapter := range Default().All() {
		assert.False(t, seen[adapter.Name], adapter.Name)
		seen[adapter.Name] = true
	}
}

func TestRegisterDuplicate(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(testAdapter("fake")))

	err := registry.Register(testAdapter("fake"))
	var duplicate *api.DuplicateNameError
	require.True(t, errors.As(err, &duplicate))
	assert.Equal(t, "fake", duplicate.Name)
	assert.Equal(t, []string{"fake"}, registry.Names())
}

func TestRegisterInvalid(t *testing.T) {
	registry := NewRegistry()
	adapter := testAdapter("nomessage")
	adapter.Pattern = regexp.MustCompile(`^(?P<line>\d+)`)
	err := registry.Register(adapter)
	var invalid *api.InvalidAdapterError
	require.True(t, errors.As(err, &invalid))
	assert.Empty(t, registry.Names())
}

func TestRegisterCopiesAdapter(t *testing.T) {
	registry := NewRegistry()
	adapter := testAdapter("fake")
	adapter.Defaults = api.Settings{"args": []string{"-v"}}
	require.NoError(t, registry.Register(adapter))

	adapter.Command[0] = "mutated"
	adapter.Defaults["args"].([]string)[0] = "mutated"

	registered, err := registry.Get("fake")
	require.NoError(t, err)
	assert.Equal(t, "tool", registered.Command[0])
	assert.Equal(t, []string{"-v"}, registered.Defaults["args"])
}

func TestGetUnknownSuggests(t *testing.T) {
	_, err := Default().Get("yamllint")
	var unknown *api.UnknownAdapterError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, []string{"YamlLint"}, unknown.Suggestions)
	assert.Contains(t, err.Error(), "maybe you meant YamlLint?")

	_, err = Default().Get("completely-different")
	require.True(t, errors.As(err, &unknown))
	assert.Empty(t, unknown.Suggestions)
}

func TestForScope(t *testing.T) {
	tests := []struct {
		scope    string
		expected []string
	}{
		{"source.c", []string{"CppCheck"}},
		{"source.c++", []string{"CppCheck"}},
		{"text.html.markdown.gfm", []string{"MDLint"}},
		{"source.yaml", []string{"YamlLint"}},
		{"source.po", []string{"Dennis"}},
		{"source.glsl", []string{"GLSL"}},
		{"source.python", []string{}},
	}
	for _, test := range tests {
		t.Run(test.scope, func(t *testing.T) {
			names := []string{}
			for _, adapter := range Default().ForScope(test.scope) {
				names = append(names, adapter.Name)
			}
			assert.Equal(t, test.expected, names)
		})
	}
}

func TestScopeForFile(t *testing.T) {
	assert.Equal(t, "source.yaml", ScopeForFile("config/app.YML"))
	assert.Equal(t, "source.c++", ScopeForFile("src/main.cpp"))
	assert.Equal(t, "text.html.markdown.gfm", ScopeForFile("README.md"))
	assert.Equal(t, "", ScopeForFile("Makefile"))
}

func TestCloneIsIndependent(t *testing.T) {
	clone := Default().Clone()
	require.NoError(t, clone.Register(testAdapter("extra")))
	assert.Contains(t, clone.Names(), "extra")
	assert.NotContains(t, Default().Names(), "extra")
}

func TestConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = registry.Register(testAdapter(string(rune('a' + i))))
		}(i)
		go func() {
			defer wg.Done()
			_ = registry.ForScope("source.test")
		}()
	}
	wg.Wait()
	assert.Len(t, registry.Names(), 8)
}

func sortedNames(registry *Registry) []string {
	names := registry.Names()
	sort.Strings(names)
	return names
}
