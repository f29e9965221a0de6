package linters

import (
	"sort"
	"strings"
	"sync"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/odylint/odylint/api"
)

// Max levenshtein distance at which unknown adapter names get a suggestion.
const maxSuggestionDistance = 3

// Registry of adapters, keyed by name.
//
// Registration takes a write lock, everything else is safe to call concurrently.
type Registry struct {
	lock     sync.RWMutex
	adapters map[string]*api.Adapter
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[string]*api.Adapter{}}
}

var defaultRegistry = NewRegistry()

// Default returns the registry holding the built-in adapters.
func Default() *Registry {
	return defaultRegistry
}

// MustRegister registers adapter with the default registry, panicking on error.
func MustRegister(adapter *api.Adapter) {
	if err := defaultRegistry.Register(adapter); err != nil {
		panic(err)
	}
}

// Register a copy of adapter.
func (r *Registry) Register(adapter *api.Adapter) error {
	if err := adapter.Validate(); err != nil {
		return err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, ok := r.adapters[adapter.Name]; ok {
		return &api.DuplicateNameError{Name: adapter.Name}
	}
	r.adapters[adapter.Name] = adapter.Clone()
	r.order = append(r.order, adapter.Name)
	return nil
}

// Get an adapter by name.
func (r *Registry) Get(name string) (*api.Adapter, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if adapter, ok := r.adapters[name]; ok {
		return adapter, nil
	}
	return nil, &api.UnknownAdapterError{Name: name, Suggestions: suggest(name, r.order)}
}

// Names of all adapters in registration order.
func (r *Registry) Names() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return append([]string{}, r.order...)
}

// All adapters in registration order.
func (r *Registry) All() []*api.Adapter {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([]*api.Adapter, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.adapters[name])
	}
	return out
}

// ForScope returns the adapters whose selector matches scope.
func (r *Registry) ForScope(scope string) []*api.Adapter {
	out := []*api.Adapter{}
	for _, adapter := range r.All() {
		if adapter.Selector.Matches(scope) {
			out = append(out, adapter)
		}
	}
	return out
}

// Clone returns a new registry holding the same adapters.
func (r *Registry) Clone() *Registry {
	out := NewRegistry()
	for _, adapter := range r.All() {
		out.adapters[adapter.Name] = adapter
		out.order = append(out.order, adapter.Name)
	}
	return out
}

type suggestion struct {
	name string
	dist int
}

func suggest(needle string, haystack []string) []string {
	r := []rune(strings.ToLower(needle))
	options := []suggestion{}
	for _, straw := range haystack {
		distance := levenshtein.DistanceForStrings(r, []rune(strings.ToLower(straw)), levenshtein.DefaultOptions)
		if distance <= maxSuggestionDistance {
			options = append(options, suggestion{name: straw, dist: distance})
		}
	}
	sort.SliceStable(options, func(i, j int) bool { return options[i].dist < options[j].dist })
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.name
	}
	return out
}
