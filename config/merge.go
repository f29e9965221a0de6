package config

import (
	"sort"

	"github.com/odylint/odylint/api"
)

// MergeSettings returns the effective settings for one invocation: defaults overridden by
// overrides.
//
// Lists are replaced wholesale, and a nil override removes the default. Neither input is modified.
func MergeSettings(defaults, overrides api.Settings) api.Settings {
	out := defaults.Copy()
	if out == nil {
		out = api.Settings{}
	}
	for key, value := range overrides.Copy() {
		if value == nil {
			delete(out, key)
			continue
		}
		out[key] = value
	}
	return out
}

func sortedKeys(m map[string]AdapterDefinition) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
