package api

import (
	"fmt"
	"strings"
)

// Settings of an adapter, mapping option names to values.
//
// Values are scalars (string, bool, numbers) or lists. Keys starting with "-" are flag keys whose
// values are expanded into command-line flags.
type Settings map[string]interface{}

// Copy returns a copy of the settings. Lists are copied, so the result can be modified freely.
func (s Settings) Copy() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for k, v := range s {
		switch v := v.(type) {
		case []string:
			out[k] = append([]string(nil), v...)
		case []interface{}:
			out[k] = append([]interface{}(nil), v...)
		default:
			out[k] = v
		}
	}
	return out
}

// String returns a scalar setting as a string.
func (s Settings) String(key string) (string, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return "", false
	}
	switch v := v.(type) {
	case []string, []interface{}:
		return "", false
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}

// Strings returns a setting as a list of strings. A scalar is returned as a single element list,
// and nil or a missing key as an empty list.
func (s Settings) Strings(key string) []string {
	return ToStrings(s[key])
}

// ToStrings converts a setting value to a list of strings.
func ToStrings(v interface{}) []string {
	switch v := v.(type) {
	case nil:
		return []string{}
	case []string:
		return append([]string{}, v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			out = append(out, fmt.Sprint(e))
		}
		return out
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}
		}
		return []string{v}
	default:
		return []string{fmt.Sprint(v)}
	}
}
