package api

import "strings"

// Selector is a comma separated list of scope selectors, eg. "source.c, source.c++".
//
// A selector alternative matches a scope when every space separated atom of the alternative
// matches, in order, an atom of the scope. An atom matches if it is equal to the scope atom or is
// a dot separated prefix of it, so "text.html.markdown" matches "text.html.markdown.gfm".
type Selector string

// Alternatives returns the trimmed, non-empty alternatives of the selector.
func (s Selector) Alternatives() []string {
	out := []string{}
	for _, part := range strings.Split(string(s), ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Matches returns true if any alternative matches scope.
func (s Selector) Matches(scope string) bool {
	scopeAtoms := strings.Fields(scope)
	for _, alternative := range s.Alternatives() {
		if matchAtoms(strings.Fields(alternative), scopeAtoms) {
			return true
		}
	}
	return false
}

func matchAtoms(selector, scope []string) bool {
	i := 0
	for _, atom := range scope {
		if i == len(selector) {
			break
		}
		if atom == selector[i] || strings.HasPrefix(atom, selector[i]+".") {
			i++
		}
	}
	return i == len(selector)
}
