package external

import (
	"unicode/utf8"

	"github.com/odylint/odylint/api"
)

// WordAt applies the adapter's word pattern to lineText starting at the 1-based column col and
// returns the matched span.
//
// It returns false if the adapter has no word pattern, col is outside the line or nothing matched,
// in which case hosts should fall back to their own word boundaries.
func WordAt(adapter *api.Adapter, lineText string, col int) (api.Span, bool) {
	if adapter.WordPattern == nil || col < 1 {
		return api.Span{}, false
	}
	offset := 0
	for i := 1; i < col; i++ {
		if offset >= len(lineText) {
			return api.Span{}, false
		}
		_, size := utf8.DecodeRuneInString(lineText[offset:])
		offset += size
	}
	if offset >= len(lineText) {
		return api.Span{}, false
	}
	rest := lineText[offset:]
	loc := adapter.WordPattern.FindStringIndex(rest)
	if loc == nil || loc[0] == loc[1] {
		return api.Span{}, false
	}
	start := col + utf8.RuneCountInString(rest[:loc[0]])
	text := rest[loc[0]:loc[1]]
	return api.Span{Col: start, EndCol: start + utf8.RuneCountInString(text), Text: text}, true
}
