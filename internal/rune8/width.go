package rune8

import "golang.org/x/text/width"

// DisplayWidth classifies cp using golang.org/x/text/width and reports the
// column width an East-Asian-aware renderer would give it (1 or 2).
//
// This is a supplementary helper, not part of the wrap engine's default
// width accounting: spec §4.3.2 step 10 fixes every codepoint, multi-byte
// or not, at width 1, and the engine's hot path honors that rule exactly.
// DisplayWidth exists so a caller that wants East-Asian-aware column math
// (e.g. a future terminal-width probe) has a building block without the
// core engine needing to special-case it.
func DisplayWidth(cp Codepoint) int {
	if cp < 0 {
		return 0
	}
	switch width.LookupRune(rune(cp)).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
