package wrapcore

import "regexp"

// uriPattern is the compiled disjunction of an RFC-5322-lite email address,
// file:, ftp://, and http(s):// URIs (spec §4.3.3). Go's regexp package has
// no lookbehind, so the word-boundary guard described in the spec ("the
// match is accepted only if the character before the match is not a word
// character, or the previous character is whitespace followed by a
// non-whitespace at the match start") is applied by the caller
// (computeNoWrapRanges below) against the byte immediately preceding each
// candidate match, rather than being folded into the pattern itself.
var uriPattern = regexp.MustCompile(
	`(?:[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,})` + // email
		`|(?:file:/{2,3}[^\s]+)` +
		`|(?:ftp://[^\s]+)` +
		`|(?:https?://[^\s]+)`,
)

// noWrapRange is a half-open [Lo, Hi) byte range within a line that the
// hyphen state machine must treat as frozen at HyphenNo (spec §4.3.3).
type noWrapRange struct {
	Lo, Hi int
}

// computeNoWrapRanges finds every word-boundary-guarded URI/email match in
// line and returns their byte ranges in order.
func computeNoWrapRanges(re *regexp.Regexp, line []byte) []noWrapRange {
	if re == nil {
		return nil
	}
	var ranges []noWrapRange
	locs := re.FindAllIndex(line, -1)
	for _, loc := range locs {
		lo, hi := loc[0], loc[1]
		if !wordBoundaryOK(line, lo) {
			continue
		}
		ranges = append(ranges, noWrapRange{Lo: lo, Hi: hi})
	}
	return ranges
}

// wordBoundaryOK implements spec §4.3.3's guard: the match is accepted only
// if the character before the match is not a word character, or the
// previous character is whitespace followed directly by a non-whitespace at
// the match start (i.e. the match starts a new "word" right after a run of
// whitespace).
func wordBoundaryOK(line []byte, lo int) bool {
	if lo == 0 {
		return true
	}
	prev := line[lo-1]
	if !isWordByte(prev) {
		return true
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// inNoWrapRange reports whether byte offset pos within the current line
// falls inside any no-wrap range, advancing past expired ranges in ranges
// as pos increases (spec §4.3.3: "when the consume pointer crosses hi, the
// next match on the same line is computed").
func inNoWrapRange(ranges []noWrapRange, idx *int, pos int) bool {
	for *idx < len(ranges) && pos >= ranges[*idx].Hi {
		*idx++
	}
	if *idx >= len(ranges) {
		return false
	}
	r := ranges[*idx]
	return pos >= r.Lo && pos < r.Hi
}
