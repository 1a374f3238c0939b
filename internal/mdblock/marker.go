package mdblock

import "bytes"

// trimIndent counts up to limit columns of leading space/tab indentation
// (tabs counting to the next 4-column stop, Markdown's own tab model,
// independent of the host's configured tab_spaces), returning the column
// count and the remaining tail. Grounded on scandown/block.go's trimIndent.
func trimIndent(line []byte, prior, limit int) (n int, tail []byte) {
	for tail = line; n < limit && len(tail) > 0; tail = tail[1:] {
		switch tail[0] {
		case ' ':
			n++
		case '\t':
			if m := n + mdTabWidth - prior; m > limit {
				return n, tail
			} else if m == limit {
				return m, tail
			} else {
				n = m
			}
			prior = 0
		default:
			return n, tail
		}
	}
	return n, tail
}

func trimSpace(b []byte) []byte { return bytes.TrimRight(bytes.TrimLeft(b, " \t"), " \t\r") }

func isByte(b byte, any ...byte) bool {
	for _, ab := range any {
		if b == ab {
			return true
		}
	}
	return false
}

// delimiter matches a run of 1..maxWidth of the same mark byte followed by a
// space, tab, or end of line (ATX header '#' runs). Grounded on
// scandown/block.go's delimiter.
func delimiter(line []byte, maxWidth int, marks ...byte) (delim byte, width int, tail []byte) {
	if len(line) == 0 || !isByte(line[0], marks...) {
		return 0, 0, nil
	}
	delim = line[0]
	tail = line[1:]
	width = 1
	for {
		if len(tail) == 0 {
			return delim, width, tail
		}
		switch tail[0] {
		case delim:
			width++
			if width > maxWidth {
				return 0, 0, nil
			}
			tail = tail[1:]
		case ' ', '\t':
			return delim, width, tail
		default:
			if width == maxWidth {
				return delim, width, tail
			}
			return 0, 0, nil
		}
	}
}

// fence matches a run of >= min of the same mark byte starting the line
// (fenced code block delimiters). Grounded on scandown/block.go's fence.
func fence(line []byte, min int, marks ...byte) (delim byte, width int, tail []byte) {
	if len(line) == 0 || !isByte(line[0], marks...) {
		return 0, 0, nil
	}
	delim = line[0]
	for width = 1; width < len(line) && line[width] == delim; width++ {
	}
	if width < min {
		return 0, 0, nil
	}
	return delim, width, line[width:]
}

// ruler matches a line consisting only of one mark byte interspersed with
// optional whitespace, appearing at least 3 times (horizontal rule).
// Grounded on scandown/block.go's ruler.
func ruler(line []byte, marks ...byte) (delim byte, width int, tail []byte) {
	trimmed := bytes.TrimRight(line, " \t\r")
	if len(trimmed) == 0 || !isByte(trimmed[0], marks...) {
		return 0, 0, nil
	}
	delim = trimmed[0]
	count := 0
	for _, b := range trimmed {
		switch b {
		case delim:
			count++
		case ' ', '\t':
		default:
			return 0, 0, nil
		}
	}
	if count < 3 {
		return 0, 0, nil
	}
	return delim, count, nil
}

// isSetextUnderline reports whether line is a run of mark (optionally
// trailed by whitespace) used as a Setext header underline.
func isSetextUnderline(line []byte, mark byte) bool {
	trimmed := bytes.TrimRight(line, " \t\r")
	if len(trimmed) == 0 {
		return false
	}
	for _, b := range trimmed {
		if b != mark {
			return false
		}
	}
	return true
}

// orderedListMarker matches "N." or "N)" at the start of line.
func orderedListMarker(line []byte) (delim byte, width, num int, tail []byte) {
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' && i < 9 {
		num = num*10 + int(line[i]-'0')
		i++
	}
	if i == 0 || i >= len(line) {
		return 0, 0, 0, nil
	}
	if line[i] != '.' && line[i] != ')' {
		return 0, 0, 0, nil
	}
	delim = line[i]
	i++
	if i >= len(line) || (line[i] != ' ' && line[i] != '\t') {
		if i != len(line) { // a bare "N." with nothing else is still a marker at EOL
			return 0, 0, 0, nil
		}
	}
	n, cont := trimIndent(line[i:], 0, 4)
	width = i + n
	if n == 0 {
		width = i
	}
	return delim, width, num, cont
}

// unorderedListMarker matches "-", "*", or "+" followed by space/tab/EOL.
func unorderedListMarker(line []byte) (delim byte, width int, tail []byte) {
	delim, width, tail = delimiter(line, 1, '-', '*', '+')
	if delim == 0 {
		return 0, 0, nil
	}
	n, cont := trimIndent(tail, 1, 4)
	if n == 0 && len(cont) > 0 {
		return 0, 0, nil
	}
	return delim, width + n, cont
}

// isDefinitionList matches a definition-list marker line: a lone ':'
// introducing a definition, per spec §4.2.
func isDefinitionList(line []byte) bool {
	return len(line) > 0 && line[0] == ':' && (len(line) == 1 || line[1] == ' ' || line[1] == '\t')
}

// hasTableBar reports whether line contains a pipe, the spec's sole table
// heuristic (block-level classification only, no column/alignment
// parsing).
func hasTableBar(line []byte) bool { return bytes.IndexByte(line, '|') >= 0 }

var htmlBlockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true,
	"blockquote": true, "body": true, "details": true, "dialog": true,
	"dd": true, "div": true, "dl": true, "dt": true, "fieldset": true,
	"figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hr": true, "html": true, "legend": true,
	"li": true, "link": true, "main": true, "menu": true, "menuitem": true,
	"nav": true, "noframes": true, "ol": true, "optgroup": true,
	"option": true, "p": true, "param": true, "section": true,
	"summary": true, "table": true, "tbody": true, "td": true,
	"tfoot": true, "th": true, "thead": true, "title": true, "tr": true,
	"ul": true, "script": true, "pre": true, "style": true, "!--": true,
}

// isHTMLBlockStart reports whether line opens an HTML block: '<' followed
// by a known block-level tag name or a comment opener.
func isHTMLBlockStart(line []byte) bool {
	if len(line) < 2 || line[0] != '<' {
		return false
	}
	rest := line[1:]
	if len(rest) >= 3 && string(rest[:3]) == "!--" {
		return true
	}
	rest = bytes.TrimPrefix(rest, []byte("/"))
	i := 0
	for i < len(rest) && isTagByte(rest[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	tag := string(bytes.ToLower(rest[:i]))
	return htmlBlockTags[tag]
}

func isTagByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// isHTMLAbbrev matches an abbreviation definition: "*[ABBR]: expansion".
func isHTMLAbbrev(line []byte) bool {
	if len(line) < 4 || line[0] != '*' || line[1] != '[' {
		return false
	}
	end := bytes.IndexByte(line, ']')
	if end < 0 || end+1 >= len(line) || line[end+1] != ':' {
		return false
	}
	return true
}

// isLinkLabel matches a link-label definition: "[id]: URI". A footnote
// definition ("[^id]:") is not a link label.
func isLinkLabel(line []byte) bool {
	if len(line) < 4 || line[0] != '[' || line[1] == '^' {
		return false
	}
	end := bytes.IndexByte(line, ']')
	if end < 0 || end+1 >= len(line) || line[end+1] != ':' {
		return false
	}
	return true
}

// footnoteDef matches "[^id]:" and reports whether any non-whitespace text
// follows the marker on the same line.
func footnoteDef(line []byte) (hasInline bool, ok bool) {
	if len(line) < 5 || line[0] != '[' || line[1] != '^' {
		return false, false
	}
	end := bytes.IndexByte(line, ']')
	if end < 0 || end+1 >= len(line) || line[end+1] != ':' {
		return false, false
	}
	rest := bytes.TrimSpace(line[end+2:])
	return len(rest) > 0, true
}
