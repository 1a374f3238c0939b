package wrapcore

import "bytes"

// resolveLead computes the engine's lead (first-line prefix) and hang
// (continuation-line prefix) byte sequences, per spec §4.3.1.
//
// If Prototype is set, the leading whitespace of the first input line (or
// LeadString, if configured) becomes the lead used for every emitted line,
// and its display width is subtracted from the effective line width.
// Otherwise every line starts with LeadTabs/LeadSpaces; a paragraph's first
// line adds IndentTabs/IndentSpaces and its continuation lines add
// HangTabs/HangSpaces (mirrored from the lead if Mirror{Tabs,Spaces} is
// set).
func (e *Engine) resolveLead(firstLine []byte) {
	if e.opt.Prototype {
		var lead []byte
		if e.opt.LeadString != "" {
			lead = []byte(e.opt.LeadString)
		} else {
			i := 0
			for i < len(firstLine) && (firstLine[i] == ' ' || firstLine[i] == '\t') {
				i++
			}
			lead = append([]byte(nil), firstLine[:i]...)
		}
		e.leadFirst = lead
		e.leadHang = lead
		e.lineWidth = e.opt.LineWidth - leadWidth(lead, e.opt.TabSpaces)
		if e.lineWidth < 1 {
			e.lineWidth = 1
		}
		return
	}

	leadTabs, leadSpaces := e.opt.LeadTabs, e.opt.LeadSpaces
	hangTabs, hangSpaces := e.opt.HangTabs, e.opt.HangSpaces
	if e.opt.MirrorTabs {
		hangTabs = leadTabs
	}
	if e.opt.MirrorSpaces {
		hangSpaces = leadSpaces
	}
	e.leadFirst = buildLead(leadTabs+e.opt.IndentTabs, leadSpaces+e.opt.IndentSpaces)
	e.leadHang = buildLead(leadTabs+hangTabs, leadSpaces+hangSpaces)
}

func buildLead(tabs, spaces int) []byte {
	b := make([]byte, 0, tabs+spaces)
	for i := 0; i < tabs; i++ {
		b = append(b, '\t')
	}
	for i := 0; i < spaces; i++ {
		b = append(b, ' ')
	}
	return b
}

func leadWidth(lead []byte, tabSpaces int) int {
	w := 0
	for _, b := range lead {
		if b == '\t' {
			w += tabSpaces
		} else {
			w++
		}
	}
	return w
}

// leadFor returns the prefix bytes to write before an emitted line, given
// the current indent mode, and whether the line is blank (in which case
// any trailing whitespace half of the lead is omitted, per spec invariant
// 2 and testable property 2).
func (e *Engine) leadFor(mode IndentMode, blank bool) []byte {
	var lead []byte
	switch mode {
	case IndentHang:
		lead = e.leadHang
	default:
		lead = e.leadFirst
	}
	if !blank {
		return lead
	}
	return bytes.TrimRight(lead, " \t")
}
