package wrapcore

import "github.com/paul-j-lucas/wrap-sub000/internal/mdblock"

// isVerbatimLineType reports whether a classified line must be emitted
// unwrapped, bypassing the fill engine entirely (spec §4.3.4): headers,
// rules, code (fenced or indented), raw HTML, link-label definitions and
// tables never have their content rewrapped.
func isVerbatimLineType(t mdblock.LineType) bool {
	switch t {
	case mdblock.ATXHeader, mdblock.SetextHeader, mdblock.Rule,
		mdblock.FencedCode, mdblock.IndentedCode,
		mdblock.HTMLBlock, mdblock.HTMLAbbrev,
		mdblock.LinkLabel, mdblock.Table:
		return true
	default:
		return false
	}
}

// applyMarkdownState folds a non-verbatim classification into the engine's
// indentation and paragraph-identity state (spec §4.3.4): list and
// definition-list items set the lead/hang indent to the item's content
// column, and a change in list identity (ordered/unordered switch, or an
// ordered-list marker change) forces a paragraph break the same way a
// blank line would.
func (e *Engine) applyMarkdownState(st mdblock.State) {
	switch st.Type {
	case mdblock.OrderedList, mdblock.UnorderedList, mdblock.DefinitionList:
		if st.Sequence != 0 && st.Sequence != e.mdSeq {
			e.delimitParagraph()
		}
		e.mdSeq = st.Sequence
		e.leadSpaces = st.LeftIndent
		e.hangSpaces = st.HangIndent
		e.leadFirst = buildLead(0, e.leadSpaces)
		e.leadHang = buildLead(0, e.hangSpaces)
		e.lineWidth = e.opt.LineWidth - e.hangSpaces
		if e.lineWidth < 1 {
			e.lineWidth = 1
		}

	case mdblock.FootnoteDef:
		if !st.FootnoteHasInlineText {
			return
		}
		e.leadSpaces = st.LeftIndent
		e.hangSpaces = st.LeftIndent
		e.leadFirst = buildLead(0, e.leadSpaces)
		e.leadHang = buildLead(0, e.hangSpaces)

	case mdblock.Blank:
		e.delimitParagraph()

	case mdblock.Text:
		if st.NestingDepth == 0 && e.mdSeq != 0 {
			// Back at the document's top level: a following plain paragraph
			// no longer belongs to any list.
			e.mdSeq = 0
			e.leadSpaces, e.hangSpaces = e.opt.LeadSpaces, e.opt.HangSpaces
			e.leadFirst = buildLead(e.opt.LeadTabs+e.opt.IndentTabs, e.leadSpaces+e.opt.IndentSpaces)
			e.leadHang = buildLead(e.opt.LeadTabs+e.opt.HangTabs, e.leadSpaces+e.hangSpaces)
			e.lineWidth = e.opt.LineWidth
		}
	}
}
