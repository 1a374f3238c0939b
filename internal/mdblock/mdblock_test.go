package mdblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classifyAll(lines ...string) []State {
	c := New()
	states := make([]State, len(lines))
	for i, l := range lines {
		states[i] = c.Classify([]byte(l))
	}
	return states
}

func TestBlankAndText(t *testing.T) {
	states := classifyAll("", "hello world")
	assert.Equal(t, Blank, states[0].Type)
	assert.Equal(t, Text, states[1].Type)
}

func TestATXHeaderLevels(t *testing.T) {
	states := classifyAll("# one", "## two", "###### six", "####### seven")
	assert.Equal(t, ATXHeader, states[0].Type)
	assert.Equal(t, 1, states[0].OrderedNumber)
	assert.Equal(t, ATXHeader, states[1].Type)
	assert.Equal(t, 2, states[1].OrderedNumber)
	assert.Equal(t, ATXHeader, states[2].Type)
	assert.Equal(t, 6, states[2].OrderedNumber)
	assert.NotEqual(t, ATXHeader, states[3].Type) // 7 '#'s is not a valid ATX header
}

func TestSetextHeader(t *testing.T) {
	states := classifyAll("Title", "=====")
	assert.Equal(t, Text, states[0].Type)
	assert.Equal(t, SetextHeader, states[1].Type)
	assert.Equal(t, 1, states[1].OrderedNumber)

	states = classifyAll("Subtitle", "-----")
	assert.Equal(t, Text, states[0].Type)
	assert.Equal(t, SetextHeader, states[1].Type)
	assert.Equal(t, 2, states[1].OrderedNumber)
}

func TestHorizontalRule(t *testing.T) {
	for _, s := range []string{"---", "***", "___", "- - -", "* * * *"} {
		states := classifyAll(s)
		assert.Equal(t, Rule, states[0].Type, "rule: %q", s)
	}
}

func TestFencedCodeBlock(t *testing.T) {
	states := classifyAll("```go", "fmt.Println(1)", "```", "after")
	require.Len(t, states, 4)
	assert.Equal(t, FencedCode, states[0].Type)
	assert.Equal(t, FencedCode, states[1].Type)
	assert.Equal(t, FencedCode, states[2].Type)
	assert.Equal(t, Text, states[3].Type)
}

func TestIndentedCodeBlock(t *testing.T) {
	states := classifyAll("normal text", "    code line", "more")
	assert.Equal(t, Text, states[0].Type)
	assert.Equal(t, IndentedCode, states[1].Type)
}

func TestUnorderedList(t *testing.T) {
	states := classifyAll("- one", "- two", "  continued", "* three")
	assert.Equal(t, UnorderedList, states[0].Type)
	assert.Equal(t, 1, states[0].Sequence)
	assert.Equal(t, UnorderedList, states[1].Type)
	assert.Equal(t, 1, states[1].Sequence)
	// a differing bullet char ('*' vs '-') stays in the same unordered list:
	// only an ordered/unordered switch or an ordered marker change bumps it.
	assert.Equal(t, UnorderedList, states[3].Type)
	assert.Equal(t, 1, states[3].Sequence)
}

func TestOrderedListMarkerChangeBumpsSequence(t *testing.T) {
	states := classifyAll("1. one", "2. two", "1) three")
	assert.Equal(t, OrderedList, states[0].Type)
	assert.Equal(t, byte('.'), states[0].OrderedMarkerChar)
	assert.Equal(t, 1, states[0].Sequence)
	assert.Equal(t, 1, states[1].Sequence)
	assert.Equal(t, byte(')'), states[2].OrderedMarkerChar)
	assert.Equal(t, 2, states[2].Sequence)
}

func TestDefinitionList(t *testing.T) {
	states := classifyAll("Term", ": Definition text")
	assert.Equal(t, Text, states[0].Type)
	assert.Equal(t, DefinitionList, states[1].Type)
}

func TestTable(t *testing.T) {
	states := classifyAll("a | b", "---|---")
	assert.Equal(t, Table, states[0].Type)
}

func TestLinkLabelAndFootnote(t *testing.T) {
	states := classifyAll("[id]: http://example.com", "[^note]:", "[^note2]: inline text here")
	assert.Equal(t, LinkLabel, states[0].Type)
	assert.Equal(t, FootnoteDef, states[1].Type)
	assert.False(t, states[1].FootnoteHasInlineText)
	assert.Equal(t, FootnoteDef, states[2].Type)
	assert.True(t, states[2].FootnoteHasInlineText)
}

func TestHTMLBlockAndAbbrev(t *testing.T) {
	states := classifyAll("<div>", "*[HTML]: Hyper Text Markup Language")
	assert.Equal(t, HTMLBlock, states[0].Type)
	assert.Equal(t, HTMLAbbrev, states[1].Type)
}

func TestReset(t *testing.T) {
	c := New()
	c.Classify([]byte("- item"))
	assert.Equal(t, 1, c.seq)
	c.Reset()
	assert.Equal(t, 0, c.seq)
	assert.Empty(t, c.stack)
}
