package mdblock

import (
	"strings"
	"testing"

	"github.com/russross/blackfriday"
	"github.com/stretchr/testify/assert"
)

// TestATXHeaderAgreesWithBlackfriday cross-checks ATXHeader classification
// against blackfriday's own block parser for the subset of constructs both
// tools agree on (ATX headers, horizontal rules, fenced code): if
// blackfriday renders a heading tag for a line, our classifier must have
// called it ATXHeader (or SetextHeader, for the underline form).
func TestATXHeaderAgreesWithBlackfriday(t *testing.T) {
	const src = "# Title\n\nSome text.\n\n## Subtitle\n"
	html := string(blackfriday.Run([]byte(src)))
	assert.Contains(t, html, "<h1>")
	assert.Contains(t, html, "<h2>")

	c := New()
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	var types []LineType
	for _, l := range lines {
		types = append(types, c.Classify([]byte(l)).Type)
	}
	assert.Equal(t, ATXHeader, types[0])
	assert.Equal(t, Blank, types[1])
	assert.Equal(t, Text, types[2])
	assert.Equal(t, Blank, types[3])
	assert.Equal(t, ATXHeader, types[4])
}

func TestRuleAgreesWithBlackfriday(t *testing.T) {
	const src = "text\n\n---\n\nmore\n"
	html := string(blackfriday.Run([]byte(src)))
	assert.Contains(t, html, "<hr")

	c := New()
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	var types []LineType
	for _, l := range lines {
		types = append(types, c.Classify([]byte(l)).Type)
	}
	assert.Equal(t, Rule, types[2])
}

func TestFencedCodeAgreesWithBlackfriday(t *testing.T) {
	const src = "```\ncode here\n```\n"
	html := string(blackfriday.Run([]byte(src), blackfriday.WithExtensions(blackfriday.FencedCode)))
	assert.Contains(t, html, "<pre>")

	c := New()
	lines := strings.Split(strings.TrimRight(src, "\n"), "\n")
	for _, l := range lines {
		assert.Equal(t, FencedCode, c.Classify([]byte(l)).Type)
	}
}
