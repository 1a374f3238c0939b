package wrapcore_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcore"
)

func runWrap(t *testing.T, opt wrapcore.Options, src string) string {
	t.Helper()
	var out bytes.Buffer
	e := wrapcore.New(opt)
	require.NoError(t, e.Run(strings.NewReader(src), &out))
	return out.String()
}

func TestWrapRespectsLineWidth(t *testing.T) {
	opt := wrapcore.NewOptions()
	opt.LineWidth = 20
	out := runWrap(t, opt, strings.Repeat("word ", 30)+"\n")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func TestWrapPreservesParagraphBreak(t *testing.T) {
	opt := wrapcore.NewOptions()
	opt.LineWidth = 80
	out := runWrap(t, opt, "first paragraph\n\nsecond paragraph\n")
	assert.Contains(t, out, "first paragraph")
	assert.Contains(t, out, "\n\n")
	assert.Contains(t, out, "second paragraph")
}

func TestWrapJoinsWrappedLinesInSingleParagraph(t *testing.T) {
	opt := wrapcore.NewOptions()
	opt.LineWidth = 80
	out := runWrap(t, opt, "one\ntwo\nthree\n")
	assert.Equal(t, "one two three\n", out)
}

func TestWrapSingleOverlongWordIsNotSplit(t *testing.T) {
	opt := wrapcore.NewOptions()
	opt.LineWidth = 5
	word := strings.Repeat("x", 40)
	out := runWrap(t, opt, word+"\n")
	assert.Equal(t, word+"\n", out)
}

func TestWrapNoHyphenDisablesRejoin(t *testing.T) {
	opt := wrapcore.NewOptions()
	opt.LineWidth = 80
	opt.NoHyphen = true
	out := runWrap(t, opt, "auto-\nmated\n")
	assert.Contains(t, out, "auto-")
}

func TestWrapHyphenWrapsAfterHyphenNotMidWord(t *testing.T) {
	opt := wrapcore.NewOptions()
	opt.LineWidth = 6
	out := runWrap(t, opt, "well-known thing\n")
	assert.Equal(t, "well-\nknown\nthing\n", out)
}

func TestWrapLeadIndentAppliesToEveryLine(t *testing.T) {
	opt := wrapcore.NewOptions()
	opt.LineWidth = 20
	opt.LeadSpaces = 2
	opt.HangSpaces = 2
	out := runWrap(t, opt, strings.Repeat("word ", 10)+"\n")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}
