package wraprc_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-j-lucas/wrap-sub000/internal/wraprc"
)

func runReader(t *testing.T, cc string, width int, src string) string {
	t.Helper()
	var out bytes.Buffer
	r := wraprc.NewReader(&out, cc, width, 8)
	require.NoError(t, r.Run(bytes.NewBufferString(src)))
	return out.String()
}

func TestReaderLineCommentLeaderStripped(t *testing.T) {
	out := runReader(t, "/", 78, "// hello\n// world\n")
	assert.Contains(t, out, "hello\n")
	assert.Contains(t, out, "world\n")
	assert.Contains(t, out, "\x10") // a NEW_LEADER control line was emitted
}

func TestReaderWrapEndOnCodeResumption(t *testing.T) {
	out := runReader(t, "/", 78, "// comment\ncode()\n")
	assert.Contains(t, out, "comment\n")
	assert.Contains(t, out, "code()\n")
}

func TestReaderPassThroughNoComment(t *testing.T) {
	out := runReader(t, "/#", 78, "plain text\nmore text\n")
	assert.Contains(t, out, "plain text\n")
	assert.Contains(t, out, "more text\n")
}

func TestReaderBlockCommentOpenerAlone(t *testing.T) {
	out := runReader(t, "/", 78, "/*\n * body text\n */\n")
	// first line written verbatim
	assert.True(t, bytes.HasPrefix([]byte(out), []byte("/*\n")))
}
