package wraprc_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcore"
	"github.com/paul-j-lucas/wrap-sub000/internal/wraprc"
)

func TestPipelineWrapsCommentBody(t *testing.T) {
	opt := wrapcore.NewOptions()
	opt.LineWidth = 20
	opt.CommentChars = "/"

	src := "// " + strings.Repeat("word ", 10) + "\n"
	var out bytes.Buffer
	p := wraprc.Pipeline{Opt: opt}
	require.NoError(t, p.Run(bytes.NewBufferString(src), &out))

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "//"), "line %q must keep its comment leader", line)
	}
}

func TestPipelinePassesCodeThroughAfterComment(t *testing.T) {
	opt := wrapcore.NewOptions()
	opt.LineWidth = 40
	opt.CommentChars = "/"

	src := "// a short comment\nfunc main() {}\n"
	var out bytes.Buffer
	p := wraprc.Pipeline{Opt: opt}
	require.NoError(t, p.Run(bytes.NewBufferString(src), &out))
	assert.Contains(t, out.String(), "func main() {}")
}
