package wraprc_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-j-lucas/wrap-sub000/internal/wraprc"
)

func TestFramerPrefixesEveryLine(t *testing.T) {
	var out bytes.Buffer
	f := wraprc.NewFramer(&out, []byte("// "))
	_, err := f.Write([]byte("hello\nworld\n"))
	require.NoError(t, err)
	assert.Equal(t, "// hello\n// world\n", out.String())
}

func TestFramerOmitsTrailingWhitespaceOnBlankLine(t *testing.T) {
	var out bytes.Buffer
	f := wraprc.NewFramer(&out, []byte("// "))
	_, err := f.Write([]byte("\n"))
	require.NoError(t, err)
	assert.Equal(t, "//\n", out.String())
}

func TestFramerNewLeaderUpdatesPrefix(t *testing.T) {
	var out bytes.Buffer
	f := wraprc.NewFramer(&out, []byte("// "))
	f.NewLeader(76, []byte("/// "))
	_, err := f.Write([]byte("x\n"))
	require.NoError(t, err)
	assert.Equal(t, "/// x\n", out.String())
}

func TestFramerPreformattedSuppressesLeader(t *testing.T) {
	var out bytes.Buffer
	f := wraprc.NewFramer(&out, []byte("// "))
	f.PreformattedBegin()
	_, err := f.Write([]byte("    code here\n"))
	require.NoError(t, err)
	f.PreformattedEnd()
	_, err = f.Write([]byte("back to text\n"))
	require.NoError(t, err)
	assert.Equal(t, "    code here\n// back to text\n", out.String())
}

func TestFramerWrapEndCopyThrough(t *testing.T) {
	var out bytes.Buffer
	f := wraprc.NewFramer(&out, []byte("// "))
	f.WrapEnd()
	_, err := f.Write([]byte("raw code\n"))
	require.NoError(t, err)
	assert.Equal(t, "raw code\n", out.String())
}
