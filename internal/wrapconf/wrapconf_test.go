package wrapconf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-j-lucas/wrap-sub000/internal/wrapconf"
)

func TestAliasBasic(t *testing.T) {
	c, err := wrapconf.Parse([]byte(`
[ALIASES]
c = -w 78 -m -l 2
`))
	require.NoError(t, err)
	argv, err := c.Resolve("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"-w", "78", "-m", "-l", "2"}, argv)
}

func TestAliasExpansion(t *testing.T) {
	c, err := wrapconf.Parse([]byte(`
[ALIASES]
base = -w 78
doc = @base -m
`))
	require.NoError(t, err)
	argv, err := c.Resolve("doc")
	require.NoError(t, err)
	assert.Equal(t, []string{"-w", "78", "-m"}, argv)
}

func TestAliasCycleRejected(t *testing.T) {
	_, err := wrapconf.Parse([]byte(`
[ALIASES]
a = @b
b = @a
`))
	require.Error(t, err)
}

func TestPatternLookup(t *testing.T) {
	c, err := wrapconf.Parse([]byte(`
[ALIASES]
c = -m -w 78

[PATTERNS]
*.go = c
`))
	require.NoError(t, err)
	argv, ok := c.AliasForFile("/tmp/foo.go")
	require.True(t, ok)
	assert.Equal(t, []string{"-m", "-w", "78"}, argv)

	_, ok = c.AliasForFile("/tmp/foo.txt")
	assert.False(t, ok)
}

func TestLineOutsideSectionRejected(t *testing.T) {
	_, err := wrapconf.Parse([]byte("bogus = 1\n"))
	require.Error(t, err)
}

func TestUnknownSectionRejected(t *testing.T) {
	_, err := wrapconf.Parse([]byte("[BOGUS]\nx = 1\n"))
	require.Error(t, err)
}

func TestUndefinedAliasRejected(t *testing.T) {
	_, err := wrapconf.Parse([]byte(`
[PATTERNS]
*.go = missing
`))
	require.Error(t, err)
}

func TestQuotedAliasValue(t *testing.T) {
	c, err := wrapconf.Parse([]byte(`
[ALIASES]
c = -w 78 "-e" "two words"
`))
	require.NoError(t, err)
	argv, err := c.Resolve("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"-w", "78", "-e", "two words"}, argv)
}
