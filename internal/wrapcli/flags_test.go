package wrapcli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paul-j-lucas/wrap-sub000/internal/wrapcli"
)

func TestBuildOptionsDefaults(t *testing.T) {
	fs, v := wrapcli.NewFlagSet("wrap", false)
	require.NoError(t, fs.Parse(nil))
	opt, err := v.BuildOptions()
	require.NoError(t, err)
	assert.Equal(t, 80, opt.LineWidth)
	assert.Equal(t, 2, opt.NewlinesDelimit)
}

func TestBuildOptionsRejectsZeroWidth(t *testing.T) {
	fs, v := wrapcli.NewFlagSet("wrap", false)
	require.NoError(t, fs.Parse([]string{"-w", "0"}))
	_, err := v.BuildOptions()
	require.Error(t, err)
}

func TestBuildOptionsRejectsBadEOL(t *testing.T) {
	fs, v := wrapcli.NewFlagSet("wrap", false)
	require.NoError(t, fs.Parse([]string{"--eol", "bogus"}))
	_, err := v.BuildOptions()
	require.Error(t, err)
}

func TestBuildOptionsParsesParaChars(t *testing.T) {
	fs, v := wrapcli.NewFlagSet("wrap", false)
	require.NoError(t, fs.Parse([]string{"--para-chars", ".!?"}))
	opt, err := v.BuildOptions()
	require.NoError(t, err)
	assert.True(t, opt.ParaChars['.'])
	assert.True(t, opt.ParaChars['!'])
	assert.False(t, opt.ParaChars['x'])
}

func TestEnvTruthy(t *testing.T) {
	t.Setenv("WRAP_TEST_FLAG", "1")
	assert.True(t, wrapcli.EnvTruthy("WRAP_TEST_FLAG"))
	t.Setenv("WRAP_TEST_FLAG", "0")
	assert.False(t, wrapcli.EnvTruthy("WRAP_TEST_FLAG"))
	t.Setenv("WRAP_TEST_FLAG", "")
	assert.False(t, wrapcli.EnvTruthy("WRAP_TEST_FLAG"))
}
