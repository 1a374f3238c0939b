package wrapio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paul-j-lucas/wrap-sub000/internal/wrapio"
)

func TestStdoutPassthrough(t *testing.T) {
	var buf bytes.Buffer
	out := wrapio.Stdout(&buf)
	_, err := out.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, out.Close())
	require.Equal(t, "hello\n", buf.String())
}

func TestCreateCommitsOnClose(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	out, err := wrapio.Create(dest)
	require.NoError(t, err)
	_, err = out.Write([]byte("staged content\n"))
	require.NoError(t, err)

	_, statErr := os.Stat(dest)
	require.True(t, os.IsNotExist(statErr), "destination must not exist before Close")

	require.NoError(t, out.Close())

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "staged content\n", string(got))
}

func TestCreateAbortLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	out, err := wrapio.Create(dest)
	require.NoError(t, err)
	_, err = out.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, out.Abort())

	_, statErr := os.Stat(dest)
	require.True(t, os.IsNotExist(statErr))
}

func TestOpenInputMissing(t *testing.T) {
	_, err := wrapio.OpenInput(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
