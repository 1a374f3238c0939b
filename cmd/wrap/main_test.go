package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWrapsFileToFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte(strings.Repeat("word ", 30)+"\n"), 0o644))

	err := run([]string{"-w", "20", "-o", out, in})
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(string(got), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 20)
	}
}

func TestRunRejectsBadWidth(t *testing.T) {
	err := run([]string{"-w", "0"})
	require.Error(t, err)
}

func TestRunRejectsTooManyFiles(t *testing.T) {
	err := run([]string{"a.txt", "b.txt"})
	require.Error(t, err)
}
