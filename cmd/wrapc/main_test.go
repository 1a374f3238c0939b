package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWrapsCommentPreservingCode(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.go")
	out := filepath.Join(dir, "out.go")
	src := "// " + strings.Repeat("word ", 20) + "\nfunc main() {}\n"
	require.NoError(t, os.WriteFile(in, []byte(src), 0o644))

	err := run([]string{"-w", "20", "-c", "/", "-o", out, in})
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(got), "func main() {}")
	for _, line := range strings.Split(strings.TrimRight(string(got), "\n"), "\n") {
		if strings.HasPrefix(line, "//") {
			assert.LessOrEqual(t, len(line), 20)
		}
	}
}

func TestRunRejectsBadWidth(t *testing.T) {
	err := run([]string{"-w", "-1"})
	require.Error(t, err)
}
