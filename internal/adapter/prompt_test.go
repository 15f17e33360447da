package adapter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	got, err := readLine(strings.NewReader("  abc123 \nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	got, err = readLine(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)

	_, err = readLine(strings.NewReader(""))
	assert.Error(t, err)
}

func TestPromptAPIKeyFromPipe(t *testing.T) {
	file := filepath.Join(t.TempDir(), "stdin")
	require.NoError(t, os.WriteFile(file, []byte("piped-key\n"), 0600))
	in, err := os.Open(file)
	require.NoError(t, err)
	defer in.Close()

	key, err := PromptAPIKey(in, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "piped-key", key)
}
