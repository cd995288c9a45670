package writers

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazyFileCreatedOnFirstWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standings.yaml")
	w := NewLazyFile(path)

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = io.WriteString(w, "General classification: []\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "General classification: []\n", string(data))
}

func TestLazyFileNeverWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unused.xlsx")
	w := NewLazyFile(path)
	require.NoError(t, w.Close())

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLazyInitError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	w := NewLazyWriteCloser(func() (io.WriteCloser, error) {
		calls++
		return nil, boom
	})
	_, err := w.Write([]byte("x"))
	assert.ErrorIs(t, err, boom)
	_, err = w.Write([]byte("x"))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
	assert.NoError(t, w.Close())
}

func TestOutputStdout(t *testing.T) {
	var stdout bytes.Buffer
	w := Output("-", &stdout)
	_, err := io.WriteString(w, "hello")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, "hello", stdout.String())

	_, ok := Output(filepath.Join(t.TempDir(), "out"), &stdout).(*LazyWriteCloser)
	assert.True(t, ok)
}
