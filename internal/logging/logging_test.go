package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	New(&buf, false).Info("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown k=1")

	buf.Reset()
	New(&buf, true).Debug("visible")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestOpen_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "funcdrill.log")

	logger, closer, err := Open(Options{Path: path})
	require.NoError(t, err)
	logger.Info("session started", "session_id", "abc")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "session_id=abc")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("FUNCDRILL_LOG", "/tmp/x.log")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x.log", p)

	t.Setenv("FUNCDRILL_LOG", "")
	t.Setenv("XDG_STATE_HOME", "/state")
	p, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/state", "funcdrill", "funcdrill.log"), p)
}
