package logger

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureWritesStructuredEntries(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Output: &buf, Service: "test"})

	log := WithComponent("engine")
	log.Info().Int("round", 3).Msg("level advanced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "test", entry["service"])
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "level advanced", entry["message"])
	assert.EqualValues(t, 3, entry["round"])

	// Second Configure is ignored
	var other bytes.Buffer
	Configure(Config{Output: &other})
	base := Base()
	base.Info().Msg("still first writer")
	assert.Zero(t, other.Len())
	assert.Contains(t, buf.String(), "still first writer")
}

func TestOpenFile(t *testing.T) {
	w, err := OpenFile("")
	require.NoError(t, err)
	_, err = w.Write([]byte("dropped"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "game.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.Write([]byte("line\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}
