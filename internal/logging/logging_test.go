package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{}, &buf)
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	verbose, vcloser, err := New(Options{Verbose: true}, &buf)
	require.NoError(t, err)
	defer vcloser.Close()
	assert.Equal(t, logrus.DebugLevel, verbose.GetLevel())
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Options{Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.WithField("game_id", "g1").Info("game finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "game finished", entry["msg"])
	assert.Equal(t, "g1", entry["game_id"])
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "war.log")
	var buf bytes.Buffer
	logger, closer, err := New(Options{File: path}, &buf)
	require.NoError(t, err)

	logger.Info("to both")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both")
	assert.Contains(t, buf.String(), "to both")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, _, err := New(Options{Format: "xml"}, nil)
	assert.Error(t, err)
}
