package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	file := filepath.Join(t.TempDir(), "convert.log")

	logger, err := New(Options{Level: "debug", File: file, Console: &console})
	require.NoError(t, err)

	logger.WithFields(logrus.Fields{"object": "ape", "frame": 3}).Debug("converted")

	assert.Contains(t, console.String(), "converted")
	assert.Contains(t, console.String(), "ape")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "converted")
}

func TestNewLevel(t *testing.T) {
	var console bytes.Buffer
	logger, err := New(Options{Level: "warn", Console: &console})
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, console.String())

	_, err = New(Options{Level: "loud"})
	assert.Error(t, err)
}
