package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"slice/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
}

func TestInit_WritesCategorizedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "slice.log")

	logger, err := Init(config.Logging{Level: "debug", File: path})
	require.NoError(t, err)

	Get(logger, CategoryBoot).Infow("starting up", "version", "1.0.0")
	Get(logger, CategoryAPI).Debugw("fetching menu")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, CategoryBoot)
	assert.Contains(t, out, "starting up")
	assert.Contains(t, out, CategoryAPI)
}

func TestInit_InfoLevelDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slice.log")

	logger, err := Init(config.Logging{Level: "info", File: path})
	require.NoError(t, err)

	Get(logger, CategoryCart).Debugw("should be dropped")
	Get(logger, CategoryCart).Infow("should be kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "should be dropped"))
	assert.Contains(t, string(data), "should be kept")
}

func TestInit_EmptyFileIsNop(t *testing.T) {
	logger, err := Init(config.Logging{Level: "debug"})
	require.NoError(t, err)
	// Must be safe to use without any output destination.
	Get(logger, CategoryUI).Infow("nowhere to go")
}

func TestGet_NilBaseIsSafe(t *testing.T) {
	log := Get(nil, CategoryRouter)
	require.NotNil(t, log)
	log.Infow("no panic")
}
