package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, level)

	level, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestWriterLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, "test", WARN)

	l.Info("скрытое сообщение")
	l.Warn("видимое %d", 42)

	out := buf.String()
	assert.NotContains(t, out, "скрытое")
	assert.Contains(t, out, "видимое 42")
	assert.Contains(t, out, "test")
}

func TestLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")

	l, err := NewLogger("server", Options{Level: "error", File: path})
	require.NoError(t, err)

	l.Debug("в файл попадает даже debug")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "в файл попадает даже debug")
}

func TestComponentLoggers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	require.NoError(t, InitDefaultLogger("server", Options{File: path}))
	t.Cleanup(func() { _ = InitDefaultLogger("server", Options{}) })

	storage := Component("storage")
	assert.Same(t, storage, GetStorageLogger())
	storage.Info("секция сохранена")

	assert.Contains(t, ComponentNames(), "storage")
	require.NoError(t, SetComponentLevel("storage", "warn"))
	assert.Error(t, SetComponentLevel("nope", "warn"))
	assert.Error(t, SetComponentLevel("storage", "loud"))

	CloseDefaultLogger()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "storage")
	assert.Contains(t, string(data), "секция сохранена")
}
