package xwindow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmono/xcontainer/ringbuffer"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	for _, tc := range []struct {
		name, body string
	}{
		{"window.toml", "window = 100\ncapacity = 16\n"},
		{"window.yaml", "window: 100\ncapacity: 16\n"},
		{"window.yml", "window: 100\ncapacity: 16\n"},
	} {
		cfg, err := LoadConfig(writeFile(t, tc.name, tc.body))
		require.NoError(t, err, tc.name)
		assert.Equal(t, int64(100), cfg.Window, tc.name)
		assert.Equal(t, 16, cfg.Capacity, tc.name)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeFile(t, "window.json", "{}"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeFile(t, "bad.toml", "window = -1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeFile(t, "neg.yaml", "window: 3\ncapacity: -4\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadConfig(writeFile(t, "bad.yaml", "window: 3\nsize: 4\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitialCapacity(t *testing.T) {
	for _, tc := range []struct {
		cfg  Config
		want int
	}{
		{Config{Window: 3}, 3},
		{Config{Window: 1 << 50}, DefaultCapacity},
		{Config{Window: 1e9, Capacity: 512}, 512},
		{Config{Window: 10, Capacity: 512}, 10},
	} {
		assert.Equal(t, tc.want, tc.cfg.initialCapacity(), "%+v", tc.cfg)
	}
	assert.ErrorIs(t, Config{Window: 1, Capacity: ringbuffer.MaxCapacity + 1}.Validate(), ErrInvalidConfig)
}
