package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(Path(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, Default().API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, 20, cfg.UI.PageLimit)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	body := []byte("api:\n  base_url: https://shop.example.com/api/admin\n  timeout: 5s\nui:\n  page_limit: 50\nlogging:\n  debug_mode: true\n  level: debug\n")
	require.NoError(t, os.WriteFile(Path(dir), body, 0644))

	cfg, err := Load(Path(dir))
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api/admin", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 50, cfg.UI.PageLimit)
	assert.True(t, cfg.Logging.DebugMode)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvBaseURL, "https://env.example.com")
	cfg, err := Load(Path(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
}

func TestLoadRejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("api:\n  timeout: nonsense\n"), 0644))
	_, err := Load(Path(dir))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(Path(dir), []byte("ui:\n  page_limit: 0\n"), 0644))
	_, err = Load(Path(dir))
	assert.Error(t, err)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  page_limit: 10\n"), 0644))

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, func(c Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	require.NoError(t, err)
	// Short debounce keeps the test fast.
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("ui:\n  page_limit: 42\n"), 0644))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 42, cfg.UI.PageLimit)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not deliver reloaded config")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir)
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  page_limit: 10\n"), 0644))

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, func(c Config) { reloaded <- c })
	require.NoError(t, err)
	w.debounce = 30 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0644))

	select {
	case <-reloaded:
		t.Fatal("sibling file write must not trigger a reload")
	case <-time.After(300 * time.Millisecond):
	}
}
