package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultSettingsFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfigureScriptPath, s.ConfigureScriptPath())
	assert.Equal(t, DefaultCustomConfigureScriptPath, s.CustomConfigureScriptPath())
	assert.Equal(t, SearcherFind, s.Searcher)
	assert.Zero(t, s.ListTimeout)
	assert.Nil(t, s.LoadingDelay)
	assert.Equal(t, time.Second, s.LoadingDelayOr(time.Second))
}

func TestLoad_ExplicitZeroDelayIsKept(t *testing.T) {
	s, err := Load(writeSettings(t, t.TempDir(), "loading_delay: 0s\n"))
	require.NoError(t, err)

	require.NotNil(t, s.LoadingDelay)
	assert.Zero(t, s.LoadingDelayOr(time.Second))
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := writeSettings(t, t.TempDir(), `
configure_script_path: ${workspaceFolder}/tools/configure.sh
custom_configure_script_path: /opt/vendor/list.sh
list_timeout: 30s
loading_delay: 200ms
keep_blank_lines: true
await_open: true
searcher: walk
editor: nano
`)

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/vendor/list.sh", s.CustomConfigureScriptPath())
	assert.Equal(t, 30*time.Second, s.ListTimeout)
	assert.Equal(t, 200*time.Millisecond, s.LoadingDelayOr(time.Second))
	assert.True(t, s.KeepBlankLines)
	assert.True(t, s.AwaitOpen)
	assert.Equal(t, SearcherWalk, s.Searcher)
	assert.Equal(t, "nano", s.Editor)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeSettings(t, t.TempDir(), "configure_script_path: /from/file.sh\n")
	t.Setenv("NUTTXCONF_CONFIGURE_SCRIPT", "/from/env.sh")
	t.Setenv("NUTTXCONF_EDITOR", "vi")

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/from/env.sh", s.ConfigureScriptPath())
	assert.Equal(t, "vi", s.Editor)
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "unknown searcher", content: "searcher: locate\n", errMsg: "Searcher failed oneof"},
		{name: "blank script", content: "configure_script_path: \"\"\n", errMsg: "ConfigureScript failed required"},
		{name: "negative timeout", content: "list_timeout: -1s\n", errMsg: "ListTimeout failed gte"},
		{name: "negative delay", content: "loading_delay: -1s\n", errMsg: "LoadingDelay failed gte"},
		{name: "malformed yaml", content: "searcher: [\n", errMsg: "failed to parse settings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSettings(t, t.TempDir(), tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSettingsPath(t *testing.T) {
	t.Run("explicit wins", func(t *testing.T) {
		t.Setenv("NUTTXCONF_CONFIG", "/env.yaml")
		assert.Equal(t, "/explicit.yaml", SettingsPath("/explicit.yaml", "/proj"))
	})
	t.Run("env before workspace", func(t *testing.T) {
		t.Setenv("NUTTXCONF_CONFIG", "/env.yaml")
		assert.Equal(t, "/env.yaml", SettingsPath("", "/proj"))
	})
	t.Run("workspace default", func(t *testing.T) {
		t.Setenv("NUTTXCONF_CONFIG", "")
		assert.Equal(t, "/proj/.nuttxconf.yaml", SettingsPath("", "/proj"))
	})
	t.Run("nothing known", func(t *testing.T) {
		t.Setenv("NUTTXCONF_CONFIG", "")
		assert.Equal(t, "", SettingsPath("", ""))
	})
}

func TestWorkspacePath_Env(t *testing.T) {
	t.Setenv("NUTTXCONF_WORKSPACE", "/nuttx")
	assert.Equal(t, "/nuttx", WorkspacePath())
}

func TestStore_ReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "configure_script_path: /first.sh\n")

	st, err := NewStore(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "/first.sh", st.ConfigureScriptPath())

	writeSettings(t, dir, "searcher: nope\n")
	require.Error(t, st.Reload())
	assert.Equal(t, "/first.sh", st.ConfigureScriptPath())

	writeSettings(t, dir, "configure_script_path: /second.sh\n")
	require.NoError(t, st.Reload())
	assert.Equal(t, "/second.sh", st.ConfigureScriptPath())
}

func TestStore_WatchPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeSettings(t, dir, "configure_script_path: /before.sh\n")

	st, err := NewStore(path, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- st.Watch(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	require.Eventually(t, func() bool {
		writeSettings(t, dir, "configure_script_path: /after.sh\n")
		return st.ConfigureScriptPath() == "/after.sh"
	}, 5*time.Second, 150*time.Millisecond)
}
