package paths

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnv replaces the environment lookups for one test.
func fakeEnv(t *testing.T, env map[string]string, cwd string) {
	t.Helper()
	saved := lookups
	t.Cleanup(func() { lookups = saved })

	lookups.getenv = func(k string) string { return env[k] }
	lookups.getwd = func() (string, error) { return cwd, nil }
	lookups.homeDir = func() (string, error) { return "/home/ops", nil }
	lookups.userConfigDir = func() (string, error) { return "/Users/ops/Library/Application Support", nil }
}

func TestDefaultConfigDir(t *testing.T) {
	t.Run("xdg config home", func(t *testing.T) {
		fakeEnv(t, map[string]string{"XDG_CONFIG_HOME": "/tmp/xdg"}, "/")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		if runtime.GOOS == "linux" {
			assert.Equal(t, "/tmp/xdg/conchdesk", got)
		} else {
			assert.Equal(t, filepath.Join("/Users/ops/Library/Application Support", "conchdesk"), got)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("linux-only")
		}
		fakeEnv(t, nil, "/")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/home/ops/.config/conchdesk", got)
	})

	t.Run("home lookup error", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("linux-only")
		}
		fakeEnv(t, nil, "/")
		lookups.homeDir = func() (string, error) { return "", errors.New("no home") }
		_, err := DefaultConfigDir()
		assert.Error(t, err)
	})
}

func TestResolveConfigDir(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name string
		flag string
		env  map[string]string
		want string
	}{
		{"flag wins over env", filepath.Join(tmp, "flag"), map[string]string{EnvConfigDir: filepath.Join(tmp, "env")}, filepath.Join(tmp, "flag")},
		{"env when no flag", "", map[string]string{EnvConfigDir: filepath.Join(tmp, "env")}, filepath.Join(tmp, "env")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeEnv(t, tt.env, tmp)
			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("platform default", func(t *testing.T) {
		fakeEnv(t, map[string]string{"XDG_CONFIG_HOME": "/tmp/xdg"}, tmp)
		got, err := ResolveConfigDir("")
		require.NoError(t, err)
		want, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestResolveDataDir(t *testing.T) {
	tmp := t.TempDir()
	env := map[string]string{EnvDataDir: filepath.Join(tmp, "env")}

	tests := []struct {
		name        string
		flag        string
		configValue string
		env         map[string]string
		want        string
	}{
		{"flag first", filepath.Join(tmp, "flag"), filepath.Join(tmp, "cfg"), env, filepath.Join(tmp, "flag")},
		{"config value before env", "", filepath.Join(tmp, "cfg"), env, filepath.Join(tmp, "cfg")},
		{"env before default", "", "", env, filepath.Join(tmp, "env")},
		{"cwd default", "", "", nil, filepath.Join(tmp, DefaultDataDirName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeEnv(t, tt.env, tmp)
			got, err := ResolveDataDir(tt.flag, tt.configValue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDirMakesRelativeAbsolute(t *testing.T) {
	fakeEnv(t, nil, "/")
	got, err := ResolveDataDir("relative/data", "")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "data", filepath.Base(got))
}

func TestFileHelpers(t *testing.T) {
	assert.Equal(t, filepath.Join("/etc/conchdesk", "config.yaml"), ConfigFile("/etc/conchdesk"))
	assert.Equal(t, filepath.Join("/var/lib/conchdesk", "conchdesk.db"), DatabaseFile("/var/lib/conchdesk"))
}
