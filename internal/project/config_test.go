package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/lsc/internal/log"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ls", cfg.FileExtension)
	assert.Equal(t, "hpp", cfg.NativeExtension)
	assert.True(t, cfg.Runtime)
	assert.Equal(t, log.LevelWarn, cfg.LoggerConfig().Level)
}

func TestLoadConfig(t *testing.T) {
	file := writeFile(t, filepath.Join(t.TempDir(), DefaultConfigFile), `
SearchPaths = ["/opt/lsc/lib", "vendor"]
FileExtension = "lsc"

[Log]
Level = "debug"
Format = "json"
`)
	cfg := DefaultConfig()
	require.NoError(t, LoadConfig(file, &cfg))

	assert.Equal(t, []string{"/opt/lsc/lib", "vendor"}, cfg.SearchPaths)
	assert.Equal(t, "lsc", cfg.FileExtension)
	// Missing keys keep their defaults.
	assert.Equal(t, "hpp", cfg.NativeExtension)
	assert.True(t, cfg.Runtime)

	lc := cfg.LoggerConfig()
	assert.Equal(t, log.LevelDebug, lc.Level)
	assert.Equal(t, "json", lc.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "Bogus = 1\n", "field 'Bogus' is not defined in project.Config"},
		{"unknown nested field", "[Log]\nColor = true\n", "field 'Color' is not defined in project.LogConfig"},
		{"bad level", "[Log]\nLevel = \"loud\"\n", `unknown log level "loud"`},
		{"bad format", "[Log]\nFormat = \"xml\"\n", `unknown log format "xml"`},
		{"empty extension", "FileExtension = \"\"\n", "FileExtension must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeFile(t, filepath.Join(dir, tt.name+".toml"), tt.content)
			cfg := DefaultConfig()
			err := LoadConfig(file, &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := DefaultConfig()
	assert.Error(t, LoadConfig(filepath.Join(dir, "missing.toml"), &cfg))
}

func TestDumpConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SearchPaths = []string{"lib"}
	cfg.Prelude = []string{"prelude.ls"}
	out, err := Dump(&cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "FileExtension")
	assert.Contains(t, string(out), "[Log]")

	file := writeFile(t, filepath.Join(t.TempDir(), "dump.toml"), string(out))
	var back Config
	require.NoError(t, LoadConfig(file, &back))
	assert.Equal(t, cfg.SearchPaths, back.SearchPaths)
	assert.Equal(t, cfg.Prelude, back.Prelude)
	assert.Equal(t, cfg.FileExtension, back.FileExtension)
	assert.Equal(t, cfg.NativeExtension, back.NativeExtension)
	assert.Equal(t, cfg.Runtime, back.Runtime)
	assert.Equal(t, cfg.Log, back.Log)
}
