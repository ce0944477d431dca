package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, info, err := LoadConfigFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.False(t, info.FileFound)
	assert.False(t, info.PortSpecified)
	assert.Equal(t, SplitConfig{DefaultFraction: 0.70, MinFraction: 0.50, MaxFraction: 0.90}, cfg.Split)
	assert.True(t, cfg.UI.DirectoryPicker, "directory picker should default on")
}

func TestLoadConfigFrom_OverridesAndPortDetection(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
port = 9000

[split]
default_fraction = 0.8
min_fraction = 0.8
max_fraction = 0.8

[ui]
directory_picker = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, info, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.True(t, info.FileFound)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Split.Fixed())
	assert.False(t, cfg.UI.DirectoryPicker)
}

func TestLoadConfigFrom_RejectsBadSplit(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[split]\ndefault_fraction = 0.95\n"), 0644))

	_, _, err := LoadConfigFrom(path)
	assert.ErrorIs(t, err, ErrFractionOutOfRange)
}

func TestSplitConfig_Resolve(t *testing.T) {
	t.Parallel()

	s := DefaultConfig().Split

	cases := []struct {
		in      float64
		want    float64
		wantErr bool
	}{
		{0, 0.70, false},
		{0.5, 0.5, false},
		{0.9, 0.9, false},
		{0.85, 0.85, false},
		{0.49, 0, true},
		{0.95, 0, true},
		{-0.3, 0, true},
		{-1, 0, true},
	}
	for _, tc := range cases {
		got, err := s.Resolve(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, ErrFractionOutOfRange, "Resolve(%v)", tc.in)
			continue
		}
		require.NoError(t, err, "Resolve(%v)", tc.in)
		assert.Equal(t, tc.want, got, "Resolve(%v)", tc.in)
	}
}

func TestSplitConfig_ResolveFixed(t *testing.T) {
	t.Parallel()

	fixed := SplitConfig{DefaultFraction: 0.8, MinFraction: 0.8, MaxFraction: 0.8}

	got, err := fixed.Resolve(0)
	require.NoError(t, err)
	assert.Equal(t, 0.8, got)

	got, err = fixed.Resolve(0.8)
	require.NoError(t, err)
	assert.Equal(t, 0.8, got)

	_, err = fixed.Resolve(0.6)
	assert.ErrorIs(t, err, ErrFractionOutOfRange)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Server.Port = 12345
	cfg.Report.Enabled = true
	require.NoError(t, SaveConfig(cfg, path))

	got, info, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 12345, got.Server.Port)
	assert.True(t, got.Report.Enabled)
}
