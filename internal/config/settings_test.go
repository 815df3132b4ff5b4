package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/nativefy/internal/model"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())

	cfg := s.ToInferConfig()
	assert.Equal(t, 10*time.Second, cfg.CandidateTimeout)
	assert.Equal(t, 30*time.Second, cfg.PageTimeout)
	assert.Zero(t, cfg.MaxConcurrentFetches)
	assert.False(t, cfg.FallbackFavicon)
	assert.Equal(t, 4096*4096, cfg.MaxIconPixels)
	assert.Equal(t, runtime.GOOS, s.Platform)

	opts, err := s.ToBundleOptions()
	require.NoError(t, err)
	assert.Equal(t, model.Size{Width: 256, Height: 256}, opts.IconSize)
}

func TestLoad_Missing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "settings.json", `{"candidate_timeout": 2.5, "fallback_favicon": true}`},
		{"yaml", "settings.yaml", "candidate_timeout: 2.5\nfallback_favicon: true\n"},
		{"yml", "settings.yml", "candidate_timeout: 2.5\nfallback_favicon: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			s, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 2500*time.Millisecond, s.ToInferConfig().CandidateTimeout)
			assert.True(t, s.FallbackFavicon)
			assert.Equal(t, "256x256", s.IconSize)
			assert.Equal(t, DefaultSettings().UserAgent, s.UserAgent)
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSave_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	s := DefaultSettings()
	s.OutputDir = "/apps"
	s.MaxConcurrentFetches = 4
	require.NoError(t, s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "output_dir: /apps")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	s.CandidateTimeout = -1
	s.MaxConcurrentFetches = -2
	s.MaxIconPixels = -1
	s.IconSize = "huge"

	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "candidate_timeout")
	assert.Contains(t, err.Error(), "max_concurrent_fetches")
	assert.Contains(t, err.Error(), "max_icon_pixels")
	assert.ErrorIs(t, err, model.ErrInvalidSize)

	_, err = s.ToBundleOptions()
	assert.ErrorIs(t, err, model.ErrInvalidSize)
}
