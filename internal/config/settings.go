package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/handiism/nativefy/internal/bundle"
	"github.com/handiism/nativefy/internal/http"
	"github.com/handiism/nativefy/internal/infer"
	ioutils "github.com/handiism/nativefy/internal/io"
	"github.com/handiism/nativefy/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Network settings
	UserAgent    string  `json:"user_agent" yaml:"user_agent"`
	PageTimeout  float64 `json:"page_timeout" yaml:"page_timeout"` // seconds
	MaxBodyBytes int64   `json:"max_body_bytes" yaml:"max_body_bytes"`

	// Icon inference settings
	CandidateTimeout     float64 `json:"candidate_timeout" yaml:"candidate_timeout"` // seconds
	MaxConcurrentFetches int     `json:"max_concurrent_fetches" yaml:"max_concurrent_fetches"`
	FallbackFavicon      bool    `json:"fallback_favicon" yaml:"fallback_favicon"`
	MaxIconPixels        int     `json:"max_icon_pixels" yaml:"max_icon_pixels"`

	// Bundle settings
	OutputDir string `json:"output_dir" yaml:"output_dir"`
	IconSize  string `json:"icon_size" yaml:"icon_size"` // WxH
	Platform  string `json:"platform" yaml:"platform"`   // linux, darwin, windows
	Launcher  string `json:"launcher" yaml:"launcher"`   // empty: platform default
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		UserAgent:    http.DefaultUserAgent,
		PageTimeout:  infer.DefaultPageTimeout.Seconds(),
		MaxBodyBytes: http.DefaultMaxBodyBytes,

		CandidateTimeout:     infer.DefaultCandidateTimeout.Seconds(),
		MaxConcurrentFetches: 0,
		FallbackFavicon:      false,
		MaxIconPixels:        ioutils.DefaultMaxPixels,

		OutputDir: ".",
		IconSize:  "256x256",
		Platform:  runtime.GOOS,
	}
}

// Load reads settings from a JSON or YAML file.
//
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
// A missing file yields the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension like Load.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports every invalid field at once.
func (s *Settings) Validate() error {
	var errs []error
	if s.PageTimeout < 0 {
		errs = append(errs, fmt.Errorf("page_timeout must not be negative: %v", s.PageTimeout))
	}
	if s.CandidateTimeout < 0 {
		errs = append(errs, fmt.Errorf("candidate_timeout must not be negative: %v", s.CandidateTimeout))
	}
	if s.MaxBodyBytes < 0 {
		errs = append(errs, fmt.Errorf("max_body_bytes must not be negative: %d", s.MaxBodyBytes))
	}
	if s.MaxConcurrentFetches < 0 {
		errs = append(errs, fmt.Errorf("max_concurrent_fetches must not be negative: %d", s.MaxConcurrentFetches))
	}
	if s.MaxIconPixels < 0 {
		errs = append(errs, fmt.Errorf("max_icon_pixels must not be negative: %d", s.MaxIconPixels))
	}
	if _, err := model.ParseSize(s.IconSize); err != nil {
		errs = append(errs, fmt.Errorf("icon_size: %w", err))
	}
	return errors.Join(errs...)
}

// ToClientOptions converts settings to http.Options.
func (s *Settings) ToClientOptions() http.Options {
	return http.Options{
		Timeout:      seconds(s.PageTimeout),
		UserAgent:    s.UserAgent,
		MaxBodyBytes: s.MaxBodyBytes,
	}
}

// ToInferConfig converts settings to infer.Config.
func (s *Settings) ToInferConfig() *infer.Config {
	return &infer.Config{
		PageTimeout:          seconds(s.PageTimeout),
		CandidateTimeout:     seconds(s.CandidateTimeout),
		MaxConcurrentFetches: s.MaxConcurrentFetches,
		FallbackFavicon:      s.FallbackFavicon,
		MaxIconPixels:        s.MaxIconPixels,
	}
}

// ToBundleOptions converts settings to bundle.Options.
func (s *Settings) ToBundleOptions() (bundle.Options, error) {
	size, err := model.ParseSize(s.IconSize)
	if err != nil {
		return bundle.Options{}, err
	}
	return bundle.Options{
		IconSize: size,
		Launcher: s.Launcher,
	}, nil
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
