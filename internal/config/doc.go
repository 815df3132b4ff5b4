// Package config provides configuration management for nativefy.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Conversion to http.Options, infer.Config and bundle.Options
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// 30s page timeout, 10s per icon candidate
//	// unlimited concurrent candidate downloads
//	// 256x256 bundle icons for the host platform
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/nativefy.yaml")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.OutputDir = "/Applications"
//	err := settings.Save("/path/to/nativefy.json")
package config
