// Package config provides user configuration management for camctrl.
//
// This package manages a YAML-based configuration file that stores
// user-defined camera aliases and application preferences. The configuration
// follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/camctrl/config.yaml or $HOME/.config/camctrl/config.yaml
//   - macOS: $HOME/.config/camctrl/config.yaml
//   - Windows: %LOCALAPPDATA%\camctrl\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores camera passwords. Those live in a
// separate credential file or are prompted from the user when needed.
//
// # Usage Example
//
//	// Load the global registry
//	registry, err := config.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Add or update a camera alias
//	registry.SetCamera("front-door", &config.Camera{
//	    URI:      "http://192.168.1.100/onvif/device_service",
//	    Username: "admin",
//	})
//
//	// Save changes atomically
//	if err := registry.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package config
