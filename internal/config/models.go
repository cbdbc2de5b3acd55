package config

// Registry represents the entire user configuration file.
// This stores user-defined camera aliases and application preferences.
type Registry struct {
	Version     int                `yaml:"version"`
	Cameras     map[string]*Camera `yaml:"cameras,omitempty"` // Keyed by user-chosen alias
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Camera represents a user-defined camera alias.
// An alias lets commands take a short name in place of a full device
// management URI. This is user-entered metadata only - discovery results
// are never persisted here.
type Camera struct {
	URI      string `yaml:"uri"`                // Device management URI
	Username string `yaml:"username,omitempty"` // Default username for this camera
	Serial   string `yaml:"serial,omitempty"`   // Serial number, used for credential file matching
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	ProbeTimeout int    `yaml:"probe_timeout"`        // Per-interface probe timeout in seconds
	CredsFile    string `yaml:"creds_file,omitempty"` // Default credential file path
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Cameras: make(map[string]*Camera),
		Preferences: &Preferences{
			ProbeTimeout: 5,
		},
	}
}

// GetCamera retrieves a camera alias by name.
// Returns nil if the alias doesn't exist in the registry.
func (r *Registry) GetCamera(alias string) *Camera {
	return r.Cameras[alias]
}

// SetCamera adds or replaces a camera alias.
func (r *Registry) SetCamera(alias string, camera *Camera) {
	if r.Cameras == nil {
		r.Cameras = make(map[string]*Camera)
	}
	r.Cameras[alias] = camera
}

// RemoveCamera deletes a camera alias.
// Returns true if the alias existed.
func (r *Registry) RemoveCamera(alias string) bool {
	if _, exists := r.Cameras[alias]; !exists {
		return false
	}
	delete(r.Cameras, alias)
	return true
}
