package config

import (
	"strings"
	"time"
)

type BackendConfig interface {
	GetBackendBaseURL() string
	GetBackendOrigin() string
	GetBackendTimeout() time.Duration
}

type Backend struct{}

var _ BackendConfig = Backend{}

// GetBackendBaseURL returns the REST API root, including the /api path.
func (Backend) GetBackendBaseURL() string {
	return strings.TrimSuffix(GetEnv("BACKEND_URL", "http://localhost:5000/api"), "/")
}

// GetBackendOrigin is the backend base URL without the /api suffix.
// Uploaded images are served from this origin, not from under /api.
func (b Backend) GetBackendOrigin() string {
	return strings.TrimSuffix(b.GetBackendBaseURL(), "/api")
}

func (Backend) GetBackendTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv("BACKEND_TIMEOUT", "10s"))
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}
