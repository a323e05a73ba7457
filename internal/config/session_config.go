package config

import "time"

type SessionConfig interface {
	GetRefreshInterval() time.Duration
}

type Session struct{}

var _ SessionConfig = Session{}

// GetRefreshInterval is how often an authenticated session re-validates its
// token against the backend.
func (Session) GetRefreshInterval() time.Duration {
	d, err := time.ParseDuration(GetEnv("SESSION_REFRESH_INTERVAL", "15m"))
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}
