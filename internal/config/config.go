package config

type Config interface {
	EnvConfig
	CorsConfig
	BackendConfig
	PricingConfig
	SessionConfig
	StorageConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetSiteOrigin() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Backend
	Pricing
	Session
	Storage
}

func New() Config {
	return mainConfig{}
}
