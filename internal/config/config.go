package config

// Config aggregates the client's configuration capabilities.
type Config interface {
	EnvConfig
	StorageConfig
}

// EnvConfig describes the execution environment and the remote service.
type EnvConfig interface {
	GetAppName() string
	GetAPIBaseURL() string
	GetOrigin() string
	GetEnv() string
}

// StorageConfig locates the durable token storage backends.
type StorageConfig interface {
	GetTokenFile() string
	GetRedisAddr() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
