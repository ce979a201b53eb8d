package config

import (
	"os"
	"path/filepath"
)

const (
	appNameVar    = "APP_NAME"
	apiBaseURLVar = "API_BASE_URL"
	originVar     = "CLIENT_ORIGIN"
	tokenFileVar  = "TOKEN_FILE"
	redisAddrVar  = "REDIS_ADDR"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ StorageConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Auth Client")
}

// GetAPIBaseURL returns the base URL of the remote auth service
// (e.g. "https://api.example.com").
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:8080")
}

// GetOrigin returns the client's own origin, used for default OAuth callback
// redirect URIs.
func (EnvVars) GetOrigin() string {
	return GetEnv(originVar, "http://localhost:3000")
}

func (EnvVars) GetTokenFile() string {
	if file := os.Getenv(tokenFileVar); file != "" {
		return file
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tokens.json"
	}
	return filepath.Join(home, ".config", "authctl", "tokens.json")
}

// GetRedisAddr returns the Redis address for shared token storage, or "" when
// file storage should be used instead.
func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
