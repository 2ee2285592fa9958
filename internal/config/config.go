package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config carries the client configuration resolved from environment
// variables and defaults.
type Config struct {
	// ServerURL is the base URL of the CAV client API, without a trailing
	// slash (request paths are joined as `ServerURL + "/api/..."`).
	ServerURL string

	// CavHome is the directory where the client stores local state (last
	// login address, logs).
	CavHome string

	// LogLevel is the logrus level name (trace|debug|info|warn|error).
	LogLevel string

	// Debug enables verbose logging and the account snapshot dump.
	Debug bool
}

// Load loads configuration from environment and defaults.
func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	cavHome := os.Getenv("CAV_HOME_DIR")
	if cavHome == "" {
		cavHome = filepath.Join(homeDir, ".cav")
	}
	if err := os.MkdirAll(cavHome, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create cav home: %w", err)
	}

	serverURL := os.Getenv("CAV_SERVER_URL")
	if serverURL == "" {
		// Default to the local client node the backend run script starts.
		serverURL = "http://localhost:4444"
	}

	debug := os.Getenv("DEBUG") == "true" || os.Getenv("DEBUG") == "1"
	if !debug {
		debug = os.Getenv("CAV_DEBUG") == "true" || os.Getenv("CAV_DEBUG") == "1"
	}

	logLevel := os.Getenv("CAV_LOG_LEVEL")
	if logLevel == "" {
		if debug {
			logLevel = "debug"
		} else {
			logLevel = "info"
		}
	}

	return &Config{
		ServerURL: serverURL,
		CavHome:   cavHome,
		LogLevel:  logLevel,
		Debug:     debug,
	}, nil
}
