package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DebugModeEnv is the environment variable for debug mode.
	DebugModeEnv = "DEBUG_MODE"

	// APIBaseURLEnv is the environment variable for the remote API base URL.
	APIBaseURLEnv = "API_BASE_URL"

	// APITimeoutSecondsEnv is the environment variable for the default request timeout.
	APITimeoutSecondsEnv = "API_TIMEOUT_SECONDS"

	// UploadTimeoutSecondsEnv is the environment variable for the file-upload request timeout.
	UploadTimeoutSecondsEnv = "UPLOAD_TIMEOUT_SECONDS"

	// BatchTimeoutSecondsEnv is the environment variable for the batch-prediction request timeout.
	BatchTimeoutSecondsEnv = "BATCH_TIMEOUT_SECONDS"

	// SessionDirEnv is the environment variable for the session storage directory.
	SessionDirEnv = "SESSION_DIR"

	// MetricsServerPortEnv is the environment variable for the optional metrics server port.
	MetricsServerPortEnv = "METRICS_SERVER_PORT"

	// EnvFilePath is the environment variable for .env file path (only for local/test environment).
	EnvFilePath = "ENV_PATH"

	// DefaultEnvFilePath is the default path to the .env file.
	DefaultEnvFilePath = ".env"
)

// Request timeout defaults. Upload and batch endpoints run long server-side
// jobs and need far more headroom than regular JSON calls.
const (
	DefaultAPITimeout    = 10 * time.Second
	DefaultUploadTimeout = 60 * time.Second
	DefaultBatchTimeout  = 120 * time.Second
)

var (
	// ErrMissingConfig is returned when required configuration values are missing.
	ErrMissingConfig = errors.New("missing config data")
)

// Config represents the application configuration.
type Config struct {
	DebugMode bool
	API       API
	Session   Session
	Metrics   Metrics
}

// API represents remote API client configuration settings.
type API struct {
	BaseURL       string
	Timeout       time.Duration
	UploadTimeout time.Duration
	BatchTimeout  time.Duration
}

// Session represents session storage configuration settings.
type Session struct {
	Dir string
}

// Metrics represents metrics server configuration settings.
// An empty port disables the metrics server.
type Metrics struct {
	Port string
}

func allNonEmpty(keyValues map[string]string) error {
	for key, value := range keyValues {
		if value == "" {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("error", "value is empty"))
			return fmt.Errorf("%w for key: %s", ErrMissingConfig, key)
		}
	}
	return nil
}

func allNumbers(keyValues map[string]string) error {
	for key, value := range keyValues {
		_, err := strconv.Atoi(value)
		if err != nil {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("value", value), slog.String("error", err.Error()))
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if err := allNonEmpty(map[string]string{
		APIBaseURLEnv: c.API.BaseURL,
		SessionDirEnv: c.Session.Dir,
	}); err != nil {
		return fmt.Errorf("client configuration incomplete: %w", err)
	}

	// The metrics server is optional; validate the port only when set.
	if c.Metrics.Port != "" {
		if err := allNumbers(map[string]string{
			MetricsServerPortEnv: c.Metrics.Port,
		}); err != nil {
			return fmt.Errorf("invalid port number: %w", err)
		}
	}

	return nil
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsSeconds(name string, defaultValue time.Duration) time.Duration {
	if secs, err := strconv.Atoi(os.Getenv(name)); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// ApplyEnvFile loads environment variables from the specified .env files.
func ApplyEnvFile(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables and validates it.
func LoadFromEnv() (*Config, error) {
	envPath := os.Getenv(EnvFilePath)
	if envPath == "" {
		envPath = DefaultEnvFilePath
	}
	err := ApplyEnvFile(envPath)
	if err != nil {
		// just log the error, maybe all envs are set in another way
		slog.Info("failed to load from .env", slog.Any("err", err))
	}

	conf := &Config{
		DebugMode: getEnvAsBool(DebugModeEnv, false),
		API: API{
			BaseURL:       os.Getenv(APIBaseURLEnv),
			Timeout:       getEnvAsSeconds(APITimeoutSecondsEnv, DefaultAPITimeout),
			UploadTimeout: getEnvAsSeconds(UploadTimeoutSecondsEnv, DefaultUploadTimeout),
			BatchTimeout:  getEnvAsSeconds(BatchTimeoutSecondsEnv, DefaultBatchTimeout),
		},
		Session: Session{
			Dir: os.Getenv(SessionDirEnv),
		},
		Metrics: Metrics{
			Port: os.Getenv(MetricsServerPortEnv),
		},
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}
