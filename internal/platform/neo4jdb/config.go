package neo4jdb

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	URI            string
	User           string
	Password       string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    int
	MaxTxRetryTime time.Duration
	EnsureSchema   bool
}

type ConfigErrorCode string

const (
	ConfigErrorMissingURI     ConfigErrorCode = "missing_uri"
	ConfigErrorInvalidURI     ConfigErrorCode = "invalid_uri"
	ConfigErrorInvalidTimeout ConfigErrorCode = "invalid_timeout"
	ConfigErrorInvalidPool    ConfigErrorCode = "invalid_pool_size"
	ConfigErrorInvalidRetry   ConfigErrorCode = "invalid_tx_retry"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid neo4j config"
	}
	switch e.Code {
	case ConfigErrorMissingURI:
		return "NEO4J_URI is required"
	case ConfigErrorInvalidURI:
		return fmt.Sprintf("invalid NEO4J_URI=%q; expected neo4j://, neo4j+s://, bolt:// or bolt+s:// URI", e.Value)
	case ConfigErrorInvalidTimeout:
		return fmt.Sprintf("invalid NEO4J_TIMEOUT_SECONDS=%q; expected positive integer", e.Value)
	case ConfigErrorInvalidPool:
		return fmt.Sprintf("invalid NEO4J_MAX_POOL_SIZE=%q; expected positive integer", e.Value)
	case ConfigErrorInvalidRetry:
		return fmt.Sprintf("invalid NEO4J_TX_RETRY_SECONDS=%q; expected positive integer", e.Value)
	default:
		return "invalid neo4j config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

var validSchemes = map[string]bool{
	"neo4j":     true,
	"neo4j+s":   true,
	"neo4j+ssc": true,
	"bolt":      true,
	"bolt+s":    true,
	"bolt+ssc":  true,
}

func ResolveConfigFromEnv() (Config, error) {
	timeout, err := positiveInt("NEO4J_TIMEOUT_SECONDS", 10, ConfigErrorInvalidTimeout)
	if err != nil {
		return Config{}, err
	}
	pool, err := positiveInt("NEO4J_MAX_POOL_SIZE", 50, ConfigErrorInvalidPool)
	if err != nil {
		return Config{}, err
	}
	retry, err := positiveInt("NEO4J_TX_RETRY_SECONDS", 30, ConfigErrorInvalidRetry)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		URI:            strings.TrimSpace(os.Getenv("NEO4J_URI")),
		User:           strings.TrimSpace(os.Getenv("NEO4J_USER")),
		Password:       strings.TrimSpace(os.Getenv("NEO4J_PASSWORD")),
		Database:       strings.TrimSpace(os.Getenv("NEO4J_DATABASE")),
		ConnectTimeout: time.Duration(timeout) * time.Second,
		MaxPoolSize:    pool,
		MaxTxRetryTime: time.Duration(retry) * time.Second,
		EnsureSchema:   true,
	}
	if cfg.User == "" {
		cfg.User = "neo4j"
	}
	switch strings.TrimSpace(strings.ToLower(os.Getenv("NEO4J_ENSURE_SCHEMA"))) {
	case "0", "false", "no", "off":
		cfg.EnsureSchema = false
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if cfg.URI == "" {
		return &ConfigError{Code: ConfigErrorMissingURI}
	}
	parsed, err := url.Parse(cfg.URI)
	if err != nil || !validSchemes[strings.ToLower(parsed.Scheme)] || strings.TrimSpace(parsed.Host) == "" {
		return &ConfigError{Code: ConfigErrorInvalidURI, Value: cfg.URI, Cause: err}
	}
	if cfg.ConnectTimeout <= 0 {
		return &ConfigError{Code: ConfigErrorInvalidTimeout, Value: cfg.ConnectTimeout.String()}
	}
	if cfg.MaxPoolSize <= 0 {
		return &ConfigError{Code: ConfigErrorInvalidPool, Value: strconv.Itoa(cfg.MaxPoolSize)}
	}
	if cfg.MaxTxRetryTime <= 0 {
		return &ConfigError{Code: ConfigErrorInvalidRetry, Value: cfg.MaxTxRetryTime.String()}
	}
	return nil
}

func positiveInt(name string, def int, code ConfigErrorCode) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, &ConfigError{Code: code, Value: raw, Cause: err}
	}
	return v, nil
}
