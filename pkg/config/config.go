package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"claresys/pkg/logger"
)

type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration

	MQTTURL         string
	MQTTTopicPrefix string
	MQTTKeepAlive   time.Duration
	MQTTReconnect   time.Duration

	TokenFile string

	Log *logger.Logger
}

func Load(component string) *Config {
	cfg := &Config{
		APIBaseURL:     getEnvStr(EnvAPIBaseURL, DefaultAPIBaseURL),
		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),

		MQTTURL:         getEnvStr(EnvMQTTURL, DefaultMQTTURL),
		MQTTTopicPrefix: getEnvStr(EnvMQTTTopicPrefix, DefaultMQTTTopicPrefix),
		MQTTKeepAlive:   getEnvDuration(EnvMQTTKeepAlive, DefaultMQTTKeepAlive),
		MQTTReconnect:   getEnvDuration(EnvMQTTReconnect, DefaultMQTTReconnect),

		TokenFile: getEnvStr(EnvTokenFile, defaultTokenFile()),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    getEnvStr(EnvLogFormat, DefaultLogFormat),
			Component: component,
		}),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	return cfg
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "claresys", "access_token")
}

func (cfg *Config) Validate() error {
	var errors []string

	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		errors = append(errors, fmt.Sprintf("APIBaseURL must start with 'http://' or 'https://', got: %s", cfg.APIBaseURL))
	}
	if strings.HasSuffix(cfg.APIBaseURL, "/") {
		errors = append(errors, fmt.Sprintf("APIBaseURL must not end with '/', got: %s", cfg.APIBaseURL))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}

	if !regexp.MustCompile(`^(tcp|ssl|ws|wss)://`).MatchString(cfg.MQTTURL) {
		errors = append(errors, fmt.Sprintf("MQTTURL must start with tcp://, ssl://, ws:// or wss://, got: %s", cfg.MQTTURL))
	}
	if cfg.MQTTTopicPrefix == "" || strings.ContainsAny(cfg.MQTTTopicPrefix, "/#+") {
		errors = append(errors, fmt.Sprintf("MQTTTopicPrefix must be a single non-empty topic level, got: %q", cfg.MQTTTopicPrefix))
	}
	if cfg.MQTTKeepAlive <= 0 {
		errors = append(errors, fmt.Sprintf("MQTTKeepAlive must be positive, got: %s", cfg.MQTTKeepAlive))
	}
	if cfg.MQTTReconnect <= 0 {
		errors = append(errors, fmt.Sprintf("MQTTReconnect must be positive, got: %s", cfg.MQTTReconnect))
	}

	if cfg.TokenFile == "" {
		errors = append(errors, "TokenFile cannot be empty")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded",
		"api_base_url", cfg.APIBaseURL,
		"request_timeout", cfg.RequestTimeout,
		"mqtt_url", redactURL(cfg.MQTTURL),
		"mqtt_topic_prefix", cfg.MQTTTopicPrefix,
		"mqtt_keepalive", cfg.MQTTKeepAlive,
		"mqtt_reconnect", cfg.MQTTReconnect,
		"token_file", cfg.TokenFile,
	)
}

func redactURL(u string) string {
	credentialRegex := regexp.MustCompile(`^(\w+://)[^/@]+:[^/@]+@`)
	return credentialRegex.ReplaceAllString(u, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 50
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
