package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT         string `validate:"required,numeric"`
	MAX_UPLOAD_BYTES int64  `validate:"gt=0"`
	// database config
	DB_ENABLED           bool
	DB_HOST              string `validate:"required_if=DB_ENABLED true"`
	DB_PORT              int    `validate:"min=1,max=65535"`
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string `validate:"required_if=DB_ENABLED true"`
	DB_SSL_MODE          string `validate:"oneof=disable require verify-ca verify-full"`
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int `validate:"gte=0"`
	DB_MAX_OPEN_CONNS    int `validate:"gte=0"`
	// matcher config
	MATCH_STRICT       bool
	MATCH_DATE_LAYOUTS []string
	REPORT_CONFIG_PATH string
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string `validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LOG_CONSOLE   bool
	// metrics config
	METRICS_NAMESPACE string
}

// LoadEnvConfig reads the given env files (".env" when none are given) into
// the process environment and builds DefaultEnvConfig. Missing files are
// not an error.
func LoadEnvConfig(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &envConfig{
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		MAX_UPLOAD_BYTES:     int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		DB_ENABLED:           getEnvBool("DB_ENABLED", false),
		DB_HOST:              getEnvString("DB_HOST", "localhost"),
		DB_PORT:              getEnvInt("DB_PORT", 5432),
		DB_USER:              getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:          getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:              getEnvString("DB_NAME", "postgres"),
		DB_SSL_MODE:          getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 100),
		MATCH_STRICT:         getEnvBool("MATCH_STRICT", true),
		MATCH_DATE_LAYOUTS:   getEnvList("MATCH_DATE_LAYOUTS", "|"),
		REPORT_CONFIG_PATH:   getEnvString("REPORT_CONFIG_PATH", ""),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            strings.ToLower(getEnvString("LOG_LEVEL", "info")),
		LOG_CONSOLE:          getEnvBool("LOG_CONSOLE", false),
		METRICS_NAMESPACE:    getEnvString("METRICS_NAMESPACE", "employee_pairs"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid env config: %w", err)
	}

	DefaultEnvConfig = cfg
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key, sep string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
