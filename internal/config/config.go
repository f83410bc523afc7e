package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr         string
	DBPath             string
	CatalogPath        string
	ImagePath          string
	LogLevel           string
	LogFormat          string
	LogFile            string
	FluentHost         string
	FluentPort         int
	AMQPURL            string
	AMQPExchange       string
	CORSOrigins        []string
	LegacyRemoveNotify bool
}

// Load reads the configuration from the environment. Values in a .env file
// in the working directory are applied first but never override variables
// that are already set.
func Load() *Config {
	loadDotEnv(".env")

	return &Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		DBPath:             getEnv("DB_PATH", "/data/homelist.db"),
		CatalogPath:        getEnv("CATALOG_PATH", ""),
		ImagePath:          getEnv("IMAGE_PATH", "/data/images"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		LogFile:            getEnv("LOG_FILE", ""),
		FluentHost:         getEnv("FLUENT_HOST", ""),
		FluentPort:         getEnvInt("FLUENT_PORT", 24224),
		AMQPURL:            getEnv("AMQP_URL", ""),
		AMQPExchange:       getEnv("AMQP_EXCHANGE", "homelist.inventory"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
		LegacyRemoveNotify: getEnvBool("LEGACY_REMOVE_NOTIFY", false),
	}
}

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "path", path, "error", err)
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", val)
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "value", val)
		return defaultVal
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
