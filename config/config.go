package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the settings read from the environment.
type Config struct {
	ServerPort     string
	StorageBackend string
	DataDir        string
	SQLitePath     string
	MongoURI       string
	MongoDBName    string
	KafkaBrokers   []string
	KafkaTopic     string
	CORSOrigin     string
	LogFile        string
	LogLevel       string
	BreakerEnabled bool

	breakerExplicit bool
}

// Load reads envFile into the process environment (a missing file is fine)
// and builds a Config from the environment. Variables already set win over
// the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	cfg := Config{
		ServerPort:     getEnv("SERVER_PORT", "3000"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "file")),
		DataDir:        getEnv("DATA_DIR", "data"),
		SQLitePath:     getEnv("SQLITE_PATH", "data/actividad.db"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:    getEnv("MONGO_DB_NAME", "actividad"),
		KafkaBrokers:   splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "actividad-changes"),
		CORSOrigin:     getEnv("CORS_ORIGIN", "*"),
		LogFile:        getEnv("LOG_FILE", "logs/api.log"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	enabled, err := getBool("BREAKER_ENABLED", isRemote(cfg.StorageBackend))
	if err != nil {
		return Config{}, err
	}
	cfg.BreakerEnabled = enabled
	cfg.breakerExplicit = os.Getenv("BREAKER_ENABLED") != ""

	return cfg, nil
}

// SetBackend switches the storage backend. The breaker default follows the
// new backend unless BREAKER_ENABLED was set.
func (c *Config) SetBackend(kind string) {
	c.StorageBackend = strings.ToLower(kind)
	if !c.breakerExplicit {
		c.BreakerEnabled = isRemote(c.StorageBackend)
	}
}

func isRemote(kind string) bool {
	return kind == "sqlite" || kind == "mongo"
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.ServerPort == "" {
		return errors.New("SERVER_PORT is not set")
	}
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("SERVER_PORT must be a number, got %q", c.ServerPort)
	}
	switch c.StorageBackend {
	case "file", "memory", "sqlite", "mongo":
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.StorageBackend == "file" && c.DataDir == "" {
		return errors.New("DATA_DIR is required for the file backend")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.ServerPort
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
