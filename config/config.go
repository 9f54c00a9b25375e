package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StoreMongo  = "mongo"
	StoreSqlite = "sqlite"
)

type Config struct {
	Env  string
	Port string

	StoreDriver string
	MongoUri    string
	MongoDb     string
	SqlitePath  string

	JwtSecret  string
	SessionTTL time.Duration

	ViewsDir  string
	PublicDir string

	// OwnerOnlyMutations restricts delete and edit of an event to its owner.
	OwnerOnlyMutations bool
}

// Load reads the configuration from the environment. Call godotenv.Load
// beforehand to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("APP_ENV", "production"),
		Port:        getEnv("PORT", "3000"),
		StoreDriver: getEnv("STORE_DRIVER", StoreMongo),
		MongoUri:    os.Getenv("MONGO_URI"),
		MongoDb:     getEnv("MONGO_DB", "catch-the-light"),
		SqlitePath:  getEnv("SQLITE_PATH", "events.db"),
		JwtSecret:   os.Getenv("JWT_SECRET"),
		ViewsDir:    getEnv("VIEWS_DIR", "./views"),
		PublicDir:   getEnv("PUBLIC_DIR", "./public"),
	}

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.SessionTTL = ttl

	if v := os.Getenv("OWNER_ONLY_MUTATIONS"); v != "" {
		ownerOnly, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid OWNER_ONLY_MUTATIONS: %w", err)
		}
		cfg.OwnerOnlyMutations = ownerOnly
	}

	switch cfg.StoreDriver {
	case StoreMongo:
		if cfg.MongoUri == "" {
			return nil, fmt.Errorf("MONGO_URI not set in env")
		}
	case StoreSqlite:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.JwtSecret == "" {
		if cfg.Env != "development" {
			return nil, fmt.Errorf("JWT_SECRET not set in env")
		}
		cfg.JwtSecret = "catch-the-light-dev-secret"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
