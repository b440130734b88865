// Package config loads recipecard settings from a TOML file and the environment.
//
// Priority is environment > file > defaults. The file lives at
// $XDG_CONFIG_HOME/recipecard/config.toml (or ~/.config/recipecard/config.toml)
// and is optional:
//
//	log_level = "debug"
//
//	[store]
//	backend = "redis"
//
//	[redis]
//	addr   = "localhost:6379"
//	prefix = "recipecard"
//
//	[cache]
//	backend = "file"   # file, redis or none
//	ttl     = "168h"
//
// Every field can be overridden with a RECIPECARD_* variable, e.g.
// RECIPECARD_STORE=mongo or RECIPECARD_MONGO_URI=mongodb://db:27017.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ilyakaznacheev/cleanenv"
)

const appName = "recipecard"

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the supported store backends.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo}

// Preview cache backends. The redis cache shares the [redis] connection.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// CacheBackends lists the supported preview cache backends.
var CacheBackends = []string{CacheFile, CacheRedis, CacheNone}

// Config is the root application configuration.
type Config struct {
	LogLevel string       `toml:"log_level" env:"RECIPECARD_LOG_LEVEL" env-default:"info"`
	Store    StoreConfig  `toml:"store"`
	Redis    RedisConfig  `toml:"redis"`
	Mongo    MongoConfig  `toml:"mongo"`
	Server   ServerConfig `toml:"server"`
	Cache    CacheConfig  `toml:"cache"`
}

// StoreConfig selects where templates are kept.
type StoreConfig struct {
	Backend string `toml:"backend" env:"RECIPECARD_STORE"     env-default:"file"`
	Dir     string `toml:"dir"     env:"RECIPECARD_STORE_DIR"`
}

// RedisConfig holds Redis connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"     env:"RECIPECARD_REDIS_ADDR"     env-default:"localhost:6379"`
	Password string `toml:"password" env:"RECIPECARD_REDIS_PASSWORD"`
	DB       int    `toml:"db"       env:"RECIPECARD_REDIS_DB"       env-default:"0"`
	Prefix   string `toml:"prefix"   env:"RECIPECARD_REDIS_PREFIX"   env-default:"recipecard"`
}

// MongoConfig holds MongoDB connection settings for the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"        env:"RECIPECARD_MONGO_URI"        env-default:"mongodb://localhost:27017"`
	Database   string `toml:"database"   env:"RECIPECARD_MONGO_DATABASE"   env-default:"recipecard"`
	Collection string `toml:"collection" env:"RECIPECARD_MONGO_COLLECTION" env-default:"templates"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr            string        `toml:"addr"             env:"RECIPECARD_SERVER_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `toml:"read_timeout"     env:"RECIPECARD_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `toml:"write_timeout"    env:"RECIPECARD_SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"RECIPECARD_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// CacheConfig controls caching of rendered previews.
type CacheConfig struct {
	Backend string        `toml:"backend" env:"RECIPECARD_CACHE"     env-default:"file"`
	Dir     string        `toml:"dir"     env:"RECIPECARD_CACHE_DIR"`
	TTL     time.Duration `toml:"ttl"     env:"RECIPECARD_CACHE_TTL" env-default:"168h"`
}

// Default returns the configuration used when no file or environment
// variables are present. Store.Dir and Cache.Dir are left empty and resolved
// by Load.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store:    StoreConfig{Backend: BackendFile},
		Redis:    RedisConfig{Addr: "localhost:6379", Prefix: appName},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   appName,
			Collection: "templates",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{Backend: CacheFile, TTL: 7 * 24 * time.Hour},
	}
}

// Load reads configuration from path and the environment.
// An empty path means DefaultPath; a missing default file is not an error,
// but a missing explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	var cfg Config
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if cfg.Store.Dir == "" {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		cfg.Store.Dir = filepath.Join(dir, "templates")
	}
	if cfg.Cache.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return nil, err
		}
		cfg.Cache.Dir = filepath.Join(dir, "previews")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration can be used to open a store.
func (c Config) Validate() error {
	if !slices.Contains(Backends, c.Store.Backend) {
		return fmt.Errorf("unknown store backend %q (want one of %v)", c.Store.Backend, Backends)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch c.Store.Backend {
	case BackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
		if c.Redis.DB < 0 {
			return fmt.Errorf("redis.db must be >= 0, got %d", c.Redis.DB)
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" || c.Mongo.Collection == "" {
			return fmt.Errorf("mongo.uri, mongo.database and mongo.collection are required for the mongo backend")
		}
	}
	if !slices.Contains(CacheBackends, c.Cache.Backend) {
		return fmt.Errorf("unknown cache backend %q (want one of %v)", c.Cache.Backend, CacheBackends)
	}
	if c.Cache.Backend == CacheRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required for the redis cache")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be >= 0, got %s", c.Cache.TTL)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// DefaultPath returns the config file location using the XDG standard.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DataDir returns the data directory using the XDG standard
// (~/.local/share/recipecard/).
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/recipecard/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cache", appName), nil
}
