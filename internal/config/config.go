package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	RelayURL        string
	APIEndpoint     string
	PageSize        int
	Timeout         time.Duration
	CacheBackend    string // memory, mongo, redis or sqlite
	CacheTTL        time.Duration
	CacheKey        string
	CategoryMode    string // lenient or strict
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPass       string
	RedisDB         int
	SQLitePath      string
	RabbitURI       string // empty disables RabbitMQ notifications
	RabbitExchange  string
	RabbitRouting   string
	HTTPAddr        string
	RefreshInterval time.Duration // 0 disables background refresh
	MaxRefreshes    int           // -1 is unlimited
}

const (
	ConfigFile        = "CONFIG_FILE"
	RelayURL          = "RELAY_URL"
	APIEndpoint       = "API_ENDPOINT"
	PageSize          = "PAGE_SIZE"
	Timeout           = "TIMEOUT"
	CacheBackend      = "CACHE_BACKEND"
	CacheTTL          = "CACHE_TTL"
	CacheKey          = "CACHE_KEY"
	CategoryMode      = "CATEGORY_MODE"
	MongoURI          = "MONGO_URI"
	MongoDBName       = "MONGO_DB_NAME"
	RedisAddr         = "REDIS_ADDR"
	RedisPass         = "REDIS_PASS"
	RedisDB           = "REDIS_DB"
	SQLitePath        = "SQLITE_PATH"
	RabbitURIEnv      = "RABBIT_URI"
	RabbitExchangeEnv = "RABBIT_EXCHANGE"
	RabbitRoutingEnv  = "RABBIT_ROUTING_KEY"
	HTTPAddr          = "HTTP_ADDR"
	RefreshInterval   = "REFRESH_INTERVAL"
	MaxRefreshes      = "MAX_REFRESHES"
)

var cacheBackends = map[string]bool{"memory": true, "mongo": true, "redis": true, "sqlite": true}

// FromEnv reads the configuration from the environment. When CONFIG_FILE
// names a YAML file of KEY: value pairs, those values apply wherever the
// environment leaves a key unset.
func FromEnv() (Config, error) {
	return Load(os.Getenv(ConfigFile))
}

func Load(path string) (Config, error) {
	var cfg Config

	file, err := readFile(path)
	if err != nil {
		return cfg, err
	}
	env := source{file: file}

	cfg.RelayURL = env.get(RelayURL, "https://api.allorigins.win/raw?url=")
	cfg.APIEndpoint = env.get(APIEndpoint, "https://newswire-story-recommendation.staging.storyful.com/api/stories")
	cfg.CacheBackend = strings.ToLower(env.get(CacheBackend, "memory"))
	cfg.CacheKey = env.get(CacheKey, "newswire_stories_cache")
	cfg.CategoryMode = env.get(CategoryMode, "lenient")
	cfg.MongoURI = env.get(MongoURI, "mongodb://localhost:27017")
	cfg.MongoDBName = env.get(MongoDBName, "newswire")
	cfg.RedisAddr = env.get(RedisAddr, "localhost:6379")
	cfg.RedisPass = env.get(RedisPass, "")
	cfg.SQLitePath = env.get(SQLitePath, "data/newswire.db")
	cfg.RabbitURI = env.get(RabbitURIEnv, "")
	cfg.RabbitExchange = env.get(RabbitExchangeEnv, "newswire.notifications")
	cfg.RabbitRouting = env.get(RabbitRoutingEnv, "catalog.fallback")
	cfg.HTTPAddr = env.get(HTTPAddr, ":8080")

	if cfg.PageSize, err = env.getInt(PageSize, 20); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", PageSize, err)
	}
	if cfg.RedisDB, err = env.getInt(RedisDB, 0); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", RedisDB, err)
	}
	if cfg.MaxRefreshes, err = env.getInt(MaxRefreshes, -1); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", MaxRefreshes, err)
	}
	if cfg.Timeout, err = time.ParseDuration(env.get(Timeout, "10s")); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", Timeout, err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(env.get(CacheTTL, "5m")); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", CacheTTL, err)
	}
	if cfg.RefreshInterval, err = time.ParseDuration(env.get(RefreshInterval, "0s")); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", RefreshInterval, err)
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if !cacheBackends[cfg.CacheBackend] {
		return fmt.Errorf("invalid %v: unknown backend %q (valid: memory, mongo, redis, sqlite)", CacheBackend, cfg.CacheBackend)
	}
	if cfg.PageSize <= 0 {
		return fmt.Errorf("invalid %v: must be positive, got %d", PageSize, cfg.PageSize)
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("invalid %v: must be positive, got %v", CacheTTL, cfg.CacheTTL)
	}
	return nil
}

func readFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return values, nil
}

// source resolves a key from the environment first, then the config file.
type source struct {
	file map[string]string
}

func (s source) get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := s.file[key]; v != "" {
		return v
	}
	return fallback
}

func (s source) getInt(key string, fallback int) (int, error) {
	v := s.get(key, "")
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return i, nil
}
