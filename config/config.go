package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Durable geocode cache
const GEOCACHE_KEY_PREFIX = "geocache_v1:"
const GEOCACHE_BATCH_CHUNK_SIZE = 50

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const LISTINGS_RESPONSE_RESOURCE = "listings_response.json"
const PLACE_SEARCH_RESPONSE_RESOURCE = "place_search_response.json"
const ROUTE_RESPONSE_RESOURCE = "route_response.json"

// Config holds the tunable parameters of the sync engine. The per-listing
// delay values were tuned empirically against one provider's undocumented
// rate limits, so they are env overridable rather than load-bearing
// constants.
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Geocode  GeocodeConfig
	Viewport ViewportConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Port int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type GeocodeConfig struct {
	// Delay after a session-cache hit before the next listing is processed.
	CacheHitDelay time.Duration
	// Delay after a live place-search lookup, long enough to stay under the
	// provider's implicit rate limit.
	LookupDelay time.Duration
	// Chunk size for batched durable-cache reads.
	BatchChunkSize int
	// Jitter amplitude (degrees) applied to coordinates on durable writes.
	WriteJitterDegrees float64
}

type ViewportConfig struct {
	// Debounce applied to pan/zoom settle events before recomputation.
	Debounce time.Duration
	// Settle delay after a batch of freshly rendered markers.
	MarkerSettleDelay time.Duration
}

type LoggingConfig struct {
	Level string
}

// Load reads configuration from the environment, consulting a .env file when
// one is present.
func Load() (*Config, error) {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", REDIS_DB_ADDRESS),
			Password: getEnv("REDIS_PASSWORD", REDIS_DB_PASSWORD),
			DB:       getEnvInt("REDIS_DB", REDIS_DB),
		},
		Geocode: GeocodeConfig{
			CacheHitDelay:      getEnvDuration("GEOCODE_CACHE_HIT_DELAY", 10*time.Millisecond),
			LookupDelay:        getEnvDuration("GEOCODE_LOOKUP_DELAY", 30*time.Millisecond),
			BatchChunkSize:     getEnvInt("GEOCACHE_CHUNK_SIZE", GEOCACHE_BATCH_CHUNK_SIZE),
			WriteJitterDegrees: getEnvFloat("GEOCACHE_WRITE_JITTER", 0.0005),
		},
		Viewport: ViewportConfig{
			Debounce:          getEnvDuration("VIEWPORT_DEBOUNCE", 300*time.Millisecond),
			MarkerSettleDelay: getEnvDuration("VIEWPORT_MARKER_SETTLE", 150*time.Millisecond),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Geocode.BatchChunkSize < 1 {
		return fmt.Errorf("invalid geocache chunk size: %d", c.Geocode.BatchChunkSize)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	return nil
}

func getEnv(key, fallback string) string {
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

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}
	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
