package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	AuthDisabled  bool
}

// Mongo captures the document store connection settings.
type Mongo struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// RedisConfig captures the optional Redis connection used for rate limiting.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimit configures the per-caller fixed-window limiter.
type RateLimit struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// Config is the full application configuration.
type Config struct {
	Server    Server
	Mongo     Mongo
	Redis     RedisConfig
	RateLimit RateLimit
}

// FromEnv builds the configuration from environment variables so main stays
// lean. Every value has a development default; production deployments override
// them.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:          getEnv("WORDWATCH_ADDR", ":8080"),
			JWTSigningKey: getEnv("WORDWATCH_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			AuthDisabled:  os.Getenv("WORDWATCH_AUTH_DISABLED") == "true",
		},
		Mongo: Mongo{
			URI:            getEnv("WORDWATCH_MONGO_URI", "mongodb://localhost:27017"),
			Database:       getEnv("WORDWATCH_MONGO_DB", "wordwatch"),
			ConnectTimeout: getDuration("WORDWATCH_MONGO_CONNECT_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("WORDWATCH_REDIS_URL"),
			PoolSize:     getInt("WORDWATCH_REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("WORDWATCH_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("WORDWATCH_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("WORDWATCH_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("WORDWATCH_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		RateLimit: RateLimit{
			Enabled: os.Getenv("WORDWATCH_RATELIMIT_DISABLED") != "true",
			Limit:   getInt("WORDWATCH_RATELIMIT_LIMIT", 100),
			Window:  getDuration("WORDWATCH_RATELIMIT_WINDOW", time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
