package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 10s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	JWTSecret string // HMAC secret shared with the identity provider

	CatalogFile     string        // path to products.yaml seed file (optional, empty = seeding disabled)
	CatalogInterval time.Duration // interval between catalog reloads (default: 24h)

	// Mongo
	MongoURI            string        // ex: "mongodb://localhost:27017"
	MongoDatabase       string        // database name
	MongoConnectTimeout time.Duration // total time to retry connecting
	MongoRetryInterval  time.Duration // initial wait between retries, grows exponentially
	MongoMaxWait        time.Duration // max wait between retries
	MongoPingTimeout    time.Duration // timeout for each ping attempt
	MongoWarnThreshold  int           // warn after this many attempts

	// Redis (listing cache; optional, empty addr = cache disabled)
	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int
	RedisDT       time.Duration // dial timeout
	RedisRT       time.Duration // read timeout
	RedisWT       time.Duration // write timeout
	RedisPoolSize int
	CacheTTL      time.Duration // TTL for cached product listings

	CorsOrigins  []string // allowed CORS origins
	AllowedCIDRS []string // IPs allowed on health/ops endpoints (empty = no filtering)
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	WriteBurst  int // rate limit burst for write endpoints, per IP
	WritePerMin int // rate limit refill per minute for write endpoints, per IP
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ListenPort:      getenv("STOREFRONT_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STOREFRONT_SHUTDOWN_TIMEOUT", 10*time.Second),

		LogLevel:  getenv("STOREFRONT_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STOREFRONT_PRETTY_LOG", false),

		JWTSecret: requireEnv("STOREFRONT_JWT_SECRET"),

		CatalogFile:     getenv("STOREFRONT_CATALOG_FILE", ""),
		CatalogInterval: mustDuration("STOREFRONT_CATALOG_INTERVAL", 24*time.Hour),

		MongoURI:            requireEnv("STOREFRONT_MONGO_URI"),
		MongoDatabase:       getenv("STOREFRONT_MONGO_DB", "storefront"),
		MongoConnectTimeout: mustDuration("MONGO_CONNECT_TIMEOUT", 30*time.Second),
		MongoRetryInterval:  mustDuration("MONGO_RETRY_INTERVAL", 2*time.Second),
		MongoMaxWait:        mustDuration("MONGO_MAX_WAIT", 10*time.Second),
		MongoPingTimeout:    mustDuration("MONGO_PING_TIMEOUT", 5*time.Second),
		MongoWarnThreshold:  getenvInt("MONGO_WARN_THRESHOLD", 3),

		RedisAddr:     getenv("STOREFRONT_REDIS_ADDR", ""),
		RedisUser:     getenv("STOREFRONT_REDIS_USERNAME", "default"),
		RedisPassword: getenv("STOREFRONT_REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("STOREFRONT_REDIS_DB", 0),
		RedisDT:       mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:       mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:       mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize: getenvInt("REDIS_POOL_SIZE", 10),
		CacheTTL:      mustDuration("STOREFRONT_CACHE_TTL", 5*time.Minute),

		CorsOrigins:  splitAndTrim(getenv("STOREFRONT_CORS_ORIGINS", "*")),
		AllowedCIDRS: splitAndTrim(getenv("STOREFRONT_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("STOREFRONT_TRUST_PROXY", false),

		WriteBurst:  getenvInt("STOREFRONT_WRITE_BURST", 10),
		WritePerMin: getenvInt("STOREFRONT_WRITE_PER_MIN", 30),
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("FATAL: required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
