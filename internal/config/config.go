package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile       string        // path to the seed bookmarks.yaml (optional, empty = no seeding)
	ReloadInterval time.Duration // interval to reload the seed file (default: 24h)
	GCInterval     time.Duration // interval to purge disabled bookmarks (default: 24h)
	GCThreshold    time.Duration // how long a bookmark stays disabled before purge (default: 720h)

	// Metadata enrichment
	MetadataTimeout  time.Duration // per-page fetch timeout (default: 3s)
	MetadataCacheTTL time.Duration // how long fetched metadata is cached in redis (default: 24h)
	EnrichQueueSize  int           // buffered enrichment jobs (default: 64)

	// Ranking
	RankThreshold        float64 // minimum score kept by search (default: 0.45)
	StrongMatchThreshold float64 // minimum score for a fuzzy duplicate (default: 0.8)
	DefaultLimit         int     // page size when the client gives none (default: 50)
	MaxLimit             int     // upper bound for ?limit= (default: 100)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	// Write API rate limiting (token bucket per client IP)
	RateLimitBurst     int
	RateLimitPerMinute int

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SHELF_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SHELF_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SHELF_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SHELF_PRETTY_LOG", true),

		// Seed file
		SeedFile:       getenv("SHELF_SEED_FILE", ""),
		ReloadInterval: mustDuration("SHELF_RELOAD_INTERVAL", 24*time.Hour),
		GCInterval:     mustDuration("SHELF_GC_INTERVAL", 24*time.Hour),
		GCThreshold:    mustDuration("SHELF_GC_THRESHOLD", 30*24*time.Hour),

		// Metadata
		MetadataTimeout:  mustDuration("SHELF_METADATA_TIMEOUT", 3*time.Second),
		MetadataCacheTTL: mustDuration("SHELF_METADATA_CACHE_TTL", 24*time.Hour),
		EnrichQueueSize:  getenvInt("SHELF_ENRICH_QUEUE_SIZE", 64),

		// Ranking
		RankThreshold:        mustFloat("SHELF_RANK_THRESHOLD", 0.45),
		StrongMatchThreshold: mustFloat("SHELF_STRONG_MATCH_THRESHOLD", 0.8),
		DefaultLimit:         getenvInt("SHELF_DEFAULT_LIMIT", 50),
		MaxLimit:             getenvInt("SHELF_MAX_LIMIT", 100),

		// Redis settings
		RedisAddr:             requireEnv("SHELF_REDIS_ADDR"),
		RedisUser:             getenv("SHELF_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SHELF_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("SHELF_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("SHELF_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		RateLimitBurst:     getenvInt("SHELF_RATE_LIMIT_BURST", 20),
		RateLimitPerMinute: getenvInt("SHELF_RATE_LIMIT_PER_MINUTE", 60),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SHELF_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("SHELF_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SHELF_TRUST_PROXY", true),
	}

	if err := cfg.validate(); err != nil {
		panic("❌ FATAL: " + err.Error())
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func (c *Config) validate() error {
	if c.RedisPasswordRequired && c.RedisPassword == "" {
		return fmt.Errorf("SHELF_REDIS_PASSWORD is required when SHELF_REDIS_PASSWORD_REQUIRED=true")
	}
	if c.RankThreshold < 0 || c.RankThreshold > 1 {
		return fmt.Errorf("SHELF_RANK_THRESHOLD must be within [0,1], got %v", c.RankThreshold)
	}
	if c.StrongMatchThreshold < 0 || c.StrongMatchThreshold > 1 {
		return fmt.Errorf("SHELF_STRONG_MATCH_THRESHOLD must be within [0,1], got %v", c.StrongMatchThreshold)
	}
	if c.DefaultLimit < 1 || c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("SHELF_DEFAULT_LIMIT must be >= 1 and <= SHELF_MAX_LIMIT (got %d / %d)", c.DefaultLimit, c.MaxLimit)
	}
	if c.EnrichQueueSize < 1 {
		return fmt.Errorf("SHELF_ENRICH_QUEUE_SIZE must be >= 1, got %d", c.EnrichQueueSize)
	}
	return nil
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
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := requireEnv(key)
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
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
		if b, err := strconv.ParseBool(v); err == nil {
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

func mustFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		// Remove surrounding quotes if present
		trimmed := strings.Trim(strings.TrimSpace(part), `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
