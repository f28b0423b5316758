package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr        string
	Environment string
	Session     SessionConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
}

// RateLimitConfig bounds form submissions per session.
type RateLimitConfig struct {
	Disabled bool
	Limit    int
	Window   time.Duration
}

// SessionConfig controls the browser session cookie.
type SessionConfig struct {
	SigningKey   string
	TTL          time.Duration
	CookieSecure bool
}

// RedisConfig configures the optional Redis registry store. An empty URL
// keeps registries in process memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultSigningKey = "dev-session-key-change-in-production"
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SELFSERVICE_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = EnvDevelopment
	}

	signingKey := os.Getenv("SESSION_SIGNING_KEY")
	if signingKey == "" {
		// Development default; production deployments must override it.
		signingKey = defaultSigningKey
	}

	return Server{
		Addr:        addr,
		Environment: env,
		Session: SessionConfig{
			SigningKey:   signingKey,
			TTL:          durationEnv("SESSION_TTL", 24*time.Hour),
			CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: intEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("DISABLE_RATE_LIMITING") == "true",
			Limit:    intEnv("SUBMISSION_RATE_LIMIT", 60),
			Window:   durationEnv("SUBMISSION_RATE_WINDOW", time.Minute),
		},
	}
}

// IsProduction reports whether the server runs with production settings.
func (s Server) IsProduction() bool {
	return s.Environment == EnvProduction
}

// UsesDefaultSigningKey reports whether the development signing key is active.
func (s Server) UsesDefaultSigningKey() bool {
	return s.Session.SigningKey == defaultSigningKey
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func intEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
