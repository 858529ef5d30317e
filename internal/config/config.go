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
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	RequestTimeout     time.Duration

	DatabaseURL    string
	DBMaxConns     int32
	DBMinConns     int32
	DBConnLifetime time.Duration
	DBConnIdleTime time.Duration

	JWTSecret    string
	JWTAccessTTL time.Duration
	JWTRefreshTTL time.Duration

	CookieSecure bool

	CORSOrigins      []string
	RateLimitRPM     int
	AuthRateLimitRPM int

	S3Endpoint   string
	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3PresignTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		ServerReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:     getDuration("REQUEST_TIMEOUT", 30*time.Second),

		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:     int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:     int32(getInt("DB_MIN_CONNS", 2)),
		DBConnLifetime: getDuration("DB_CONN_LIFETIME", 30*time.Minute),
		DBConnIdleTime: getDuration("DB_CONN_IDLE_TIME", 5*time.Minute),

		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTAccessTTL:  getDuration("JWT_ACCESS_TTL", 15*time.Minute),
		JWTRefreshTTL: getDuration("JWT_REFRESH_TTL", 240*time.Hour),

		CookieSecure: getBool("COOKIE_SECURE", true),

		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "*")),
		RateLimitRPM:     getInt("RATE_LIMIT_RPM", 100),
		AuthRateLimitRPM: getInt("AUTH_RATE_LIMIT_RPM", 10),

		S3Endpoint:   strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
		S3Region:     getEnv("S3_REGION", "us-east-1"),
		S3Bucket:     getEnv("S3_BUCKET", "vidstream-media"),
		S3AccessKey:  strings.TrimSpace(os.Getenv("S3_ACCESS_KEY")),
		S3SecretKey:  strings.TrimSpace(os.Getenv("S3_SECRET_KEY")),
		S3PresignTTL: getDuration("S3_PRESIGN_TTL", 15*time.Minute),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.JWTAccessTTL <= 0 || c.JWTRefreshTTL <= 0 {
		return fmt.Errorf("JWT TTLs must be positive")
	}

	if c.JWTAccessTTL >= c.JWTRefreshTTL {
		return fmt.Errorf("JWT_ACCESS_TTL must be shorter than JWT_REFRESH_TTL")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET cannot be empty")
	}

	return nil
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}
