package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"movierec/internal/logging"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	CatalogPath   string `validate:"required_if=CatalogSource csv"`
	CatalogSource string `validate:"oneof=csv mongo"`

	HTTPPort string `validate:"required,numeric"`

	MatchCutoff     float64 `validate:"gte=0,lte=1"`
	MatchCandidates int     `validate:"gte=1"`
	TopN            int     `validate:"gte=1,lte=50"`

	// Empty MongoURI / RedisAddr disable history and caching.
	MongoURI  string `validate:"required_if=CatalogSource mongo"`
	MongoDB   string
	RedisAddr string
	RedisPass string
	CacheTTL  time.Duration `validate:"gte=0"`

	// empty disables the admin routes and POST /auth/login
	JWTSecret string        `validate:"omitempty,min=16"`
	AdminUser string        `validate:"required"`
	TokenTTL  time.Duration `validate:"gt=0"`

	// bcrypt hash; empty disables POST /auth/login
	AdminPasswordHash string

	LogLevel  string
	LogFormat string `validate:"oneof=json console"`

	RateLimitRPM int `validate:"gte=0"`
	CORSOrigins  []string

	MLNodeAddr string
	NodeID     string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		CatalogPath:     getEnv("CATALOG_PATH", "movies.csv"),
		CatalogSource:   getEnv("CATALOG_SOURCE", "csv"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MatchCutoff:     getEnvFloat("MATCH_CUTOFF", 0.6),
		MatchCandidates: getEnvInt("MATCH_CANDIDATES", 3),
		TopN:            getEnvInt("TOP_N", 10),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnv("MONGO_DB", "movierec"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		CacheTTL:        getEnvDuration("CACHE_TTL", time.Hour),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AdminUser:       getEnv("ADMIN_USER", "admin"),
		TokenTTL:        getEnvDuration("TOKEN_TTL", 24*time.Hour),

		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "console"),
		RateLimitRPM: getEnvInt("RATE_LIMIT_RPM", 120),
		CORSOrigins:  getEnvList("CORS_ORIGINS", []string{"*"}),
		MLNodeAddr:   getEnv("ML_NODE_ADDR", ":9001"),
		NodeID:       getEnv("NODE_ID", "?"),
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports the first invalid field with the env key that feeds it.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: invalid %s (rule %q, value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		logging.Debug().Str("key", key).Str("default", def).Msg("[config] not set, using default")
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logging.Warn().Str("key", key).Str("value", v).Msg("[config] not an integer, using default")
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logging.Warn().Str("key", key).Str("value", v).Msg("[config] not a number, using default")
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logging.Warn().Str("key", key).Str("value", v).Msg("[config] not a duration, using default")
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
