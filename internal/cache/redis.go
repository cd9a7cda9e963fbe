package cache

import (
	"context"
	"errors"
	"time"

	"movierec/internal/config"
	"movierec/internal/logging"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// InitRedis connects when REDIS_ADDR is set. Without it every helper below is
// a no-op and results are always computed.
func InitRedis(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		logging.Info().Msg("[redis] REDIS_ADDR not set, result cache disabled")
		return
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		logging.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("[redis] connection failed")
	}

	client = c
	logging.Info().Str("addr", cfg.RedisAddr).Msg("[redis] connected")
}

// Enabled reports whether a client is configured.
func Enabled() bool { return client != nil }

// Close releases the client, if any, and disables the helpers.
func Close() error {
	if client == nil {
		return nil
	}
	c := client
	client = nil
	return c.Close()
}

// ====== JSON helpers ======

// GetJSON reads key and decodes it into dest. The bool is false on a miss.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value as JSON under key for ttl (0 means no expiry).
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}
