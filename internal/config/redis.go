package config

import (
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Redis struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis reads the optional redis configuration; ok is false when
// REDIS_ADDR is unset and snapshot persistence should stay off.
func NewRedis() (*Redis, bool) {
	addr, ok := os.LookupEnv("REDIS_ADDR")
	if !ok {
		return nil, false
	}

	cfg := &Redis{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		TTL:      24 * time.Hour,
	}
	if db, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		cfg.DB = db
	}
	if ttl, err := time.ParseDuration(os.Getenv("REDIS_SESSION_TTL")); err == nil {
		cfg.TTL = ttl
	}
	return cfg, true
}

func (c *Redis) Client() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Password: c.Password,
		DB:       c.DB,
	})
}
