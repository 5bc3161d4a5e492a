package config

// Redis backs the response cache and the rate limiter.  When it cannot be
// reached at startup NewRedisClient returns nil and both middlewares turn
// into pass-throughs.

import (
	"context"
	"crypto/tls"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient instantiates a Redis client using environment variables.
// Supported variables are:
//
//	REDIS_URL – redis:// URL (takes precedence over everything else)
//	REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//	REDIS_ADDR – host:port shorthand
//	REDIS_PASSWORD – optional password
//	REDIS_DB – database number (default 0)
//	REDIS_TLS – enable TLS when "true" or "1"
//
// The returned client is nil if a connection cannot be established.
func NewRedisClient() *redis.Client {
	opts, err := RedisOptions(osLookup())
	if err != nil {
		return nil
	}
	client := redis.NewClient(opts)
	// Ping the server with a short timeout.  Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

// RedisOptions resolves connection options without dialing.
func RedisOptions(l Lookup) (*redis.Options, error) {
	if u := envStr(l, "REDIS_URL", ""); u != "" {
		return redis.ParseURL(u)
	}
	addr := envStr(l, "REDIS_ADDR", "")
	host, port := envStr(l, "REDIS_HOST", ""), envStr(l, "REDIS_PORT", "")
	if host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	dbNum := 0
	if n, err := strconv.Atoi(envStr(l, "REDIS_DB", "0")); err == nil {
		dbNum = n
	}
	var tlsConf *tls.Config
	if v := envStr(l, "REDIS_TLS", ""); strings.EqualFold(v, "true") || v == "1" {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &redis.Options{
		Addr:      addr,
		Password:  envStr(l, "REDIS_PASSWORD", ""),
		DB:        dbNum,
		TLSConfig: tlsConf,
	}, nil
}
