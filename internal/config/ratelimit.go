package config

import "time"

// RateLimitConfig drives the Redis token bucket middleware.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads the process environment.
func LoadRateLimitConfig() RateLimitConfig { return LoadRateLimitConfigFrom(osLookup()) }

func LoadRateLimitConfigFrom(l Lookup) RateLimitConfig {
	def := RateLimitConfig{
		Enabled:        envBool(l, "RATE_LIMIT_ENABLED", true),
		Capacity:       envInt(l, "RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   envInt(l, "RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur(l, "RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur(l, "RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    envStr(l, "RATE_LIMIT_KEY_STRATEGY", "ip_user_route"),
		Prefix:         envStr(l, "RATE_LIMIT_PREFIX", "tr:rl"),
		Debug:          envBool(l, "RATE_LIMIT_DEBUG", false),
	}
	if b := envInt(l, "RATE_LIMIT_BURST", -1); b > 0 {
		def.Capacity = b
	}
	if every := envDur(l, "RATE_LIMIT_REFILL_EVERY", 0); every > 0 {
		def.RefillTokens = 1
		def.RefillInterval = every
	}
	if def.Capacity < 1 {
		def.Capacity = 1
	}
	if def.RefillTokens < 1 {
		def.RefillTokens = 1
	}
	if def.RefillInterval <= 0 {
		def.RefillInterval = time.Second
	}
	// keep buckets alive for at least a few refill periods
	if minTTL := 5 * def.RefillInterval; def.TTL < minTTL {
		def.TTL = minTTL
	}
	return def
}
