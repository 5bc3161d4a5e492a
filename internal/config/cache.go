package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching will be disabled.
// Methods lists the HTTP methods to cache (e.g. GET, HEAD).  TTL defines the
// lifetime of cache entries.  KeyStrategy determines which parts of the request
// contribute to the cache key.  Prefix and MaxBodyBytes allow control over
// namespacing and the maximum size of responses to cache.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads the process environment.
func LoadCacheConfig() CacheConfig { return LoadCacheConfigFrom(osLookup()) }

// LoadCacheConfigFrom builds a CacheConfig; catalog listings change rarely
// so the default TTL is 30s.
func LoadCacheConfigFrom(l Lookup) CacheConfig {
	cfg := CacheConfig{
		Enabled:      envBool(l, "CACHE_ENABLED", true),
		Methods:      parseMethods(envStr(l, "CACHE_METHODS", "GET")),
		TTL:          envDur(l, "CACHE_TTL", 30*time.Second),
		KeyStrategy:  envStr(l, "CACHE_KEY_STRATEGY", "route_query"),
		Prefix:       envStr(l, "CACHE_PREFIX", "tr:cache"),
		MaxBodyBytes: envInt(l, "CACHE_MAX_BODY_BYTES", 1<<20),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Second
	}
	return cfg
}

func parseMethods(s string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}
