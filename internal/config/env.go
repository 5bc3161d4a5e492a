package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Lookup resolves an environment variable.  os.LookupEnv satisfies it;
// tests pass a map-backed function instead.
type Lookup func(key string) (string, bool)

// MapLookup adapts a map to Lookup.
func MapLookup(m map[string]string) Lookup {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func envStr(l Lookup, k, d string) string {
	if v, ok := l(k); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return d
}

func envBool(l Lookup, k string, d bool) bool {
	v, _ := l(k)
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(l Lookup, k string, d int) int {
	v, ok := l(k)
	if !ok || v == "" {
		return d
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return n
	}
	return d
}

func envDur(l Lookup, k string, d time.Duration) time.Duration {
	v, ok := l(k)
	if !ok || v == "" {
		return d
	}
	if dur, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
		return dur
	}
	return d
}

func osLookup() Lookup { return os.LookupEnv }
