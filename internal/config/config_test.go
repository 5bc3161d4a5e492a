package config

import (
	"strings"
	"testing"
	"time"
)

func baseEnv() map[string]string {
	return map[string]string{
		"APP_ENV":                "test",
		"APP_PORT":               "8080",
		"DB_USER":                "app",
		"DB_HOST":                "localhost",
		"DB_PORT":                "3306",
		"DB_NAME":                "reservations",
		"JWT_SECRET":             "secret",
		"ACCESS_TOKEN_TTL_MIN":   "15",
		"REFRESH_TOKEN_TTL_DAYS": "7",
		"BCRYPT_COST":            "4",
	}
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(MapLookup(baseEnv()))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.DBDriver != "mysql" {
		t.Errorf("DBDriver = %q, want mysql", cfg.DBDriver)
	}
	if cfg.EventBroker != "none" {
		t.Errorf("EventBroker = %q, want none", cfg.EventBroker)
	}
	if cfg.EventTopic != "reservation.events" {
		t.Errorf("EventTopic = %q", cfg.EventTopic)
	}
	if cfg.AccessTTLMin != 15 || cfg.RefreshTTLDays != 7 || cfg.BcryptCost != 4 {
		t.Errorf("unexpected numeric config: %+v", cfg)
	}
}

func TestLoadFromReportsAllMissing(t *testing.T) {
	env := baseEnv()
	delete(env, "JWT_SECRET")
	delete(env, "DB_HOST")
	env["BCRYPT_COST"] = "ten"

	_, err := LoadFrom(MapLookup(env))
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"JWT_SECRET", "DB_HOST", "BCRYPT_COST"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadFromSQLite(t *testing.T) {
	env := baseEnv()
	for _, k := range []string{"DB_USER", "DB_HOST", "DB_PORT", "DB_NAME"} {
		delete(env, k)
	}
	env["DB_DRIVER"] = "sqlite3"
	env["DB_PATH"] = "/tmp/reservations.db"

	cfg, err := LoadFrom(MapLookup(env))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.DBPath != "/tmp/reservations.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadFromKafkaNeedsBrokers(t *testing.T) {
	env := baseEnv()
	env["EVENT_BROKER"] = "kafka"
	if _, err := LoadFrom(MapLookup(env)); err == nil {
		t.Fatalf("expected error without KAFKA_BROKERS")
	}
	env["KAFKA_BROKERS"] = "k1:9092, k2:9092,"
	cfg, err := LoadFrom(MapLookup(env))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	cfg := LoadRateLimitConfigFrom(MapLookup(map[string]string{
		"RATE_LIMIT_CAPACITY":        "0",
		"RATE_LIMIT_REFILL_INTERVAL": "2s",
		"RATE_LIMIT_TTL":             "1s",
	}))
	if cfg.Capacity != 1 {
		t.Errorf("Capacity = %d, want 1", cfg.Capacity)
	}
	if cfg.TTL != 10*time.Second {
		t.Errorf("TTL = %s, want 10s", cfg.TTL)
	}
}

func TestLoadCacheConfigMethods(t *testing.T) {
	cfg := LoadCacheConfigFrom(MapLookup(map[string]string{"CACHE_METHODS": "get, head"}))
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] || cfg.Methods["POST"] {
		t.Errorf("Methods = %v", cfg.Methods)
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("TTL = %s", cfg.TTL)
	}
}

func TestRedisOptionsHostPort(t *testing.T) {
	opts, err := RedisOptions(MapLookup(map[string]string{
		"REDIS_HOST": "cache", "REDIS_PORT": "6380", "REDIS_DB": "2",
	}))
	if err != nil {
		t.Fatalf("RedisOptions: %v", err)
	}
	if opts.Addr != "cache:6380" || opts.DB != 2 {
		t.Errorf("unexpected options: addr=%s db=%d", opts.Addr, opts.DB)
	}
}
