package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	TenantRPS    int
	Workers      int
	CacheTTL     time.Duration
	DegradedMode bool
	WarmTargets  []WarmTarget
}

// WarmTarget is one (tenant, property) pair the warmer primes.
type WarmTarget struct {
	TenantID   string
	PropertyID string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/stayledger?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisDB:      atoi("REDIS_DB", 0),
		RedisPass:    env("REDIS_PASSWORD", ""),
		TenantRPS:    atoi("TENANT_RPS", 20),
		Workers:      atoi("WARM_WORKERS", 8),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		DegradedMode: env("DEGRADED_MODE", "") == "true",
		WarmTargets:  parseWarmTargets(env("WARM_TARGETS", "")),
	}
	if c.DegradedMode {
		log.Warn().Msg("DEGRADED_MODE enabled: placeholder figures will be served on aggregation failure")
	}
	return c
}

// parseWarmTargets reads a "tenant:property" comma-separated list,
// e.g. "t-9:prop-002,t-9:prop-003,t-12:prop-001".
func parseWarmTargets(s string) []WarmTarget {
	if s == "" {
		return nil
	}
	var out []WarmTarget
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		tenant, property, ok := strings.Cut(pair, ":")
		if !ok || tenant == "" || property == "" {
			log.Warn().Str("pair", pair).Msg("skipping malformed WARM_TARGETS entry")
			continue
		}
		out = append(out, WarmTarget{TenantID: tenant, PropertyID: property})
	}
	return out
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
