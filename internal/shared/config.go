package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultCacheTTL = time.Hour

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	PlannerBase string // deployment root of the planning service plus /api
	PlannerRPS  int    // 0 disables client-side throttling
	Workers     int
	CacheTTL    time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer env value")
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/trips?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisDB:     atoi("REDIS_DB", 0),
		RedisPass:   env("REDIS_PASSWORD", ""),
		PlannerBase: env("PLANNER_BASE_URL", "http://localhost:8000/api"),
		PlannerRPS:  atoi("PLANNER_RPS", 0),
		Workers:     atoi("PLAN_WORKERS", 2),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", int(defaultCacheTTL/time.Second))) * time.Second,
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	// go-redis treats a non-positive expiry as "keep forever"
	if c.CacheTTL <= 0 {
		log.Warn().Dur("ttl", c.CacheTTL).Msg("CACHE_TTL_SECONDS must be positive; using default")
		c.CacheTTL = defaultCacheTTL
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
