package main

import (
	"context"
	"database/sql"
	"flag"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"stayledger/internal/adapters/observability"
	redisad "stayledger/internal/adapters/redis"
	"stayledger/internal/app"
	"stayledger/internal/shared"
	mysqlrepo "stayledger/internal/storage/mysql"
)

// Pre-warms the revenue summary cache for the configured (tenant, property)
// pairs so peak traffic starts from hits instead of a stampede of misses.
func main() {
	refresh := flag.Bool("refresh", false, "drop existing cache entries before warming")
	flag.Parse()

	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.Workers).
		Int("targets", len(cfg.WarmTargets)).
		Bool("refresh", *refresh).
		Msg("warmer starting")

	if len(cfg.WarmTargets) == 0 {
		log.Warn().Msg("WARM_TARGETS is empty, nothing to do")
		return
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, target := range cfg.WarmTargets {
		target := target

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(t shared.WarmTarget) {
			defer wg.Done()
			defer sem.Release(1)

			if *refresh {
				q.InvalidateRevenue(ctx, t.PropertyID, t.TenantID)
			}
			rs, err := q.GetRevenueSummary(ctx, t.PropertyID, t.TenantID)
			if err != nil {
				log.Warn().
					Str("tenant_id", t.TenantID).
					Str("property_id", t.PropertyID).
					Err(err).
					Msg("warm failed")
				return
			}
			log.Info().
				Str("tenant_id", t.TenantID).
				Str("property_id", t.PropertyID).
				Str("total", rs.Total.String()).
				Int("count", rs.Count).
				Msg("warm ok")
		}(target)
	}

	wg.Wait()
	log.Info().Msg("warming completed")
}
