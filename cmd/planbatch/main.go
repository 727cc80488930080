// Command planbatch plans every TripRequest found in the given JSON files and
// stores the results, running at most PLAN_WORKERS requests at a time.
package main

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"trip_planner/internal/adapters/observability"
	"trip_planner/internal/adapters/planner"
	redisad "trip_planner/internal/adapters/redis"
	"trip_planner/internal/app"
	"trip_planner/internal/domain"
	"trip_planner/internal/shared"
	mysqlrepo "trip_planner/internal/storage/mysql"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred closes happen first.
func run() int {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if len(os.Args) < 2 {
		log.Fatal().Msg("usage: planbatch <requests.json>...")
	}

	var reqs []domain.TripRequest
	for _, path := range os.Args[1:] {
		rs, err := loadRequests(path)
		if err != nil {
			log.Fatal().Err(err).Msg("load requests failed")
		}
		reqs = append(reqs, rs...)
	}

	log.Info().
		Str("base", cfg.PlannerBase).
		Int("workers", cfg.Workers).
		Int("requests", len(reqs)).
		Msg("planbatch starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	defer db.Close()
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()

	client, err := planner.New(cfg.PlannerBase, planner.WithRateLimit(cfg.PlannerRPS))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize planner client")
	}
	svc := app.NewPlanningService(client, repo, cache, cfg.CacheTTL)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for i, req := range reqs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(n int, req domain.TripRequest) {
			defer wg.Done()
			defer sem.Release(1)

			if v := domain.CheckRequest(req); len(v) > 0 {
				// sent anyway; the planning service has the final say
				log.Warn().Int("n", n).Strs("issues", v).Msg("request looks inconsistent")
			}
			sp, err := svc.CreatePlan(ctx, req)
			if err != nil {
				failed.Add(1)
				log.Warn().Int("n", n).Str("city", req.City).Err(err).Msg("plan failed")
				return
			}
			log.Info().Int("n", n).Str("id", sp.ID).Str("city", req.City).Msg("plan ok")
		}(i, req)
	}

	wg.Wait()
	log.Info().Int32("failed", failed.Load()).Msg("planbatch completed")
	if failed.Load() > 0 {
		return 1
	}
	return 0
}
