package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "trip_planner/internal/adapters/http_server"
	"trip_planner/internal/adapters/observability"
	"trip_planner/internal/adapters/planner"
	redisad "trip_planner/internal/adapters/redis"
	"trip_planner/internal/app"
	"trip_planner/internal/shared"
	mysqlrepo "trip_planner/internal/storage/mysql"
)

// shutdownGrace is how long in-flight requests get after SIGINT/SIGTERM.
// Plans still being generated past it are abandoned.
const shutdownGrace = 30 * time.Second

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	defer db.Close()
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable; plans will be read from the database only")
	}
	cancel()
	defer cache.Close()

	client, err := planner.New(cfg.PlannerBase, planner.WithRateLimit(cfg.PlannerRPS))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize planner client")
	}
	p := app.NewPlanningService(client, repo, cache, cfg.CacheTTL)
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{P: p, Q: q})

	log.Info().Str("addr", cfg.HTTPAddr).Str("planner", cfg.PlannerBase).Msg("API listening")
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop, stopCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopCancel()

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
		}
		return
	case <-stop.Done():
	}

	log.Info().Msg("shutdown signal received; draining requests")
	ctx, cancel = context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	log.Info().Msg("server stopped cleanly")
}
