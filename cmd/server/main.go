package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"autocenter/internal/config"
	"autocenter/internal/infra"
	"autocenter/internal/repository"
	"autocenter/internal/router"
	"autocenter/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty console in development, JSON in production
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker handlers are wired here (composition root) so the pool has
	// access to every infrastructure dependency.
	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	locker := infra.NewRedisLocker(rdb)

	ordemWorker := worker.NewOrdemWorker(repository.NewOrdemRepository(db), dispatcher, cfg.PDFStoragePath, cfg.ShopName)
	emailWorker := worker.NewEmailWorker(mailer)

	pool := worker.NewPool(rdb)
	pool.Register(worker.QueueOrdemConcluida, ordemWorker.Process)
	pool.Register(worker.QueueEmail, emailWorker.Process)
	pool.Start(ctx, cfg.WorkerPoolSize)

	worker.NewScheduler(worker.SchedulerConfig{
		Produtos:   repository.NewProdutoRepository(db),
		Alertas:    repository.NewManutencaoRepository(db),
		Clientes:   repository.NewClienteRepository(db),
		Emails:     dispatcher,
		Locker:     locker,
		AlertEmail: cfg.AlertEmail,
		ShopName:   cfg.ShopName,
		Location:   cfg.Location(),
	}).Start(ctx)

	r := router.New(cfg, db, rdb, mailer)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("AutoCenter backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rdb.Close()
	log.Info().Msg("server exited")
}
