// Command server runs the leadvault HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/leadvaulthq/leadvault/internal/api"
	"github.com/leadvaulthq/leadvault/internal/config"
	"github.com/leadvaulthq/leadvault/internal/db"
	"github.com/leadvaulthq/leadvault/internal/db/migrations"
	"github.com/leadvaulthq/leadvault/internal/dbpool"
	"github.com/leadvaulthq/leadvault/internal/service"
	"github.com/leadvaulthq/leadvault/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := run(log); err != nil {
		log.WithError(err).Fatal("server exited with error")
	}
}

func run(log *logrus.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		return err
	}

	base := store.Base{Pool: pool, Log: log}
	buyerStore := store.NewBuyerStore(base)
	historyStore := store.NewHistoryStore(base)
	auditStore := store.NewAuditStore(base)

	auditSvc := service.NewAuditService(auditStore, log)
	auditWorker := service.NewAuditWorker(auditSvc, log, cfg.AuditQueueSize)

	buyerSvc := service.NewBuyerService(buyerStore, auditWorker, log)
	historySvc := service.NewHistoryService(historyStore, log)
	importer := service.NewImporter(buyerSvc, auditWorker, log)
	exporter := service.NewExporter(buyerStore, auditWorker, log, cfg.ExportMaxRows)
	statsSvc := service.NewStatsService(buyerStore)

	handler := api.NewRouter(ctx, &api.RouterDeps{
		Log:         log,
		Pool:        pool,
		Buyers:      buyerSvc,
		History:     historySvc,
		Importer:    importer,
		Exporter:    exporter,
		Stats:       statsSvc,
		Audit:       auditSvc,
		ActorLookup: &base,
		CORSOrigins: cfg.CORSOrigins,
		Version:     config.Version,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		auditWorker.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"version": config.Version,
		}).Info("leadvault server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
