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

	"github.com/rafsal3/VideoGen-v1/config"
	"github.com/rafsal3/VideoGen-v1/internal/bootstrap"
	"github.com/rafsal3/VideoGen-v1/internal/db"
	cronjob "github.com/rafsal3/VideoGen-v1/internal/render/cron"
	"github.com/rafsal3/VideoGen-v1/internal/storage/postgres"
	"github.com/rafsal3/VideoGen-v1/internal/templates/seed"
)

const serviceName = "videogen-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log := setupLogger(cfg.App.LogLevel)

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	sqldb, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to open sql connection")
	}
	defer sqldb.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}
	defer rdb.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.WithError(err).Fatal("database migration failed")
	}

	services := bootstrap.BuildServices(cfg, pool, sqldb, rdb, log)

	if err := seed.Run(ctx, services.TemplateCatalog, log); err != nil {
		log.WithError(err).Fatal("template seeding failed")
	}

	poller := cronjob.NewPoller(services.Renders, log, cfg.Render.PollCronSpec)
	if err := poller.Start(); err != nil {
		log.WithError(err).Fatal("failed to start render poller")
	}
	defer poller.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		DB:             pool,
		Redis:          rdb,
		Log:            log,
		Services:       services,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port": cfg.Server.Port,
			"env":  cfg.App.Environment,
		}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}
