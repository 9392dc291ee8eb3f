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

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yashnextsavy/HydrationTracker/internal/catalog"
	"github.com/yashnextsavy/HydrationTracker/internal/config"
	"github.com/yashnextsavy/HydrationTracker/internal/database"
	"github.com/yashnextsavy/HydrationTracker/internal/handlers"
	"github.com/yashnextsavy/HydrationTracker/internal/logging"
	"github.com/yashnextsavy/HydrationTracker/internal/middleware"
	"github.com/yashnextsavy/HydrationTracker/internal/monitoring"
	"github.com/yashnextsavy/HydrationTracker/internal/notify"
	"github.com/yashnextsavy/HydrationTracker/internal/reminder"
	"github.com/yashnextsavy/HydrationTracker/internal/store"
	"github.com/yashnextsavy/HydrationTracker/internal/utils"
)

const limiterCleanupInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	if err := utils.EnsureJWTReady(); err != nil {
		return err
	}

	st, dbStats, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.WithError(err).Warn("Closing store failed")
		}
	}()

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if inserted, err := catalog.EnsureTips(startupCtx, st); err != nil {
		return err
	} else if inserted > 0 {
		logger.WithField("count", inserted).Info("Loaded default hydration tips")
	}

	hub := notify.NewHub(logger, cfg.AllowedOrigins()...)
	notifiers := notify.Multi{hub}
	if cfg.Redis.Enabled() {
		publisher := notify.NewRedisPublisher(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer publisher.Close()
		if err := publisher.Ping(startupCtx); err != nil {
			logger.WithError(err).Warn("Redis is unreachable; reminders will still be published when it recovers")
		}
		notifiers = append(notifiers, publisher)
	}
	notifiers = append(notifiers, notify.LogNotifier{Logger: logger})

	loc := cfg.Location()
	scheduler := reminder.NewScheduler(st, notifiers, logger, loc)
	if err := scheduler.Start(startupCtx, cfg.ReminderSweepSpec); err != nil {
		return err
	}
	defer scheduler.Stop()

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	limiter.StartCleanup(limiterCleanupInterval, stopCleanup)

	h := handlers.New(handlers.Options{
		Store:            st,
		Reminders:        scheduler,
		Hub:              hub,
		Monitor:          monitoring.NewService(time.Now(), st, dbStats),
		Logger:           logger,
		Location:         loc,
		CookieSecure:     cfg.CookieSecure,
		MonitoringAPIKey: cfg.MonitoringAPIKey,
	})

	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(logger),
		monitoring.RequestMetricsMiddleware(),
	)
	h.Routes(router, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver, "timezone": loc.String()}).Info("Hydration Tracker API starting")
		serveErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("Shutting down")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}

// openStore returns the configured store and, for PostgreSQL, a pool stats
// reader for monitoring.
func openStore(cfg *config.Config, logger *logrus.Logger) (store.Store, func() sql.DBStats, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using the in-memory store; data is lost on restart")
		return store.NewMemoryStore(), nil, nil
	}

	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := database.CreateTables(db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store.NewPostgresStore(db), db.Stats, nil
}
