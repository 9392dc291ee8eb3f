package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/yashnextsavy/HydrationTracker/internal/config"
)

// Connect opens the PostgreSQL pool described by cfg and verifies it with a ping.
func Connect(cfg config.Database, logger *logrus.Logger) (*sqlx.DB, error) {
	logger.WithFields(logrus.Fields{
		"host":    cfg.Host,
		"port":    cfg.Port,
		"user":    cfg.User,
		"db":      cfg.Name,
		"sslmode": cfg.SSLMode,
	}).Info("Connecting to database")

	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(positiveOr(cfg.MaxOpenConns, 25))
	db.SetMaxIdleConns(positiveOr(cfg.MaxIdleConns, 25))
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("Connected to database successfully")
	return db, nil
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
