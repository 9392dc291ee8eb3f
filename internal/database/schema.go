package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

type tableDef struct {
	name    string
	create  string
	indexes []string
}

var tables = []tableDef{
	{
		name: "users",
		create: `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)`,
		indexes: []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS users_lower_username_idx ON users(lower(username))`,
		},
	},
	{
		name: "settings",
		create: `
		CREATE TABLE IF NOT EXISTS settings (
			id SERIAL PRIMARY KEY,
			user_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			daily_goal DOUBLE PRECISION NOT NULL DEFAULT 2.0,
			default_cup_size INTEGER NOT NULL DEFAULT 250,
			sound_enabled BOOLEAN NOT NULL DEFAULT TRUE
		)`,
	},
	{
		name: "water_intake",
		create: `
		CREATE TABLE IF NOT EXISTS water_intake (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			amount DOUBLE PRECISION NOT NULL CHECK (amount > 0),
			timestamp TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		indexes: []string{
			`CREATE INDEX IF NOT EXISTS water_intake_user_timestamp_idx ON water_intake(user_id, timestamp)`,
		},
	},
	{
		name: "reminder_settings",
		create: `
		CREATE TABLE IF NOT EXISTS reminder_settings (
			id SERIAL PRIMARY KEY,
			user_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			interval_minutes INTEGER NOT NULL DEFAULT 60,
			start_time VARCHAR(5) NOT NULL DEFAULT '08:00',
			end_time VARCHAR(5) NOT NULL DEFAULT '22:00',
			monday BOOLEAN NOT NULL DEFAULT TRUE,
			tuesday BOOLEAN NOT NULL DEFAULT TRUE,
			wednesday BOOLEAN NOT NULL DEFAULT TRUE,
			thursday BOOLEAN NOT NULL DEFAULT TRUE,
			friday BOOLEAN NOT NULL DEFAULT TRUE,
			saturday BOOLEAN NOT NULL DEFAULT TRUE,
			sunday BOOLEAN NOT NULL DEFAULT TRUE,
			notifications_enabled BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		indexes: []string{
			`CREATE INDEX IF NOT EXISTS reminder_settings_active_idx ON reminder_settings(active) WHERE active = TRUE`,
		},
	},
	{
		name: "streaks",
		create: `
		CREATE TABLE IF NOT EXISTS streaks (
			id SERIAL PRIMARY KEY,
			user_id INTEGER UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			last_updated DATE
		)`,
	},
	{
		name: "achievements",
		create: `
		CREATE TABLE IF NOT EXISTS achievements (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(100) NOT NULL,
			description TEXT NOT NULL,
			type VARCHAR(50) NOT NULL,
			threshold_value INTEGER NOT NULL,
			achieved BOOLEAN NOT NULL DEFAULT FALSE,
			achieved_date TIMESTAMPTZ
		)`,
		indexes: []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS achievements_user_name_idx ON achievements(user_id, name)`,
		},
	},
	{
		name: "reminder_messages",
		create: `
		CREATE TABLE IF NOT EXISTS reminder_messages (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			message TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		indexes: []string{
			`CREATE INDEX IF NOT EXISTS reminder_messages_user_idx ON reminder_messages(user_id)`,
		},
	},
	{
		name: "hydration_tips",
		create: `
		CREATE TABLE IF NOT EXISTS hydration_tips (
			id SERIAL PRIMARY KEY,
			tip TEXT NOT NULL,
			category VARCHAR(50) NOT NULL
		)`,
		indexes: []string{
			`CREATE INDEX IF NOT EXISTS hydration_tips_category_idx ON hydration_tips(lower(category))`,
		},
	},
}

// CreateTables creates all required tables and indexes. Every statement is idempotent.
func CreateTables(db *sqlx.DB) error {
	for _, table := range tables {
		if _, err := db.Exec(table.create); err != nil {
			return fmt.Errorf("create %s table: %w", table.name, err)
		}
		for _, index := range table.indexes {
			if _, err := db.Exec(index); err != nil {
				return fmt.Errorf("ensure %s index: %w", table.name, err)
			}
		}
	}
	return nil
}
