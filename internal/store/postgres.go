package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

const uniqueViolation = "23505"

// PostgresStore implements Store on top of PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// DB exposes the underlying pool for monitoring.
func (s *PostgresStore) DB() *sqlx.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Stats(ctx context.Context) (models.StoreStats, error) {
	var stats models.StoreStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM water_intake),
			(SELECT COUNT(*) FROM reminder_messages),
			(SELECT COUNT(*) FROM hydration_tips)
	`).Scan(&stats.Users, &stats.WaterIntakes, &stats.ReminderMessages, &stats.HydrationTips)
	if err != nil {
		return stats, fmt.Errorf("load store stats: %w", err)
	}
	return stats, nil
}

// translate maps driver errors onto the store sentinels.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Users

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO users (username, password) VALUES ($1, $2) RETURNING id, created_at`,
		user.Username, user.Password,
	).Scan(&user.ID, &user.CreatedAt)
	return translate(err, "insert user")
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT id, username, password, created_at FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err, "get user")
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user,
		`SELECT id, username, password, created_at FROM users WHERE lower(username) = lower($1)`, username)
	if err != nil {
		return nil, translate(err, "get user by username")
	}
	return &user, nil
}

// Settings

func (s *PostgresStore) GetSettings(ctx context.Context, userID int) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.GetContext(ctx, &settings,
		`SELECT id, user_id, daily_goal, default_cup_size, sound_enabled FROM settings WHERE user_id = $1`, userID)
	if err != nil {
		return nil, translate(err, "get settings")
	}
	return &settings, nil
}

func (s *PostgresStore) CreateSettings(ctx context.Context, settings *models.Settings) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO settings (user_id, daily_goal, default_cup_size, sound_enabled)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		settings.UserID, settings.DailyGoal, settings.DefaultCupSize, settings.SoundEnabled,
	).Scan(&settings.ID)
	return translate(err, "insert settings")
}

func (s *PostgresStore) UpdateSettings(ctx context.Context, settings *models.Settings) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE settings SET daily_goal = $1, default_cup_size = $2, sound_enabled = $3
		 WHERE id = $4 AND user_id = $5`,
		settings.DailyGoal, settings.DefaultCupSize, settings.SoundEnabled, settings.ID, settings.UserID,
	)
	if err != nil {
		return translate(err, "update settings")
	}
	return requireAffected(result, "update settings")
}

// Water intake

func (s *PostgresStore) AddWaterIntake(ctx context.Context, intake *models.WaterIntake) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO water_intake (user_id, amount, timestamp) VALUES ($1, $2, $3) RETURNING id`,
		intake.UserID, intake.Amount, intake.Timestamp,
	).Scan(&intake.ID)
	return translate(err, "insert water intake")
}

func (s *PostgresStore) ListWaterIntake(ctx context.Context, userID int, from, to time.Time) ([]models.WaterIntake, error) {
	intakes := make([]models.WaterIntake, 0)
	err := s.db.SelectContext(ctx, &intakes,
		`SELECT id, user_id, amount, timestamp
		 FROM water_intake
		 WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3
		 ORDER BY timestamp ASC, id ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, translate(err, "list water intake")
	}
	return intakes, nil
}

func (s *PostgresStore) CountWaterIntake(ctx context.Context, userID int) (int64, error) {
	var count int64
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM water_intake WHERE user_id = $1`, userID); err != nil {
		return 0, translate(err, "count water intake")
	}
	return count, nil
}

func (s *PostgresStore) DeleteWaterIntakeForUser(ctx context.Context, userID int) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM water_intake WHERE user_id = $1`, userID)
	if err != nil {
		return 0, translate(err, "delete water intake")
	}
	return result.RowsAffected()
}

// Reminder settings

const reminderSettingsColumns = `id, user_id, active, interval_minutes, start_time, end_time,
	monday, tuesday, wednesday, thursday, friday, saturday, sunday, notifications_enabled`

func (s *PostgresStore) GetReminderSettings(ctx context.Context, userID int) (*models.ReminderSettings, error) {
	var settings models.ReminderSettings
	err := s.db.GetContext(ctx, &settings,
		`SELECT `+reminderSettingsColumns+` FROM reminder_settings WHERE user_id = $1`, userID)
	if err != nil {
		return nil, translate(err, "get reminder settings")
	}
	return &settings, nil
}

func (s *PostgresStore) CreateReminderSettings(ctx context.Context, r *models.ReminderSettings) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO reminder_settings (user_id, active, interval_minutes, start_time, end_time,
			monday, tuesday, wednesday, thursday, friday, saturday, sunday, notifications_enabled)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING id`,
		r.UserID, r.Active, r.Interval, r.StartTime, r.EndTime,
		r.Monday, r.Tuesday, r.Wednesday, r.Thursday, r.Friday, r.Saturday, r.Sunday,
		r.NotificationsEnabled,
	).Scan(&r.ID)
	return translate(err, "insert reminder settings")
}

func (s *PostgresStore) UpdateReminderSettings(ctx context.Context, r *models.ReminderSettings) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE reminder_settings SET
			active = $1, interval_minutes = $2, start_time = $3, end_time = $4,
			monday = $5, tuesday = $6, wednesday = $7, thursday = $8, friday = $9,
			saturday = $10, sunday = $11, notifications_enabled = $12
		 WHERE id = $13 AND user_id = $14`,
		r.Active, r.Interval, r.StartTime, r.EndTime,
		r.Monday, r.Tuesday, r.Wednesday, r.Thursday, r.Friday, r.Saturday, r.Sunday,
		r.NotificationsEnabled, r.ID, r.UserID,
	)
	if err != nil {
		return translate(err, "update reminder settings")
	}
	return requireAffected(result, "update reminder settings")
}

func (s *PostgresStore) ListActiveReminderSettings(ctx context.Context) ([]models.ReminderSettings, error) {
	out := make([]models.ReminderSettings, 0)
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+reminderSettingsColumns+` FROM reminder_settings WHERE active = TRUE ORDER BY user_id`)
	if err != nil {
		return nil, translate(err, "list active reminder settings")
	}
	return out, nil
}

// Streaks

func (s *PostgresStore) GetStreak(ctx context.Context, userID int) (*models.Streak, error) {
	var streak models.Streak
	err := s.db.GetContext(ctx, &streak,
		`SELECT id, user_id, current_streak, longest_streak, last_updated FROM streaks WHERE user_id = $1`, userID)
	if err != nil {
		return nil, translate(err, "get streak")
	}
	return &streak, nil
}

func (s *PostgresStore) CreateStreak(ctx context.Context, streak *models.Streak) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO streaks (user_id, current_streak, longest_streak, last_updated)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		streak.UserID, streak.CurrentStreak, streak.LongestStreak, streak.LastUpdated,
	).Scan(&streak.ID)
	return translate(err, "insert streak")
}

// UpdateStreak refuses to move last_updated backwards.
func (s *PostgresStore) UpdateStreak(ctx context.Context, streak *models.Streak) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE streaks SET current_streak = $1, longest_streak = $2, last_updated = $3
		 WHERE id = $4 AND user_id = $5 AND (last_updated IS NULL OR last_updated <= $3)`,
		streak.CurrentStreak, streak.LongestStreak, streak.LastUpdated, streak.ID, streak.UserID,
	)
	if err != nil {
		return translate(err, "update streak")
	}
	return requireAffected(result, "update streak")
}

// Achievements

const achievementColumns = `id, user_id, name, description, type, threshold_value, achieved, achieved_date`

func (s *PostgresStore) ListAchievements(ctx context.Context, userID int) ([]models.Achievement, error) {
	out := make([]models.Achievement, 0)
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+achievementColumns+` FROM achievements WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, translate(err, "list achievements")
	}
	return out, nil
}

func (s *PostgresStore) GetAchievement(ctx context.Context, id int) (*models.Achievement, error) {
	var achievement models.Achievement
	err := s.db.GetContext(ctx, &achievement, `SELECT `+achievementColumns+` FROM achievements WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err, "get achievement")
	}
	return &achievement, nil
}

func (s *PostgresStore) CreateAchievement(ctx context.Context, a *models.Achievement) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO achievements (user_id, name, description, type, threshold_value, achieved, achieved_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		a.UserID, a.Name, a.Description, a.Type, a.ThresholdValue, a.Achieved, a.AchievedDate,
	).Scan(&a.ID)
	return translate(err, "insert achievement")
}

// UpdateAchievement never clears an achieved flag that is already set.
func (s *PostgresStore) UpdateAchievement(ctx context.Context, a *models.Achievement) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE achievements SET
			achieved = achieved OR $1,
			achieved_date = COALESCE(achieved_date, $2)
		 WHERE id = $3`,
		a.Achieved, a.AchievedDate, a.ID,
	)
	if err != nil {
		return translate(err, "update achievement")
	}
	return requireAffected(result, "update achievement")
}

// Reminder messages

func (s *PostgresStore) ListReminderMessages(ctx context.Context, userID int) ([]models.ReminderMessage, error) {
	out := make([]models.ReminderMessage, 0)
	err := s.db.SelectContext(ctx, &out,
		`SELECT id, user_id, message, is_active FROM reminder_messages WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, translate(err, "list reminder messages")
	}
	return out, nil
}

func (s *PostgresStore) GetReminderMessage(ctx context.Context, id int) (*models.ReminderMessage, error) {
	var message models.ReminderMessage
	err := s.db.GetContext(ctx, &message,
		`SELECT id, user_id, message, is_active FROM reminder_messages WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err, "get reminder message")
	}
	return &message, nil
}

func (s *PostgresStore) CreateReminderMessage(ctx context.Context, message *models.ReminderMessage) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO reminder_messages (user_id, message, is_active) VALUES ($1, $2, $3) RETURNING id`,
		message.UserID, message.Message, message.IsActive,
	).Scan(&message.ID)
	return translate(err, "insert reminder message")
}

func (s *PostgresStore) UpdateReminderMessage(ctx context.Context, message *models.ReminderMessage) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE reminder_messages SET message = $1, is_active = $2 WHERE id = $3`,
		message.Message, message.IsActive, message.ID,
	)
	if err != nil {
		return translate(err, "update reminder message")
	}
	return requireAffected(result, "update reminder message")
}

func (s *PostgresStore) DeleteReminderMessage(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reminder_messages WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete reminder message")
	}
	return requireAffected(result, "delete reminder message")
}

// Hydration tips

func (s *PostgresStore) ListHydrationTips(ctx context.Context, category string) ([]models.HydrationTip, error) {
	out := make([]models.HydrationTip, 0)
	var err error
	if category == "" {
		err = s.db.SelectContext(ctx, &out, `SELECT id, tip, category FROM hydration_tips ORDER BY id`)
	} else {
		err = s.db.SelectContext(ctx, &out,
			`SELECT id, tip, category FROM hydration_tips WHERE lower(category) = lower($1) ORDER BY id`, category)
	}
	if err != nil {
		return nil, translate(err, "list hydration tips")
	}
	return out, nil
}

func (s *PostgresStore) CreateHydrationTip(ctx context.Context, tip *models.HydrationTip) error {
	err := s.db.QueryRowxContext(ctx,
		`INSERT INTO hydration_tips (tip, category) VALUES ($1, $2) RETURNING id`,
		tip.Tip, tip.Category,
	).Scan(&tip.ID)
	return translate(err, "insert hydration tip")
}
