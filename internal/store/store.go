// Package store is the data-access layer. Store has an in-memory and a
// PostgreSQL implementation; handlers only see the interface.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("conflict")
)

type Store interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (models.StoreStats, error)
	Close() error

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	GetSettings(ctx context.Context, userID int) (*models.Settings, error)
	CreateSettings(ctx context.Context, settings *models.Settings) error
	UpdateSettings(ctx context.Context, settings *models.Settings) error

	AddWaterIntake(ctx context.Context, intake *models.WaterIntake) error
	// ListWaterIntake returns intakes with from <= timestamp < to, oldest first.
	ListWaterIntake(ctx context.Context, userID int, from, to time.Time) ([]models.WaterIntake, error)
	CountWaterIntake(ctx context.Context, userID int) (int64, error)
	DeleteWaterIntakeForUser(ctx context.Context, userID int) (int64, error)

	GetReminderSettings(ctx context.Context, userID int) (*models.ReminderSettings, error)
	CreateReminderSettings(ctx context.Context, settings *models.ReminderSettings) error
	UpdateReminderSettings(ctx context.Context, settings *models.ReminderSettings) error
	ListActiveReminderSettings(ctx context.Context) ([]models.ReminderSettings, error)

	GetStreak(ctx context.Context, userID int) (*models.Streak, error)
	CreateStreak(ctx context.Context, streak *models.Streak) error
	// UpdateStreak returns ErrNotFound when the row is missing or the update
	// would move last_updated backwards.
	UpdateStreak(ctx context.Context, streak *models.Streak) error

	ListAchievements(ctx context.Context, userID int) ([]models.Achievement, error)
	GetAchievement(ctx context.Context, id int) (*models.Achievement, error)
	CreateAchievement(ctx context.Context, achievement *models.Achievement) error
	// UpdateAchievement only sets the achieved flag and date; an achieved row is left untouched.
	UpdateAchievement(ctx context.Context, achievement *models.Achievement) error

	ListReminderMessages(ctx context.Context, userID int) ([]models.ReminderMessage, error)
	GetReminderMessage(ctx context.Context, id int) (*models.ReminderMessage, error)
	CreateReminderMessage(ctx context.Context, message *models.ReminderMessage) error
	UpdateReminderMessage(ctx context.Context, message *models.ReminderMessage) error
	DeleteReminderMessage(ctx context.Context, id int) error

	// ListHydrationTips returns every tip, or only those in category when it is non-empty.
	ListHydrationTips(ctx context.Context, category string) ([]models.HydrationTip, error)
	CreateHydrationTip(ctx context.Context, tip *models.HydrationTip) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
