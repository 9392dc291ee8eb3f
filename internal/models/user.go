package models

import (
	"time"
)

// User represents a user in the system
type User struct {
	ID        int       `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Settings holds the per-user hydration goal and display preferences.
type Settings struct {
	ID             int     `json:"id" db:"id"`
	UserID         int     `json:"userId" db:"user_id"`
	DailyGoal      float64 `json:"dailyGoal" db:"daily_goal"`
	DefaultCupSize int     `json:"defaultCupSize" db:"default_cup_size"`
	SoundEnabled   bool    `json:"soundEnabled" db:"sound_enabled"`
}

// ReminderSettings configures when reminders may fire for a user.
type ReminderSettings struct {
	ID                   int    `json:"id" db:"id"`
	UserID               int    `json:"userId" db:"user_id"`
	Active               bool   `json:"active" db:"active"`
	Interval             int    `json:"interval" db:"interval_minutes"`
	StartTime            string `json:"startTime" db:"start_time"`
	EndTime              string `json:"endTime" db:"end_time"`
	Monday               bool   `json:"monday" db:"monday"`
	Tuesday              bool   `json:"tuesday" db:"tuesday"`
	Wednesday            bool   `json:"wednesday" db:"wednesday"`
	Thursday             bool   `json:"thursday" db:"thursday"`
	Friday               bool   `json:"friday" db:"friday"`
	Saturday             bool   `json:"saturday" db:"saturday"`
	Sunday               bool   `json:"sunday" db:"sunday"`
	NotificationsEnabled bool   `json:"notificationsEnabled" db:"notifications_enabled"`
}

// DayEnabled reports whether reminders are enabled on the given weekday.
func (r ReminderSettings) DayEnabled(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return r.Monday
	case time.Tuesday:
		return r.Tuesday
	case time.Wednesday:
		return r.Wednesday
	case time.Thursday:
		return r.Thursday
	case time.Friday:
		return r.Friday
	case time.Saturday:
		return r.Saturday
	default:
		return r.Sunday
	}
}

type ReminderMessage struct {
	ID       int    `json:"id" db:"id"`
	UserID   int    `json:"userId" db:"user_id"`
	Message  string `json:"message" db:"message"`
	IsActive bool   `json:"isActive" db:"is_active"`
}
