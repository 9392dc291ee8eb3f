package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day stored as midnight UTC.
type Date struct {
	time.Time
}

// NewDate returns the calendar day of t as observed in loc.
func NewDate(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = NewDate(v, nil)
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// WaterIntake is a single logged drink. Amount is in liters.
type WaterIntake struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"userId" db:"user_id"`
	Amount    float64   `json:"amount" db:"amount"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// DailyTotal is the summed intake for one calendar day.
type DailyTotal struct {
	Date   Date    `json:"date"`
	Amount float64 `json:"amount"`
}

type Streak struct {
	ID            int  `json:"id" db:"id"`
	UserID        int  `json:"userId" db:"user_id"`
	CurrentStreak int  `json:"currentStreak" db:"current_streak"`
	LongestStreak int  `json:"longestStreak" db:"longest_streak"`
	LastUpdated   Date `json:"lastUpdated" db:"last_updated"`
}

// Achievement types understood by the unlock evaluator.
const (
	AchievementIntakeCount   = "intake_count"
	AchievementStreak        = "streak"
	AchievementLoggingStreak = "logging_streak"
)

type Achievement struct {
	ID             int        `json:"id" db:"id"`
	UserID         int        `json:"userId" db:"user_id"`
	Name           string     `json:"name" db:"name"`
	Description    string     `json:"description" db:"description"`
	Type           string     `json:"type" db:"type"`
	ThresholdValue int        `json:"thresholdValue" db:"threshold_value"`
	Achieved       bool       `json:"achieved" db:"achieved"`
	AchievedDate   *time.Time `json:"achievedDate" db:"achieved_date"`
}

type HydrationTip struct {
	ID       int    `json:"id" db:"id"`
	Tip      string `json:"tip" db:"tip"`
	Category string `json:"category" db:"category"`
}

// StoreStats is a row count summary used by monitoring.
type StoreStats struct {
	Users            int64 `json:"users"`
	WaterIntakes     int64 `json:"waterIntakes"`
	ReminderMessages int64 `json:"reminderMessages"`
	HydrationTips    int64 `json:"hydrationTips"`
}
