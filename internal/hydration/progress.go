// Package hydration holds the derived-state rules: daily progress, streak
// transitions and achievement unlocks. Everything here is pure; callers load
// and persist records through the store.
package hydration

import (
	"math"
	"sort"
	"time"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

const (
	MinDailyGoal = 0.5
	MaxDailyGoal = 10.0

	MinCupSize = 50
	MaxCupSize = 2000

	DefaultDailyGoal = 2.0
	DefaultCupSize   = 250
)

// DefaultSettings is created for a user on first access.
func DefaultSettings(userID int) models.Settings {
	return models.Settings{
		UserID:         userID,
		DailyGoal:      DefaultDailyGoal,
		DefaultCupSize: DefaultCupSize,
		SoundEnabled:   true,
	}
}

// Progress summarises a day's intake against the goal.
type Progress struct {
	TotalIntake float64 `json:"totalIntake"`
	DailyGoal   float64 `json:"dailyGoal"`
	Progress    int     `json:"progress"`
	Remaining   float64 `json:"remaining"`
	GoalMet     bool    `json:"goalMet"`
}

// RoundLiters rounds to whole milliliters so float sums stay readable.
func RoundLiters(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func TotalAmount(intakes []models.WaterIntake) float64 {
	var total float64
	for _, intake := range intakes {
		total += intake.Amount
	}
	return RoundLiters(total)
}

// DailyProgress computes the percentage (capped at 100) and the liters still missing.
func DailyProgress(total, goal float64) Progress {
	total = RoundLiters(total)
	p := Progress{TotalIntake: total, DailyGoal: goal}
	if goal > 0 {
		p.Progress = int(math.Min(100, math.Round(total/goal*100)))
	}
	p.Remaining = RoundLiters(math.Max(0, goal-total))
	p.GoalMet = GoalMet(total, goal)
	return p
}

func GoalMet(total, goal float64) bool {
	return RoundLiters(total) >= goal
}

// DailyTotals groups intakes by calendar day in loc, ascending by date.
func DailyTotals(intakes []models.WaterIntake, loc *time.Location) []models.DailyTotal {
	byDay := make(map[models.Date]float64)
	for _, intake := range intakes {
		byDay[models.NewDate(intake.Timestamp, loc)] += intake.Amount
	}

	totals := make([]models.DailyTotal, 0, len(byDay))
	for day, amount := range byDay {
		totals = append(totals, models.DailyTotal{Date: day, Amount: RoundLiters(amount)})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date.Before(totals[j].Date) })
	return totals
}

// DayBounds returns [start of day, start of next day) for the calendar day of t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// DayStart returns midnight of d in loc.
func DayStart(d models.Date, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}
