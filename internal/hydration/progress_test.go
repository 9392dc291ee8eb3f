package hydration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

func TestDailyProgressScenario(t *testing.T) {
	intakes := []models.WaterIntake{{Amount: 0.5}, {Amount: 0.7}, {Amount: 0.5}}

	p := DailyProgress(TotalAmount(intakes), 2.0)

	assert.InDelta(t, 1.7, p.TotalIntake, 1e-9)
	assert.Equal(t, 85, p.Progress)
	assert.InDelta(t, 0.3, p.Remaining, 1e-9)
	assert.False(t, p.GoalMet)
}

func TestDailyProgressCapsAtHundred(t *testing.T) {
	p := DailyProgress(3.2, 2.0)

	assert.Equal(t, 100, p.Progress)
	assert.Zero(t, p.Remaining)
	assert.True(t, p.GoalMet)
}

func TestGoalMetAtExactGoal(t *testing.T) {
	assert.True(t, GoalMet(0.1+0.2+1.7, 2.0))
	assert.False(t, GoalMet(1.999, 2.0))
}

func TestDailyTotalsGroupsByLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	intakes := []models.WaterIntake{
		{Amount: 0.5, Timestamp: time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC)}, // 10th locally
		{Amount: 0.25, Timestamp: time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)},
		{Amount: 0.7, Timestamp: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
	}

	totals := DailyTotals(intakes, loc)

	require.Len(t, totals, 2)
	assert.Equal(t, "2026-03-09", totals[0].Date.String())
	assert.InDelta(t, 0.25, totals[0].Amount, 1e-9)
	assert.Equal(t, "2026-03-10", totals[1].Date.String())
	assert.InDelta(t, 1.2, totals[1].Amount, 1e-9)
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	start, end := DayBounds(time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC), loc)

	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, loc), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestDayStart(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	day, err := models.ParseDate("2026-10-14")
	require.NoError(t, err)

	start := DayStart(day, loc)
	assert.True(t, start.Equal(time.Date(2026, 10, 13, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, day, models.NewDate(start, loc))
}
