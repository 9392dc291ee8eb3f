package hydration

import (
	"time"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

// NextStreak applies one daily evaluation to prev.
//
// A nil prev yields a fresh record. When prev was already evaluated today the
// record is returned unchanged and changed is false. Otherwise the streak
// continues only if the previous evaluation was yesterday.
func NextStreak(prev *models.Streak, userID int, goalMet bool, today models.Date) (next models.Streak, changed bool) {
	if prev == nil {
		start := 0
		if goalMet {
			start = 1
		}
		return models.Streak{
			UserID:        userID,
			CurrentStreak: start,
			LongestStreak: start,
			LastUpdated:   today,
		}, true
	}

	if prev.LastUpdated.Equal(today) {
		return *prev, false
	}

	next = *prev
	isConsecutive := prev.LastUpdated.Equal(today.AddDays(-1))
	switch {
	case !goalMet:
		next.CurrentStreak = 0
	case isConsecutive:
		next.CurrentStreak = prev.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.LastUpdated = today
	return next, true
}

// LoggingStreak counts consecutive calendar days, ending today, that have at
// least one intake. A day without intake before today breaks the run; an
// empty today yields zero.
func LoggingStreak(intakes []models.WaterIntake, today models.Date, loc *time.Location) int {
	logged := make(map[models.Date]bool, len(intakes))
	for _, intake := range intakes {
		logged[models.NewDate(intake.Timestamp, loc)] = true
	}

	count := 0
	for day := today; logged[day]; day = day.AddDays(-1) {
		count++
	}
	return count
}
