package hydration

import (
	"time"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

type achievementDef struct {
	Name        string
	Description string
	Type        string
	Threshold   int
}

var defaultAchievements = []achievementDef{
	{"first_intake", "Log your first glass of water", models.AchievementIntakeCount, 1},
	{"streak_3", "Reach your daily goal 3 days in a row", models.AchievementStreak, 3},
	{"streak_7", "Reach your daily goal 7 days in a row", models.AchievementStreak, 7},
	{"streak_30", "Reach your daily goal 30 days in a row", models.AchievementStreak, 30},
	{"logging_10", "Log water on 10 consecutive days", models.AchievementLoggingStreak, 10},
}

// DefaultAchievements returns the seed set for a user who has none yet.
func DefaultAchievements(userID int) []models.Achievement {
	out := make([]models.Achievement, 0, len(defaultAchievements))
	for _, def := range defaultAchievements {
		out = append(out, models.Achievement{
			UserID:         userID,
			Name:           def.Name,
			Description:    def.Description,
			Type:           def.Type,
			ThresholdValue: def.Threshold,
		})
	}
	return out
}

// MaxLoggingWindow is how many days of history the logging-streak check needs.
func MaxLoggingWindow() int {
	window := 0
	for _, def := range defaultAchievements {
		if def.Type == models.AchievementLoggingStreak && def.Threshold > window {
			window = def.Threshold
		}
	}
	return window
}

// Counters are the values achievement thresholds are compared against.
type Counters struct {
	IntakeCount   int64
	LongestStreak int
	LoggingStreak int
}

func (c Counters) valueFor(kind string) (int64, bool) {
	switch kind {
	case models.AchievementIntakeCount:
		return c.IntakeCount, true
	case models.AchievementStreak:
		return int64(c.LongestStreak), true
	case models.AchievementLoggingStreak:
		return int64(c.LoggingStreak), true
	default:
		return 0, false
	}
}

// Unlock returns the achievements that cross their threshold for the given
// counters, already marked achieved at now. Achieved entries are skipped.
func Unlock(achievements []models.Achievement, counters Counters, now time.Time) []models.Achievement {
	unlocked := make([]models.Achievement, 0)
	for _, achievement := range achievements {
		if achievement.Achieved {
			continue
		}
		value, known := counters.valueFor(achievement.Type)
		if !known || value < int64(achievement.ThresholdValue) {
			continue
		}
		unlocked = append(unlocked, MarkAchieved(achievement, now))
	}
	return unlocked
}

// MarkAchieved sets the flag once; an already achieved record keeps its date.
func MarkAchieved(achievement models.Achievement, now time.Time) models.Achievement {
	if achievement.Achieved {
		return achievement
	}
	at := now.UTC()
	achievement.Achieved = true
	achievement.AchievedDate = &at
	return achievement
}
