package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

const (
	MinInterval = 15
	MaxInterval = 240

	DefaultInterval  = 60
	DefaultStartTime = "08:00"
	DefaultEndTime   = "22:00"
)

// DefaultSettings is created for a user on first access. Notifications stay
// off until the client opts in.
func DefaultSettings(userID int) models.ReminderSettings {
	return models.ReminderSettings{
		UserID:    userID,
		Active:    true,
		Interval:  DefaultInterval,
		StartTime: DefaultStartTime,
		EndTime:   DefaultEndTime,
		Monday:    true,
		Tuesday:   true,
		Wednesday: true,
		Thursday:  true,
		Friday:    true,
		Saturday:  true,
		Sunday:    true,
	}
}

// ParseClock converts "HH:MM" (24h) into minutes after midnight.
func ParseClock(raw string) (int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 || !twoDigits(parts[0]) || !twoDigits(parts[1]) {
		return 0, fmt.Errorf("time %q must be HH:MM", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("time %q has an invalid hour", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q has an invalid minute", raw)
	}
	return hours*60 + minutes, nil
}

func twoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}

// Window is the parsed daily reminder window of one user.
type Window struct {
	Start    int
	End      int
	Interval time.Duration
	settings models.ReminderSettings
}

func NewWindow(settings models.ReminderSettings) (Window, error) {
	start, err := ParseClock(settings.StartTime)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseClock(settings.EndTime)
	if err != nil {
		return Window{}, err
	}
	if settings.Interval < MinInterval || settings.Interval > MaxInterval {
		return Window{}, fmt.Errorf("interval must be between %d and %d minutes", MinInterval, MaxInterval)
	}
	return Window{
		Start:    start,
		End:      end,
		Interval: time.Duration(settings.Interval) * time.Minute,
		settings: settings,
	}, nil
}

// Contains reports whether now is on an enabled day and inside [Start, End].
// A window whose start is after its end runs across midnight; the weekday of
// now decides the day flag in both halves.
func (w Window) Contains(now time.Time) bool {
	if !w.settings.DayEnabled(now.Weekday()) {
		return false
	}
	minute := now.Hour()*60 + now.Minute()
	if w.Start <= w.End {
		return minute >= w.Start && minute <= w.End
	}
	return minute >= w.Start || minute <= w.End
}
