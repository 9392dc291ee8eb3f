package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

func allDays(rs models.ReminderSettings) models.ReminderSettings {
	rs.Monday, rs.Tuesday, rs.Wednesday, rs.Thursday = true, true, true, true
	rs.Friday, rs.Saturday, rs.Sunday = true, true, true
	return rs
}

func TestParseClock(t *testing.T) {
	cases := map[string]int{"00:00": 0, "08:30": 510, "23:59": 1439}
	for raw, want := range cases {
		got, err := ParseClock(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "8:30", "24:00", "12:60", "ab:cd", "12:00:00", "+8:00", "-1:30", "08:+5"} {
		_, err := ParseClock(raw)
		assert.Error(t, err, raw)
	}
}

func TestNewWindowRejectsBadInterval(t *testing.T) {
	rs := allDays(models.ReminderSettings{StartTime: "08:00", EndTime: "22:00", Interval: 5})
	_, err := NewWindow(rs)
	assert.Error(t, err)

	rs.Interval = 241
	_, err = NewWindow(rs)
	assert.Error(t, err)
}

func TestWindowContainsIsInclusive(t *testing.T) {
	w, err := NewWindow(allDays(models.ReminderSettings{StartTime: "08:00", EndTime: "22:00", Interval: 60}))
	require.NoError(t, err)

	// 2026-10-14 is a Wednesday.
	at := func(h, m int) time.Time { return time.Date(2026, 10, 14, h, m, 0, 0, time.UTC) }
	assert.True(t, w.Contains(at(8, 0)))
	assert.True(t, w.Contains(at(22, 0)))
	assert.True(t, w.Contains(at(13, 15)))
	assert.False(t, w.Contains(at(7, 59)))
	assert.False(t, w.Contains(at(22, 1)))
}

func TestWindowWrapsPastMidnight(t *testing.T) {
	w, err := NewWindow(allDays(models.ReminderSettings{StartTime: "22:00", EndTime: "02:00", Interval: 30}))
	require.NoError(t, err)

	at := func(h, m int) time.Time { return time.Date(2026, 10, 14, h, m, 0, 0, time.UTC) }
	assert.True(t, w.Contains(at(23, 30)))
	assert.True(t, w.Contains(at(1, 0)))
	assert.True(t, w.Contains(at(2, 0)))
	assert.False(t, w.Contains(at(12, 0)))
	assert.False(t, w.Contains(at(2, 1)))
}

func TestWindowRespectsDayFlags(t *testing.T) {
	rs := allDays(models.ReminderSettings{StartTime: "08:00", EndTime: "22:00", Interval: 60})
	rs.Saturday = false
	w, err := NewWindow(rs)
	require.NoError(t, err)

	saturday := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	sunday := saturday.AddDate(0, 0, 1)
	assert.False(t, w.Contains(saturday))
	assert.True(t, w.Contains(sunday))
}

func TestDefaultSettingsFormAValidWindow(t *testing.T) {
	rs := DefaultSettings(5)
	assert.Equal(t, 5, rs.UserID)
	assert.True(t, rs.Active)
	assert.False(t, rs.NotificationsEnabled)

	w, err := NewWindow(rs)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, w.Interval)
	for day := time.Sunday; day <= time.Saturday; day++ {
		assert.True(t, rs.DayEnabled(day))
	}
}
