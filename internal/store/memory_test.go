package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

func TestMemoryStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	user := &models.User{Username: "alice", Password: "hash"}
	require.NoError(t, s.CreateUser(ctx, user))
	assert.Equal(t, 1, user.ID)

	err := s.CreateUser(ctx, &models.User{Username: "ALICE", Password: "hash"})
	assert.ErrorIs(t, err, ErrConflict)

	found, err := s.GetUserByUsername(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = s.GetUserByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreWaterIntakeRangeAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, intake := range []models.WaterIntake{
		{UserID: 1, Amount: 0.5, Timestamp: day.Add(9 * time.Hour)},
		{UserID: 1, Amount: 0.25, Timestamp: day.Add(-time.Hour)},
		{UserID: 1, Amount: 0.7, Timestamp: day.Add(8 * time.Hour)},
		{UserID: 2, Amount: 1.0, Timestamp: day.Add(8 * time.Hour)},
	} {
		intake := intake
		require.NoError(t, s.AddWaterIntake(ctx, &intake))
	}

	today, err := s.ListWaterIntake(ctx, 1, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, today, 2)
	assert.Equal(t, 0.7, today[0].Amount, "oldest first")
	assert.Equal(t, 0.5, today[1].Amount)

	count, err := s.CountWaterIntake(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	deleted, err := s.DeleteWaterIntakeForUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	remaining, err := s.ListWaterIntake(ctx, 1, time.Time{}, day.AddDate(1, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, remaining)

	other, err := s.CountWaterIntake(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestMemoryStoreStreakNeverMovesBackwards(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	today := models.NewDate(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), nil)

	streak := &models.Streak{UserID: 1, CurrentStreak: 1, LongestStreak: 1, LastUpdated: today}
	require.NoError(t, s.CreateStreak(ctx, streak))

	stale := *streak
	stale.LastUpdated = today.AddDays(-1)
	assert.ErrorIs(t, s.UpdateStreak(ctx, &stale), ErrNotFound)

	next := *streak
	next.CurrentStreak = 2
	next.LongestStreak = 2
	next.LastUpdated = today.AddDays(1)
	require.NoError(t, s.UpdateStreak(ctx, &next))

	got, err := s.GetStreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.True(t, got.LastUpdated.Equal(today.AddDays(1)))
}

func TestMemoryStoreAchievementIsMonotonic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	achievement := &models.Achievement{UserID: 1, Name: "first_intake", Type: models.AchievementIntakeCount, ThresholdValue: 1}
	require.NoError(t, s.CreateAchievement(ctx, achievement))

	unlockedAt := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	achievement.Achieved = true
	achievement.AchievedDate = &unlockedAt
	require.NoError(t, s.UpdateAchievement(ctx, achievement))

	achievement.Achieved = false
	achievement.AchievedDate = nil
	require.NoError(t, s.UpdateAchievement(ctx, achievement))

	got, err := s.GetAchievement(ctx, achievement.ID)
	require.NoError(t, err)
	assert.True(t, got.Achieved)
	require.NotNil(t, got.AchievedDate)
	assert.True(t, got.AchievedDate.Equal(unlockedAt))
}

func TestMemoryStoreAchievementNameIsUniquePerUser(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateAchievement(ctx, &models.Achievement{UserID: 1, Name: "first_intake"}))
	assert.ErrorIs(t, s.CreateAchievement(ctx, &models.Achievement{UserID: 1, Name: "first_intake"}), ErrConflict)
	assert.NoError(t, s.CreateAchievement(ctx, &models.Achievement{UserID: 2, Name: "first_intake"}))

	owned, err := s.ListAchievements(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestMemoryStoreTipsFilterByCategory(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateHydrationTip(ctx, &models.HydrationTip{Tip: "a", Category: "morning"}))
	require.NoError(t, s.CreateHydrationTip(ctx, &models.HydrationTip{Tip: "b", Category: "exercise"}))

	all, err := s.ListHydrationTips(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	morning, err := s.ListHydrationTips(ctx, "Morning")
	require.NoError(t, err)
	require.Len(t, morning, 1)
	assert.Equal(t, "a", morning[0].Tip)
}

func TestMemoryStoreCloseResetsState(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.CreateUser(ctx, &models.User{Username: "bob"}))
	require.NoError(t, s.Close())

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Users)
}
