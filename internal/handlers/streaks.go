package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashnextsavy/HydrationTracker/internal/hydration"
	"github.com/yashnextsavy/HydrationTracker/internal/models"
	"github.com/yashnextsavy/HydrationTracker/internal/store"
)

// GetStreak returns the stored streak, or an unsaved zero streak for users
// who were never evaluated.
func (h *Handler) GetStreak(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	streak, err := h.store.GetStreak(c.Request.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, models.Streak{UserID: userID})
		return
	}
	if err != nil {
		h.serverError(c, err, "Error loading streak")
		return
	}
	c.JSON(http.StatusOK, streak)
}

// UpdateStreak evaluates today's intake against the goal. It changes the
// streak at most once per calendar day.
func (h *Handler) UpdateStreak(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	streak, err := h.advanceStreak(ctx, userID)
	if err != nil {
		h.serverError(c, err, "Error updating streak")
		return
	}

	h.evaluateAchievements(ctx, userID)
	c.JSON(http.StatusOK, streak)
}

func (h *Handler) advanceStreak(ctx context.Context, userID int) (*models.Streak, error) {
	settings, err := h.settingsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := h.today()
	from := hydration.DayStart(today, h.loc)
	intakes, err := h.store.ListWaterIntake(ctx, userID, from, hydration.DayStart(today.AddDays(1), h.loc))
	if err != nil {
		return nil, fmt.Errorf("load today's intake: %w", err)
	}
	met := hydration.GoalMet(hydration.TotalAmount(intakes), settings.DailyGoal)

	prev, err := h.store.GetStreak(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		prev = nil
	} else if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}

	next, changed := hydration.NextStreak(prev, userID, met, today)
	if !changed {
		return prev, nil
	}

	if prev == nil {
		err = h.store.CreateStreak(ctx, &next)
	} else {
		err = h.store.UpdateStreak(ctx, &next)
	}
	// Lost a race with a concurrent evaluation; its result stands.
	if errors.Is(err, store.ErrConflict) || errors.Is(err, store.ErrNotFound) {
		return h.store.GetStreak(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("save streak: %w", err)
	}
	return &next, nil
}
