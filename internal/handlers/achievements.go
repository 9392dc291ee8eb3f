package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yashnextsavy/HydrationTracker/internal/hydration"
	"github.com/yashnextsavy/HydrationTracker/internal/models"
	"github.com/yashnextsavy/HydrationTracker/internal/monitoring"
	"github.com/yashnextsavy/HydrationTracker/internal/store"
)

// achievementsFor lists the user's achievements, seeding the defaults when
// the user has none. Rows another request seeded first are kept.
func (h *Handler) achievementsFor(ctx context.Context, userID int) ([]models.Achievement, error) {
	achievements, err := h.store.ListAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(achievements) > 0 {
		return achievements, nil
	}

	seeded := hydration.DefaultAchievements(userID)
	conflicted := false
	for i := range seeded {
		err := h.store.CreateAchievement(ctx, &seeded[i])
		if errors.Is(err, store.ErrConflict) {
			conflicted = true
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("seed achievements: %w", err)
		}
	}
	if conflicted {
		return h.store.ListAchievements(ctx, userID)
	}
	return seeded, nil
}

// evaluateAchievements unlocks every achievement whose threshold the user's
// current counters reach. Failures are logged; they never fail the request
// that triggered the evaluation.
func (h *Handler) evaluateAchievements(ctx context.Context, userID int) {
	log := h.logger.WithField("user_id", userID)
	unlocked, err := h.unlockAchievements(ctx, userID)
	if err != nil {
		log.WithError(err).Warn("achievement evaluation failed")
		return
	}
	for _, a := range unlocked {
		monitoring.RecordAchievement(a.Type)
		log.WithFields(logrus.Fields{"achievement": a.Name, "type": a.Type}).Info("achievement unlocked")
	}
}

func (h *Handler) unlockAchievements(ctx context.Context, userID int) ([]models.Achievement, error) {
	achievements, err := h.achievementsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	counters, err := h.counters(ctx, userID)
	if err != nil {
		return nil, err
	}

	unlocked := hydration.Unlock(achievements, counters, h.now())
	for i := range unlocked {
		if err := h.store.UpdateAchievement(ctx, &unlocked[i]); err != nil {
			return nil, fmt.Errorf("unlock %s: %w", unlocked[i].Name, err)
		}
	}
	return unlocked, nil
}

func (h *Handler) counters(ctx context.Context, userID int) (hydration.Counters, error) {
	var counters hydration.Counters

	count, err := h.store.CountWaterIntake(ctx, userID)
	if err != nil {
		return counters, fmt.Errorf("count intake: %w", err)
	}
	counters.IntakeCount = count

	streak, err := h.store.GetStreak(ctx, userID)
	switch {
	case err == nil:
		counters.LongestStreak = streak.LongestStreak
	case !errors.Is(err, store.ErrNotFound):
		return counters, fmt.Errorf("load streak: %w", err)
	}

	today := h.today()
	from := hydration.DayStart(today.AddDays(1-hydration.MaxLoggingWindow()), h.loc)
	to := hydration.DayStart(today.AddDays(1), h.loc)
	recent, err := h.store.ListWaterIntake(ctx, userID, from, to)
	if err != nil {
		return counters, fmt.Errorf("load recent intake: %w", err)
	}
	counters.LoggingStreak = hydration.LoggingStreak(recent, today, h.loc)

	return counters, nil
}

func (h *Handler) ListAchievements(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	achievements, err := h.achievementsFor(c.Request.Context(), userID)
	if err != nil {
		h.serverError(c, err, "Error loading achievements")
		return
	}
	c.JSON(http.StatusOK, achievements)
}

// ownedAchievement loads the achievement named by :id and checks it belongs to the caller.
func (h *Handler) ownedAchievement(c *gin.Context) (*models.Achievement, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}
	id, ok := idParam(c)
	if !ok {
		return nil, false
	}

	achievement, err := h.store.GetAchievement(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, "Achievement not found")
		return nil, false
	}
	if err != nil {
		h.serverError(c, err, "Error loading achievement")
		return nil, false
	}
	if achievement.UserID != userID {
		fail(c, http.StatusForbidden, "Not allowed to access this achievement")
		return nil, false
	}
	return achievement, true
}

func (h *Handler) GetAchievement(c *gin.Context) {
	achievement, ok := h.ownedAchievement(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, achievement)
}

// UpdateAchievement marks an achievement achieved. The body is optional;
// achieved=false is rejected because unlocks are permanent.
func (h *Handler) UpdateAchievement(c *gin.Context) {
	achievement, ok := h.ownedAchievement(c)
	if !ok {
		return
	}

	var body struct {
		Achieved *bool `json:"achieved"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			fail(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if body.Achieved != nil && !*body.Achieved {
		fail(c, http.StatusBadRequest, "Achievements cannot be revoked")
		return
	}

	if achievement.Achieved {
		c.JSON(http.StatusOK, achievement)
		return
	}

	marked := hydration.MarkAchieved(*achievement, h.now())
	if err := h.store.UpdateAchievement(c.Request.Context(), &marked); err != nil {
		h.serverError(c, err, "Error updating achievement")
		return
	}
	monitoring.RecordAchievement(marked.Type)
	c.JSON(http.StatusOK, marked)
}
