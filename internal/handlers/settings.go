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

type settingsPatch struct {
	DailyGoal      *float64 `json:"dailyGoal"`
	DefaultCupSize *int     `json:"defaultCupSize"`
	SoundEnabled   *bool    `json:"soundEnabled"`
}

func (p settingsPatch) validate() string {
	if p.DailyGoal != nil && (*p.DailyGoal < hydration.MinDailyGoal || *p.DailyGoal > hydration.MaxDailyGoal) {
		return "Daily goal must be between 0.5 and 10 liters"
	}
	if p.DefaultCupSize != nil && (*p.DefaultCupSize < hydration.MinCupSize || *p.DefaultCupSize > hydration.MaxCupSize) {
		return "Default cup size must be between 50 and 2000 ml"
	}
	return ""
}

func (p settingsPatch) apply(s *models.Settings) {
	if p.DailyGoal != nil {
		s.DailyGoal = *p.DailyGoal
	}
	if p.DefaultCupSize != nil {
		s.DefaultCupSize = *p.DefaultCupSize
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
}

// settingsFor loads the user's settings, creating the defaults on first access.
func (h *Handler) settingsFor(ctx context.Context, userID int) (*models.Settings, error) {
	settings, err := h.store.GetSettings(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	defaults := hydration.DefaultSettings(userID)
	err = h.store.CreateSettings(ctx, &defaults)
	if errors.Is(err, store.ErrConflict) {
		return h.store.GetSettings(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("create default settings: %w", err)
	}
	return &defaults, nil
}

func (h *Handler) GetSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	settings, err := h.settingsFor(c.Request.Context(), userID)
	if err != nil {
		h.serverError(c, err, "Error loading settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch settingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := patch.validate(); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	ctx := c.Request.Context()
	settings, err := h.settingsFor(ctx, userID)
	if err != nil {
		h.serverError(c, err, "Error loading settings")
		return
	}

	patch.apply(settings)
	if err := h.store.UpdateSettings(ctx, settings); err != nil {
		h.serverError(c, err, "Error updating settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}
