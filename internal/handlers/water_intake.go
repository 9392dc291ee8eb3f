package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yashnextsavy/HydrationTracker/internal/hydration"
	"github.com/yashnextsavy/HydrationTracker/internal/models"
	"github.com/yashnextsavy/HydrationTracker/internal/monitoring"
)

const (
	// maxIntakeAmount is the largest single intake, in liters.
	maxIntakeAmount = 5.0
	maxHistoryDays  = 366
)

type todayIntake struct {
	Intakes     []models.WaterIntake `json:"intakes"`
	TotalIntake float64              `json:"totalIntake"`
	DailyGoal   float64              `json:"dailyGoal"`
	Progress    int                  `json:"progress"`
	Remaining   float64              `json:"remaining"`
	GoalMet     bool                 `json:"goalMet"`
}

type historyResponse struct {
	Intakes     []models.WaterIntake `json:"intakes"`
	DailyTotals []models.DailyTotal  `json:"dailyTotals"`
}

// GetWaterIntake returns today's intakes and progress towards the goal.
func (h *Handler) GetWaterIntake(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	settings, err := h.settingsFor(ctx, userID)
	if err != nil {
		h.serverError(c, err, "Error loading settings")
		return
	}

	from, to := hydration.DayBounds(h.now(), h.loc)
	intakes, err := h.store.ListWaterIntake(ctx, userID, from, to)
	if err != nil {
		h.serverError(c, err, "Error loading water intake")
		return
	}

	progress := hydration.DailyProgress(hydration.TotalAmount(intakes), settings.DailyGoal)
	c.JSON(http.StatusOK, todayIntake{
		Intakes:     intakes,
		TotalIntake: progress.TotalIntake,
		DailyGoal:   progress.DailyGoal,
		Progress:    progress.Progress,
		Remaining:   progress.Remaining,
		GoalMet:     progress.GoalMet,
	})
}

func (h *Handler) AddWaterIntake(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body struct {
		Amount *float64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Amount == nil {
		fail(c, http.StatusBadRequest, "Amount is required")
		return
	}
	if *body.Amount <= 0 || *body.Amount > maxIntakeAmount {
		fail(c, http.StatusBadRequest, "Amount must be greater than 0 and at most 5 liters")
		return
	}

	ctx := c.Request.Context()
	intake := &models.WaterIntake{
		UserID:    userID,
		Amount:    hydration.RoundLiters(*body.Amount),
		Timestamp: h.now().UTC(),
	}
	if err := h.store.AddWaterIntake(ctx, intake); err != nil {
		h.serverError(c, err, "Error adding water intake")
		return
	}
	monitoring.RecordIntake(intake.Amount)

	h.evaluateAchievements(ctx, userID)
	c.JSON(http.StatusCreated, intake)
}

// ClearWaterIntake removes every intake of the user, for all dates.
func (h *Handler) ClearWaterIntake(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := h.store.DeleteWaterIntakeForUser(c.Request.Context(), userID)
	if err != nil {
		h.serverError(c, err, "Error deleting water intake")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Water intake cleared", "deleted": deleted})
}

func (h *Handler) WaterIntakeHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	start, err := h.parseDay(body.StartDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "startDate must be an ISO date")
		return
	}
	end, err := h.parseDay(body.EndDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "endDate must be an ISO date")
		return
	}
	if end.Before(start) {
		fail(c, http.StatusBadRequest, "endDate must not be before startDate")
		return
	}
	if end.Sub(start.Time) >= maxHistoryDays*24*time.Hour {
		fail(c, http.StatusBadRequest, "History range is limited to 366 days")
		return
	}

	intakes, err := h.store.ListWaterIntake(c.Request.Context(), userID,
		hydration.DayStart(start, h.loc), hydration.DayStart(end.AddDays(1), h.loc))
	if err != nil {
		h.serverError(c, err, "Error loading water intake history")
		return
	}

	c.JSON(http.StatusOK, historyResponse{
		Intakes:     intakes,
		DailyTotals: hydration.DailyTotals(intakes, h.loc),
	})
}

// parseDay accepts YYYY-MM-DD or a full RFC 3339 timestamp, which is mapped
// to its calendar day in the service time zone.
func (h *Handler) parseDay(raw string) (models.Date, error) {
	raw = strings.TrimSpace(raw)
	if day, err := models.ParseDate(raw); err == nil {
		return day, nil
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return models.Date{}, err
	}
	return models.NewDate(ts, h.loc), nil
}
