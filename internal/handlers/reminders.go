package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
	"github.com/yashnextsavy/HydrationTracker/internal/reminder"
	"github.com/yashnextsavy/HydrationTracker/internal/store"
)

const maxReminderMessageLength = 500

type reminderSettingsPatch struct {
	Active               *bool   `json:"active"`
	Interval             *int    `json:"interval"`
	StartTime            *string `json:"startTime"`
	EndTime              *string `json:"endTime"`
	Monday               *bool   `json:"monday"`
	Tuesday              *bool   `json:"tuesday"`
	Wednesday            *bool   `json:"wednesday"`
	Thursday             *bool   `json:"thursday"`
	Friday               *bool   `json:"friday"`
	Saturday             *bool   `json:"saturday"`
	Sunday               *bool   `json:"sunday"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// apply copies the set fields onto rs and returns a validation message for
// the result, or "" when it is valid.
func (p reminderSettingsPatch) apply(rs *models.ReminderSettings) string {
	setBool(&rs.Active, p.Active)
	setBool(&rs.Monday, p.Monday)
	setBool(&rs.Tuesday, p.Tuesday)
	setBool(&rs.Wednesday, p.Wednesday)
	setBool(&rs.Thursday, p.Thursday)
	setBool(&rs.Friday, p.Friday)
	setBool(&rs.Saturday, p.Saturday)
	setBool(&rs.Sunday, p.Sunday)
	setBool(&rs.NotificationsEnabled, p.NotificationsEnabled)
	if p.Interval != nil {
		rs.Interval = *p.Interval
	}
	if p.StartTime != nil {
		rs.StartTime = strings.TrimSpace(*p.StartTime)
	}
	if p.EndTime != nil {
		rs.EndTime = strings.TrimSpace(*p.EndTime)
	}

	if rs.Interval < reminder.MinInterval || rs.Interval > reminder.MaxInterval {
		return fmt.Sprintf("Interval must be between %d and %d minutes", reminder.MinInterval, reminder.MaxInterval)
	}
	if _, err := reminder.ParseClock(rs.StartTime); err != nil {
		return "startTime must be in HH:MM format"
	}
	if _, err := reminder.ParseClock(rs.EndTime); err != nil {
		return "endTime must be in HH:MM format"
	}
	return ""
}

func (h *Handler) reminderSettingsFor(ctx context.Context, userID int) (*models.ReminderSettings, error) {
	settings, err := h.store.GetReminderSettings(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	defaults := reminder.DefaultSettings(userID)
	err = h.store.CreateReminderSettings(ctx, &defaults)
	if errors.Is(err, store.ErrConflict) {
		return h.store.GetReminderSettings(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("create default reminder settings: %w", err)
	}
	return &defaults, nil
}

func (h *Handler) GetReminderSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	settings, err := h.reminderSettingsFor(c.Request.Context(), userID)
	if err != nil {
		h.serverError(c, err, "Error loading reminder settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateReminderSettings saves the settings and reschedules the user's reminders.
func (h *Handler) UpdateReminderSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var patch reminderSettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx := c.Request.Context()
	settings, err := h.reminderSettingsFor(ctx, userID)
	if err != nil {
		h.serverError(c, err, "Error loading reminder settings")
		return
	}

	if msg := patch.apply(settings); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}
	if err := h.store.UpdateReminderSettings(ctx, settings); err != nil {
		h.serverError(c, err, "Error updating reminder settings")
		return
	}

	if h.reminders != nil {
		if err := h.reminders.Reconfigure(ctx, userID); err != nil {
			h.logger.WithField("user_id", userID).WithError(err).Warn("rescheduling reminders failed")
		}
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) ListReminderMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	messages, err := h.store.ListReminderMessages(c.Request.Context(), userID)
	if err != nil {
		h.serverError(c, err, "Error loading reminder messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

func validMessage(raw string) (string, bool) {
	text := strings.TrimSpace(raw)
	return text, text != "" && utf8.RuneCountInString(text) <= maxReminderMessageLength
}

func (h *Handler) CreateReminderMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var body struct {
		Message  string `json:"message"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	text, valid := validMessage(body.Message)
	if !valid {
		fail(c, http.StatusBadRequest, "Message must be between 1 and 500 characters")
		return
	}

	message := &models.ReminderMessage{UserID: userID, Message: text, IsActive: true}
	setBool(&message.IsActive, body.IsActive)
	if err := h.store.CreateReminderMessage(c.Request.Context(), message); err != nil {
		h.serverError(c, err, "Error creating reminder message")
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *Handler) ownedReminderMessage(c *gin.Context) (*models.ReminderMessage, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}
	id, ok := idParam(c)
	if !ok {
		return nil, false
	}

	message, err := h.store.GetReminderMessage(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		fail(c, http.StatusNotFound, "Reminder message not found")
		return nil, false
	}
	if err != nil {
		h.serverError(c, err, "Error loading reminder message")
		return nil, false
	}
	if message.UserID != userID {
		fail(c, http.StatusForbidden, "Not allowed to modify this reminder message")
		return nil, false
	}
	return message, true
}

func (h *Handler) UpdateReminderMessage(c *gin.Context) {
	message, ok := h.ownedReminderMessage(c)
	if !ok {
		return
	}

	var body struct {
		Message  *string `json:"message"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Message != nil {
		text, valid := validMessage(*body.Message)
		if !valid {
			fail(c, http.StatusBadRequest, "Message must be between 1 and 500 characters")
			return
		}
		message.Message = text
	}
	setBool(&message.IsActive, body.IsActive)

	if err := h.store.UpdateReminderMessage(c.Request.Context(), message); err != nil {
		h.serverError(c, err, "Error updating reminder message")
		return
	}
	c.JSON(http.StatusOK, message)
}

func (h *Handler) DeleteReminderMessage(c *gin.Context) {
	message, ok := h.ownedReminderMessage(c)
	if !ok {
		return
	}

	if err := h.store.DeleteReminderMessage(c.Request.Context(), message.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "Reminder message not found")
			return
		}
		h.serverError(c, err, "Error deleting reminder message")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder message deleted"})
}
