// Package handlers exposes the hydration tracker REST API on gin.
package handlers

import (
	"context"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yashnextsavy/HydrationTracker/internal/middleware"
	"github.com/yashnextsavy/HydrationTracker/internal/models"
	"github.com/yashnextsavy/HydrationTracker/internal/monitoring"
	"github.com/yashnextsavy/HydrationTracker/internal/notify"
	"github.com/yashnextsavy/HydrationTracker/internal/store"
)

// Reminders is the part of the reminder scheduler the API drives.
type Reminders interface {
	Reconfigure(ctx context.Context, userID int) error
	Running(userID int) bool
}

type Options struct {
	Store     store.Store
	Reminders Reminders
	Hub       *notify.Hub
	Monitor   *monitoring.Service
	Logger    logrus.FieldLogger
	Location  *time.Location

	CookieSecure     bool
	MonitoringAPIKey string
}

type Handler struct {
	store     store.Store
	reminders Reminders
	hub       *notify.Hub
	monitor   *monitoring.Service
	logger    logrus.FieldLogger
	loc       *time.Location

	cookieSecure  bool
	monitoringKey string

	now  func() time.Time
	pick func(n int) int
}

func New(opts Options) *Handler {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		store:         opts.Store,
		reminders:     opts.Reminders,
		hub:           opts.Hub,
		monitor:       opts.Monitor,
		logger:        opts.Logger,
		loc:           loc,
		cookieSecure:  opts.CookieSecure,
		monitoringKey: opts.MonitoringAPIKey,
		now:           time.Now,
		pick:          rand.Intn,
	}
}

func (h *Handler) today() models.Date {
	return models.NewDate(h.now(), h.loc)
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// serverError logs err with the request context and answers with a generic 500.
func (h *Handler) serverError(c *gin.Context, err error, message string) {
	entry := h.logger.WithError(err).WithField("request_id", middleware.RequestIDFromContext(c))
	if userID, ok := middleware.UserID(c); ok {
		entry = entry.WithField("user_id", userID)
	}
	entry.Error(message)
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, message)
}

func currentUserID(c *gin.Context) (int, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Not authenticated")
		return 0, false
	}
	return userID, true
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
