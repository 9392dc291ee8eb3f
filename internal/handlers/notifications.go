package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Notifications upgrades the request to a WebSocket that receives the
// caller's reminder notifications until it disconnects.
func (h *Handler) Notifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if h.hub == nil {
		fail(c, http.StatusServiceUnavailable, "Notifications are disabled")
		return
	}

	if h.reminders != nil && !h.reminders.Running(userID) {
		if err := h.reminders.Reconfigure(c.Request.Context(), userID); err != nil {
			h.logger.WithField("user_id", userID).WithError(err).Warn("arming reminders failed")
		}
	}

	if err := h.hub.Serve(c.Writer, c.Request, userID); err != nil {
		h.logger.WithField("user_id", userID).WithError(err).Debug("notification socket closed")
	}
}
