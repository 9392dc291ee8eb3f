package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yashnextsavy/HydrationTracker/internal/middleware"
	"github.com/yashnextsavy/HydrationTracker/internal/monitoring"
)

// Routes registers every endpoint. limiter may be nil.
func (h *Handler) Routes(router *gin.Engine, limiter *middleware.RateLimiter) {
	router.GET("/health", h.HealthCheck)
	router.GET("/metrics", gin.WrapH(monitoring.Handler()))

	api := router.Group("/api")
	api.GET("/status", h.Status)

	monitor := api.Group("/monitor", h.requireMonitoringKey)
	monitor.GET("/status", h.MonitorStatus)
	monitor.GET("/snapshot", h.MonitorSnapshot)

	public := api.Group("")
	if limiter != nil {
		public.Use(limiter.Handler())
	}
	h.registerPublic(public)

	authed := api.Group("", middleware.AuthMiddleware())
	if limiter != nil {
		authed.Use(limiter.Handler())
	}
	h.registerProtected(authed)
}

func (h *Handler) registerPublic(r gin.IRoutes) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

func (h *Handler) registerProtected(r gin.IRoutes) {
	r.GET("/user", h.CurrentUser)

	r.GET("/settings", h.GetSettings)
	r.PATCH("/settings", h.UpdateSettings)

	r.GET("/water-intake", h.GetWaterIntake)
	r.POST("/water-intake", h.AddWaterIntake)
	r.DELETE("/water-intake", h.ClearWaterIntake)
	r.POST("/water-intake/history", h.WaterIntakeHistory)

	r.GET("/reminder-settings", h.GetReminderSettings)
	r.PATCH("/reminder-settings", h.UpdateReminderSettings)

	r.GET("/streaks", h.GetStreak)
	r.PATCH("/streaks", h.UpdateStreak)

	r.GET("/achievements", h.ListAchievements)
	r.GET("/achievements/:id", h.GetAchievement)
	r.PATCH("/achievements/:id", h.UpdateAchievement)

	r.GET("/reminder-messages", h.ListReminderMessages)
	r.POST("/reminder-messages", h.CreateReminderMessage)
	r.PATCH("/reminder-messages/:id", h.UpdateReminderMessage)
	r.DELETE("/reminder-messages/:id", h.DeleteReminderMessage)

	r.GET("/hydration-tips", h.ListHydrationTips)
	r.GET("/hydration-tips/random", h.RandomHydrationTip)

	r.GET("/notifications/ws", h.Notifications)
}
