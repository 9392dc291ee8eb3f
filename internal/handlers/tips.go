package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashnextsavy/HydrationTracker/internal/catalog"
	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

// tips lists hydration tips, loading the built-in catalog into an empty table first.
func (h *Handler) tips(ctx context.Context, category string) ([]models.HydrationTip, error) {
	tips, err := h.store.ListHydrationTips(ctx, category)
	if err != nil || len(tips) > 0 {
		return tips, err
	}

	inserted, err := catalog.EnsureTips(ctx, h.store)
	if err != nil {
		return nil, err
	}
	if inserted == 0 {
		return tips, nil
	}
	return h.store.ListHydrationTips(ctx, category)
}

func (h *Handler) ListHydrationTips(c *gin.Context) {
	params := parseListQueryParams(c.Query("limit"), c.Query("offset"), c.Query("category"))

	tips, err := h.tips(c.Request.Context(), params.Category)
	if err != nil {
		h.serverError(c, err, "Error loading hydration tips")
		return
	}

	start, end := params.page(len(tips))
	c.JSON(http.StatusOK, tips[start:end])
}

func (h *Handler) RandomHydrationTip(c *gin.Context) {
	params := parseListQueryParams("", "", c.Query("category"))

	tips, err := h.tips(c.Request.Context(), params.Category)
	if err != nil {
		h.serverError(c, err, "Error loading hydration tips")
		return
	}
	if len(tips) == 0 {
		fail(c, http.StatusNotFound, "No hydration tips found")
		return
	}
	c.JSON(http.StatusOK, tips[h.pick(len(tips))])
}
