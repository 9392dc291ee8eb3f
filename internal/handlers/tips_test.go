package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

func TestListHydrationTipsLoadsCatalog(t *testing.T) {
	env := newTestEnv(t)
	router := env.router(1)

	resp := doJSON(t, router, http.MethodGet, "/api/hydration-tips", nil)
	expectHTTP200(t, resp.Code)
	all := decode[[]models.HydrationTip](t, resp)
	if len(all) != 10 {
		t.Fatalf("expected 10 catalog tips, got %d", len(all))
	}

	food := decode[[]models.HydrationTip](t, doJSON(t, router, http.MethodGet, "/api/hydration-tips?category=FOOD", nil))
	if len(food) != 2 {
		t.Fatalf("expected 2 food tips, got %d", len(food))
	}
	for _, tip := range food {
		if tip.Category != "food" {
			t.Fatalf("unexpected category %q", tip.Category)
		}
	}

	page := decode[[]models.HydrationTip](t, doJSON(t, router, http.MethodGet, "/api/hydration-tips?limit=3&offset=8", nil))
	if len(page) != 2 || page[0].ID != all[8].ID {
		t.Fatalf("unexpected page: %+v", page)
	}

	beyond := decode[[]models.HydrationTip](t, doJSON(t, router, http.MethodGet, "/api/hydration-tips?offset=50", nil))
	if len(beyond) != 0 {
		t.Fatalf("expected empty page, got %d", len(beyond))
	}
}

func TestListHydrationTipsKeepsExistingTips(t *testing.T) {
	env := newTestEnv(t)
	custom := &models.HydrationTip{Tip: "Custom tip", Category: "general"}
	if err := env.store.CreateHydrationTip(context.Background(), custom); err != nil {
		t.Fatalf("CreateHydrationTip: %v", err)
	}

	all := decode[[]models.HydrationTip](t, doJSON(t, env.router(1), http.MethodGet, "/api/hydration-tips", nil))
	if len(all) != 1 || all[0].Tip != "Custom tip" {
		t.Fatalf("expected only the custom tip, got %+v", all)
	}

	none := doJSON(t, env.router(1), http.MethodGet, "/api/hydration-tips/random?category=weather", nil)
	mustStatus(t, none.Code, http.StatusNotFound)
}

func TestRandomHydrationTip(t *testing.T) {
	env := newTestEnv(t)
	env.handler.pick = func(n int) int { return n - 1 }

	resp := doJSON(t, env.router(1), http.MethodGet, "/api/hydration-tips/random?category=exercise", nil)
	expectHTTP200(t, resp.Code)
	tip := decode[models.HydrationTip](t, resp)
	if tip.Category != "exercise" || tip.Tip == "" {
		t.Fatalf("unexpected tip: %+v", tip)
	}
}

func TestParseListQueryParams(t *testing.T) {
	p := parseListQueryParams("", "-3", " Food ")
	if p.Limit != defaultPageLimit || p.Offset != 0 || p.Category != "food" {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p := parseListQueryParams("5000", "2", ""); p.Limit != maxPageLimit || p.Offset != 2 {
		t.Fatalf("unexpected clamp: %+v", p)
	}
	if start, end := (listQueryParams{Limit: 5, Offset: 8}).page(10); start != 8 || end != 10 {
		t.Fatalf("unexpected bounds %d:%d", start, end)
	}
}
