package handlers

import (
	"net/http"
	"testing"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

func TestGetSettingsCreatesDefaults(t *testing.T) {
	env := newTestEnv(t)
	router := env.router(1)

	resp := doJSON(t, router, http.MethodGet, "/api/settings", nil)
	expectHTTP200(t, resp.Code)

	got := decode[models.Settings](t, resp)
	if got.DailyGoal != 2.0 || got.DefaultCupSize != 250 || !got.SoundEnabled || got.UserID != 1 {
		t.Fatalf("unexpected defaults: %+v", got)
	}

	again := decode[models.Settings](t, doJSON(t, router, http.MethodGet, "/api/settings", nil))
	if again.ID != got.ID {
		t.Fatalf("expected the same settings row, got %d and %d", got.ID, again.ID)
	}
}

func TestUpdateSettingsPersistsValidGoals(t *testing.T) {
	env := newTestEnv(t)
	router := env.router(1)

	for _, goal := range []float64{0.5, 1.25, 2, 7.5, 10} {
		resp := doJSON(t, router, http.MethodPatch, "/api/settings", map[string]any{"dailyGoal": goal})
		expectHTTP200(t, resp.Code)

		stored := decode[models.Settings](t, doJSON(t, router, http.MethodGet, "/api/settings", nil))
		if stored.DailyGoal != goal {
			t.Fatalf("expected goal %v, got %v", goal, stored.DailyGoal)
		}
	}
}

func TestUpdateSettingsRejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	router := env.router(1)

	bodies := []map[string]any{
		{"dailyGoal": 0.49},
		{"dailyGoal": 10.01},
		{"dailyGoal": -1},
		{"defaultCupSize": 10},
		{"defaultCupSize": 5000},
		{"dailyGoal": "lots"},
	}
	for _, body := range bodies {
		resp := doJSON(t, router, http.MethodPatch, "/api/settings", body)
		mustStatus(t, resp.Code, http.StatusBadRequest)
		if errorMessage(t, resp) == "" {
			t.Fatalf("expected message for %v", body)
		}
	}

	stored := decode[models.Settings](t, doJSON(t, router, http.MethodGet, "/api/settings", nil))
	if stored.DailyGoal != 2.0 || stored.DefaultCupSize != 250 {
		t.Fatalf("rejected patch changed settings: %+v", stored)
	}
}

func TestUpdateSettingsPartialPatch(t *testing.T) {
	env := newTestEnv(t)
	router := env.router(1)

	resp := doJSON(t, router, http.MethodPatch, "/api/settings", map[string]any{"soundEnabled": false, "defaultCupSize": 330})
	expectHTTP200(t, resp.Code)

	got := decode[models.Settings](t, resp)
	if got.SoundEnabled || got.DefaultCupSize != 330 || got.DailyGoal != 2.0 {
		t.Fatalf("unexpected settings: %+v", got)
	}
}
