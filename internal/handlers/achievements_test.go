package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
	"github.com/yashnextsavy/HydrationTracker/internal/store"
)

func listAchievements(t *testing.T, e *testEnv, userID int) []models.Achievement {
	t.Helper()
	resp := doJSON(t, e.router(userID), http.MethodGet, "/api/achievements", nil)
	expectHTTP200(t, resp.Code)
	return decode[[]models.Achievement](t, resp)
}

func TestListAchievementsSeedsDefaultsOnce(t *testing.T) {
	env := newTestEnv(t)

	first := listAchievements(t, env, 1)
	if len(first) != 5 {
		t.Fatalf("expected 5 default achievements, got %d", len(first))
	}
	for _, a := range first {
		if a.Achieved || a.UserID != 1 {
			t.Fatalf("unexpected seeded achievement: %+v", a)
		}
	}

	second := listAchievements(t, env, 1)
	if len(second) != 5 || second[0].ID != first[0].ID {
		t.Fatalf("expected the same seeded rows, got %+v", second)
	}
}

// slowAchievementStore lets concurrent first reads all observe an empty list.
type slowAchievementStore struct {
	store.Store
}

func (s slowAchievementStore) ListAchievements(ctx context.Context, userID int) ([]models.Achievement, error) {
	time.Sleep(20 * time.Millisecond)
	return s.Store.ListAchievements(ctx, userID)
}

func TestConcurrentFirstReadsSeedOnce(t *testing.T) {
	env := newTestEnv(t)
	env.handler.store = slowAchievementStore{env.store}

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := env.handler.achievementsFor(context.Background(), 1)
			if err == nil && len(got) != 5 {
				err = fmt.Errorf("expected 5 achievements, got %d", len(got))
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("achievementsFor failed: %v", err)
		}
	}

	stored, err := env.store.ListAchievements(context.Background(), 1)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	if len(stored) != 5 {
		t.Fatalf("expected 5 stored achievements, got %d", len(stored))
	}
}

func TestAchievementOwnership(t *testing.T) {
	env := newTestEnv(t)
	owned := listAchievements(t, env, 1)
	path := fmt.Sprintf("/api/achievements/%d", owned[0].ID)

	expectHTTP200(t, doJSON(t, env.router(1), http.MethodGet, path, nil).Code)
	mustStatus(t, doJSON(t, env.router(2), http.MethodGet, path, nil).Code, http.StatusForbidden)
	mustStatus(t, doJSON(t, env.router(2), http.MethodPatch, path, nil).Code, http.StatusForbidden)
	mustStatus(t, doJSON(t, env.router(1), http.MethodGet, "/api/achievements/9999", nil).Code, http.StatusNotFound)
	mustStatus(t, doJSON(t, env.router(1), http.MethodGet, "/api/achievements/abc", nil).Code, http.StatusBadRequest)
}

func TestPatchAchievementIsMonotonic(t *testing.T) {
	env := newTestEnv(t)
	target := listAchievements(t, env, 1)[2]
	path := fmt.Sprintf("/api/achievements/%d", target.ID)

	resp := doJSON(t, env.router(1), http.MethodPatch, path, nil)
	expectHTTP200(t, resp.Code)
	marked := decode[models.Achievement](t, resp)
	if !marked.Achieved || marked.AchievedDate == nil {
		t.Fatalf("expected achieved with a date, got %+v", marked)
	}

	env.clock.Advance(time.Hour)
	again := decode[models.Achievement](t, doJSON(t, env.router(1), http.MethodPatch, path, map[string]bool{"achieved": true}))
	if again.AchievedDate == nil || !again.AchievedDate.Equal(*marked.AchievedDate) {
		t.Fatalf("achievedDate moved: %v -> %v", marked.AchievedDate, again.AchievedDate)
	}

	revoke := doJSON(t, env.router(1), http.MethodPatch, path, map[string]bool{"achieved": false})
	mustStatus(t, revoke.Code, http.StatusBadRequest)

	stored := decode[models.Achievement](t, doJSON(t, env.router(1), http.MethodGet, path, nil))
	if !stored.Achieved {
		t.Fatalf("achievement was revoked")
	}
}

func TestLoggingStreakAchievementUnlocks(t *testing.T) {
	env := newTestEnv(t)

	for day := 0; day < 10; day++ {
		addIntake(t, env, 1, 0.3)
		achieved := map[string]bool{}
		for _, a := range listAchievements(t, env, 1) {
			achieved[a.Name] = a.Achieved
		}
		if day < 9 && achieved["logging_10"] {
			t.Fatalf("logging_10 unlocked early on day %d", day+1)
		}
		if day == 9 && !achieved["logging_10"] {
			t.Fatalf("logging_10 not unlocked after 10 days")
		}
		env.clock.Advance(24 * time.Hour)
	}
}
