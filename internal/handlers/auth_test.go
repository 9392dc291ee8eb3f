package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yashnextsavy/HydrationTracker/internal/middleware"
)

func fullRouter(e *testEnv) *gin.Engine {
	router := gin.New()
	e.handler.Routes(router, nil)
	return router
}

func sessionCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == middleware.TokenCookie {
			return cookie
		}
	}
	t.Fatalf("expected %s cookie", middleware.TokenCookie)
	return nil
}

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	router := fullRouter(env)

	resp := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{
		"username": "  river ",
		"password": "Secret123",
	})
	mustStatus(t, resp.Code, http.StatusCreated)

	cookie := sessionCookie(t, resp)
	if !cookie.HttpOnly {
		t.Fatalf("expected HttpOnly session cookie")
	}
	out := decode[map[string]any](t, resp)
	if token, _ := out["token"].(string); token == "" {
		t.Fatalf("expected non-empty token")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(cookie)
	me := httptest.NewRecorder()
	router.ServeHTTP(me, req)
	expectHTTP200(t, me.Code)
	if got := decode[map[string]any](t, me)["username"]; got != "river" {
		t.Fatalf("expected username river, got %v", got)
	}

	login := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"username": "river",
		"password": "Secret123",
	})
	expectHTTP200(t, login.Code)
	sessionCookie(t, login)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	router := fullRouter(env)

	cases := []map[string]string{
		{"username": "ab", "password": "Secret123"},
		{"username": "river", "password": "123"},
		{"password": "Secret123"},
	}
	for _, body := range cases {
		resp := doJSON(t, router, http.MethodPost, "/api/register", body)
		mustStatus(t, resp.Code, http.StatusBadRequest)
		if errorMessage(t, resp) == "" {
			t.Fatalf("expected message for %v", body)
		}
	}

	first := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{"username": "river", "password": "Secret123"})
	mustStatus(t, first.Code, http.StatusCreated)
	dup := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{"username": "River", "password": "Secret123"})
	mustStatus(t, dup.Code, http.StatusBadRequest)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	router := fullRouter(env)
	mustStatus(t, doJSON(t, router, http.MethodPost, "/api/register", map[string]string{"username": "river", "password": "Secret123"}).Code, http.StatusCreated)

	wrong := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{"username": "river", "password": "nope-nope"})
	mustStatus(t, wrong.Code, http.StatusUnauthorized)

	unknown := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{"username": "lake", "password": "Secret123"})
	mustStatus(t, unknown.Code, http.StatusUnauthorized)

	missing := doJSON(t, router, http.MethodPost, "/api/login", map[string]string{"username": "river"})
	mustStatus(t, missing.Code, http.StatusBadRequest)
}

func TestLogoutExpiresCookie(t *testing.T) {
	env := newTestEnv(t)
	resp := doJSON(t, fullRouter(env), http.MethodPost, "/api/logout", nil)
	expectHTTP200(t, resp.Code)

	cookie := sessionCookie(t, resp)
	if cookie.MaxAge >= 0 || cookie.Value != "" {
		t.Fatalf("expected expired empty cookie, got %+v", cookie)
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)
	router := fullRouter(env)

	for _, path := range []string{"/api/settings", "/api/water-intake", "/api/streaks", "/api/achievements", "/api/user"} {
		resp := doJSON(t, router, http.MethodGet, path, nil)
		mustStatus(t, resp.Code, http.StatusUnauthorized)
	}
}
