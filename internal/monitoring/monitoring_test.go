package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

type fakeBackend struct {
	pingErr error
	stats   models.StoreStats
}

func (f fakeBackend) Ping(context.Context) error { return f.pingErr }

func (f fakeBackend) Stats(context.Context) (models.StoreStats, error) {
	if f.pingErr != nil {
		return models.StoreStats{}, f.pingErr
	}
	return f.stats, nil
}

func TestStatusTextReportsStore(t *testing.T) {
	started := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	svc := NewService(started, fakeBackend{}, nil)
	svc.now = func() time.Time { return started.Add(90 * time.Second) }

	text := svc.StatusText(context.Background())
	assert.Contains(t, text, "Uptime: 1m30s")
	assert.Contains(t, text, "Store: ok")
	assert.NotContains(t, text, "DB open connections")

	down := NewService(started, fakeBackend{pingErr: errors.New("refused")}, nil)
	assert.Contains(t, down.StatusText(context.Background()), "Store: error: refused")
}

func TestSnapshotIncludesStoreCounts(t *testing.T) {
	svc := NewService(time.Now(), fakeBackend{stats: models.StoreStats{Users: 3, WaterIntakes: 12, HydrationTips: 10}}, nil)

	snap := svc.Snapshot(context.Background())
	assert.Equal(t, "ok", snap.StoreStatus)
	assert.EqualValues(t, 3, snap.UsersTotal)
	assert.EqualValues(t, 12, snap.WaterIntakesTotal)
	assert.EqualValues(t, 10, snap.HydrationTipsTotal)
	assert.NotEmpty(t, snap.TimestampUTC)
}

func TestRecordHelpersUpdateCollectors(t *testing.T) {
	beforeEvents := testutil.ToFloat64(intakeEvents)
	RecordIntake(0.25)
	assert.Equal(t, beforeEvents+1, testutil.ToFloat64(intakeEvents))

	beforeSent := testutil.ToFloat64(reminders.WithLabelValues(ReminderSent))
	RecordReminder(ReminderSent)
	assert.Equal(t, beforeSent+1, testutil.ToFloat64(reminders.WithLabelValues(ReminderSent)))

	SetReminderTasks(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(reminderTasks))
	SetReminderTasks(0)
}

func TestRequestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestMetricsMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(Handler()))

	_, totalBefore := getHTTPStats()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, totalAfter := getHTTPStats()
	assert.Equal(t, totalBefore+1, totalAfter)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/ping", "204")))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "hydration_http_requests_total"))
}
