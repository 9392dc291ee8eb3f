package monitoring

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
)

const probeTimeout = 3 * time.Second

// Backend is what the monitoring service needs from the store.
type Backend interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (models.StoreStats, error)
}

// Service holds runtime context for monitoring and reporting.
type Service struct {
	startedAt time.Time
	backend   Backend
	// dbStats is nil when the store is not backed by database/sql.
	dbStats func() sql.DBStats
	now     func() time.Time
}

type Snapshot struct {
	TimestampUTC          string `json:"timestamp_utc"`
	UptimeSeconds         int64  `json:"uptime_seconds"`
	StoreStatus           string `json:"store_status"`
	HTTPActiveRequests    int64  `json:"http_active_requests"`
	HTTPTotalRequests     uint64 `json:"http_total_requests"`
	DBOpenConnections     int    `json:"db_open_connections"`
	DBInUseConnections    int    `json:"db_in_use_connections"`
	DBWaitCount           int64  `json:"db_wait_count"`
	Goroutines            int    `json:"goroutines"`
	GoMemoryAllocBytes    uint64 `json:"go_memory_alloc_bytes"`
	GoHeapInUseBytes      uint64 `json:"go_heap_in_use_bytes"`
	GoGCCount             uint32 `json:"go_gc_count"`
	UsersTotal            int64  `json:"users_total"`
	WaterIntakesTotal     int64  `json:"water_intakes_total"`
	ReminderMessagesTotal int64  `json:"reminder_messages_total"`
	HydrationTipsTotal    int64  `json:"hydration_tips_total"`
	IntakeEventsRecorded  uint64 `json:"intake_events_recorded"`
	RemindersSent         uint64 `json:"reminders_sent"`
	ReminderTasksActive   int64  `json:"reminder_tasks_active"`
}

func NewService(startedAt time.Time, backend Backend, dbStats func() sql.DBStats) *Service {
	return &Service{startedAt: startedAt, backend: backend, dbStats: dbStats, now: time.Now}
}

func (s *Service) storeState(ctx context.Context) string {
	if err := s.backend.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func (s *Service) StatusText(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	uptime := s.now().Sub(s.startedAt).Round(time.Second)
	activeHTTP, totalHTTP := getHTTPStats()

	lines := []string{
		"Hydration Tracker Status",
		fmt.Sprintf("Uptime: %s", uptime),
		fmt.Sprintf("Store: %s", s.storeState(ctx)),
		fmt.Sprintf("HTTP active requests: %d", activeHTTP),
		fmt.Sprintf("HTTP total requests: %d", totalHTTP),
		fmt.Sprintf("Reminder tasks: %d", activeReminderTasks.Load()),
		fmt.Sprintf("Reminders sent: %d", totalRemindersSent.Load()),
	}
	if s.dbStats != nil {
		lines = append(lines, fmt.Sprintf("DB open connections: %d", s.dbStats().OpenConnections))
	}
	lines = append(lines, fmt.Sprintf("Go goroutines: %d", runtime.NumGoroutine()))
	return strings.Join(lines, "\n")
}

// Snapshot collects a point-in-time view; store counts stay zero when the
// store cannot be reached.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	activeHTTP, totalHTTP := getHTTPStats()
	var memory runtime.MemStats
	runtime.ReadMemStats(&memory)

	now := s.now()
	snap := Snapshot{
		TimestampUTC:         now.UTC().Format(time.RFC3339),
		UptimeSeconds:        int64(now.Sub(s.startedAt).Seconds()),
		StoreStatus:          s.storeState(ctx),
		HTTPActiveRequests:   activeHTTP,
		HTTPTotalRequests:    totalHTTP,
		Goroutines:           runtime.NumGoroutine(),
		GoMemoryAllocBytes:   memory.Alloc,
		GoHeapInUseBytes:     memory.HeapInuse,
		GoGCCount:            memory.NumGC,
		IntakeEventsRecorded: totalIntakeEvents.Load(),
		RemindersSent:        totalRemindersSent.Load(),
		ReminderTasksActive:  activeReminderTasks.Load(),
	}

	if s.dbStats != nil {
		stats := s.dbStats()
		snap.DBOpenConnections = stats.OpenConnections
		snap.DBInUseConnections = stats.InUse
		snap.DBWaitCount = stats.WaitCount
	}

	if counts, err := s.backend.Stats(ctx); err == nil {
		snap.UsersTotal = counts.Users
		snap.WaterIntakesTotal = counts.WaterIntakes
		snap.ReminderMessagesTotal = counts.ReminderMessages
		snap.HydrationTipsTotal = counts.HydrationTips
	}

	return snap
}
