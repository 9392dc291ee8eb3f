package monitoring

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hydration"

// Reminder outcomes.
const (
	ReminderSent        = "sent"
	ReminderUndelivered = "undelivered"
	ReminderSuppressed  = "suppressed"
	ReminderFailed      = "failed"
)

var (
	// Registry holds the application collectors served on /metrics.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Current number of in-flight HTTP requests.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests handled.",
	}, []string{"method", "path", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	}, []string{"method", "path"})

	intakeEvents = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "intake",
		Name:      "events_total",
		Help:      "Water intake events recorded.",
	})

	intakeLiters = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "intake",
		Name:      "liters_total",
		Help:      "Liters of water recorded.",
	})

	achievementsUnlocked = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "achievements",
		Name:      "unlocked_total",
		Help:      "Achievements unlocked, by type.",
	}, []string{"type"})

	reminders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "reminders",
		Name:      "ticks_total",
		Help:      "Reminder ticks, by outcome.",
	}, []string{"outcome"})

	reminderTasks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "reminders",
		Name:      "active_tasks",
		Help:      "Users with an armed reminder task.",
	})
)

// Mirrors of the collectors above for the JSON snapshot.
var (
	activeHTTPRequests  atomic.Int64
	totalHTTPRequests   atomic.Uint64
	totalIntakeEvents   atomic.Uint64
	totalRemindersSent  atomic.Uint64
	activeReminderTasks atomic.Int64
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		intakeEvents,
		intakeLiters,
		achievementsUnlocked,
		reminders,
		reminderTasks,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordIntake(liters float64) {
	intakeEvents.Inc()
	totalIntakeEvents.Add(1)
	if liters > 0 {
		intakeLiters.Add(liters)
	}
}

func RecordAchievement(achievementType string) {
	achievementsUnlocked.WithLabelValues(achievementType).Inc()
}

func RecordReminder(outcome string) {
	reminders.WithLabelValues(outcome).Inc()
	if outcome == ReminderSent {
		totalRemindersSent.Add(1)
	}
}

func SetReminderTasks(n int) {
	reminderTasks.Set(float64(n))
	activeReminderTasks.Store(int64(n))
}
