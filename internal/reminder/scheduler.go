// Package reminder runs one repeating reminder task per user while the user
// is inside their reminder window.
package reminder

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yashnextsavy/HydrationTracker/internal/models"
	"github.com/yashnextsavy/HydrationTracker/internal/monitoring"
	"github.com/yashnextsavy/HydrationTracker/internal/notify"
	"github.com/yashnextsavy/HydrationTracker/internal/store"
)

const (
	DefaultMessage = "Time to drink some water!"
	notifyTitle    = "Hydration reminder"
	tickTimeout    = 10 * time.Second
	stopTimeout    = 5 * time.Second
)

// Source is the subset of the store the scheduler reads from.
type Source interface {
	GetReminderSettings(ctx context.Context, userID int) (*models.ReminderSettings, error)
	GetSettings(ctx context.Context, userID int) (*models.Settings, error)
	ListReminderMessages(ctx context.Context, userID int) ([]models.ReminderMessage, error)
	ListActiveReminderSettings(ctx context.Context) ([]models.ReminderSettings, error)
}

type task struct {
	entry cron.EntryID
	gen   uint64
}

type Scheduler struct {
	cron     *cron.Cron
	source   Source
	notifier notify.Notifier
	logger   logrus.FieldLogger
	loc      *time.Location

	now  func() time.Time
	pick func(n int) int

	mu      sync.Mutex
	tasks   map[int]task
	nextGen uint64
}

func NewScheduler(source Source, notifier notify.Notifier, logger logrus.FieldLogger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		source:   source,
		notifier: notifier,
		logger:   logger,
		loc:      loc,
		now:      time.Now,
		pick:     rand.Intn,
		tasks:    make(map[int]task),
	}
}

// Start registers the sweep job, arms every user already inside their window
// and starts the cron runner.
func (s *Scheduler) Start(ctx context.Context, sweepSpec string) error {
	if _, err := s.cron.AddFunc(sweepSpec, func() {
		sweepCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := s.Sweep(sweepCtx); err != nil {
			s.logger.WithError(err).Warn("reminder sweep failed")
		}
	}); err != nil {
		return err
	}

	if err := s.Sweep(ctx); err != nil {
		s.logger.WithError(err).Warn("initial reminder sweep failed")
	}
	s.cron.Start()
	return nil
}

// Stop cancels every task and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(stopTimeout):
		s.logger.Warn("timed out waiting for reminder jobs to finish")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, t := range s.tasks {
		s.cron.Remove(t.entry)
		delete(s.tasks, userID)
	}
	monitoring.SetReminderTasks(0)
}

// Running reports whether userID has an armed reminder task.
func (s *Scheduler) Running(userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tasks[userID]
	return ok
}

// Reconfigure cancels the user's task and starts a new one when reminders are
// active and now is inside the window.
func (s *Scheduler) Reconfigure(ctx context.Context, userID int) error {
	s.Cancel(userID)

	settings, err := s.source.GetReminderSettings(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !settings.Active {
		return nil
	}

	window, err := NewWindow(*settings)
	if err != nil {
		return err
	}
	if !window.Contains(s.now().In(s.loc)) {
		return nil
	}

	s.arm(userID, window.Interval)
	return nil
}

func (s *Scheduler) arm(userID int, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// a concurrent Reconfigure may have armed since our Cancel.
	s.cancelLocked(userID, 0)

	s.nextGen++
	gen := s.nextGen
	entry := s.cron.Schedule(cron.Every(interval), cron.FuncJob(func() {
		ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
		defer cancel()
		s.tick(ctx, userID, gen)
	}))
	s.tasks[userID] = task{entry: entry, gen: gen}
	monitoring.SetReminderTasks(len(s.tasks))

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"interval": interval.String(),
	}).Debug("reminder task started")
}

// Cancel stops the user's task if one is running.
func (s *Scheduler) Cancel(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(userID, 0)
}

// cancelLocked removes the task; a non-zero gen only matches that generation.
func (s *Scheduler) cancelLocked(userID int, gen uint64) {
	t, ok := s.tasks[userID]
	if !ok || (gen != 0 && t.gen != gen) {
		return
	}
	s.cron.Remove(t.entry)
	delete(s.tasks, userID)
	monitoring.SetReminderTasks(len(s.tasks))
}

func (s *Scheduler) current(userID int, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[userID]
	return ok && t.gen == gen
}

// tick re-checks the window; outside it the task cancels itself and waits
// for the next Reconfigure or sweep.
func (s *Scheduler) tick(ctx context.Context, userID int, gen uint64) {
	if !s.current(userID, gen) {
		return
	}

	settings, err := s.source.GetReminderSettings(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.WithField("user_id", userID).WithError(err).Warn("loading reminder settings failed")
			return
		}
		s.cancel(userID, gen)
		return
	}

	window, err := NewWindow(*settings)
	if err != nil || !settings.Active || !window.Contains(s.now().In(s.loc)) {
		s.cancel(userID, gen)
		return
	}

	s.emit(ctx, userID, settings)
}

func (s *Scheduler) cancel(userID int, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(userID, gen)
}

func (s *Scheduler) emit(ctx context.Context, userID int, settings *models.ReminderSettings) {
	log := s.logger.WithField("user_id", userID)

	if !settings.NotificationsEnabled {
		monitoring.RecordReminder(monitoring.ReminderSuppressed)
		return
	}

	sound := true
	if userSettings, err := s.source.GetSettings(ctx, userID); err == nil {
		sound = userSettings.SoundEnabled
	} else if !errors.Is(err, store.ErrNotFound) {
		log.WithError(err).Warn("loading settings for reminder failed")
	}

	n := notify.Notification{
		Type:    notify.TypeReminder,
		UserID:  userID,
		Title:   notifyTitle,
		Message: s.message(ctx, userID),
		Sound:   sound,
		SentAt:  s.now().UTC(),
	}

	err := s.notifier.Notify(ctx, n)
	switch {
	case err == nil:
		monitoring.RecordReminder(monitoring.ReminderSent)
	case errors.Is(err, notify.ErrUndelivered):
		monitoring.RecordReminder(monitoring.ReminderUndelivered)
		log.Debug("no connected client for reminder")
	default:
		monitoring.RecordReminder(monitoring.ReminderFailed)
		log.WithError(err).Warn("sending reminder failed")
	}
}

// message picks a random active user message, falling back to DefaultMessage.
func (s *Scheduler) message(ctx context.Context, userID int) string {
	messages, err := s.source.ListReminderMessages(ctx, userID)
	if err != nil {
		s.logger.WithField("user_id", userID).WithError(err).Warn("loading reminder messages failed")
		return DefaultMessage
	}
	active := make([]string, 0, len(messages))
	for _, m := range messages {
		if m.IsActive {
			active = append(active, m.Message)
		}
	}
	if len(active) == 0 {
		return DefaultMessage
	}
	return active[s.pick(len(active))]
}

// Sweep arms every active user that has no running task. It is the external
// re-trigger for tasks that cancelled themselves at the end of a window.
func (s *Scheduler) Sweep(ctx context.Context) error {
	active, err := s.source.ListActiveReminderSettings(ctx)
	if err != nil {
		return err
	}
	for _, settings := range active {
		if s.Running(settings.UserID) {
			continue
		}
		if err := s.Reconfigure(ctx, settings.UserID); err != nil {
			s.logger.WithField("user_id", settings.UserID).WithError(err).Warn("arming reminder failed")
		}
	}
	return nil
}
