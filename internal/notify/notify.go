// Package notify delivers reminder notifications to users. Delivery is best
// effort: a notifier reports ErrUndelivered when nobody could receive it.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrUndelivered means no recipient was reachable. It is not a failure.
var ErrUndelivered = errors.New("notification not delivered")

const TypeReminder = "reminder"

type Notification struct {
	Type    string    `json:"type"`
	UserID  int       `json:"userId"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Sound   bool      `json:"sound"`
	SentAt  time.Time `json:"sentAt"`
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Multi fans a notification out to every notifier. It succeeds when at least
// one notifier delivered; otherwise it returns the first error.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var firstErr error
	delivered := false
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		delivered = true
	}
	if delivered {
		return nil
	}
	if firstErr == nil {
		return ErrUndelivered
	}
	return firstErr
}

// LogNotifier writes notifications to the log at debug level and never
// counts as a delivery.
type LogNotifier struct {
	Logger logrus.FieldLogger
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.Logger.WithFields(logrus.Fields{
		"user_id": n.UserID,
		"type":    n.Type,
		"sound":   n.Sound,
	}).Debugf("notification: %s", n.Message)
	return ErrUndelivered
}
