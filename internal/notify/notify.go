package notify

import (
	"context"
	"errors"
	"log"
	"time"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a transient, user-visible alert.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     Variant   `json:"variant"`
	Timestamp   time.Time `json:"timestamp"`
}

// FallbackNotice tells the user that placeholder data replaced live data.
func FallbackNotice(now time.Time) Notification {
	return Notification{
		Title:       "API Connection Issue",
		Description: "Using sample data. Please check your connection and try again later.",
		Variant:     VariantDestructive,
		Timestamp:   now.UTC(),
	}
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(_ context.Context, n Notification) error {
	l.logger.Printf("notify: [%s] %s: %s", n.Variant, n.Title, n.Description)
	return nil
}

// Multi delivers to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
