package notify

import (
	"context"
	"log/slog"

	"github.com/example/mcqdrill/pkg/models"
)

// Log writes reminders to a logger
type Log struct {
	logger *slog.Logger
}

// NewLog creates a log notifier
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Notify logs the reminder
func (l *Log) Notify(_ context.Context, summary models.DueSummary) error {
	attrs := make([]any, 0, 2+2*len(summary.BySubject))
	attrs = append(attrs, "due", summary.Total)
	for _, s := range summary.BySubject {
		attrs = append(attrs, slog.Int("subject."+s.Subject, s.Count))
	}
	l.logger.Info("questions due for review", attrs...)
	return nil
}
