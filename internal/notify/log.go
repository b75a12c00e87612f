package notify

import (
	"context"

	"golang.org/x/exp/slog"

	"github.com/opentofu/cluster-notifier/internal/message"
)

// LogNotifier only logs the message. It is used when no webhook is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (l LogNotifier) Notify(_ context.Context, doc message.Document) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("No webhook configured, logging notification", "message", doc)
	return nil
}
