package notify

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/opentofu/cluster-notifier/internal/message"
)

// Event is one externally triggered notification.
type Event struct {
	Attributes message.Attributes `json:"attributes"`
}

// Notifier delivers a formatted message to its destination.
type Notifier interface {
	Notify(ctx context.Context, doc message.Document) error
}

// Handler formats events and hands them to a Notifier.
type Handler struct {
	Notifier Notifier
}

func NewHandler(notifier Notifier) *Handler {
	return &Handler{Notifier: notifier}
}

// Handle formats the event and makes a single delivery attempt.
// Events with an invalid payload are dropped and the ParseError is returned.
func (h *Handler) Handle(ctx context.Context, e Event) error {
	resolved := e.Attributes.Resolve()
	logger := slog.With("type", resolved.ShortTypeName(), "cluster", resolved.ClusterName, "project", resolved.ProjectID)

	doc, err := message.Format(e.Attributes)
	if err != nil {
		var parseErr *message.ParseError
		if errors.As(err, &parseErr) {
			logger.Error("Dropping event with invalid payload", "error", err)
		}
		return fmt.Errorf("could not format message: %w", err)
	}

	if err := h.Notifier.Notify(ctx, doc); err != nil {
		logger.Error("Failed to deliver notification", "error", err)
		return fmt.Errorf("failed to deliver notification: %w", err)
	}

	logger.Info("Notification delivered")
	return nil
}
