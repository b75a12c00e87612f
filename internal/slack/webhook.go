package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
	"golang.org/x/exp/slog"

	"github.com/opentofu/cluster-notifier/internal/message"
)

// DefaultTimeout bounds a single webhook call.
const DefaultTimeout = 10 * time.Second

// StatusCodeError is returned when the webhook answers with a non-success status.
type StatusCodeError = slack.StatusCodeError

// Webhook posts messages to a Slack incoming webhook.
type Webhook struct {
	URL    string
	Client *http.Client
}

func NewWebhook(url string, client *http.Client) *Webhook {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return &Webhook{
		URL:    url,
		Client: client,
	}
}

// Notify makes one attempt at delivering doc. It is not retried.
func (w *Webhook) Notify(ctx context.Context, doc message.Document) error {
	slog.Info("Posting message to Slack webhook", "blocks", len(doc.Blocks))

	msg := &slack.WebhookMessage{Blocks: toBlocks(doc)}
	if err := slack.PostWebhookCustomHTTPContext(ctx, w.URL, w.Client, msg); err != nil && !isSuccessStatus(err) {
		return fmt.Errorf("could not post to slack webhook: %w", err)
	}

	slog.Info("Message posted to Slack webhook")
	return nil
}

// isSuccessStatus reports whether err only complains about a 2xx status other than 200.
func isSuccessStatus(err error) bool {
	var statusErr slack.StatusCodeError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.Code >= http.StatusOK && statusErr.Code < http.StatusMultipleChoices
}

func toBlocks(doc message.Document) *slack.Blocks {
	blocks := make([]slack.Block, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		text := slack.NewTextBlockObject(b.Text.Type, b.Text.Text, false, false)
		blocks = append(blocks, slack.NewSectionBlock(text, nil, nil))
	}
	return &slack.Blocks{BlockSet: blocks}
}
