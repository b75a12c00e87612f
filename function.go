// Package notifier is the Cloud Functions entry point. It receives GKE
// cluster notifications from a Pub/Sub topic and posts them to Slack.
package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	"golang.org/x/exp/slog"

	"github.com/opentofu/cluster-notifier/internal/config"
	"github.com/opentofu/cluster-notifier/internal/message"
	"github.com/opentofu/cluster-notifier/internal/notify"
)

// FunctionName is the entry point name to deploy with.
const FunctionName = "SendToSlack"

func init() {
	functions.CloudEvent(FunctionName, SendToSlack)
}

// MessagePublishedData is the CloudEvent data of a Pub/Sub message publication.
type MessagePublishedData struct {
	Message      PubSubMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

// PubSubMessage carries the notification in its attributes; Data repeats
// the payload and is not used.
type PubSubMessage struct {
	Attributes  map[string]string `json:"attributes"`
	Data        []byte            `json:"data,omitempty"`
	MessageID   string            `json:"messageId"`
	PublishTime string            `json:"publishTime"`
}

var (
	handlerOnce sync.Once
	handler     *notify.Handler
	handlerErr  error
)

func getHandler(ctx context.Context) (*notify.Handler, error) {
	handlerOnce.Do(func() {
		var cfg *config.Config
		cfg, handlerErr = config.NewBuilder().BuildConfig(ctx, "notifier.config")
		if handlerErr != nil {
			return
		}
		handler = cfg.Handler()
	})
	return handler, handlerErr
}

// SendToSlack formats the Pub/Sub message carried by e and posts it to Slack.
func SendToSlack(ctx context.Context, e event.Event) error {
	h, err := getHandler(ctx)
	if err != nil {
		return fmt.Errorf("could not build config: %w", err)
	}
	return handleCloudEvent(ctx, h, e)
}

func handleCloudEvent(ctx context.Context, h *notify.Handler, e event.Event) error {
	slog.Info("Received event", "id", e.ID(), "type", e.Type(), "source", e.Source())

	var data MessagePublishedData
	if err := e.DataAs(&data); err != nil {
		return fmt.Errorf("could not decode Pub/Sub message: %w", err)
	}

	return h.Handle(ctx, notify.Event{
		Attributes: message.AttributesFromMap(data.Message.Attributes),
	})
}
