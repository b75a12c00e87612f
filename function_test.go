package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentofu/cluster-notifier/internal/message"
	"github.com/opentofu/cluster-notifier/internal/notify"
)

type recordingNotifier struct {
	docs []message.Document
}

func (r *recordingNotifier) Notify(_ context.Context, doc message.Document) error {
	r.docs = append(r.docs, doc)
	return nil
}

func newPubSubEvent(t *testing.T, data any) event.Event {
	t.Helper()

	e := event.New()
	e.SetID("8386398046954305")
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("//pubsub.googleapis.com/projects/my-project/topics/gke-notifications")
	require.NoError(t, e.SetData(event.ApplicationJSON, data))
	return e
}

func TestHandleCloudEvent(t *testing.T) {
	notifier := &recordingNotifier{}
	h := notify.NewHandler(notifier)

	e := newPubSubEvent(t, MessagePublishedData{
		Message: PubSubMessage{
			Attributes: map[string]string{
				"type_url":     "type.googleapis.com/google.foo.Bar",
				"cluster_name": "prod-1",
				"project_id":   "12345",
				"payload":      `{"a": 1}`,
			},
			MessageID: "8386398046954305",
		},
		Subscription: "projects/my-project/subscriptions/notifier",
	})

	require.NoError(t, handleCloudEvent(context.Background(), h, e))
	require.Len(t, notifier.docs, 1)

	summary := notifier.docs[0].Blocks[0].Text.Text
	assert.Contains(t, summary, "`Bar`")
	assert.Contains(t, summary, "`prod-1`")
	assert.Contains(t, summary, "`12345`")
	assert.Equal(t, "```{\n  \"a\": 1\n}```", notifier.docs[0].Blocks[1].Text.Text)
}

func TestHandleCloudEventWithoutAttributes(t *testing.T) {
	notifier := &recordingNotifier{}
	h := notify.NewHandler(notifier)

	e := newPubSubEvent(t, MessagePublishedData{Message: PubSubMessage{MessageID: "1"}})

	require.NoError(t, handleCloudEvent(context.Background(), h, e))
	require.Len(t, notifier.docs, 1)
	assert.Equal(t, "`N/A`\nCluster: `N/A`\nProject number: `N/A`\nDetails:", notifier.docs[0].Blocks[0].Text.Text)
}

func TestHandleCloudEventInvalidPayload(t *testing.T) {
	notifier := &recordingNotifier{}
	h := notify.NewHandler(notifier)

	e := newPubSubEvent(t, MessagePublishedData{Message: PubSubMessage{
		Attributes: map[string]string{"payload": "not json"},
	}})

	err := handleCloudEvent(context.Background(), h, e)
	var parseErr *message.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Empty(t, notifier.docs)
}

func TestHandleCloudEventUndecodableData(t *testing.T) {
	notifier := &recordingNotifier{}
	h := notify.NewHandler(notifier)

	e := event.New()
	e.SetID("1")
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("//pubsub.googleapis.com/projects/my-project/topics/gke-notifications")
	require.NoError(t, e.SetData(event.ApplicationJSON, []byte(`{"message": "not an object"}`)))

	assert.Error(t, handleCloudEvent(context.Background(), h, e))
	assert.Empty(t, notifier.docs)
}
