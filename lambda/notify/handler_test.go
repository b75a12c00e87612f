package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentofu/cluster-notifier/internal/config"
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

func tracedContext(t *testing.T) context.Context {
	t.Helper()

	ctx, segment := xray.BeginSegment(context.Background(), "notify.test")
	t.Cleanup(func() { segment.Close(nil) })
	return ctx
}

func decodeEvent(t *testing.T, raw string) notify.Event {
	t.Helper()

	var e notify.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	return e
}

func TestHandleRequest(t *testing.T) {
	notifier := &recordingNotifier{}
	handle := HandleRequest(&config.Config{Notifier: notifier})

	e := decodeEvent(t, `{
		"attributes": {
			"type_url": "type.googleapis.com/google.foo.Bar",
			"cluster_name": "prod-1",
			"project_id": "12345",
			"payload": "{\"a\": 1}"
		}
	}`)

	require.NoError(t, handle(tracedContext(t), e))
	require.Len(t, notifier.docs, 1)
	assert.Equal(t, "`Bar`\nCluster: `prod-1`\nProject number: `12345`\nDetails:", notifier.docs[0].Blocks[0].Text.Text)
	assert.Equal(t, "```{\n  \"a\": 1\n}```", notifier.docs[0].Blocks[1].Text.Text)
}

func TestHandleRequestDistinguishesMissingFromEmpty(t *testing.T) {
	notifier := &recordingNotifier{}
	handle := HandleRequest(&config.Config{Notifier: notifier})

	e := decodeEvent(t, `{"attributes": {"cluster_name": ""}}`)

	require.NoError(t, handle(tracedContext(t), e))
	require.Len(t, notifier.docs, 1)
	assert.Equal(t, "`N/A`\nCluster: ``\nProject number: `N/A`\nDetails:", notifier.docs[0].Blocks[0].Text.Text)
	assert.Equal(t, "```{}```", notifier.docs[0].Blocks[1].Text.Text)
}

func TestHandleRequestInvalidPayload(t *testing.T) {
	notifier := &recordingNotifier{}
	handle := HandleRequest(&config.Config{Notifier: notifier})

	e := decodeEvent(t, `{"attributes": {"payload": "not json"}}`)

	err := handle(tracedContext(t), e)
	var parseErr *message.ParseError
	assert.True(t, errors.As(err, &parseErr))
	assert.Empty(t, notifier.docs)
}
