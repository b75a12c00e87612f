package config

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-xray-sdk-go/xray"
	"golang.org/x/exp/slog"

	"github.com/opentofu/cluster-notifier/internal/notify"
	"github.com/opentofu/cluster-notifier/internal/secrets"
	"github.com/opentofu/cluster-notifier/internal/slack"
)

const (
	WebhookURLEnvVar        = "SLACK_WEBHOOK_URL"
	WebhookSecretNameEnvVar = "SLACK_WEBHOOK_SECRET_ASM_NAME"
	WebhookTimeoutEnvVar    = "SLACK_WEBHOOK_TIMEOUT"
)

// Version is reported to X-Ray. Overridden at build time with -ldflags.
var Version = "dev"

type Builder struct {
	IncludeSecretsManager bool
	IncludeTracing        bool

	AWSConfig      aws.Config
	SecretsHandler *secrets.Handler
	WebhookURL     string
	WebhookTimeout time.Duration
}

func NewBuilder(options ...func(*Builder)) *Builder {
	configBuilder := &Builder{}
	for _, option := range options {
		option(configBuilder)
	}
	return configBuilder
}

// WithSecretsManager allows the webhook URL to be read from AWS Secrets Manager.
func WithSecretsManager() func(*Builder) {
	return func(builder *Builder) {
		builder.IncludeSecretsManager = true
	}
}

// WithTracing configures X-Ray and traces outgoing webhook calls.
func WithTracing() func(*Builder) {
	return func(builder *Builder) {
		builder.IncludeTracing = true
	}
}

func (b *Builder) SetupAWS(ctx context.Context) error {
	var err error
	b.AWSConfig, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(os.Getenv("AWS_REGION")))
	return err
}

func (b *Builder) SetupSecrets(ctx context.Context) error {
	if b.SecretsHandler != nil {
		return nil
	}

	if err := b.SetupAWS(ctx); err != nil {
		return fmt.Errorf("could not load AWS configuration: %w", err)
	}
	b.SecretsHandler = secrets.NewHandler(b.AWSConfig)
	return nil
}

// FetchWebhookURL resolves the webhook URL. A URL given directly in the
// environment wins over a Secrets Manager reference. Finding neither is not
// an error; notifications are then only logged.
func (b *Builder) FetchWebhookURL(ctx context.Context) error {
	if url := os.Getenv(WebhookURLEnvVar); url != "" {
		b.WebhookURL = url
		return nil
	}

	if !b.IncludeSecretsManager || os.Getenv(WebhookSecretNameEnvVar) == "" {
		return nil
	}

	if err := b.SetupSecrets(ctx); err != nil {
		return err
	}

	var err error
	b.WebhookURL, err = b.SecretsHandler.GetSecretValueFromEnvReference(ctx, WebhookSecretNameEnvVar)
	return err
}

func (b *Builder) SetupWebhookTimeout() error {
	b.WebhookTimeout = slack.DefaultTimeout

	raw, ok := os.LookupEnv(WebhookTimeoutEnvVar)
	if !ok || raw == "" {
		return nil
	}

	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("could not parse %s: %w", WebhookTimeoutEnvVar, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("%s must be positive, got %s", WebhookTimeoutEnvVar, raw)
	}

	b.WebhookTimeout = timeout
	return nil
}

func (b *Builder) HTTPClient() *http.Client {
	client := &http.Client{Timeout: b.WebhookTimeout}
	if b.IncludeTracing {
		return xray.Client(client)
	}
	return client
}

func (b *Builder) SetupNotifier() notify.Notifier {
	if b.WebhookURL == "" {
		slog.Warn("No Slack webhook configured, notifications will only be logged")
		return notify.LogNotifier{}
	}
	return slack.NewWebhook(b.WebhookURL, b.HTTPClient())
}

func (b *Builder) BuildConfig(ctx context.Context, xraySegmentName string) (config *Config, err error) {
	if b.IncludeTracing {
		if err = xray.Configure(xray.Config{ServiceVersion: Version}); err != nil {
			return nil, fmt.Errorf("could not configure X-Ray: %w", err)
		}

		// At this point we're not part of a request execution, so let's
		// explicitly create a segment to represent the configuration process.
		var segment *xray.Segment
		ctx, segment = xray.BeginSegment(ctx, xraySegmentName)
		defer func() { segment.Close(err) }()
	}

	if err = b.SetupWebhookTimeout(); err != nil {
		return nil, err
	}

	if err = b.FetchWebhookURL(ctx); err != nil {
		return nil, fmt.Errorf("could not get Slack webhook URL: %w", err)
	}

	return &Config{
		Notifier: b.SetupNotifier(),
	}, nil
}
