// Package notifier delivers notification text to a Slack-compatible incoming webhook.
package notifier

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/isometry/sonar-slack-bridge/internal/helpers"
	"github.com/isometry/sonar-slack-bridge/internal/models"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"
)

const defaultTimeout = 10 * time.Second

// Sender sends a message to the given destination.
type Sender interface {
	Send(ctx context.Context, webhookURL string, msg models.Message) error
}

// Option is a function that configures a Slack sender.
type Option func(*Slack)

// Slack posts messages to incoming webhooks. A single attempt is made per message.
type Slack struct {
	logger *slog.Logger
	client *http.Client
}

// WithLogger sets the logger instance for the sender.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Slack) {
		s.logger = logger
	}
}

// WithHTTPClient overrides the HTTP client used to reach the webhook.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Slack) {
		s.client = client
	}
}

// WithTimeout bounds each webhook call. Non-positive values keep the default.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Slack) {
		if timeout > 0 {
			s.client = &http.Client{Timeout: timeout}
		}
	}
}

// NewSlack creates a Slack incoming-webhook sender.
func NewSlack(opts ...Option) *Slack {
	_inst := &Slack{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.client == nil {
		_inst.client = &http.Client{Timeout: defaultTimeout}
	}
	return _inst
}

// Send posts {"text": msg.Text} to webhookURL. An empty URL fails without any outbound call.
func (s *Slack) Send(ctx context.Context, webhookURL string, msg models.Message) error {
	if webhookURL == "" {
		return &MissingConfigurationError{}
	}

	s.logger.Debug("posting to incoming webhook...", slog.String("text", helpers.Truncate(msg.Text, 64)))
	err := slack.PostWebhookCustomHTTPContext(ctx, webhookURL, s.client, &slack.WebhookMessage{
		Text: msg.Text,
	})
	if err != nil && !accepted(err) {
		return &TransportError{Cause: err}
	}
	s.logger.Debug("incoming webhook accepted the message")
	return nil
}

// accepted reports whether err is only the client rejecting a 2xx status other than 200.
func accepted(err error) bool {
	var statusErr slack.StatusCodeError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.Code >= http.StatusOK && statusErr.Code < http.StatusMultipleChoices
}
