// Package handler turns an inbound status webhook into an outbound incoming-webhook notification.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/isometry/sonar-slack-bridge/internal/destination"
	"github.com/isometry/sonar-slack-bridge/internal/helpers"
	"github.com/isometry/sonar-slack-bridge/internal/metrics"
	"github.com/isometry/sonar-slack-bridge/internal/models"
	"github.com/isometry/sonar-slack-bridge/internal/notifier"
	"github.com/pkg/errors"
)

// Messages returned to the inbound caller. They never reflect the cause of a failure.
const (
	SuccessMessage = "hello world"
	FailureMessage = "some error happened"
)

// Archiver stores raw inbound payloads.
type Archiver interface {
	PutS3Object(ctx context.Context, id string, bucket string, body []byte) error
}

// Option is a function that configures a Handler.
type Option func(*Handler)

// Handler forwards the status of inbound events to the configured destination.
type Handler struct {
	logger        *slog.Logger
	resolver      destination.Resolver
	sender        notifier.Sender
	archiver      Archiver
	archiveBucket string
	metrics       metrics.Recorder
}

// NewHandler creates a Handler. Without options it reads the destination from SLACK_WEBHOOK_URL
// on every call and posts through the default Slack sender.
func NewHandler(options ...Option) (*Handler, error) {
	_inst := &Handler{}
	for _, opt := range options {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.resolver == nil {
		_inst.resolver = destination.Env(destination.DefaultEnvVar)
	}
	if _inst.sender == nil {
		_inst.sender = notifier.NewSlack(notifier.WithLogger(_inst.logger.With("component", "notifier")))
	}
	if _inst.metrics == nil {
		_inst.metrics = metrics.Noop{}
	}
	if _inst.archiver != nil && _inst.archiveBucket == "" {
		return nil, errors.New("archiving requires a bucket name")
	}
	return _inst, nil
}

// Process handles one inbound event. The returned response is always complete: 200 when the destination
// accepted the message and 500 otherwise. The error carries the internal cause and is meant for
// observability only.
func (h *Handler) Process(ctx context.Context, req models.Request) (models.Response, error) {
	logger := h.logger
	if req.ID != "" {
		logger = logger.With(slog.String("requestID", req.ID))
	}
	logger.Info("processing request...")

	err := h.forward(ctx, logger, req)
	outcome := Outcome(err)
	h.metrics.RecordOutcome(outcome)
	if err != nil {
		logger.Error("failed to forward status", slog.String("outcome", outcome), slog.Any("error", err))
		return newResponse(http.StatusInternalServerError, FailureMessage), err
	}

	logger.Info("status forwarded")
	return newResponse(http.StatusOK, SuccessMessage), nil
}

func (h *Handler) forward(ctx context.Context, logger *slog.Logger, req models.Request) error {
	if req.Body == nil || *req.Body == "" {
		return &MissingBodyError{}
	}
	body := []byte(*req.Body)

	h.archive(ctx, logger, req.ID, body)

	payload, err := ParseStatus(body)
	if err != nil {
		return err
	}
	if !payload.HasStatus() {
		helpers.OnceAMinute.Do(func() {
			logger.Warn("inbound payload has no status field, forwarding empty text")
		})
	}
	msg := models.Message{Text: payload.Text()}
	logger.Debug("parsed status", slog.String("status", helpers.Truncate(msg.Text, 64)))

	webhookURL, err := h.resolver.Resolve(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to resolve destination")
	}

	start := time.Now()
	err = h.sender.Send(ctx, webhookURL, msg)
	if webhookURL != "" {
		h.metrics.RecordForward(time.Since(start))
	}
	return err
}

func (h *Handler) archive(ctx context.Context, logger *slog.Logger, id string, body []byte) {
	if h.archiver == nil {
		return
	}
	if id == "" {
		id = "event"
	}
	if err := h.archiver.PutS3Object(ctx, id, h.archiveBucket, body); err != nil {
		logger.Warn("failed to archive inbound payload", slog.Any("error", err))
	}
}

// ParseStatus reads the status field from a JSON body. Valid JSON that is not an object carries no status;
// a null document is rejected.
func ParseStatus(body []byte) (models.StatusPayload, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return models.StatusPayload{}, nil
		}
		return models.StatusPayload{}, &InvalidJSONError{Cause: err}
	}
	if fields == nil {
		return models.StatusPayload{}, &InvalidJSONError{Cause: errors.New("body is a null document")}
	}
	return models.StatusPayload{Status: fields["status"]}, nil
}

func newResponse(statusCode int, message string) models.Response {
	body, _ := json.Marshal(models.MessageBody{Message: message})
	return models.Response{
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
		StatusCode: statusCode,
	}
}
