package handler

import (
	"log/slog"

	"github.com/isometry/sonar-slack-bridge/internal/destination"
	"github.com/isometry/sonar-slack-bridge/internal/metrics"
	"github.com/isometry/sonar-slack-bridge/internal/notifier"
)

// WithLogger sets the logger instance for the handler.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithResolver sets how the destination webhook URL is looked up on every call.
func WithResolver(resolver destination.Resolver) Option {
	return func(h *Handler) {
		h.resolver = resolver
	}
}

// WithSender sets the outbound sender.
func WithSender(sender notifier.Sender) Option {
	return func(h *Handler) {
		h.sender = sender
	}
}

// WithArchive stores every inbound body in the given bucket before it is forwarded.
func WithArchive(archiver Archiver, bucket string) Option {
	return func(h *Handler) {
		h.archiver = archiver
		h.archiveBucket = bucket
	}
}

// WithMetrics sets the outcome recorder.
func WithMetrics(recorder metrics.Recorder) Option {
	return func(h *Handler) {
		h.metrics = recorder
	}
}
