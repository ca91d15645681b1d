package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
)

// SentryHandler wraps an slog.Handler and reports errors to Sentry
type SentryHandler struct {
	handler slog.Handler
	hub     *sentry.Hub
}

// NewSentryHandler creates a new SentryHandler wrapping the given handler.
// Events go to the current hub.
func NewSentryHandler(handler slog.Handler) *SentryHandler {
	return &SentryHandler{handler: handler, hub: sentry.CurrentHub()}
}

// Enabled reports whether the handler handles records at the given level
func (h *SentryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle forwards the record and, for Error level and above, reports the
// "error" attribute to Sentry. Records without one are reported as messages.
func (h *SentryHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		var reported bool
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == "error" {
				if err, ok := a.Value.Any().(error); ok {
					h.hub.CaptureException(err)
					reported = true
					return false
				}
			}
			return true
		})
		if !reported {
			h.hub.CaptureMessage(r.Message)
		}
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new handler with the given attributes
func (h *SentryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SentryHandler{handler: h.handler.WithAttrs(attrs), hub: h.hub}
}

// WithGroup returns a new handler with the given group name
func (h *SentryHandler) WithGroup(name string) slog.Handler {
	return &SentryHandler{handler: h.handler.WithGroup(name), hub: h.hub}
}
