package tracker

import (
	"context"
	"log/slog"
)

// CallEvent records metadata about a single REST call.
type CallEvent struct {
	Service   string
	Method    string
	Path      string
	Status    int
	LatencyMs int64
	RequestID string
	Err       error
}

// Observer receives events about REST calls.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// SlogObserver logs call events at debug level, failures at warn.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an Observer that logs to logger.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) OnCallComplete(event CallEvent) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("service", event.Service),
		slog.String("method", event.Method),
		slog.String("path", event.Path),
		slog.Int("status", event.Status),
		slog.Int64("latency_ms", event.LatencyMs),
		slog.String("request_id", event.RequestID),
	}
	if event.Err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(context.Background(), level, "tracker_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
