package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the conversation engine for logging and
// metrics.
//
// Implementations should be fast and non-blocking; heavy work should be
// done asynchronously so as not to delay turn processing.
type Observer interface {
	// OnTurnStart is called when the executor begins processing a turn,
	// before the entry action is invoked.
	OnTurnStart(ctx context.Context, sessionID, flow string)

	// OnTurnCompleted is called when a turn produces a response.
	OnTurnCompleted(ctx context.Context, sessionID, flow string, kind Kind, duration time.Duration)

	// OnTurnFailed is called when a turn aborts with a non-signal error,
	// including contract violations and store failures.
	OnTurnFailed(ctx context.Context, sessionID, flow string, err error)

	// OnScreenResolved is called when a screen produces a value, either
	// from the session cache (cached=true) or from its builder.
	OnScreenResolved(ctx context.Context, sessionID, key string, cached bool)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnTurnStart(ctx context.Context, sessionID, flow string) {}
func (NoopObserver) OnTurnCompleted(ctx context.Context, sessionID, flow string, kind Kind, d time.Duration) {
}
func (NoopObserver) OnTurnFailed(ctx context.Context, sessionID, flow string, err error)      {}
func (NoopObserver) OnScreenResolved(ctx context.Context, sessionID, key string, cached bool) {}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnTurnStart(ctx context.Context, sessionID, flow string) {
	for _, o := range c.observers {
		o.OnTurnStart(ctx, sessionID, flow)
	}
}

func (c *CompositeObserver) OnTurnCompleted(ctx context.Context, sessionID, flow string, kind Kind, d time.Duration) {
	for _, o := range c.observers {
		o.OnTurnCompleted(ctx, sessionID, flow, kind, d)
	}
}

func (c *CompositeObserver) OnTurnFailed(ctx context.Context, sessionID, flow string, err error) {
	for _, o := range c.observers {
		o.OnTurnFailed(ctx, sessionID, flow, err)
	}
}

func (c *CompositeObserver) OnScreenResolved(ctx context.Context, sessionID, key string, cached bool) {
	for _, o := range c.observers {
		o.OnScreenResolved(ctx, sessionID, key, cached)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs turn / screen lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnTurnStart(ctx context.Context, sessionID, flow string) {
	o.Logger.DebugContext(ctx, "turn_start",
		slog.String("session_id", sessionID),
		slog.String("flow", flow),
	)
}

func (o *LoggingObserver) OnTurnCompleted(ctx context.Context, sessionID, flow string, kind Kind, d time.Duration) {
	o.Logger.InfoContext(ctx, "turn_completed",
		slog.String("session_id", sessionID),
		slog.String("flow", flow),
		slog.String("kind", string(kind)),
		slog.Duration("duration", d),
	)
}

func (o *LoggingObserver) OnTurnFailed(ctx context.Context, sessionID, flow string, err error) {
	o.Logger.ErrorContext(ctx, "turn_failed",
		slog.String("session_id", sessionID),
		slog.String("flow", flow),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnScreenResolved(ctx context.Context, sessionID, key string, cached bool) {
	o.Logger.DebugContext(ctx, "screen_resolved",
		slog.String("session_id", sessionID),
		slog.String("screen", key),
		slog.Bool("cached", cached),
	)
}

// BasicMetrics collects simple counters and aggregate turn durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	turnsStarted      atomic.Int64
	turnsCompleted    atomic.Int64
	turnsFailed       atomic.Int64
	screensResolved   atomic.Int64
	screenCacheHits   atomic.Int64
	totalTurnDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	TurnsStarted   int64
	TurnsCompleted int64
	TurnsFailed    int64

	ScreensResolved int64
	ScreenCacheHits int64
	AvgTurnDuration time.Duration
}

func (m *BasicMetrics) OnTurnStart(ctx context.Context, sessionID, flow string) {
	m.turnsStarted.Add(1)
}

func (m *BasicMetrics) OnTurnCompleted(ctx context.Context, sessionID, flow string, kind Kind, d time.Duration) {
	m.turnsCompleted.Add(1)
	m.totalTurnDuration.Add(d.Nanoseconds())
}

func (m *BasicMetrics) OnTurnFailed(ctx context.Context, sessionID, flow string, err error) {
	m.turnsFailed.Add(1)
}

func (m *BasicMetrics) OnScreenResolved(ctx context.Context, sessionID, key string, cached bool) {
	m.screensResolved.Add(1)
	if cached {
		m.screenCacheHits.Add(1)
	}
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	completed := m.turnsCompleted.Load()
	totalNs := m.totalTurnDuration.Load()

	var avg time.Duration
	if completed > 0 {
		avg = time.Duration(totalNs / completed)
	}

	return BasicMetricsSnapshot{
		TurnsStarted:    m.turnsStarted.Load(),
		TurnsCompleted:  completed,
		TurnsFailed:     m.turnsFailed.Load(),
		ScreensResolved: m.screensResolved.Load(),
		ScreenCacheHits: m.screenCacheHits.Load(),
		AvgTurnDuration: avg,
	}
}
