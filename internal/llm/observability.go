package llm

import (
	"log/slog"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// SlogObserver logs one llm_call record per call.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates an Observer that logs events to logger, or to the
// default logger when nil.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) OnCallComplete(event LLMCallEvent) {
	if event.Success {
		o.logger.Info("llm_call",
			"task", event.Task, "model", event.Model,
			"latency_ms", event.LatencyMs, "attempts", event.Attempts, "status", "ok")
		return
	}
	o.logger.Warn("llm_call",
		"task", event.Task, "model", event.Model,
		"latency_ms", event.LatencyMs, "attempts", event.Attempts,
		"status", "err", "error_code", event.ErrorCode)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
