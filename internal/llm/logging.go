package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/valenz/internal/store"
)

// EventSink persists LLM request events. store.EventRepo satisfies it.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every request to the log and, when configured, as a
// stored event. Recording failures never fail the request.
type LoggingProvider struct {
	inner  Provider
	log    *zap.Logger
	events EventSink
}

// WithLogging wraps p. log and events may be nil.
func WithLogging(p Provider, log *zap.Logger, events EventSink) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, log: log, events: events}
}

func (l *LoggingProvider) Name() string    { return ProviderName(l.inner) }
func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  ProviderName(l.inner),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.Model = resp.Model
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	fields := []zap.Field{
		zap.String("provider", data.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", data.Purpose),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
		zap.Int64("latency_ms", data.LatencyMs),
	}
	if c := LookupCost(data.Model); c != nil {
		fields = append(fields, zap.Float64("cost_usd", c.Cost(data.InputTokens, data.OutputTokens)))
	}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Info("llm request", fields...)
	}

	if l.events != nil {
		if recErr := l.events.AppendLLMRequest(ctx, data); recErr != nil {
			l.log.Warn("record llm request event", zap.Error(recErr))
		}
	}
	return resp, err
}
