package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/valenz/internal/store"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Millisecond}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	down := &ErrProviderUnavailable{Err: errors.New("down")}
	mock := NewMockProvider(MockResponse{Err: down}, MockResponse{Err: down}, MockResponse{Err: down}, MockResponse{Err: down})
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, down)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	invalid := &ErrInvalidResponse{Err: errors.New("bad")}
	mock := NewMockProvider(MockResponse{Err: invalid}, MockResponse{Err: invalid}, MockResponse{Content: json.RawMessage(`{}`)})
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_NotRetried(t *testing.T) {
	for _, e := range []error{&ErrMaxTokensExceeded{}, context.Canceled, context.DeadlineExceeded} {
		mock := NewMockProvider(MockResponse{Err: e}, MockResponse{Content: json.RawMessage(`{}`)})
		_, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
		assert.Error(t, err)
		assert.Equal(t, 1, mock.CallCount(), "%T must not be retried", e)
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, MockResponse{Content: json.RawMessage(`{}`)})
	cfg := retryConfig()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}

	for attempt, want := range []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond, 800 * time.Millisecond, time.Second} {
		got := r.backoff(attempt, errors.New("x"))
		assert.InDelta(t, float64(want), float64(got), float64(want)*0.21, "attempt %d", attempt)
	}
	assert.Equal(t, 3*time.Second, r.backoff(0, &ErrRateLimit{RetryAfter: 3 * time.Second}))
}

type slowProvider struct{}

func (slowProvider) ModelID() string { return "slow" }
func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	_, err := WithTimeout(slowProvider{}, 5*time.Millisecond).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	mock := NewMockProvider()
	assert.Same(t, Provider(mock), WithTimeout(mock, 0))
}

type recordingSink struct {
	events []store.LLMRequestEventData
	err    error
}

func (s *recordingSink) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	s.events = append(s.events, data)
	return s.err
}

func TestLoggingProvider(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sink := &recordingSink{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: newUsage(7, 3)},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, zap.New(core), sink)
	ctx := WithPurpose(context.Background(), PurposeExplain)

	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	require.Len(t, sink.events, 2)
	assert.Equal(t, "mock", sink.events[0].Provider)
	assert.Equal(t, PurposeExplain, sink.events[0].Purpose)
	assert.Equal(t, 7, sink.events[0].InputTokens)
	assert.True(t, sink.events[0].Success)
	assert.False(t, sink.events[1].Success)
	assert.Contains(t, sink.events[1].ErrorMessage, "down")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "llm request", logs.All()[0].Message)
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestLoggingProvider_SinkFailureDoesNotFailRequest(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := &recordingSink{err: errors.New("db locked")}
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), zap.New(core), sink)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("record llm request event").Len())
}

func TestLoggingProvider_StoreSink(t *testing.T) {
	s, err := store.Open("file::memory:")
	require.NoError(t, err)
	defer s.Close()

	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), nil, s.EventRepo())
	_, err = p.Generate(context.Background(), Request{})
	require.NoError(t, err)

	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM llm_request_events").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestNewProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", ProviderName(p))
	assert.Equal(t, "mock", p.ModelID())

	cfg.Provider = "anthropic"
	_, err = NewProvider(context.Background(), cfg, nil, nil)
	assert.ErrorContains(t, err, "VALENZ_ANTHROPIC_API_KEY")

	cfg.Provider = "carrier-pigeon"
	_, err = NewProvider(context.Background(), cfg, nil, nil)
	assert.Error(t, err)
}
