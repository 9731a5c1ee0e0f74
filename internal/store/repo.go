package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Purpose   string    // exact purpose match ("" = any)
}

// Explanation is a cached LLM explanation of an element's valence.
type Explanation struct {
	ElementID   string
	Model       string
	Explanation string
	Mnemonic    string
	CreatedAt   time.Time
}

// ExplanationRepo caches explanations per element and model.
type ExplanationRepo interface {
	// Get returns the cached explanation, or nil if there is none.
	Get(ctx context.Context, elementID, model string) (*Explanation, error)

	// Put stores an explanation, replacing any existing one for the same
	// element and model.
	Put(ctx context.Context, e *Explanation) error

	// Delete removes cached explanations for the given elements, or all of
	// them if none are given.
	Delete(ctx context.Context, elementIDs ...string) (int, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// ModelUsage aggregates LLM requests per model.
type ModelUsage struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the LLM request log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// LLMRequests returns the most recent events matching opts, newest first.
	LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// LLMUsageByModel aggregates every recorded request per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
