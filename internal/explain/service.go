// Package explain produces LLM explanations of element valences, cached in
// the store per element and model.
package explain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/llm"
	"github.com/abhisek/valenz/internal/store"
)

// ErrUnavailable means no LLM provider is configured.
var ErrUnavailable = errors.New("explanations need an LLM provider (set VALENZ_LLM_PROVIDER and an API key)")

// Config tunes the generation request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the generation defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 400, Temperature: 0.3}
}

// Request asks for an explanation of one element. Chosen is the answer the
// student picked, if any.
type Request struct {
	Element elements.Element
	Chosen  string
}

// Explanation is the result shown to the student.
type Explanation struct {
	ElementID string
	Model     string
	Text      string
	Mnemonic  string

	// Verdict restates the student's choice against the right answer. It is
	// built locally and never cached.
	Verdict string

	// Cached is true when the text came from the store.
	Cached bool
}

// Service generates and caches explanations.
type Service struct {
	provider llm.Provider
	cache    store.ExplanationRepo
	cfg      Config
	log      *zap.Logger
}

// NewService creates a Service. provider may be nil, in which case only
// cached explanations are served and misses return ErrUnavailable. cache may
// be nil to disable caching.
func NewService(provider llm.Provider, cache store.ExplanationRepo, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, cache: cache, cfg: cfg, log: log}
}

// Available reports whether a provider is configured.
func (s *Service) Available() bool {
	return s.provider != nil
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
	Mnemonic    string `json:"mnemonic"`
}

// Explain returns the explanation for req.Element, from cache if possible.
func (s *Service) Explain(ctx context.Context, req Request) (*Explanation, error) {
	if s.provider == nil {
		return nil, ErrUnavailable
	}
	model := s.provider.ModelID()

	if s.cache != nil {
		hit, err := s.cache.Get(ctx, req.Element.Symbol, model)
		if err != nil {
			s.log.Warn("explanation cache lookup", zap.String("element", req.Element.Symbol), zap.Error(err))
		} else if hit != nil {
			return s.result(req, hit.Model, hit.Explanation, hit.Mnemonic, true), nil
		}
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeExplain)
	llmReq := llm.Prompt(systemPrompt, buildUserMessage(req.Element), ExplanationSchema, s.cfg.MaxTokens)
	llmReq.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("explain %s: %w", req.Element.Symbol, err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse explanation response: %w", err)
	}

	if s.cache != nil {
		err := s.cache.Put(ctx, &store.Explanation{
			ElementID:   req.Element.Symbol,
			Model:       model,
			Explanation: out.Explanation,
			Mnemonic:    out.Mnemonic,
		})
		if err != nil {
			s.log.Warn("cache explanation", zap.String("element", req.Element.Symbol), zap.Error(err))
		}
	}

	return s.result(req, model, out.Explanation, out.Mnemonic, false), nil
}

func (s *Service) result(req Request, model, text, mnemonic string, cached bool) *Explanation {
	return &Explanation{
		ElementID: req.Element.Symbol,
		Model:     model,
		Text:      text,
		Mnemonic:  mnemonic,
		Verdict:   verdict(req),
		Cached:    cached,
	}
}

func verdict(req Request) string {
	e := req.Element
	switch req.Chosen {
	case "":
		return fmt.Sprintf("%s has valence %s.", e.Symbol, e.Valency)
	case e.Valency:
		return fmt.Sprintf("Right: %s has valence %s.", e.Symbol, e.Valency)
	default:
		return fmt.Sprintf("You chose %s, but %s has valence %s.", req.Chosen, e.Symbol, e.Valency)
	}
}
