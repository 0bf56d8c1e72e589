package summarizer

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/logger"
)

// Default summary length bounds, in words.
const (
	DefaultMaxLength = 130
	DefaultMinLength = 30
)

// GatewayConfig configures a Gateway.
type GatewayConfig struct {
	Provider      Config
	MaxLength     int // defaults to DefaultMaxLength
	MinLength     int // defaults to DefaultMinLength
	RateLimit     int // model calls per second, defaults to DefaultRateLimit
	MaxConcurrent int // in-flight model calls, defaults to 1
}

// Gateway wraps a Provider behind an optional-result contract: Generate never
// returns an error, only an absence value. The underlying model backend is a
// shared, process-wide resource; the gateway serializes access to it so
// concurrent requests can call Generate safely.
//
// Provider construction is best-effort. A gateway whose provider failed to
// build stays callable and reports absence for every call.
type Gateway struct {
	provider  Provider
	limiter   *RateLimiter
	sem       *semaphore.Weighted
	maxLength int
	minLength int
}

// NewGateway builds a Gateway from cfg. A provider construction failure is
// logged and leaves the gateway unready instead of failing startup.
func NewGateway(cfg GatewayConfig) *Gateway {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}

	g := &Gateway{
		limiter:   NewRateLimiter(cfg.RateLimit),
		sem:       semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		maxLength: cfg.MaxLength,
		minLength: cfg.MinLength,
	}

	provider, err := NewProvider(cfg.Provider)
	if err != nil {
		logger.Warn("summarization provider unavailable",
			"module", "summarizer", "action", "init", "resource", "model", "result", "failed",
			"provider", cfg.Provider.Provider, "error", err)
		return g
	}
	g.provider = provider

	logger.Info("summarization provider ready",
		"module", "summarizer", "action", "init", "resource", "model", "result", "ok",
		"provider", provider.Name(), "model", cfg.Provider.Model)
	return g
}

// NewGatewayWithProvider builds a Gateway around an already constructed
// provider. Used by tests and by callers that manage provider lifetime.
func NewGatewayWithProvider(p Provider, cfg GatewayConfig) *Gateway {
	if cfg.MaxLength <= 0 {
		cfg.MaxLength = DefaultMaxLength
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	return &Gateway{
		provider:  p,
		limiter:   NewRateLimiter(cfg.RateLimit),
		sem:       semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		maxLength: cfg.MaxLength,
		minLength: cfg.MinLength,
	}
}

// Ready reports whether the underlying provider was constructed.
func (g *Gateway) Ready() bool {
	return g.provider != nil
}

// ProviderName returns the active provider's name, or "" when unready.
func (g *Gateway) ProviderName() string {
	if g.provider == nil {
		return ""
	}
	return g.provider.Name()
}

// RateLimit returns the current model-call rate limit in QPS.
func (g *Gateway) RateLimit() int {
	return g.limiter.GetLimit()
}

// TestConnection sends a round-trip test message to the model backend.
// Unlike Generate it surfaces the error, so operators can see why the
// backend is failing.
func (g *Gateway) TestConnection(ctx context.Context) (string, error) {
	if g.provider == nil {
		return "", ErrProviderNotReady
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return g.provider.Test(ctx)
}

// Generate summarizes text. The second return value is false when the model
// is unavailable or the call failed; the failure is logged exactly once and
// never propagated.
func (g *Gateway) Generate(ctx context.Context, text string) (string, bool) {
	if g.provider == nil {
		logger.Error("generate summary failed",
			"module", "summarizer", "action", "generate", "resource", "model", "result", "failed",
			"error", "provider not initialized")
		return "", false
	}

	if err := g.limiter.Wait(ctx); err != nil {
		logger.Error("generate summary failed",
			"module", "summarizer", "action", "generate", "resource", "model", "result", "failed",
			"error", err)
		return "", false
	}

	if err := g.sem.Acquire(ctx, 1); err != nil {
		logger.Error("generate summary failed",
			"module", "summarizer", "action", "generate", "resource", "model", "result", "failed",
			"error", err)
		return "", false
	}
	defer g.sem.Release(1)

	summary, err := g.provider.Summarize(ctx, text, g.maxLength, g.minLength)
	if err != nil {
		logger.Error("generate summary failed",
			"module", "summarizer", "action", "generate", "resource", "model", "result", "failed",
			"provider", g.provider.Name(), "error", err)
		return "", false
	}

	return summary, true
}
