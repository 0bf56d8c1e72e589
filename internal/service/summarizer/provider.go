// Package summarizer adapts external language-model APIs into a summarization
// capability with an optional-result contract.
package summarizer

import (
	"context"
	"errors"
)

// Provider defines the interface for summarization model backends.
type Provider interface {
	// Name returns the provider name.
	Name() string
	// Test sends a test message and returns the response.
	Test(ctx context.Context) (string, error)
	// Summarize generates a summary of text bounded by maxWords/minWords.
	Summarize(ctx context.Context, text string, maxWords, minWords int) (string, error)
}

// Config holds the configuration for a summarization provider.
type Config struct {
	Provider string // openai, anthropic, compatible
	APIKey   string
	BaseURL  string // optional for openai, required for compatible
	Model    string
}

// ProviderType constants
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderCompatible = "compatible"
)

var (
	ErrInvalidProvider  = errors.New("invalid provider")
	ErrMissingAPIKey    = errors.New("API key is required")
	ErrMissingBaseURL   = errors.New("base URL is required for compatible provider")
	ErrMissingModel     = errors.New("model is required")
	ErrEmptyResult      = errors.New("model returned no content")
	ErrProviderNotReady = errors.New("provider not initialized")
)

// NewProvider creates a new summarization provider based on the config.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, ErrInvalidProvider
	}
}
