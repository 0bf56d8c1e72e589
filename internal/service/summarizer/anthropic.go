package summarizer

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements Provider for the Anthropic API.
type AnthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(apiKey, baseURL, model string) *AnthropicProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &AnthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  model,
	}
}

// Name returns the provider name.
func (p *AnthropicProvider) Name() string {
	return ProviderAnthropic
}

// Test sends a test message and returns the response.
func (p *AnthropicProvider) Test(ctx context.Context) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: 50,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("Hello world")),
		},
	})
	if err != nil {
		return "", err
	}

	return firstTextBlock(resp), nil
}

// Summarize generates a summary bounded by maxWords/minWords.
func (p *AnthropicProvider) Summarize(ctx context.Context, text string, maxWords, minWords int) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model: anthropic.Model(p.model),
		// Words, not tokens; leave generous headroom for the upper bound.
		MaxTokens: int64(maxWords * 4),
		System: []anthropic.TextBlockParam{
			{Text: GetSummarizePrompt(maxWords, minWords)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(firstTextBlock(resp))
	if summary == "" {
		return "", ErrEmptyResult
	}
	return summary, nil
}

// firstTextBlock extracts the first text content block from a response
// (skipping thinking blocks).
func firstTextBlock(resp *anthropic.Message) string {
	for _, block := range resp.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			return v.Text
		}
	}
	return ""
}
