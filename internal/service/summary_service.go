package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/logger"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository"
)

// DefaultHistoryPerPage is the page size for summary history.
const DefaultHistoryPerPage = 10

// Summarizer is the model capability the pipelines depend on. The boolean
// result is the absence value: false means the model was unavailable or the
// call failed, and nothing was logged beyond the gateway's own diagnostics.
type Summarizer interface {
	Ready() bool
	Generate(ctx context.Context, text string) (string, bool)
}

// SummaryService runs the single-item pipeline and serves summary history.
type SummaryService interface {
	// SummarizeText summarizes one text and persists the result for userID.
	// Nothing is persisted when the gateway reports absence.
	SummarizeText(ctx context.Context, userID int64, text string) (string, error)
	// History returns one page of the user's summaries plus the total count.
	History(ctx context.Context, userID int64, page, perPage int) ([]model.Summary, int, error)
	// Recent returns the user's most recent summaries.
	Recent(ctx context.Context, userID int64, limit int) ([]model.Summary, error)
}

type summaryService struct {
	summaries repository.SummaryRepository
	gateway   Summarizer
}

// NewSummaryService creates a new summary service.
func NewSummaryService(summaries repository.SummaryRepository, gateway Summarizer) SummaryService {
	return &summaryService{summaries: summaries, gateway: gateway}
}

func (s *summaryService) SummarizeText(ctx context.Context, userID int64, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: text is required", ErrInvalid)
	}

	summaryText, ok := s.gateway.Generate(ctx, text)
	if !ok {
		return "", ErrSummarize
	}

	if _, err := s.summaries.Create(ctx, model.Summary{
		UserID:       userID,
		OriginalText: text,
		Summary:      summaryText,
		IsBatch:      false,
	}); err != nil {
		return "", fmt.Errorf("save summary: %w", err)
	}

	logger.Debug("summary created",
		"module", "summary", "action", "create", "resource", "summary", "result", "ok",
		"user_id", userID)

	return summaryText, nil
}

func (s *summaryService) History(ctx context.Context, userID int64, page, perPage int) ([]model.Summary, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultHistoryPerPage
	}

	total, err := s.summaries.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("count summaries: %w", err)
	}

	summaries, err := s.summaries.ListByUser(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list summaries: %w", err)
	}

	return summaries, total, nil
}

func (s *summaryService) Recent(ctx context.Context, userID int64, limit int) ([]model.Summary, error) {
	if limit <= 0 {
		limit = 5
	}
	summaries, err := s.summaries.ListByUser(ctx, userID, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return summaries, nil
}
