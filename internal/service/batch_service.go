package service

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/logger"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository"
)

const (
	// AbstractColumn is the required input column name.
	AbstractColumn = "abstract"
	// MinAbstractLength is the inclusive skip threshold: abstracts of this
	// length or shorter are excluded from processing without being an error.
	MinAbstractLength = 100
	// PreviewLimit caps the inline result preview.
	PreviewLimit = 5
)

// BatchResult is the outcome of one batch submission.
type BatchResult struct {
	BatchID  string      `json:"batchId"`
	Filename string      `json:"filename"`
	Rows     []ResultRow `json:"rows"`
	Total    int         `json:"total"`
	Skipped  int         `json:"skipped"`
	Failed   int         `json:"failed"`
}

// BatchService runs the batch pipeline and serves result previews.
type BatchService interface {
	// ProcessBatch validates and summarizes an uploaded CSV for userID.
	// Validation failures leave no side effects; per-row model failures
	// exclude the row without aborting the batch.
	ProcessBatch(ctx context.Context, userID int64, filename string, r io.Reader) (*BatchResult, error)
	// BatchPreview re-reads an artifact and returns up to PreviewLimit rows
	// plus the total row count. A missing or unreadable artifact yields an
	// empty preview and zero total, not an error.
	BatchPreview(ctx context.Context, filename string) ([]ResultRow, int, error)
	// ArtifactPath resolves an artifact filename for download.
	ArtifactPath(filename string) (string, error)
	// TemplatePath materializes the upload template and returns its path.
	TemplatePath() (string, error)
}

type batchService struct {
	db        *sql.DB
	gateway   Summarizer
	artifacts *ArtifactStore
}

// NewBatchService creates a new batch service.
func NewBatchService(db *sql.DB, gateway Summarizer, artifacts *ArtifactStore) BatchService {
	return &batchService{db: db, gateway: gateway, artifacts: artifacts}
}

// rowOutcome is the per-row result of batch processing. Skips and model
// failures are ordinary values here, not errors; only structural problems
// (bad file, bad schema, storage) abort a batch.
type rowOutcome int

const (
	rowSummarized rowOutcome = iota
	rowSkipped
	rowFailed
)

type rowResult struct {
	original string
	summary  string
	outcome  rowOutcome
}

func (s *batchService) ProcessBatch(ctx context.Context, userID int64, filename string, r io.Reader) (*BatchResult, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: no selected file", ErrInvalid)
	}
	if strings.ToLower(filepath.Ext(filename)) != ".csv" {
		return nil, fmt.Errorf("%w: only .csv files are accepted", ErrInvalid)
	}

	abstracts, err := readAbstracts(r)
	if err != nil {
		return nil, err
	}

	// One identifier tags every row of this submission and names its
	// artifact; generated before any row is touched.
	batchID := uuid.NewString()

	results := make([]rowResult, 0, len(abstracts))
	for _, abstract := range abstracts {
		results = append(results, s.processRow(ctx, abstract))
	}

	var rows []ResultRow
	var skipped, failed int
	for _, res := range results {
		switch res.outcome {
		case rowSummarized:
			rows = append(rows, ResultRow{Original: res.original, Summary: res.summary})
		case rowSkipped:
			skipped++
		case rowFailed:
			failed++
		}
	}

	artifactName := ArtifactFilename(batchID)
	if err := s.commit(ctx, userID, batchID, artifactName, rows); err != nil {
		return nil, err
	}

	logger.Info("batch processed",
		"module", "batch", "action", "process", "resource", "batch", "result", "ok",
		"user_id", userID, "batch_id", batchID,
		"rows", len(results), "summarized", len(rows), "skipped", skipped, "failed", failed)

	return &BatchResult{
		BatchID:  batchID,
		Filename: artifactName,
		Rows:     rows,
		Total:    len(rows),
		Skipped:  skipped,
		Failed:   failed,
	}, nil
}

// readAbstracts parses the CSV and extracts the abstract column in row order.
func readAbstracts(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse CSV: %v", ErrInvalid, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: CSV must contain an '%s' column", ErrInvalid, AbstractColumn)
	}

	col := -1
	for i, name := range records[0] {
		if strings.TrimSpace(name) == AbstractColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("%w: CSV must contain an '%s' column", ErrInvalid, AbstractColumn)
	}

	var abstracts []string
	for _, record := range records[1:] {
		if col >= len(record) {
			abstracts = append(abstracts, "")
			continue
		}
		abstracts = append(abstracts, record[col])
	}
	return abstracts, nil
}

func (s *batchService) processRow(ctx context.Context, abstract string) rowResult {
	if utf8.RuneCountInString(abstract) <= MinAbstractLength {
		return rowResult{original: abstract, outcome: rowSkipped}
	}

	summaryText, ok := s.gateway.Generate(ctx, abstract)
	if !ok {
		// One bad row never fails the whole batch.
		return rowResult{original: abstract, outcome: rowFailed}
	}

	return rowResult{original: abstract, summary: summaryText, outcome: rowSummarized}
}

// commit stages all successful rows in one transaction, writes the artifact,
// then commits. An artifact write failure rolls the rows back so the caller
// never sees persisted rows without a downloadable result. The artifact
// itself is not transactional: a commit failure after a successful write
// leaves an orphaned file behind.
func (s *batchService) commit(ctx context.Context, userID int64, batchID, artifactName string, rows []ResultRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", ErrBatch, err)
	}
	defer tx.Rollback()

	summaries := repository.NewSummaryRepository(tx)
	for _, row := range rows {
		if _, err := summaries.Create(ctx, model.Summary{
			UserID:       userID,
			OriginalText: row.Original,
			Summary:      row.Summary,
			IsBatch:      true,
			BatchID:      &batchID,
		}); err != nil {
			return fmt.Errorf("%w: stage summary: %v", ErrBatch, err)
		}
	}

	if err := s.artifacts.Write(artifactName, rows); err != nil {
		return fmt.Errorf("%w: write artifact: %v", ErrBatch, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit batch: %v", ErrBatch, err)
	}
	return nil
}

func (s *batchService) BatchPreview(ctx context.Context, filename string) ([]ResultRow, int, error) {
	rows, err := s.artifacts.Read(filename)
	if err != nil {
		// Best-effort convenience view; the database stays authoritative.
		logger.Debug("batch preview unavailable",
			"module", "batch", "action", "preview", "resource", "batch", "result", "failed",
			"filename", filename, "error", err)
		return []ResultRow{}, 0, nil
	}

	total := len(rows)
	if total > PreviewLimit {
		rows = rows[:PreviewLimit]
	}
	return rows, total, nil
}

func (s *batchService) ArtifactPath(filename string) (string, error) {
	path, err := s.artifacts.Path(filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return path, nil
}

func (s *batchService) TemplatePath() (string, error) {
	path, err := s.artifacts.WriteTemplate()
	if err != nil {
		return "", fmt.Errorf("write template: %w", err)
	}
	return path, nil
}
