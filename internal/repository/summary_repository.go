package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/snowflake"
)

type SummaryRepository interface {
	Create(ctx context.Context, summary model.Summary) (model.Summary, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Summary, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	ListByBatch(ctx context.Context, batchID string) ([]model.Summary, error)
	CountByBatch(ctx context.Context, batchID string) (int, error)
}

type summaryRepository struct {
	db dbtx
}

func NewSummaryRepository(db dbtx) SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Create(ctx context.Context, summary model.Summary) (model.Summary, error) {
	summary.ID = snowflake.NextID()
	now := time.Now().UTC()
	summary.CreatedAt = now

	isBatchInt := 0
	if summary.IsBatch {
		isBatchInt = 1
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO summaries (id, user_id, original_text, summary, is_batch, batch_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		summary.ID,
		summary.UserID,
		summary.OriginalText,
		summary.Summary,
		isBatchInt,
		nullableString(summary.BatchID),
		formatTime(now),
	)
	if err != nil {
		return model.Summary{}, err
	}
	return summary, nil
}

func (r *summaryRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Summary, error) {
	query := `SELECT id, user_id, original_text, summary, is_batch, batch_id, created_at
	          FROM summaries WHERE user_id = ?
	          ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
		if offset > 0 {
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func (r *summaryRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *summaryRepository) ListByBatch(ctx context.Context, batchID string) ([]model.Summary, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, original_text, summary, is_batch, batch_id, created_at
		 FROM summaries WHERE batch_id = ? ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func (r *summaryRepository) CountByBatch(ctx context.Context, batchID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries WHERE batch_id = ?`, batchID).Scan(&count)
	return count, err
}

func scanSummaries(rows *sql.Rows) ([]model.Summary, error) {
	var summaries []model.Summary
	for rows.Next() {
		var s model.Summary
		var isBatchInt int
		var batchID sql.NullString
		var createdAt string
		if err := rows.Scan(&s.ID, &s.UserID, &s.OriginalText, &s.Summary, &isBatchInt, &batchID, &createdAt); err != nil {
			return nil, err
		}
		s.IsBatch = isBatchInt == 1
		if batchID.Valid {
			s.BatchID = &batchID.String
		}
		s.CreatedAt, _ = parseTime(createdAt)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
