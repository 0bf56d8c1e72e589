package model

import "time"

// Summary is one summarization result. Rows created by batch processing carry
// IsBatch=true and a non-empty BatchID shared by every row of the same
// submission; single-item rows have IsBatch=false and a nil BatchID.
// Rows are never mutated after creation.
type Summary struct {
	ID           int64
	UserID       int64
	OriginalText string
	Summary      string
	IsBatch      bool
	BatchID      *string
	CreatedAt    time.Time
}
