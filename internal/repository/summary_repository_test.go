package repository_test

import (
	"context"
	"testing"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestSummaryRepository_CreateAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{Username: "alice"})

	created, err := repo.Create(ctx, model.Summary{
		UserID:       userID,
		OriginalText: "a long abstract",
		Summary:      "short",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.IsBatch)
	require.Nil(t, created.BatchID)

	list, err := repo.ListByUser(ctx, userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "a long abstract", list[0].OriginalText)
	require.Equal(t, "short", list[0].Summary)
	require.False(t, list[0].IsBatch)
	require.Nil(t, list[0].BatchID)
}

func TestSummaryRepository_BatchGrouping(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{Username: "bob"})
	batchID := "d2b1f3a0-0000-0000-0000-000000000001"

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, model.Summary{
			UserID:       userID,
			OriginalText: "abstract",
			Summary:      "summary",
			IsBatch:      true,
			BatchID:      &batchID,
		})
		require.NoError(t, err)
	}
	// One single-item row that must not join the batch
	testutil.SeedSummary(t, db, model.Summary{UserID: userID, OriginalText: "solo", Summary: "s"})

	batch, err := repo.ListByBatch(ctx, batchID)
	require.NoError(t, err)
	require.Len(t, batch, 3)
	for _, s := range batch {
		require.True(t, s.IsBatch)
		require.NotNil(t, s.BatchID)
		require.Equal(t, batchID, *s.BatchID)
	}

	count, err := repo.CountByBatch(ctx, batchID)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	total, err := repo.CountByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 4, total)
}

func TestSummaryRepository_ListByUser_Pagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(db)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{Username: "carol"})
	for i := 0; i < 5; i++ {
		testutil.SeedSummary(t, db, model.Summary{UserID: userID, OriginalText: "t", Summary: "s"})
	}

	page1, err := repo.ListByUser(ctx, userID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)

	page3, err := repo.ListByUser(ctx, userID, 2, 4)
	require.NoError(t, err)
	require.Len(t, page3, 1)
}

func TestSummaryRepository_CreateInTransaction(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()

	userID := testutil.SeedUser(t, db, model.User{Username: "dave"})

	// Rolled-back rows never persist
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	txRepo := repository.NewSummaryRepository(tx)
	_, err = txRepo.Create(ctx, model.Summary{UserID: userID, OriginalText: "t", Summary: "s"})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	count, err := repository.NewSummaryRepository(db).CountByUser(ctx, userID)
	require.NoError(t, err)
	require.Zero(t, count)

	// Committed rows do
	tx, err = db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = repository.NewSummaryRepository(tx).Create(ctx, model.Summary{UserID: userID, OriginalText: "t", Summary: "s"})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	count, err = repository.NewSummaryRepository(db).CountByUser(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestSummaryRepository_NoRows(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(db)

	list, err := repo.ListByBatch(context.Background(), "missing-batch")
	require.NoError(t, err)
	require.Empty(t, list)

	count, err := repo.CountByBatch(context.Background(), "missing-batch")
	require.NoError(t, err)
	require.Zero(t, count)
}
