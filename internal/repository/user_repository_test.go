package repository_test

import (
	"context"
	"testing"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Bio:          "researcher",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.MemberSince.IsZero())

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	require.Equal(t, "alice", byID.Username)
	require.Equal(t, "researcher", byID.Bio)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	require.Equal(t, created.ID, byEmail.ID)

	byUsername, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	require.Equal(t, created.ID, byUsername.ID)
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)

	u, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestUserRepository_UniqueUsernameAndEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.User{Username: "bob", Email: "other@example.com", PasswordHash: "h"})
	require.Error(t, err)
	require.True(t, repository.IsUniqueViolation(err), "duplicate username must be a unique violation")

	_, err = repo.Create(ctx, model.User{Username: "bob2", Email: "bob@example.com", PasswordHash: "h"})
	require.Error(t, err)
	require.True(t, repository.IsUniqueViolation(err), "duplicate email must be a unique violation")
}

func TestUserRepository_UpdateBioAndLastSeen(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	id := testutil.SeedUser(t, db, model.User{Username: "carol"})

	require.NoError(t, repo.UpdateBio(ctx, id, "new bio"))
	require.NoError(t, repo.UpdateLastSeen(ctx, id))

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "new bio", u.Bio)
	require.False(t, u.LastSeen.Before(u.MemberSince))
}

func TestUserRepository_DeleteCascadesSummaries(t *testing.T) {
	db := testutil.NewTestDB(t)
	userRepo := repository.NewUserRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	ctx := context.Background()

	id := testutil.SeedUser(t, db, model.User{Username: "dave"})
	testutil.SeedSummary(t, db, model.Summary{UserID: id, OriginalText: "text", Summary: "short"})

	count, err := summaryRepo.CountByUser(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, userRepo.Delete(ctx, id))

	count, err = summaryRepo.CountByUser(ctx, id)
	require.NoError(t, err)
	require.Zero(t, count, "summaries must be deleted with their owner")
}
