package service_test

import (
	"context"
	"testing"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository/testutil"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service"

	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (service.AuthService, repository.SummaryRepository) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return service.NewAuthService(repository.NewUserRepository(db), "test-secret"),
		repository.NewSummaryRepository(db)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "alice", "Alice@Example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice", resp.User.Username)
	require.Equal(t, "alice@example.com", resp.User.Email, "email must be normalized")
	require.Contains(t, resp.User.AvatarURL, "gravatar.com")

	login, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	require.False(t, login.User.LastSeen.Before(login.User.MemberSince))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@b.com", "password")
	require.ErrorIs(t, err, service.ErrUsernameRequired)

	_, err = svc.Register(ctx, "a", "", "password")
	require.ErrorIs(t, err, service.ErrEmailRequired)

	_, err = svc.Register(ctx, "a", "a@b.com", "")
	require.ErrorIs(t, err, service.ErrPasswordRequired)

	_, err = svc.Register(ctx, "a", "a@b.com", "12345")
	require.ErrorIs(t, err, service.ErrPasswordTooShort)
}

func TestAuthService_DuplicateUser(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", "bob@example.com", "password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bob", "bob2@example.com", "password")
	require.ErrorIs(t, err, service.ErrUserExists)

	_, err = svc.Register(ctx, "bob2", "bob@example.com", "password")
	require.ErrorIs(t, err, service.ErrUserExists)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "carol", "carol@example.com", "password")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "carol@example.com", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidPassword)

	// Unknown email fails the same way as a bad password
	_, err = svc.Login(ctx, "nobody@example.com", "password")
	require.ErrorIs(t, err, service.ErrInvalidPassword)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "dave", "dave@example.com", "password")
	require.NoError(t, err)

	id, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, id)

	_, err = svc.ValidateToken("not-a-token")
	require.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_UpdateBioSanitizes(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "eve", "eve@example.com", "password")
	require.NoError(t, err)

	user, err := svc.UpdateBio(ctx, resp.User.ID, `hello <script>alert(1)</script>world`)
	require.NoError(t, err)
	require.NotContains(t, user.Bio, "<script>")
	require.Contains(t, user.Bio, "hello")
}

func TestAuthService_DeleteAccountCascades(t *testing.T) {
	svc, summaryRepo := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, "frank", "frank@example.com", "password")
	require.NoError(t, err)

	_, err = summaryRepo.Create(ctx, model.Summary{
		UserID: resp.User.ID, OriginalText: "t", Summary: "s",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(ctx, resp.User.ID))

	_, err = svc.GetUser(ctx, resp.User.ID)
	require.ErrorIs(t, err, service.ErrUserNotFound)

	count, err := summaryRepo.CountByUser(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	require.ErrorIs(t, svc.DeleteAccount(ctx, resp.User.ID), service.ErrUserNotFound)
}
