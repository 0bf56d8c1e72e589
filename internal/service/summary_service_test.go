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

// gatewayStub implements service.Summarizer. fail marks inputs whose model
// call should report absence; every other input yields "summary of " + text
// truncated to keep assertions readable.
type gatewayStub struct {
	ready bool
	fail  map[string]bool
	calls int
}

func newGatewayStub() *gatewayStub {
	return &gatewayStub{ready: true, fail: map[string]bool{}}
}

func (g *gatewayStub) Ready() bool { return g.ready }

func (g *gatewayStub) Generate(ctx context.Context, text string) (string, bool) {
	g.calls++
	if !g.ready || g.fail[text] {
		return "", false
	}
	out := text
	if len(out) > 10 {
		out = out[:10]
	}
	return "summary of " + out, true
}

func TestSummarizeText_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, model.User{Username: "u"})
	summaryRepo := repository.NewSummaryRepository(db)
	gw := newGatewayStub()
	svc := service.NewSummaryService(summaryRepo, gw)

	text := "The quick brown fox jumps over the lazy dog, repeatedly, in a long passage."
	got, err := svc.SummarizeText(context.Background(), userID, text)
	require.NoError(t, err)
	require.Equal(t, "summary of The quick ", got)

	rows, err := summaryRepo.ListByUser(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, text, rows[0].OriginalText)
	require.Equal(t, got, rows[0].Summary)
	require.False(t, rows[0].IsBatch)
	require.Nil(t, rows[0].BatchID)
}

func TestSummarizeText_EmptyText(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, model.User{Username: "u"})
	gw := newGatewayStub()
	svc := service.NewSummaryService(repository.NewSummaryRepository(db), gw)

	_, err := svc.SummarizeText(context.Background(), userID, "   ")
	require.ErrorIs(t, err, service.ErrInvalid)
	require.Zero(t, gw.calls, "gateway must not be invoked for empty text")
}

func TestSummarizeText_GatewayFailurePersistsNothing(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, model.User{Username: "u"})
	summaryRepo := repository.NewSummaryRepository(db)
	gw := newGatewayStub()
	gw.ready = false
	svc := service.NewSummaryService(summaryRepo, gw)

	_, err := svc.SummarizeText(context.Background(), userID, "some long enough text")
	require.ErrorIs(t, err, service.ErrSummarize)

	count, err := summaryRepo.CountByUser(context.Background(), userID)
	require.NoError(t, err)
	require.Zero(t, count, "failed summarization must not persist anything")
}

func TestHistory_Pagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, model.User{Username: "u"})
	for i := 0; i < 12; i++ {
		testutil.SeedSummary(t, db, model.Summary{UserID: userID, OriginalText: "t", Summary: "s"})
	}
	svc := service.NewSummaryService(repository.NewSummaryRepository(db), newGatewayStub())

	page1, total, err := svc.History(context.Background(), userID, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 12, total)
	require.Len(t, page1, service.DefaultHistoryPerPage)

	page2, total, err := svc.History(context.Background(), userID, 2, 0)
	require.NoError(t, err)
	require.Equal(t, 12, total)
	require.Len(t, page2, 2)
}

func TestRecent_DefaultsToFive(t *testing.T) {
	db := testutil.NewTestDB(t)
	userID := testutil.SeedUser(t, db, model.User{Username: "u"})
	for i := 0; i < 7; i++ {
		testutil.SeedSummary(t, db, model.Summary{UserID: userID, OriginalText: "t", Summary: "s"})
	}
	svc := service.NewSummaryService(repository.NewSummaryRepository(db), newGatewayStub())

	recent, err := svc.Recent(context.Background(), userID, 0)
	require.NoError(t, err)
	require.Len(t, recent, 5)
}
