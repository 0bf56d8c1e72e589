package http_test

import (
	"context"
	gohttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	transport "github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/http"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/repository/testutil"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service"
)

func newAuthedToken(t *testing.T) (service.AuthService, string, int64) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := service.NewAuthService(repository.NewUserRepository(db), "test-secret")

	resp, err := svc.Register(context.Background(), "alice", "alice@example.com", "password")
	require.NoError(t, err)
	return svc, resp.Token, resp.User.ID
}

func protectedEcho(authService service.AuthService) *echo.Echo {
	e := echo.New()
	g := e.Group("")
	g.Use(transport.JWTAuthMiddleware(authService))
	g.GET("/protected", func(c echo.Context) error {
		id, _ := c.Get("userID").(int64)
		return c.JSON(gohttp.StatusOK, map[string]int64{"userID": id})
	})
	return e
}

func TestJWTAuthMiddleware_BearerHeader(t *testing.T) {
	svc, token, _ := newAuthedToken(t)
	e := protectedEcho(svc)

	req := httptest.NewRequest(gohttp.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, gohttp.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "userID")
}

func TestJWTAuthMiddleware_CookieFallback(t *testing.T) {
	svc, token, _ := newAuthedToken(t)
	e := protectedEcho(svc)

	req := httptest.NewRequest(gohttp.MethodGet, "/protected", nil)
	req.AddCookie(&gohttp.Cookie{Name: transport.AuthCookieName, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, gohttp.StatusOK, rec.Code)
}

func TestJWTAuthMiddleware_RejectsMissingAndInvalid(t *testing.T) {
	svc, _, _ := newAuthedToken(t)
	e := protectedEcho(svc)

	req := httptest.NewRequest(gohttp.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, gohttp.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(gohttp.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, gohttp.StatusUnauthorized, rec.Code)
}
