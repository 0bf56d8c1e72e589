package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service"
)

// authCookieName must match the one in internal/http/middleware.go
const authCookieName = "summarizer_auth"

// userIDContextKey is where the JWT middleware stores the authenticated
// user's ID.
const userIDContextKey = "userID"

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Request/Response types

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPublicRoutes registers routes that don't require authentication.
func (h *AuthHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/register", h.Register)
	g.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes registers routes that require authentication.
func (h *AuthHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/auth/me", h.GetCurrentUser)
	g.POST("/auth/logout", h.Logout)
	g.DELETE("/auth/account", h.DeleteAccount)
}

// Register creates a new user account.
// @Summary Register user
// @Description Register a new account with a unique username and email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration info"
// @Success 200 {object} service.AuthResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	resp, err := h.service.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}

	setAuthCookie(c, resp.Token)
	return c.JSON(http.StatusOK, resp)
}

// Login authenticates a user.
// @Summary Login
// @Description Authenticate by email and password; updates last_seen
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Login credentials"
// @Success 200 {object} service.AuthResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	resp, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}

	setAuthCookie(c, resp.Token)
	return c.JSON(http.StatusOK, resp)
}

// GetCurrentUser returns the authenticated user's account.
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} service.User
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Logout clears the auth cookie.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	clearAuthCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// DeleteAccount deletes the authenticated user and all owned summaries.
// @Summary Delete account
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /auth/account [delete]
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	if err := h.service.DeleteAccount(c.Request().Context(), currentUserID(c)); err != nil {
		return writeServiceError(c, err)
	}
	clearAuthCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// currentUserID returns the user ID stored by the JWT middleware.
func currentUserID(c echo.Context) int64 {
	id, _ := c.Get(userIDContextKey).(int64)
	return id
}

// setAuthCookie sets the auth cookie for browser form submissions.
func setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
}

func clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
