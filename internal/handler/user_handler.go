package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/model"
	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service"
)

type UserHandler struct {
	auth      service.AuthService
	summaries service.SummaryService
}

func NewUserHandler(auth service.AuthService, summaries service.SummaryService) *UserHandler {
	return &UserHandler{auth: auth, summaries: summaries}
}

// Request/Response types

type updateBioRequest struct {
	Bio string `json:"bio"`
}

type summaryResponse struct {
	ID           int64  `json:"id,string"`
	OriginalText string `json:"originalText"`
	Summary      string `json:"summary"`
	IsBatch      bool   `json:"isBatch"`
	BatchID      string `json:"batchId,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

type historyResponse struct {
	Summaries []summaryResponse `json:"summaries"`
	Total     int               `json:"total"`
	Page      int               `json:"page"`
	PerPage   int               `json:"perPage"`
}

type dashboardResponse struct {
	Recent []summaryResponse `json:"recent"`
	Total  int               `json:"total"`
}

func (h *UserHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/user/profile", h.GetProfile)
	g.PUT("/user/profile", h.UpdateProfile)
	g.GET("/user/history", h.GetHistory)
	g.GET("/user/dashboard", h.GetDashboard)
}

// GetProfile returns the authenticated user's profile.
// @Summary Get profile
// @Tags user
// @Produce json
// @Success 200 {object} service.User
// @Failure 401 {object} errorResponse
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.auth.GetUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's bio.
// @Summary Update profile
// @Tags user
// @Accept json
// @Produce json
// @Param request body updateBioRequest true "Profile fields"
// @Success 200 {object} service.User
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateBioRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	user, err := h.auth.UpdateBio(c.Request().Context(), currentUserID(c), req.Bio)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GetHistory returns one page of the user's summaries.
// @Summary Summary history
// @Tags user
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} historyResponse
// @Failure 401 {object} errorResponse
// @Router /user/history [get]
func (h *UserHandler) GetHistory(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	summaries, total, err := h.summaries.History(c.Request().Context(), currentUserID(c), page, service.DefaultHistoryPerPage)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, historyResponse{
		Summaries: toSummaryResponses(summaries),
		Total:     total,
		Page:      page,
		PerPage:   service.DefaultHistoryPerPage,
	})
}

// GetDashboard returns the user's most recent summaries and total count.
// @Summary Dashboard
// @Tags user
// @Produce json
// @Success 200 {object} dashboardResponse
// @Failure 401 {object} errorResponse
// @Router /user/dashboard [get]
func (h *UserHandler) GetDashboard(c echo.Context) error {
	ctx := c.Request().Context()
	userID := currentUserID(c)

	recent, err := h.summaries.Recent(ctx, userID, 5)
	if err != nil {
		return writeServiceError(c, err)
	}
	_, total, err := h.summaries.History(ctx, userID, 1, 1)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Recent: toSummaryResponses(recent),
		Total:  total,
	})
}

func toSummaryResponses(summaries []model.Summary) []summaryResponse {
	out := make([]summaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp := summaryResponse{
			ID:           s.ID,
			OriginalText: s.OriginalText,
			Summary:      s.Summary,
			IsBatch:      s.IsBatch,
			CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		}
		if s.BatchID != nil {
			resp.BatchID = *s.BatchID
		}
		out = append(out, resp)
	}
	return out
}
