package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/RAGUL-MADHAVAN/AbstractSummarizer/internal/service"
)

// GatewayStatus is the diagnostic surface of the summarization gateway.
type GatewayStatus interface {
	Ready() bool
	ProviderName() string
	RateLimit() int
	TestConnection(ctx context.Context) (string, error)
}

type SummarizeHandler struct {
	summaries service.SummaryService
	batches   service.BatchService
	gateway   GatewayStatus
}

func NewSummarizeHandler(summaries service.SummaryService, batches service.BatchService, gateway GatewayStatus) *SummarizeHandler {
	return &SummarizeHandler{summaries: summaries, batches: batches, gateway: gateway}
}

// Request/Response types

type apiSummarizeRequest struct {
	Text string `json:"text"`
}

type apiSummarizeResponse struct {
	Summary string `json:"summary"`
}

type batchRedirectResponse struct {
	RedirectURL string `json:"redirect_url"`
}

type statusResponse struct {
	Ready      bool   `json:"ready"`
	Provider   string `json:"provider,omitempty"`
	RateLimit  int    `json:"rateLimit"`
	TestResult string `json:"testResult,omitempty"`
	TestError  string `json:"testError,omitempty"`
}

type batchPreviewResponse struct {
	Results     []service.ResultRow `json:"results"`
	Total       int                 `json:"total"`
	DownloadURL string              `json:"downloadUrl"`
}

func (h *SummarizeHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/single", h.SinglePage)
	g.POST("/single", h.Single)
	g.GET("/batch", h.BatchPage)
	g.POST("/batch", h.Batch)
	g.GET("/batch/result/:filename", h.BatchResult)
	g.GET("/download/:filename", h.Download)
	g.GET("/download-template", h.DownloadTemplate)
	g.POST("/api/summarize", h.APISummarize)
	g.GET("/status", h.Status)
}

// Status reports the summarization backend's availability. With test=true it
// also round-trips a test message through the model.
// @Summary Gateway status
// @Tags summarizer
// @Produce json
// @Param test query bool false "Send a test message to the model"
// @Success 200 {object} statusResponse
// @Router /summarizer/status [get]
func (h *SummarizeHandler) Status(c echo.Context) error {
	resp := statusResponse{
		Ready:     h.gateway.Ready(),
		Provider:  h.gateway.ProviderName(),
		RateLimit: h.gateway.RateLimit(),
	}

	if c.QueryParam("test") == "true" && resp.Ready {
		result, err := h.gateway.TestConnection(c.Request().Context())
		if err != nil {
			resp.TestError = err.Error()
		} else {
			resp.TestResult = result
		}
	}

	return c.JSON(http.StatusOK, resp)
}

// SinglePage serves the single-item form.
func (h *SummarizeHandler) SinglePage(c echo.Context) error {
	return c.Render(http.StatusOK, "single.html", map[string]any{})
}

// Single runs the single-item pipeline for a form submission. Programmatic
// callers (X-Requested-With) receive JSON; everyone else a rendered page.
func (h *SummarizeHandler) Single(c echo.Context) error {
	text := c.FormValue("text")

	summary, err := h.summaries.SummarizeText(c.Request().Context(), currentUserID(c), text)
	if err != nil {
		if isProgrammatic(c) {
			return writeServiceError(c, err)
		}
		return c.Render(statusFor(err), "single.html", map[string]any{
			"Flash":     flashFor(err),
			"FlashKind": "danger",
			"Text":      text,
		})
	}

	if isProgrammatic(c) {
		return c.JSON(http.StatusOK, apiSummarizeResponse{Summary: summary})
	}
	return c.Render(http.StatusOK, "result.html", map[string]any{
		"Original": text,
		"Summary":  summary,
	})
}

// BatchPage serves the batch upload form.
func (h *SummarizeHandler) BatchPage(c echo.Context) error {
	return c.Render(http.StatusOK, "batch.html", map[string]any{})
}

// Batch runs the batch pipeline for an uploaded CSV.
// @Summary Batch summarize
// @Description Upload a CSV with an 'abstract' column; every row longer than the threshold is summarized and persisted under one batch ID
// @Tags summarizer
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} batchRedirectResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /summarizer/batch [post]
func (h *SummarizeHandler) Batch(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return h.batchError(c, "No file part", http.StatusBadRequest)
	}
	if file.Filename == "" {
		return h.batchError(c, "No selected file", http.StatusBadRequest)
	}

	src, err := file.Open()
	if err != nil {
		return h.batchError(c, "Error processing file", http.StatusInternalServerError)
	}
	defer src.Close()

	result, err := h.batches.ProcessBatch(c.Request().Context(), currentUserID(c), file.Filename, src)
	if err != nil {
		if isProgrammatic(c) {
			return writeServiceError(c, err)
		}
		return c.Render(statusFor(err), "batch.html", map[string]any{
			"Flash":     flashFor(err),
			"FlashKind": "danger",
		})
	}

	if isProgrammatic(c) {
		return c.JSON(http.StatusOK, batchRedirectResponse{
			RedirectURL: "/summarizer/batch/result/" + result.Filename,
		})
	}

	preview := result.Rows
	if len(preview) > service.PreviewLimit {
		preview = preview[:service.PreviewLimit]
	}
	return c.Render(http.StatusOK, "batch_result.html", map[string]any{
		"Results":     preview,
		"Total":       result.Total,
		"DownloadURL": "/summarizer/download/" + result.Filename,
	})
}

// BatchResult re-reads a result artifact for preview. Missing artifacts yield
// an empty preview, not an error.
// @Summary Batch result preview
// @Tags summarizer
// @Produce json
// @Param filename path string true "Artifact filename"
// @Success 200 {object} batchPreviewResponse
// @Router /summarizer/batch/result/{filename} [get]
func (h *SummarizeHandler) BatchResult(c echo.Context) error {
	filename := c.Param("filename")

	rows, total, err := h.batches.BatchPreview(c.Request().Context(), filename)
	if err != nil {
		return writeServiceError(c, err)
	}

	downloadURL := "/summarizer/download/" + filename
	if isProgrammatic(c) {
		return c.JSON(http.StatusOK, batchPreviewResponse{
			Results:     rows,
			Total:       total,
			DownloadURL: downloadURL,
		})
	}
	return c.Render(http.StatusOK, "batch_result.html", map[string]any{
		"Results":     rows,
		"Total":       total,
		"DownloadURL": downloadURL,
	})
}

// Download serves a result artifact as an attachment.
func (h *SummarizeHandler) Download(c echo.Context) error {
	path, err := h.batches.ArtifactPath(c.Param("filename"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Attachment(path, c.Param("filename"))
}

// DownloadTemplate serves the CSV upload template.
func (h *SummarizeHandler) DownloadTemplate(c echo.Context) error {
	path, err := h.batches.TemplatePath()
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Attachment(path, service.TemplateFilename)
}

// APISummarize is the JSON single-item endpoint.
// @Summary Summarize text
// @Description Summarize one text and persist the result for the caller
// @Tags summarizer
// @Accept json
// @Produce json
// @Param request body apiSummarizeRequest true "Text to summarize"
// @Success 200 {object} apiSummarizeResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /summarizer/api/summarize [post]
func (h *SummarizeHandler) APISummarize(c echo.Context) error {
	var req apiSummarizeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "No text provided")
	}
	if strings.TrimSpace(req.Text) == "" {
		return Error(c, http.StatusBadRequest, "No text provided")
	}

	summary, err := h.summaries.SummarizeText(c.Request().Context(), currentUserID(c), req.Text)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, apiSummarizeResponse{Summary: summary})
}

func (h *SummarizeHandler) batchError(c echo.Context, msg string, status int) error {
	if isProgrammatic(c) {
		return Error(c, status, msg)
	}
	return c.Render(status, "batch.html", map[string]any{
		"Flash":     msg,
		"FlashKind": "danger",
	})
}
