package ai

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/analyses"
	"documind-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the auxiliary AI service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the auxiliary AI routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ai/test", h.testConnection)
	rg.POST("/ai/custom-analysis", h.customAnalysis)
	rg.POST("/ai/compare", h.compare)
	rg.POST("/ai/summarize", h.summarize)
	rg.POST("/ai/extract", h.extractInfo)
}

func (h *Handler) testConnection(c *gin.Context) {
	response, err := h.Svc.TestConnection(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to connect to AI service")
		return
	}
	respond.OK(c, gin.H{
		"message":  "AI connection successful",
		"response": response,
		"model":    h.Svc.Model,
	})
}

type customAnalysisRequest struct {
	Text   string `json:"text"`
	Prompt string `json:"prompt"`
}

func (h *Handler) customAnalysis(c *gin.Context) {
	var req customAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" || req.Prompt == "" {
		respond.Error(c, http.StatusBadRequest, "Missing required fields: text and prompt")
		return
	}

	result, err := h.Svc.CustomAnalysis(c.Request.Context(), req.Text, req.Prompt)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to generate custom analysis")
		return
	}

	respond.OK(c, gin.H{
		"result":    result,
		"timestamp": time.Now().UTC(),
	})
}

type compareRequest struct {
	AnalysisID1 string `json:"analysisId1"`
	AnalysisID2 string `json:"analysisId2"`
}

func (h *Handler) compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisID1 == "" || req.AnalysisID2 == "" {
		respond.Error(c, http.StatusBadRequest, "Both analysisId1 and analysisId2 are required")
		return
	}

	comparison, err := h.Svc.Compare(c.Request.Context(), req.AnalysisID1, req.AnalysisID2)
	if err != nil {
		if errors.Is(err, analyses.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "One or both analyses not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to compare documents")
		return
	}

	respond.OK(c, gin.H{
		"document1":  comparison.Document1,
		"document2":  comparison.Document2,
		"comparison": comparison.Comparison,
		"timestamp":  time.Now().UTC(),
	})
}

type summarizeRequest struct {
	AnalysisID string `json:"analysisId"`
	Length     string `json:"length"`
}

func (h *Handler) summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisID == "" {
		respond.Error(c, http.StatusBadRequest, "analysisId is required")
		return
	}

	summary, length, err := h.Svc.Summarize(c.Request.Context(), req.AnalysisID, req.Length)
	if err != nil {
		if errors.Is(err, analyses.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Analysis not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to generate summary")
		return
	}

	respond.OK(c, gin.H{
		"summary":   summary,
		"length":    length,
		"timestamp": time.Now().UTC(),
	})
}

type extractRequest struct {
	AnalysisID     string `json:"analysisId"`
	ExtractionType string `json:"extractionType"`
}

func (h *Handler) extractInfo(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisID == "" || req.ExtractionType == "" {
		respond.Error(c, http.StatusBadRequest, "Both analysisId and extractionType are required")
		return
	}

	result, err := h.Svc.ExtractInfo(c.Request.Context(), req.AnalysisID, req.ExtractionType)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidExtractionType):
			respond.Error(c, http.StatusBadRequest, "Invalid extractionType")
		case errors.Is(err, analyses.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "Analysis not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to extract information")
		}
		return
	}

	respond.OK(c, gin.H{
		"extractionType": req.ExtractionType,
		"result":         result,
		"timestamp":      time.Now().UTC(),
	})
}
