package analyses

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"documind-backend/internal/config"
	"documind-backend/internal/extract"
	"documind-backend/internal/llm"
	"documind-backend/internal/notify"
	"documind-backend/internal/shared/server/respond"
	"documind-backend/internal/shared/util"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc       *Service
	UploadDir string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, uploadDir string) *Handler {
	return &Handler{Svc: svc, UploadDir: uploadDir}
}

// RegisterRoutes attaches document analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/analysis/:id", h.getAnalysis)
	rg.GET("/analyses", h.listAnalyses)
	rg.POST("/question", h.askQuestion)
	rg.POST("/focused-summary", h.focusedSummary)
	rg.POST("/resend-email", h.resendEmail)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if strings.Contains(err.Error(), "too large") {
			respond.Error(c, http.StatusBadRequest, "File size exceeds 10MB limit")
			return
		}
		respond.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	sanitized, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid file name")
		return
	}

	// Spool the upload; the pipeline owns deletion from here on.
	tmpPath := filepath.Join(h.UploadDir, uuid.NewString()+"_"+sanitized)
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}

	result, err := h.Svc.Analyze(c.Request.Context(), Upload{
		Path:     tmpPath,
		FileName: fileHeader.Filename,
		Email:    strings.TrimSpace(c.PostForm("email")),
		Notify:   c.PostForm("notifyEmail") == "true",
	})
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat),
			errors.Is(err, extract.ErrExtractionFailed),
			errors.Is(err, ErrInsufficientText):
			respond.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, llm.ErrAnalysis):
			respond.Error(c, http.StatusInternalServerError, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to analyze document")
		}
		return
	}

	respond.OK(c, result)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Analysis not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Failed to retrieve analysis")
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	records, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to retrieve analyses")
		return
	}
	respond.OK(c, records)
}

type questionRequest struct {
	AnalysisID          string     `json:"analysisId"`
	Question            string     `json:"question"`
	ConversationHistory []llm.Turn `json:"conversationHistory"`
}

func (h *Handler) askQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisID == "" || req.Question == "" {
		respond.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	answer, err := h.Svc.Ask(c.Request.Context(), req.AnalysisID, req.Question, req.ConversationHistory)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Analysis not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, gin.H{
		"question":  req.Question,
		"answer":    answer,
		"timestamp": time.Now().UTC(),
	})
}

type focusedSummaryRequest struct {
	AnalysisID string `json:"analysisId"`
	FocusArea  string `json:"focusArea"`
}

func (h *Handler) focusedSummary(c *gin.Context) {
	var req focusedSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisID == "" || req.FocusArea == "" {
		respond.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	summary, err := h.Svc.FocusedSummary(c.Request.Context(), req.AnalysisID, req.FocusArea)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Analysis not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	respond.OK(c, gin.H{
		"focusArea": req.FocusArea,
		"summary":   summary,
		"timestamp": time.Now().UTC(),
	})
}

type resendEmailRequest struct {
	AnalysisID string `json:"analysisId"`
	Email      string `json:"email"`
}

func (h *Handler) resendEmail(c *gin.Context) {
	var req resendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AnalysisID == "" || req.Email == "" {
		respond.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := h.Svc.ResendEmail(c.Request.Context(), req.AnalysisID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "Analysis not found")
		case errors.Is(err, ErrEmailNotConfigured), errors.Is(err, notify.ErrNotification):
			respond.Error(c, http.StatusInternalServerError, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to send email")
		}
		return
	}

	respond.Message(c, "Email sent successfully")
}
