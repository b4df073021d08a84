package enhance

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/llm"
	"resume-tailor-backend/internal/shared/server/middleware"
	"resume-tailor-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the enhancement service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the enhancement route. The path keeps the name the
// frontend has always called.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/processResumeWithGemini", h.processResume)
}

func (h *Handler) processResume(c *gin.Context) {
	var req EnhancementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "request body must be JSON with resumeSource and jobDescription", nil)
		return
	}

	requestID := middleware.RequestIDFromContext(c)
	result, raw, err := h.Svc.Enhance(c.Request.Context(), requestID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Default transport is the parsed result as JSON; format=text returns
	// the raw marker-delimited reply for clients that parse themselves.
	if c.Query("format") == "text" {
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(raw))
		return
	}
	respond.OK(c, result)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case IsValidationError(err):
		var vErr *ValidationError
		errors.As(err, &vErr)
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, vErr.Message, []map[string]string{
			{"field": vErr.Field, "issue": vErr.Message},
		})
	case errors.Is(err, ErrNotConfigured):
		// Never leak the missing-secret detail to the client.
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "service configuration error", nil)
	case llm.IsRateLimited(err):
		respond.Error(c, http.StatusTooManyRequests, ErrorCodeRateLimited, "The AI service is busy. Please try again shortly.", nil)
	case IsMalformedResponse(err):
		respond.Error(c, http.StatusInternalServerError, ErrorCodeMalformed, "The AI response could not be processed. Please try again.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeUpstream, "Failed to process resume. Please try again.", nil)
	}
}
