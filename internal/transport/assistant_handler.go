package transport

import (
	"net/http"

	"greenshop/internal/assistant"
	"greenshop/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DescribeRequest asks for a generated product description.
type DescribeRequest struct {
	ProductName string `json:"productName" validate:"required"`
	Features    string `json:"features"`
}

// AskRequest asks a customer question about a product.
type AskRequest struct {
	ProductName string `json:"productName" validate:"required"`
	Description string `json:"description"`
	Question    string `json:"question" validate:"required"`
}

// TextResponse carries generated text. On any upstream failure the text
// is a fixed fallback string, never an error status.
type TextResponse struct {
	Text string `json:"text"`
}

// AssistantHandler handles HTTP requests for AI-generated text.
type AssistantHandler struct {
	generator assistant.Generator
	logger    *zap.Logger
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(generator assistant.Generator, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{generator: generator, logger: logger}
}

// RegisterRoutes registers assistant routes. Describe is admin-only; Ask
// is available to shoppers on the product page.
func (h *AssistantHandler) RegisterRoutes(r chi.Router, adminOnly func(http.Handler) http.Handler) {
	r.Post("/api/assistant/ask", h.Ask)

	r.Group(func(r chi.Router) {
		r.Use(adminOnly)
		r.Post("/api/assistant/describe", h.Describe)
	})
}

// Describe generates a marketing description from a product name and
// feature summary.
func (h *AssistantHandler) Describe(w http.ResponseWriter, r *http.Request) {
	var req DescribeRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Describe validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text := h.generator.GenerateDescription(r.Context(), req.ProductName, req.Features)
	middleware.RespondWithJSON(w, http.StatusOK, TextResponse{Text: text})
}

// Ask answers a customer question about a product.
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Ask validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text := h.generator.AskAboutProduct(r.Context(), req.ProductName, req.Description, req.Question)
	middleware.RespondWithJSON(w, http.StatusOK, TextResponse{Text: text})
}
