package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AjilAshok/ai-access-platfrom/internal/generation"
	"github.com/AjilAshok/ai-access-platfrom/internal/modelregistry"
	"github.com/AjilAshok/ai-access-platfrom/internal/quota"
	"github.com/gin-gonic/gin"
)

// GenerateHandler handles the AI text-generation endpoint.
type GenerateHandler struct {
	generator *generation.Generator
}

// NewGenerateHandler constructs a GenerateHandler.
func NewGenerateHandler(generator *generation.Generator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// generateRequest defines the request body for generation.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// Generate runs the generation workflow for the authenticated user.
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body generateRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	model := strings.TrimSpace(body.Model)
	if model == "" || strings.TrimSpace(body.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model and prompt required"})
		return
	}

	result, errGenerate := h.generator.Generate(c.Request.Context(), userID, model, body.Prompt)
	switch {
	case errGenerate == nil:
		c.JSON(http.StatusOK, result)
	case errors.Is(errGenerate, modelregistry.ErrUnsupportedModel):
		c.JSON(http.StatusBadRequest, gin.H{"error": "model " + model + " not supported"})
	case errors.Is(errGenerate, quota.ErrQuotaExceeded):
		c.JSON(http.StatusForbidden, gin.H{"error": "Daily token limit exceeded"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
	}
}
