package handlers

import (
	"net/http"

	"github.com/AjilAshok/ai-access-platfrom/internal/modelregistry"
	"github.com/gin-gonic/gin"
)

// ModelsHandler handles model discovery.
type ModelsHandler struct {
	registry *modelregistry.Registry
}

// NewModelsHandler constructs a ModelsHandler.
func NewModelsHandler(registry *modelregistry.Registry) *ModelsHandler {
	return &ModelsHandler{registry: registry}
}

// List returns the public model names clients may request.
func (h *ModelsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Names())
}
