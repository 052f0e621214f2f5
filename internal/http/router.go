// Package http assembles the gin engine from the front and admin route groups.
package http

import (
	"net/http"

	"github.com/AjilAshok/ai-access-platfrom/internal/config"
	"github.com/AjilAshok/ai-access-platfrom/internal/generation"
	"github.com/AjilAshok/ai-access-platfrom/internal/http/api/admin"
	"github.com/AjilAshok/ai-access-platfrom/internal/http/api/front"
	"github.com/AjilAshok/ai-access-platfrom/internal/modelregistry"
	"github.com/AjilAshok/ai-access-platfrom/internal/quota"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NewRouter builds the full HTTP surface.
func NewRouter(cfg *config.Config, db *gorm.DB, registry *modelregistry.Registry, gate *quota.Gate, generator *generation.Generator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	front.RegisterFrontRoutes(r, db, cfg.JWT, registry, gate, generator)
	admin.RegisterAdminRoutes(r, db, cfg.JWT)

	return r
}
