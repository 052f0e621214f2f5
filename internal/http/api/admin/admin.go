package admin

import (
	"net/http"

	"github.com/AjilAshok/ai-access-platfrom/internal/config"
	"github.com/AjilAshok/ai-access-platfrom/internal/http/api/admin/handlers"
	"github.com/AjilAshok/ai-access-platfrom/internal/http/api/front"
	"github.com/AjilAshok/ai-access-platfrom/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterAdminRoutes registers administrator routes. All of them require an
// authenticated user whose current role is admin.
func RegisterAdminRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig) {
	if r == nil || db == nil {
		return
	}

	adminAPI := r.Group("/api/admin")
	adminAPI.Use(front.UserAuthMiddleware(db, jwtCfg))
	adminAPI.Use(requireAdmin())

	usersHandler := handlers.NewUsersHandler(db)
	adminAPI.GET("/users", usersHandler.List)
	adminAPI.PATCH("/users/:id/limit", usersHandler.UpdateLimit)
	adminAPI.PATCH("/users/:id/status", usersHandler.UpdateStatus)

	analyticsHandler := handlers.NewAnalyticsHandler(db)
	adminAPI.GET("/analytics/daily", analyticsHandler.Daily)
	adminAPI.GET("/analytics/users", analyticsHandler.Users)
	adminAPI.GET("/analytics/models", analyticsHandler.Models)
}

// requireAdmin rejects requests whose authenticated user is not an admin.
// The role comes from the freshly loaded user row, not the token, so role
// changes apply immediately.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("userRole")
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
