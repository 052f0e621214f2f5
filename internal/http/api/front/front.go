package front

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AjilAshok/ai-access-platfrom/internal/config"
	"github.com/AjilAshok/ai-access-platfrom/internal/generation"
	"github.com/AjilAshok/ai-access-platfrom/internal/http/api/front/handlers"
	"github.com/AjilAshok/ai-access-platfrom/internal/modelregistry"
	"github.com/AjilAshok/ai-access-platfrom/internal/models"
	"github.com/AjilAshok/ai-access-platfrom/internal/quota"
	"github.com/AjilAshok/ai-access-platfrom/internal/security"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterFrontRoutes registers public and authenticated end-user routes.
func RegisterFrontRoutes(r *gin.Engine, db *gorm.DB, jwtCfg config.JWTConfig, registry *modelregistry.Registry, gate *quota.Gate, generator *generation.Generator) {
	if r == nil || db == nil {
		return
	}

	api := r.Group("/api")

	authHandler := handlers.NewAuthHandler(db, jwtCfg)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	authed := api.Group("")
	authed.Use(UserAuthMiddleware(db, jwtCfg))

	authed.POST("/auth/logout", authHandler.Logout)

	generateHandler := handlers.NewGenerateHandler(generator)
	authed.POST("/ai/generate", generateHandler.Generate)

	modelsHandler := handlers.NewModelsHandler(registry)
	authed.GET("/models", modelsHandler.List)

	userHandler := handlers.NewUserHandler(db, gate)
	authed.GET("/user/me", userHandler.Me)
	authed.GET("/user/stats", userHandler.Stats)
}

// UserAuthMiddleware validates access JWTs and loads the user into context.
// The user row is read fresh so deactivation applies to the next request.
func UserAuthMiddleware(db *gorm.DB, jwtCfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		claims, errParse := security.ParseAccessToken(jwtCfg.Secret, token)
		if errParse != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		var user models.User
		if errFind := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userRole", user.Role)
		c.Next()
	}
}
