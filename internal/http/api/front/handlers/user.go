package handlers

import (
	"errors"
	"net/http"

	"github.com/AjilAshok/ai-access-platfrom/internal/models"
	"github.com/AjilAshok/ai-access-platfrom/internal/quota"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler handles profile and self-service usage stats endpoints.
type UserHandler struct {
	db   *gorm.DB
	gate *quota.Gate
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(db *gorm.DB, gate *quota.Gate) *UserHandler {
	return &UserHandler{db: db, gate: gate}
}

// Me returns the current user's profile.
func (h *UserHandler) Me(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          user.ID,
		"email":       user.Email,
		"role":        user.Role,
		"daily_limit": user.DailyLimit,
		"is_active":   user.IsActive,
		"created_at":  user.CreatedAt,
	})
}

// Stats returns today's token consumption against the user's ceiling,
// computed fresh on every call.
func (h *UserHandler) Stats(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, errSummary := h.gate.SummaryToday(c.Request.Context(), userID)
	if errSummary != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
