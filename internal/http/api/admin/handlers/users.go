package handlers

import (
	"net/http"
	"strconv"

	"github.com/AjilAshok/ai-access-platfrom/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UsersHandler handles admin user management endpoints.
type UsersHandler struct {
	db *gorm.DB
}

// NewUsersHandler constructs a UsersHandler.
func NewUsersHandler(db *gorm.DB) *UsersHandler {
	return &UsersHandler{db: db}
}

// userRow is the admin-facing projection of a user account.
type userRow struct {
	ID         uint64 `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	DailyLimit int64  `json:"daily_limit"`
	IsActive   bool   `json:"is_active"`
}

// List returns all user accounts.
func (h *UsersHandler) List(c *gin.Context) {
	var rows []userRow
	if errFind := h.db.WithContext(c.Request.Context()).Model(&models.User{}).
		Select("id", "email", "role", "daily_limit", "is_active").
		Order("id ASC").
		Find(&rows).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// updateLimitRequest defines the request body for daily limit updates.
type updateLimitRequest struct {
	DailyLimit int64 `json:"daily_limit"`
}

// UpdateLimit sets a user's daily token ceiling. The new value takes effect on
// the user's next gated request.
func (h *UsersHandler) UpdateLimit(c *gin.Context) {
	userID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var body updateLimitRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if body.DailyLimit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "daily_limit must be >= 0"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Model(&models.User{}).
		Where("id = ?", userID).
		Update("daily_limit", body.DailyLimit)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "daily limit updated"})
}

// updateStatusRequest defines the request body for activation updates.
type updateStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

// UpdateStatus activates or deactivates a user account. Accounts are never
// hard-deleted; deactivation blocks sign-in and all authenticated requests.
func (h *UsersHandler) UpdateStatus(c *gin.Context) {
	userID, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var body updateStatusRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil || body.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_active required"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_active", *body.IsActive)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user status updated"})
}
