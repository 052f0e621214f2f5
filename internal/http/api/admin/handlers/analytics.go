package handlers

import (
	"net/http"

	dbpkg "github.com/AjilAshok/ai-access-platfrom/internal/db"
	"github.com/AjilAshok/ai-access-platfrom/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AnalyticsHandler aggregates the usage ledger for the admin dashboard.
// These are read-only summations; they never participate in gating decisions.
type AnalyticsHandler struct {
	db *gorm.DB
}

// NewAnalyticsHandler constructs an AnalyticsHandler.
func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{db: db}
}

// dailyRow is one day's total token consumption across all users.
type dailyRow struct {
	Date        string `json:"date"`
	TotalTokens int64  `json:"total_tokens"`
}

// Daily returns per-day token totals in ascending date order.
func (h *AnalyticsHandler) Daily(c *gin.Context) {
	bucket := dbpkg.DayBucketExpr(h.db, "created_at")

	var rows []dailyRow
	if errScan := h.db.WithContext(c.Request.Context()).Model(&models.UsageRecord{}).
		Select(bucket + " AS date, COALESCE(SUM(total_tokens), 0) AS total_tokens").
		Group(bucket).
		Order("date ASC").
		Scan(&rows).Error; errScan != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// userRowAgg is one user's aggregate consumption.
type userRowAgg struct {
	Email        string `json:"email"`
	TotalTokens  int64  `json:"total_tokens"`
	RequestCount int64  `json:"request_count"`
}

// Users returns per-user token totals and request counts.
func (h *AnalyticsHandler) Users(c *gin.Context) {
	var rows []userRowAgg
	if errScan := h.db.WithContext(c.Request.Context()).Model(&models.UsageRecord{}).
		Select("users.email AS email, COALESCE(SUM(usage_records.total_tokens), 0) AS total_tokens, COUNT(usage_records.id) AS request_count").
		Joins("JOIN users ON users.id = usage_records.user_id").
		Group("users.email").
		Order("total_tokens DESC").
		Scan(&rows).Error; errScan != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// modelRowAgg is one model's aggregate consumption.
type modelRowAgg struct {
	Model       string `json:"model"`
	TotalTokens int64  `json:"total_tokens"`
}

// Models returns per-model token totals in descending order.
func (h *AnalyticsHandler) Models(c *gin.Context) {
	var rows []modelRowAgg
	if errScan := h.db.WithContext(c.Request.Context()).Model(&models.UsageRecord{}).
		Select("model, COALESCE(SUM(total_tokens), 0) AS total_tokens").
		Group("model").
		Order("total_tokens DESC").
		Scan(&rows).Error; errScan != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
