package models

import (
	"time"

	"gorm.io/datatypes"
)

// UsageRecord is an immutable metering fact for a single generation attempt.
// Rows are appended once per completed request (real or mock fallback) and are
// never updated or deleted; quota decisions and analytics sum over them.
type UsageRecord struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	UserID uint64 `gorm:"not null;index" json:"user_id"`         // Owner of the request.
	Model  string `gorm:"type:text;not null;index" json:"model"` // Public model name, not the provider id.

	InputTokens  int64 `gorm:"not null;default:0" json:"input_tokens"`  // Input token count.
	OutputTokens int64 `gorm:"not null;default:0" json:"output_tokens"` // Output token count.
	TotalTokens  int64 `gorm:"not null;default:0" json:"total_tokens"`  // Total counted against the daily ceiling.

	Mock bool `gorm:"not null;default:false" json:"mock"` // True when counts were synthesized on provider failure.

	ProviderError datatypes.JSON `gorm:"type:jsonb" json:"-"` // Diagnostic detail captured on fallback, not for end users.

	CreatedAt time.Time `gorm:"not null;index;autoCreateTime" json:"created_at"` // Creation timestamp.
}

// TableName overrides the default table name.
func (UsageRecord) TableName() string {
	return "usage_records"
}
