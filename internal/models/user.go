package models

import "time"

// User roles.
const (
	// RoleUser is the default role for registered accounts.
	RoleUser = "user"
	// RoleAdmin grants access to the admin API.
	RoleAdmin = "admin"
)

// DefaultDailyLimit is the token ceiling assigned to new accounts.
const DefaultDailyLimit int64 = 10000

// User represents an end-user account stored in the database.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	Email    string `gorm:"type:text;not null;uniqueIndex" json:"email"` // Unique login email.
	Password string `gorm:"type:text;not null" json:"-"`                 // Hashed password.

	Role string `gorm:"type:text;not null;default:user" json:"role"` // Either "user" or "admin".

	DailyLimit int64 `gorm:"not null;default:10000" json:"daily_limit"` // Daily token ceiling.
	IsActive   bool  `gorm:"not null;default:true" json:"is_active"`    // Whether the account may sign in.

	RefreshToken string `gorm:"type:text" json:"-"` // Current refresh token, rotated on use.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"` // Last update timestamp.
}

// TableName overrides the default table name.
func (User) TableName() string {
	return "users"
}
