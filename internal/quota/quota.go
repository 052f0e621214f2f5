// Package quota enforces per-user daily token budgets over the usage ledger.
//
// Enforcement is soft: CheckAndAdmit is an advisory pre-check, not a
// reservation. The gate check and the later ledger append are not wrapped in
// one transaction, so two concurrent requests from the same user can both pass
// the gate on the same usage snapshot and jointly overshoot the ceiling. This
// is the documented baseline; a hard guarantee would require an atomic
// increment-and-compare per user per day.
package quota

import (
	"context"
	"errors"
	"time"

	"github.com/AjilAshok/ai-access-platfrom/internal/models"
	"gorm.io/gorm"
)

// Gate decision errors.
var (
	// ErrQuotaExceeded indicates the user's daily token ceiling would be exceeded.
	ErrQuotaExceeded = errors.New("daily token limit exceeded")
	// ErrUserNotFound indicates the user row backing a decision is missing.
	// This is an integrity failure, not a normal denial.
	ErrUserNotFound = errors.New("user not found")
)

// Gate decides whether a request may consume estimated tokens today.
type Gate struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGate constructs a Gate using the wall clock.
func NewGate(db *gorm.DB) *Gate {
	return NewGateWithClock(db, time.Now)
}

// NewGateWithClock constructs a Gate with an injectable clock for tests.
func NewGateWithClock(db *gorm.DB, now func() time.Time) *Gate {
	if now == nil {
		now = time.Now
	}
	return &Gate{db: db, now: now}
}

// dayWindow returns the server-local [midnight, next midnight) window
// containing the gate's current time.
func (g *Gate) dayWindow() (time.Time, time.Time) {
	now := g.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// UsedToday sums total tokens recorded for the user in today's window.
func (g *Gate) UsedToday(ctx context.Context, userID uint64) (int64, error) {
	start, end := g.dayWindow()

	var used int64
	if errScan := g.db.WithContext(ctx).Model(&models.UsageRecord{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start, end).
		Select("COALESCE(SUM(total_tokens), 0)").
		Scan(&used).Error; errScan != nil {
		return 0, errScan
	}
	return used, nil
}

// Ceiling reads the user's current daily limit. The value is fetched fresh on
// every call so administrator edits apply to the next decision.
func (g *Gate) Ceiling(ctx context.Context, userID uint64) (int64, error) {
	var user models.User
	if errFind := g.db.WithContext(ctx).Select("daily_limit").First(&user, userID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, errFind
	}
	return user.DailyLimit, nil
}

// CheckAndAdmit returns nil when today's recorded usage plus the estimate fits
// under the user's ceiling, and ErrQuotaExceeded otherwise. It writes nothing
// and holds no lock across the caller's subsequent provider call.
func (g *Gate) CheckAndAdmit(ctx context.Context, userID uint64, estimatedTokens int64) error {
	used, err := g.UsedToday(ctx, userID)
	if err != nil {
		return err
	}
	ceiling, err := g.Ceiling(ctx, userID)
	if err != nil {
		return err
	}
	if used+estimatedTokens > ceiling {
		return ErrQuotaExceeded
	}
	return nil
}

// Summary reports a user's consumption against today's ceiling.
type Summary struct {
	Used      int64 `json:"used"`
	Limit     int64 `json:"limit"`
	Remaining int64 `json:"remaining"`
}

// SummaryToday computes the user's current usage summary. Values are computed
// fresh from the ledger and the user row on every call, never cached.
func (g *Gate) SummaryToday(ctx context.Context, userID uint64) (*Summary, error) {
	used, err := g.UsedToday(ctx, userID)
	if err != nil {
		return nil, err
	}
	ceiling, err := g.Ceiling(ctx, userID)
	if err != nil {
		return nil, err
	}
	remaining := ceiling - used
	if remaining < 0 {
		remaining = 0
	}
	return &Summary{Used: used, Limit: ceiling, Remaining: remaining}, nil
}
