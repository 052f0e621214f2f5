package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	dbpkg "github.com/AjilAshok/ai-access-platfrom/internal/db"
	"github.com/AjilAshok/ai-access-platfrom/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, errOpen := dbpkg.Open(":memory:")
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := dbpkg.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}
	return conn
}

func createTestUser(t *testing.T, conn *gorm.DB, limit int64) models.User {
	t.Helper()
	user := models.User{
		Email:      "quota@example.com",
		Password:   "hash",
		Role:       models.RoleUser,
		DailyLimit: limit,
		IsActive:   true,
	}
	if errCreate := conn.Create(&user).Error; errCreate != nil {
		t.Fatalf("create user: %v", errCreate)
	}
	return user
}

func recordUsage(t *testing.T, conn *gorm.DB, userID uint64, total int64, at time.Time) {
	t.Helper()
	record := models.UsageRecord{
		UserID:      userID,
		Model:       "craftifai-gpt-5.2",
		TotalTokens: total,
		CreatedAt:   at,
	}
	if errCreate := conn.Create(&record).Error; errCreate != nil {
		t.Fatalf("create usage record: %v", errCreate)
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestCheckAndAdmitUnderCeiling(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, 100)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	gate := NewGateWithClock(conn, fixedClock(now))

	recordUsage(t, conn, user.ID, 90, now.Add(-2*time.Hour))

	if errAdmit := gate.CheckAndAdmit(context.Background(), user.ID, 5); errAdmit != nil {
		t.Fatalf("expected admit, got %v", errAdmit)
	}
}

func TestCheckAndAdmitDeniesOverCeiling(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, 100)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	gate := NewGateWithClock(conn, fixedClock(now))

	recordUsage(t, conn, user.ID, 98, now.Add(-time.Hour))

	errAdmit := gate.CheckAndAdmit(context.Background(), user.ID, 5)
	if !errors.Is(errAdmit, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", errAdmit)
	}

	// Denial writes nothing.
	var count int64
	if errCount := conn.Model(&models.UsageRecord{}).Where("user_id = ?", user.ID).Count(&count).Error; errCount != nil {
		t.Fatalf("count records: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected 1 record after denial, got %d", count)
	}
}

func TestCheckAndAdmitExactFitAdmits(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, 100)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	gate := NewGateWithClock(conn, fixedClock(now))

	recordUsage(t, conn, user.ID, 95, now.Add(-time.Hour))

	// 95 + 5 == 100 does not exceed the ceiling.
	if errAdmit := gate.CheckAndAdmit(context.Background(), user.ID, 5); errAdmit != nil {
		t.Fatalf("expected admit at exact ceiling, got %v", errAdmit)
	}
}

func TestUsedTodayIgnoresOtherDaysAndUsers(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, 100)

	other := models.User{Email: "other@example.com", Password: "hash", Role: models.RoleUser, DailyLimit: 100, IsActive: true}
	if errCreate := conn.Create(&other).Error; errCreate != nil {
		t.Fatalf("create other user: %v", errCreate)
	}

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	gate := NewGateWithClock(conn, fixedClock(now))

	recordUsage(t, conn, user.ID, 40, now.Add(-time.Hour))       // today
	recordUsage(t, conn, user.ID, 500, now.AddDate(0, 0, -1))    // yesterday
	recordUsage(t, conn, user.ID, 500, now.Add(13*time.Hour))    // tomorrow
	recordUsage(t, conn, other.ID, 999, now.Add(-2*time.Minute)) // someone else

	used, errUsed := gate.UsedToday(context.Background(), user.ID)
	if errUsed != nil {
		t.Fatalf("used today: %v", errUsed)
	}
	if used != 40 {
		t.Fatalf("expected used=40, got %d", used)
	}
}

func TestCeilingReadFreshAfterAdminEdit(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, 100)

	gate := NewGate(conn)

	ceiling, errCeiling := gate.Ceiling(context.Background(), user.ID)
	if errCeiling != nil {
		t.Fatalf("ceiling: %v", errCeiling)
	}
	if ceiling != 100 {
		t.Fatalf("expected ceiling 100, got %d", ceiling)
	}

	if errUpdate := conn.Model(&models.User{}).Where("id = ?", user.ID).Update("daily_limit", 250).Error; errUpdate != nil {
		t.Fatalf("update limit: %v", errUpdate)
	}

	ceiling, errCeiling = gate.Ceiling(context.Background(), user.ID)
	if errCeiling != nil {
		t.Fatalf("ceiling after edit: %v", errCeiling)
	}
	if ceiling != 250 {
		t.Fatalf("expected updated ceiling 250, got %d", ceiling)
	}
}

func TestCeilingUnknownUser(t *testing.T) {
	conn := openTestDB(t)
	gate := NewGate(conn)

	if _, errCeiling := gate.Ceiling(context.Background(), 12345); !errors.Is(errCeiling, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", errCeiling)
	}
}

func TestSummaryTodayIdempotent(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, 100)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	gate := NewGateWithClock(conn, fixedClock(now))

	recordUsage(t, conn, user.ID, 90, now.Add(-3*time.Hour))
	recordUsage(t, conn, user.ID, 7, now.Add(-time.Hour))

	first, errFirst := gate.SummaryToday(context.Background(), user.ID)
	if errFirst != nil {
		t.Fatalf("summary: %v", errFirst)
	}
	if first.Used != 97 || first.Limit != 100 || first.Remaining != 3 {
		t.Fatalf("unexpected summary: %+v", first)
	}

	second, errSecond := gate.SummaryToday(context.Background(), user.ID)
	if errSecond != nil {
		t.Fatalf("summary again: %v", errSecond)
	}
	if *second != *first {
		t.Fatalf("summary changed with no intervening usage: %+v != %+v", second, first)
	}
}

func TestSummaryRemainingClampsAtZero(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, 100)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	gate := NewGateWithClock(conn, fixedClock(now))

	// Concurrent overshoot can push usage past the ceiling; remaining must not
	// go negative.
	recordUsage(t, conn, user.ID, 120, now.Add(-time.Hour))

	summary, errSummary := gate.SummaryToday(context.Background(), user.ID)
	if errSummary != nil {
		t.Fatalf("summary: %v", errSummary)
	}
	if summary.Used != 120 || summary.Remaining != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
