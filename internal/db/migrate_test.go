package db

import (
	"testing"

	"github.com/AjilAshok/ai-access-platfrom/internal/models"
)

func TestMigrateCreatesSchema(t *testing.T) {
	conn, errOpen := Open(":memory:")
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}

	migrator := conn.Migrator()
	if !migrator.HasTable(&models.User{}) {
		t.Fatalf("users table missing")
	}
	if !migrator.HasTable(&models.UsageRecord{}) {
		t.Fatalf("usage_records table missing")
	}

	for _, column := range []string{"email", "password", "role", "daily_limit", "is_active", "refresh_token"} {
		if !migrator.HasColumn(&models.User{}, column) {
			t.Fatalf("users.%s column missing", column)
		}
	}
	for _, column := range []string{"user_id", "model", "input_tokens", "output_tokens", "total_tokens", "mock", "provider_error", "created_at"} {
		if !migrator.HasColumn(&models.UsageRecord{}, column) {
			t.Fatalf("usage_records.%s column missing", column)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	conn, errOpen := Open(":memory:")
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errFirst := Migrate(conn); errFirst != nil {
		t.Fatalf("first migrate: %v", errFirst)
	}
	if errSecond := Migrate(conn); errSecond != nil {
		t.Fatalf("second migrate: %v", errSecond)
	}
}

func TestDialectDetection(t *testing.T) {
	conn, errOpen := Open(":memory:")
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if !IsSQLite(conn) {
		t.Fatalf("in-memory database must report the sqlite dialect")
	}
	if DialectName(conn) != DialectSQLite {
		t.Fatalf("unexpected dialect name %q", DialectName(conn))
	}
}
