package database

import (
	"context"
	"errors"
	"testing"

	"github.com/gdg-garage/event-registration-api/internal/config"
	"github.com/gdg-garage/event-registration-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestSetup_Idempotent(t *testing.T) {
	db := openMemory(t)
	seed := config.AdminSeed{Email: "admin@example.com", Name: "Admin", ControlType: "Q"}

	for i := 0; i < 3; i++ {
		if err := Setup(context.Background(), db, seed); err != nil {
			t.Fatalf("Setup run %d failed: %v", i+1, err)
		}
	}

	for _, table := range []string{"event_registrations", "event_dates", "admins"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count != 1 {
		t.Errorf("expected exactly 1 admin row, got %d", count)
	}
}

func TestSetup_SeedDoesNotOverwrite(t *testing.T) {
	db := openMemory(t)
	ctx := context.Background()

	if err := Setup(ctx, db, config.AdminSeed{Email: "admin@example.com", Name: "First", ControlType: "Q"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if err := Setup(ctx, db, config.AdminSeed{Email: "admin@example.com", Name: "Second", ControlType: "Z"}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	var admin models.Admin
	db.First(&admin, "email = ?", "admin@example.com")
	if admin.Name != "First" || admin.ControlType != "Q" {
		t.Errorf("expected the first seed to be kept, got %+v", admin)
	}
}

func TestSetup_NoSeed(t *testing.T) {
	db := openMemory(t)

	if err := Setup(context.Background(), db, config.AdminSeed{}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no admin rows, got %d", count)
	}
}

func TestStatus(t *testing.T) {
	var s Status

	if s.Snapshot().Ready {
		t.Error("expected a fresh status not to be ready")
	}

	s.Record(errors.New("boom"))
	snap := s.Snapshot()
	if snap.Ready || snap.Err == nil || snap.CheckedAt.IsZero() {
		t.Errorf("expected failed snapshot, got %+v", snap)
	}

	s.Record(nil)
	if snap := s.Snapshot(); !snap.Ready || snap.Err != nil {
		t.Errorf("expected ready snapshot, got %+v", snap)
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	if _, err := Open(&config.Config{DatabaseDriver: "oracle"}); err == nil {
		t.Error("expected an error for an unsupported driver")
	}
	if _, err := Open(&config.Config{DatabaseDriver: config.DriverPostgres}); err == nil {
		t.Error("expected an error for postgres without DATABASE_URL")
	}
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabasePath:   t.TempDir() + "/registrations.db",
		DBMaxOpenConns: 1,
	}
	db, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer Close(db)

	if err := Setup(context.Background(), db, cfg.AdminSeed()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
}
