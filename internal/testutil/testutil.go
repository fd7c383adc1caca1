package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/gdg-garage/event-registration-api/internal/config"
	"github.com/gdg-garage/event-registration-api/internal/database"
	"github.com/gdg-garage/event-registration-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// TestAdmin is the admin seeded into every test database.
var TestAdmin = config.AdminSeed{
	Email:       "admin@example.com",
	Name:        "Test Admin",
	ControlType: "Q",
}

// NewTestDB opens a private in-memory sqlite database with the schema set up.
// A single connection is used so every statement sees the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Setup(context.Background(), db, TestAdmin); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}

	return db
}

// Satsang is the single-participant submission used across the tests.
func Satsang() models.Submission {
	return models.Submission{
		Event:             "Satsang",
		ContactEmail:      "a@x.com",
		ContactNumber:     "999",
		TotalParticipants: 1,
		Participants: []models.Participant{
			{
				Name:           "Ravi",
				Age:            40,
				Gender:         "M",
				ContactNumber:  "111",
				AttendingDates: []string{"2025-01-01"},
				DatePreferences: []models.DateSelection{
					{Date: "2025-01-01", Breakfast: true},
				},
			},
		},
	}
}
