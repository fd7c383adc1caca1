package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdg-garage/event-registration-api/internal/config"
	"github.com/gdg-garage/event-registration-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setup makes sure the registration, date preference and admin relations
// exist and seeds the configured admin. Safe to call on every boot: tables
// are only created when absent and the seed is skipped when the email is
// already present.
func Setup(ctx context.Context, db *gorm.DB, seed config.AdminSeed) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&models.Registrant{},
		&models.DatePreference{},
		&models.Admin{},
	); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	if seed.Email == "" {
		return nil
	}

	admin := models.Admin{
		Email:       seed.Email,
		Name:        seed.Name,
		ControlType: seed.ControlType,
	}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	return nil
}

// Status tracks whether schema setup succeeded so health checks can report a
// half-initialised store instead of failing later on every query.
type Status struct {
	mu        sync.RWMutex
	ready     bool
	err       error
	checkedAt time.Time
}

func (s *Status) Record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = err == nil
	s.err = err
	s.checkedAt = time.Now()
}

// StatusSnapshot is a point-in-time copy of a Status.
type StatusSnapshot struct {
	Ready     bool
	Err       error
	CheckedAt time.Time
}

// Snapshot reports the outcome of the last recorded setup. A Status that
// never recorded anything is not ready.
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatusSnapshot{Ready: s.ready, Err: s.err, CheckedAt: s.checkedAt}
}
