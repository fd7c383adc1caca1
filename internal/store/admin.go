package store

import (
	"context"
	"fmt"

	"github.com/gdg-garage/event-registration-api/internal/models"
)

type AdminStatus struct {
	IsAdmin     bool
	ControlType string
}

// CheckAdmin looks email up in the admin allow-list. An unknown email is a
// negative result, not an error.
func (s *Store) CheckAdmin(ctx context.Context, email string) (AdminStatus, error) {
	var admins []models.Admin
	if err := s.db.WithContext(ctx).Where("email = ?", email).Limit(1).Find(&admins).Error; err != nil {
		return AdminStatus{}, fmt.Errorf("check admin %s: %w", email, err)
	}
	if len(admins) == 0 {
		return AdminStatus{}, nil
	}
	return AdminStatus{IsAdmin: true, ControlType: admins[0].ControlType}, nil
}
