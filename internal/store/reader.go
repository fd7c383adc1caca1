package store

import (
	"context"
	"fmt"

	"github.com/gdg-garage/event-registration-api/internal/models"
)

// JoinKey decides which date preference rows belong to a registrant. There is
// no foreign key between the two relations, only natural-key matching.
type JoinKey int

const (
	// JoinByContact matches on name and the participant's contact. Used when
	// reading the registrations of one booking email.
	JoinByContact JoinKey = iota
	// JoinByBookingEmail matches on name and the booking email. Used by the
	// admin listing of every registration.
	JoinByBookingEmail
)

func (k JoinKey) String() string {
	switch k {
	case JoinByContact:
		return "name+contact"
	case JoinByBookingEmail:
		return "name+email"
	default:
		return fmt.Sprintf("JoinKey(%d)", int(k))
	}
}

func (k JoinKey) matches(r models.Registrant, p models.DatePreference) bool {
	if p.Name != r.Name {
		return false
	}
	switch k {
	case JoinByContact:
		return p.Contact == r.Contact
	case JoinByBookingEmail:
		return p.EmailID == r.BookersEmail
	default:
		return false
	}
}

// Attach pairs every registrant with the preferences matching it under key.
// It compares every registrant with every preference, which is fine for the
// size of a single event.
func Attach(registrants []models.Registrant, prefs []models.DatePreference, key JoinKey) []models.RegistrantView {
	views := make([]models.RegistrantView, 0, len(registrants))
	for _, r := range registrants {
		view := models.RegistrantView{Registrant: r, DatePreferences: []models.DatePreference{}}
		for _, p := range prefs {
			if key.matches(r, p) {
				view.DatePreferences = append(view.DatePreferences, p)
			}
		}
		views = append(views, view)
	}
	return views
}

// RegistrationsByEmail returns every registrant booked under email with its
// date preferences attached by name and contact.
func (s *Store) RegistrationsByEmail(ctx context.Context, email string) ([]models.RegistrantView, error) {
	db := s.db.WithContext(ctx)

	var registrants []models.Registrant
	if err := db.Where("bookers_email = ?", email).Order("id").Find(&registrants).Error; err != nil {
		return nil, fmt.Errorf("list registrations for %s: %w", email, err)
	}

	var prefs []models.DatePreference
	if err := db.Where("email_id = ?", email).Order("id").Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("list date preferences for %s: %w", email, err)
	}

	return Attach(registrants, prefs, JoinByContact), nil
}

// AllRegistrations returns every registrant with its date preferences
// attached by name and booking email.
func (s *Store) AllRegistrations(ctx context.Context) ([]models.RegistrantView, error) {
	db := s.db.WithContext(ctx)

	var registrants []models.Registrant
	if err := db.Order("id").Find(&registrants).Error; err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	var prefs []models.DatePreference
	if err := db.Order("id").Find(&prefs).Error; err != nil {
		return nil, fmt.Errorf("list date preferences: %w", err)
	}

	return Attach(registrants, prefs, JoinByBookingEmail), nil
}
