package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdg-garage/event-registration-api/internal/models"
	"gorm.io/gorm"
)

var ErrIncompleteKey = errors.New("bookers_email, bookers_phone and name are required")

type columnKind int

const (
	kindString columnKind = iota
	kindInt
	kindBool
	kindBeverage
)

func (k columnKind) String() string {
	switch k {
	case kindInt:
		return "a number"
	case kindBool:
		return "a boolean"
	default:
		return "a string"
	}
}

// Columns of event_registrations an update request may change.
var registrantColumns = map[string]columnKind{
	"age":                      kindInt,
	"gender":                   kindString,
	"origin":                   kindString,
	"travelmode":               kindString,
	"departure_from_home":      kindString,
	"arrival_at_venue":         kindString,
	"accommodation":            kindBool,
	"cot_required":             kindBool,
	"difficultyclimbingstairs": kindBool,
	"localassistance":          kindBool,
	"localassistanceperson":    kindString,
	"recordings":               kindBool,
	"recordprograms":           kindString,
	"specialrequests":          kindString,
}

// Columns of event_dates an update request may change.
var preferenceColumns = map[string]columnKind{
	"morning_tea":      kindBeverage,
	"morning_coffee":   kindBeverage,
	"afternoon_tea":    kindBeverage,
	"afternoon_coffee": kindBeverage,
	"breakfast":        kindBool,
	"lunch":            kindBool,
	"dinner":           kindBool,
	"packed_lunch":     kindBool,
	"packed_dinner":    kindBool,
	"departuretime":    kindString,
}

// RegistrationUpdate is a parsed update request. Fields only holds the
// recognised columns that were present in the request.
type RegistrationUpdate struct {
	Key             models.RegistrantKey
	Fields          map[string]any
	DatePreferences []PreferenceUpdate
}

// PreferenceUpdate targets the event_dates rows matching
// (EmailID, Contact, Name, Date).
type PreferenceUpdate struct {
	EmailID string
	Contact string
	Name    string
	Date    string
	Fields  map[string]any
}

// ParseRegistrationUpdate picks the recognised keys out of a free-form
// update body. Unknown keys are ignored; recognised keys with a value of the
// wrong type are an error. Preference entries without email_id or name fall
// back to the registrant's booking email and name.
func ParseRegistrationUpdate(data map[string]any) (RegistrationUpdate, error) {
	var upd RegistrationUpdate
	var err error

	if upd.Key.BookersEmail, err = stringField(data, "bookers_email"); err != nil {
		return upd, err
	}
	if upd.Key.BookersPhone, err = stringField(data, "bookers_phone"); err != nil {
		return upd, err
	}
	if upd.Key.Name, err = stringField(data, "name"); err != nil {
		return upd, err
	}

	if upd.Fields, err = pickColumns(data, registrantColumns); err != nil {
		return upd, err
	}

	raw, ok := data["datePreferences"]
	if !ok || raw == nil {
		return upd, nil
	}
	entries, ok := raw.([]any)
	if !ok {
		return upd, fmt.Errorf("datePreferences must be a list")
	}
	for i, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			return upd, fmt.Errorf("datePreferences[%d] must be an object", i)
		}
		p := PreferenceUpdate{}
		if p.EmailID, err = stringField(entry, "email_id"); err != nil {
			return upd, fmt.Errorf("datePreferences[%d]: %w", i, err)
		}
		if p.Contact, err = stringField(entry, "contact"); err != nil {
			return upd, fmt.Errorf("datePreferences[%d]: %w", i, err)
		}
		if p.Name, err = stringField(entry, "name"); err != nil {
			return upd, fmt.Errorf("datePreferences[%d]: %w", i, err)
		}
		if p.Date, err = stringField(entry, "date"); err != nil {
			return upd, fmt.Errorf("datePreferences[%d]: %w", i, err)
		}
		if p.EmailID == "" {
			p.EmailID = upd.Key.BookersEmail
		}
		if p.Name == "" {
			p.Name = upd.Key.Name
		}
		if p.Fields, err = pickColumns(entry, preferenceColumns); err != nil {
			return upd, fmt.Errorf("datePreferences[%d]: %w", i, err)
		}
		upd.DatePreferences = append(upd.DatePreferences, p)
	}

	return upd, nil
}

func stringField(data map[string]any, key string) (string, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return s, nil
}

func pickColumns(data map[string]any, columns map[string]columnKind) (map[string]any, error) {
	fields := map[string]any{}
	for column, kind := range columns {
		v, ok := data[column]
		if !ok {
			continue
		}
		value, err := coerce(v, kind)
		if err != nil {
			return nil, fmt.Errorf("field %q must be %s", column, kind)
		}
		fields[column] = value
	}
	return fields, nil
}

// coerce converts a decoded JSON value to the column's Go type. null becomes
// the zero value. Integer columns also take numeric strings, "" being 0.
func coerce(v any, kind columnKind) (any, error) {
	switch kind {
	case kindInt:
		switch n := v.(type) {
		case nil:
			return 0, nil
		case float64:
			if n != math.Trunc(n) {
				return nil, errors.New("not an integer")
			}
			return int(n), nil
		case int:
			return n, nil
		case string:
			n = strings.TrimSpace(n)
			if n == "" {
				return 0, nil
			}
			return strconv.Atoi(n)
		}
	case kindBool:
		switch b := v.(type) {
		case nil:
			return false, nil
		case bool:
			return b, nil
		}
	case kindBeverage:
		switch s := v.(type) {
		case nil:
			return string(models.BeverageUnset), nil
		case string:
			return string(models.BeverageChoice(s).Normalize()), nil
		}
	default:
		switch s := v.(type) {
		case nil:
			return "", nil
		case string:
			return s, nil
		}
	}
	return nil, errors.New("wrong type")
}

// UpdateResult counts the rows an update touched. Zero rows is a valid
// outcome, not an error.
type UpdateResult struct {
	RegistrationsUpdated int64
	PreferencesUpdated   int64
}

// UpdateRegistration applies upd in one transaction.
func (s *Store) UpdateRegistration(ctx context.Context, upd RegistrationUpdate) (UpdateResult, error) {
	var res UpdateResult
	if !upd.Key.Complete() {
		return res, ErrIncompleteKey
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(upd.Fields) > 0 {
			result := tx.Model(&models.Registrant{}).
				Where("bookers_email = ? AND bookers_phone = ? AND name = ?",
					upd.Key.BookersEmail, upd.Key.BookersPhone, upd.Key.Name).
				Updates(upd.Fields)
			if result.Error != nil {
				return fmt.Errorf("update registration: %w", result.Error)
			}
			res.RegistrationsUpdated = result.RowsAffected
		}

		for _, p := range upd.DatePreferences {
			if len(p.Fields) == 0 {
				continue
			}
			result := tx.Model(&models.DatePreference{}).
				Where("email_id = ? AND contact = ? AND name = ? AND date = ?",
					p.EmailID, p.Contact, p.Name, p.Date).
				Updates(p.Fields)
			if result.Error != nil {
				return fmt.Errorf("update date preference %s: %w", p.Date, result.Error)
			}
			res.PreferencesUpdated += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return UpdateResult{}, err
	}

	return res, nil
}

type DeleteResult struct {
	RegistrationsDeleted int64
	PreferencesDeleted   int64
}

// DeleteRegistration removes a registrant and its date preferences. The
// preferences are matched on booking email and name only, so rows recorded
// under another contact for the same person go as well.
func (s *Store) DeleteRegistration(ctx context.Context, key models.RegistrantKey) (DeleteResult, error) {
	var res DeleteResult
	if !key.Complete() {
		return res, ErrIncompleteKey
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("email_id = ? AND name = ?", key.BookersEmail, key.Name).
			Delete(&models.DatePreference{})
		if result.Error != nil {
			return fmt.Errorf("delete date preferences: %w", result.Error)
		}
		res.PreferencesDeleted = result.RowsAffected

		result = tx.Where("bookers_email = ? AND bookers_phone = ? AND name = ?",
			key.BookersEmail, key.BookersPhone, key.Name).
			Delete(&models.Registrant{})
		if result.Error != nil {
			return fmt.Errorf("delete registration: %w", result.Error)
		}
		res.RegistrationsDeleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}

	return res, nil
}
