package store

import (
	"context"
	"testing"

	"github.com/gdg-garage/event-registration-api/internal/models"
	"github.com/gdg-garage/event-registration-api/internal/testutil"
)

func TestRegistrationsByEmail_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db, true)
	ctx := context.Background()

	s.SubmitRegistration(ctx, testutil.Satsang())

	// Another booking must not leak into the result.
	other := testutil.Satsang()
	other.ContactEmail = "b@x.com"
	other.Participants[0].Name = "Mohan"
	s.SubmitRegistration(ctx, other)

	views, err := s.RegistrationsByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("RegistrationsByEmail failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 registrant, got %d", len(views))
	}
	if views[0].Name != "Ravi" {
		t.Errorf("expected Ravi, got %s", views[0].Name)
	}
	if len(views[0].DatePreferences) != 1 {
		t.Fatalf("expected 1 date preference, got %d", len(views[0].DatePreferences))
	}
	pref := views[0].DatePreferences[0]
	if pref.Date != "2025-01-01" || !pref.Breakfast {
		t.Errorf("unexpected preference %+v", pref)
	}
}

func TestRegistrationsByEmail_SeparatesParticipants(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db, true)
	ctx := context.Background()

	sub := testutil.Satsang()
	sub.Participants = append(sub.Participants, models.Participant{
		Name:          "Sita",
		ContactNumber: "222",
		DatePreferences: []models.DateSelection{
			{Date: "2025-01-01", Lunch: true},
			{Date: "2025-01-02", Dinner: true},
		},
	})
	s.SubmitRegistration(ctx, sub)

	views, err := s.RegistrationsByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("RegistrationsByEmail failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 registrants, got %d", len(views))
	}
	if got := len(views[0].DatePreferences); got != 1 {
		t.Errorf("expected Ravi to have 1 preference, got %d", got)
	}
	if got := len(views[1].DatePreferences); got != 2 {
		t.Errorf("expected Sita to have 2 preferences, got %d", got)
	}
}

func TestRegistrationsByEmail_Unknown(t *testing.T) {
	s := New(testutil.NewTestDB(t), true)

	views, err := s.RegistrationsByEmail(context.Background(), "nobody@x.com")
	if err != nil {
		t.Fatalf("RegistrationsByEmail failed: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("expected an empty, non-nil list, got %v", views)
	}
}

func TestAllRegistrations(t *testing.T) {
	db := testutil.NewTestDB(t)
	s := New(db, true)
	ctx := context.Background()

	s.SubmitRegistration(ctx, testutil.Satsang())
	other := testutil.Satsang()
	other.ContactEmail = "b@x.com"
	s.SubmitRegistration(ctx, other)

	views, err := s.AllRegistrations(ctx)
	if err != nil {
		t.Fatalf("AllRegistrations failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 registrants, got %d", len(views))
	}
	for _, v := range views {
		if len(v.DatePreferences) != 1 {
			t.Errorf("%s/%s: expected 1 preference, got %d", v.BookersEmail, v.Name, len(v.DatePreferences))
		}
		if v.DatePreferences[0].EmailID != v.BookersEmail {
			t.Errorf("preference of %s attached to %s", v.DatePreferences[0].EmailID, v.BookersEmail)
		}
	}
}

func TestAttach_JoinKeys(t *testing.T) {
	registrants := []models.Registrant{
		{Name: "Ravi", Contact: "111", BookersEmail: "a@x.com"},
	}
	prefs := []models.DatePreference{
		{Name: "Ravi", Contact: "111", EmailID: "a@x.com", Date: "d1"},
		// Same person recorded under another booking email.
		{Name: "Ravi", Contact: "111", EmailID: "b@x.com", Date: "d2"},
		// Same booking, different contact.
		{Name: "Ravi", Contact: "999", EmailID: "a@x.com", Date: "d3"},
		{Name: "Sita", Contact: "111", EmailID: "a@x.com", Date: "d4"},
	}

	byContact := Attach(registrants, prefs, JoinByContact)
	if got := dates(byContact[0].DatePreferences); got != "d1,d2" {
		t.Errorf("name+contact: expected d1,d2, got %s", got)
	}

	byEmail := Attach(registrants, prefs, JoinByBookingEmail)
	if got := dates(byEmail[0].DatePreferences); got != "d1,d3" {
		t.Errorf("name+email: expected d1,d3, got %s", got)
	}
}

func TestAttach_NoPreferences(t *testing.T) {
	views := Attach([]models.Registrant{{Name: "Ravi"}}, nil, JoinByContact)
	if views[0].DatePreferences == nil {
		t.Error("expected an empty, non-nil preference list")
	}
}

func dates(prefs []models.DatePreference) string {
	out := ""
	for i, p := range prefs {
		if i > 0 {
			out += ","
		}
		out += p.Date
	}
	return out
}
