package models

import (
	"time"
)

// Registrant is one participant's registration record under a booking.
// Participants of the same booking share (BookersEmail, BookersPhone) and are
// told apart by Name.
type Registrant struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	SubmissionID string `json:"submission_id" gorm:"column:submission_id;size:36;index"`
	BookersEmail string `json:"bookers_email" gorm:"column:bookers_email;size:255;not null;index;uniqueIndex:idx_registrant_identity"`
	BookersPhone string `json:"bookers_phone" gorm:"column:bookers_phone;size:20;not null;uniqueIndex:idx_registrant_identity"`
	EventName    string `json:"event_name" gorm:"column:event_name;size:255;not null"`
	Name         string `json:"name" gorm:"column:name;size:255;not null;uniqueIndex:idx_registrant_identity"`
	Age          int    `json:"age" gorm:"column:age;not null;default:0"`
	Gender       string `json:"gender" gorm:"column:gender;size:20;not null"`
	Origin       string `json:"origin" gorm:"column:origin;size:100;not null"`
	Contact      string `json:"contact" gorm:"column:contact;size:50;not null"`

	AttendingDates []string `json:"attending_dates" gorm:"column:attending_dates;type:text;serializer:json;not null"`
	TravelMode     string   `json:"travelmode" gorm:"column:travelmode;size:50"`

	DepartureFromHome string `json:"departure_from_home" gorm:"column:departure_from_home;size:10"`
	ArrivalAtVenue    string `json:"arrival_at_venue" gorm:"column:arrival_at_venue;size:10"`

	Accommodation            bool   `json:"accommodation" gorm:"column:accommodation"`
	CotRequired              bool   `json:"cot_required" gorm:"column:cot_required"`
	DifficultyClimbingStairs bool   `json:"difficultyclimbingstairs" gorm:"column:difficultyclimbingstairs"`
	LocalAssistance          bool   `json:"localassistance" gorm:"column:localassistance"`
	LocalAssistancePerson    string `json:"localassistanceperson" gorm:"column:localassistanceperson;size:255"`

	Recordings      bool   `json:"recordings" gorm:"column:recordings"`
	RecordPrograms  string `json:"recordprograms" gorm:"column:recordprograms;type:text"`
	SpecialRequests string `json:"specialrequests" gorm:"column:specialrequests;type:text"`

	CreatedAt time.Time `json:"created_at"`
}

func (Registrant) TableName() string {
	return "event_registrations"
}

// RegistrantKey is the natural key used by the update and delete paths.
type RegistrantKey struct {
	BookersEmail string `json:"bookers_email"`
	BookersPhone string `json:"bookers_phone"`
	Name         string `json:"name"`
}

func (k RegistrantKey) Complete() bool {
	return k.BookersEmail != "" && k.BookersPhone != "" && k.Name != ""
}

// RegistrantView is a Registrant with its matched date preferences attached.
type RegistrantView struct {
	Registrant
	DatePreferences []DatePreference `json:"datePreferences"`
}
