package models

// Submission is one registration form: a booking contact plus the
// participants registered under it.
type Submission struct {
	_                 struct{}      `json:"-" additionalProperties:"true"`
	Event             string        `json:"event,omitempty" doc:"Event the booking is for"`
	ContactEmail      string        `json:"contactEmail,omitempty" doc:"Booking contact email"`
	ContactNumber     string        `json:"contactNumber,omitempty" doc:"Booking contact phone"`
	TotalParticipants int           `json:"totalParticipants,omitempty" doc:"Participant count as reported by the form"`
	Participants      []Participant `json:"participants,omitempty" doc:"Participants registered under this booking"`
}

// MissingFields lists the booking fields that are empty. A submission with
// any of them missing is not written.
func (s Submission) MissingFields() []string {
	var missing []string
	if s.Event == "" {
		missing = append(missing, "event")
	}
	if s.ContactEmail == "" {
		missing = append(missing, "contactEmail")
	}
	if s.ContactNumber == "" {
		missing = append(missing, "contactNumber")
	}
	return missing
}

// Participant, TravelDetails and DateSelection accept keys they do not know;
// forms send more than is stored.
type Participant struct {
	_                        struct{}        `json:"-" additionalProperties:"true"`
	Name                     string          `json:"name" doc:"Participant name"`
	Age                      Age             `json:"age,omitempty" doc:"Age in years, 0 when missing"`
	Gender                   string          `json:"gender,omitempty"`
	Origin                   string          `json:"origin,omitempty" doc:"Town or city the participant travels from"`
	ContactNumber            string          `json:"contactNumber,omitempty" doc:"Participant's own phone"`
	AttendingDates           []string        `json:"attendingDates,omitempty"`
	TravelMode               string          `json:"travelMode,omitempty"`
	TravelDetails            TravelDetails   `json:"travelDetails,omitempty"`
	Accommodation            bool            `json:"accommodation,omitempty"`
	Cot                      bool            `json:"cot,omitempty"`
	DifficultyClimbingStairs bool            `json:"difficultyClimbingStairs,omitempty"`
	LocalAssistance          bool            `json:"localAssistance,omitempty"`
	LocalAssistancePerson    string          `json:"localAssistancePerson,omitempty"`
	Recordings               bool            `json:"recordings,omitempty"`
	RecordingPrograms        string          `json:"recordingPrograms,omitempty"`
	SpecialRequests          string          `json:"specialRequests,omitempty"`
	DatePreferences          []DateSelection `json:"datePreferences,omitempty"`
}

type TravelDetails struct {
	_                 struct{} `json:"-" additionalProperties:"true"`
	DepartureFromHome string   `json:"departureFromHome,omitempty"`
	ArrivalAtVenue    string   `json:"arrivalAtVenue,omitempty"`
}

// DateSelection is the per-date block of a participant on the form.
type DateSelection struct {
	_               struct{} `json:"-" additionalProperties:"true"`
	Date            string   `json:"date,omitempty"`
	MorningTea      string   `json:"morningTea,omitempty" doc:"with, without or empty"`
	MorningCoffee   string   `json:"morningCoffee,omitempty" doc:"with, without or empty"`
	AfternoonTea    string   `json:"afternoonTea,omitempty" doc:"with, without or empty"`
	AfternoonCoffee string   `json:"afternoonCoffee,omitempty" doc:"with, without or empty"`
	Breakfast       bool     `json:"breakfast,omitempty"`
	Lunch           bool     `json:"lunch,omitempty"`
	Dinner          bool     `json:"dinner,omitempty"`
	PackedLunch     bool     `json:"packedLunch,omitempty"`
	PackedDinner    bool     `json:"packedDinner,omitempty"`
	DepartureTime   string   `json:"departureTime,omitempty"`
}

// Registrant builds the registrant row for p under the booking of s.
func (s Submission) Registrant(p Participant, submissionID string) Registrant {
	dates := p.AttendingDates
	if dates == nil {
		dates = []string{}
	}
	return Registrant{
		SubmissionID:             submissionID,
		BookersEmail:             s.ContactEmail,
		BookersPhone:             s.ContactNumber,
		EventName:                s.Event,
		Name:                     p.Name,
		Age:                      int(p.Age),
		Gender:                   p.Gender,
		Origin:                   p.Origin,
		Contact:                  p.ContactNumber,
		AttendingDates:           dates,
		TravelMode:               p.TravelMode,
		DepartureFromHome:        p.TravelDetails.DepartureFromHome,
		ArrivalAtVenue:           p.TravelDetails.ArrivalAtVenue,
		Accommodation:            p.Accommodation,
		CotRequired:              p.Cot,
		DifficultyClimbingStairs: p.DifficultyClimbingStairs,
		LocalAssistance:          p.LocalAssistance,
		LocalAssistancePerson:    p.LocalAssistancePerson,
		Recordings:               p.Recordings,
		RecordPrograms:           p.RecordingPrograms,
		SpecialRequests:          p.SpecialRequests,
	}
}

// DatePreference builds the preference row for d. The row is keyed by the
// booking email and the participant's own contact, not the booking phone.
func (s Submission) DatePreference(p Participant, d DateSelection) DatePreference {
	return DatePreference{
		EmailID:         s.ContactEmail,
		Contact:         p.ContactNumber,
		Name:            p.Name,
		Date:            d.Date,
		MorningTea:      BeverageChoice(d.MorningTea).Normalize(),
		MorningCoffee:   BeverageChoice(d.MorningCoffee).Normalize(),
		AfternoonTea:    BeverageChoice(d.AfternoonTea).Normalize(),
		AfternoonCoffee: BeverageChoice(d.AfternoonCoffee).Normalize(),
		Breakfast:       d.Breakfast,
		Lunch:           d.Lunch,
		Dinner:          d.Dinner,
		PackedLunch:     d.PackedLunch,
		PackedDinner:    d.PackedDinner,
		DepartureTime:   d.DepartureTime,
	}
}
