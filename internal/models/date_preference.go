package models

// BeverageChoice is the serving choice for a tea/coffee slot.
type BeverageChoice string

const (
	BeverageUnset   BeverageChoice = ""
	BeverageWith    BeverageChoice = "with"
	BeverageWithout BeverageChoice = "without"
)

// Normalize maps anything other than "with"/"without" to unset.
func (c BeverageChoice) Normalize() BeverageChoice {
	switch c {
	case BeverageWith, BeverageWithout:
		return c
	default:
		return BeverageUnset
	}
}

// DatePreference holds the meal and logistics choices of one registrant on
// one attended date. It is linked to its Registrant only through the natural
// key (EmailID, Contact, Name); there is no foreign key.
type DatePreference struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	EmailID string `json:"email_id" gorm:"column:email_id;size:255;not null;index:idx_event_dates_owner"`
	Contact string `json:"contact" gorm:"column:contact;size:255;not null"`
	Name    string `json:"name" gorm:"column:name;size:255;not null;index:idx_event_dates_owner"`
	Date    string `json:"date" gorm:"column:date;size:255;not null;index"`

	MorningTea      BeverageChoice `json:"morning_tea" gorm:"column:morning_tea;size:255"`
	MorningCoffee   BeverageChoice `json:"morning_coffee" gorm:"column:morning_coffee;size:255"`
	AfternoonTea    BeverageChoice `json:"afternoon_tea" gorm:"column:afternoon_tea;size:255"`
	AfternoonCoffee BeverageChoice `json:"afternoon_coffee" gorm:"column:afternoon_coffee;size:255"`

	Breakfast    bool `json:"breakfast" gorm:"column:breakfast"`
	Lunch        bool `json:"lunch" gorm:"column:lunch"`
	Dinner       bool `json:"dinner" gorm:"column:dinner"`
	PackedLunch  bool `json:"packed_lunch" gorm:"column:packed_lunch"`
	PackedDinner bool `json:"packed_dinner" gorm:"column:packed_dinner"`

	DepartureTime string `json:"departuretime" gorm:"column:departuretime;size:255"`
}

func (DatePreference) TableName() string {
	return "event_dates"
}
