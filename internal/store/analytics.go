package store

import (
	"context"
	"fmt"
)

// DateSummary is the per-date catering count of the admin dashboard.
type DateSummary struct {
	Date                   string `json:"date" gorm:"column:date"`
	MorningTeaWith         int64  `json:"morning_tea_with" gorm:"column:morning_tea_with"`
	MorningTeaWithout      int64  `json:"morning_tea_without" gorm:"column:morning_tea_without"`
	MorningCoffeeWith      int64  `json:"morning_coffee_with" gorm:"column:morning_coffee_with"`
	MorningCoffeeWithout   int64  `json:"morning_coffee_without" gorm:"column:morning_coffee_without"`
	AfternoonTeaWith       int64  `json:"afternoon_tea_with" gorm:"column:afternoon_tea_with"`
	AfternoonTeaWithout    int64  `json:"afternoon_tea_without" gorm:"column:afternoon_tea_without"`
	AfternoonCoffeeWith    int64  `json:"afternoon_coffee_with" gorm:"column:afternoon_coffee_with"`
	AfternoonCoffeeWithout int64  `json:"afternoon_coffee_without" gorm:"column:afternoon_coffee_without"`
	BreakfastCount         int64  `json:"breakfast_count" gorm:"column:breakfast_count"`
	LunchCount             int64  `json:"lunch_count" gorm:"column:lunch_count"`
	DinnerCount            int64  `json:"dinner_count" gorm:"column:dinner_count"`
}

const dateSummaryQuery = `
SELECT date,
       COUNT(CASE WHEN morning_tea = 'with' THEN 1 END) AS morning_tea_with,
       COUNT(CASE WHEN morning_tea = 'without' THEN 1 END) AS morning_tea_without,
       COUNT(CASE WHEN morning_coffee = 'with' THEN 1 END) AS morning_coffee_with,
       COUNT(CASE WHEN morning_coffee = 'without' THEN 1 END) AS morning_coffee_without,
       COUNT(CASE WHEN afternoon_tea = 'with' THEN 1 END) AS afternoon_tea_with,
       COUNT(CASE WHEN afternoon_tea = 'without' THEN 1 END) AS afternoon_tea_without,
       COUNT(CASE WHEN afternoon_coffee = 'with' THEN 1 END) AS afternoon_coffee_with,
       COUNT(CASE WHEN afternoon_coffee = 'without' THEN 1 END) AS afternoon_coffee_without,
       COUNT(CASE WHEN breakfast = true THEN 1 END) AS breakfast_count,
       COUNT(CASE WHEN lunch = true THEN 1 END) AS lunch_count,
       COUNT(CASE WHEN dinner = true THEN 1 END) AS dinner_count
FROM event_dates
GROUP BY date
ORDER BY date`

// DateAnalytics counts beverage choices and meals for every date that has at
// least one preference row.
func (s *Store) DateAnalytics(ctx context.Context) ([]DateSummary, error) {
	var rows []DateSummary
	if err := s.db.WithContext(ctx).Raw(dateSummaryQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("date analytics: %w", err)
	}
	return nonNil(rows), nil
}

type AccommodationRow struct {
	Name         string `json:"name" gorm:"column:name"`
	Age          int    `json:"age" gorm:"column:age"`
	Gender       string `json:"gender" gorm:"column:gender"`
	Origin       string `json:"origin" gorm:"column:origin"`
	BookersEmail string `json:"bookers_email" gorm:"column:bookers_email"`
	Contact      string `json:"contact" gorm:"column:contact"`
	Date         string `json:"date" gorm:"column:date"`
}

type CotRow struct {
	Name         string `json:"name" gorm:"column:name"`
	Age          int    `json:"age" gorm:"column:age"`
	Gender       string `json:"gender" gorm:"column:gender"`
	Origin       string `json:"origin" gorm:"column:origin"`
	BookersEmail string `json:"bookers_email" gorm:"column:bookers_email"`
	Contact      string `json:"contact" gorm:"column:contact"`
}

type RecordingRow struct {
	Name           string `json:"name" gorm:"column:name"`
	BookersEmail   string `json:"bookers_email" gorm:"column:bookers_email"`
	Contact        string `json:"contact" gorm:"column:contact"`
	RecordPrograms string `json:"recordprograms" gorm:"column:recordprograms"`
}

type SpecialRequestRow struct {
	Name            string `json:"name" gorm:"column:name"`
	BookersEmail    string `json:"bookers_email" gorm:"column:bookers_email"`
	Contact         string `json:"contact" gorm:"column:contact"`
	SpecialRequests string `json:"specialrequests" gorm:"column:specialrequests"`
}

type PackedMealRow struct {
	Date         string `json:"date" gorm:"column:date"`
	Name         string `json:"name" gorm:"column:name"`
	BookersEmail string `json:"bookers_email" gorm:"column:bookers_email"`
	Contact      string `json:"contact" gorm:"column:contact"`
	Age          int    `json:"age" gorm:"column:age"`
	Origin       string `json:"origin" gorm:"column:origin"`
	PackedLunch  bool   `json:"packed_lunch" gorm:"column:packed_lunch"`
	PackedDinner bool   `json:"packed_dinner" gorm:"column:packed_dinner"`
}

type DetailedAnalytics struct {
	Accommodations  []AccommodationRow  `json:"accommodations"`
	Cots            []CotRow            `json:"cots"`
	Recordings      []RecordingRow      `json:"recordings"`
	SpecialRequests []SpecialRequestRow `json:"special_requests"`
	PackedMeals     []PackedMealRow     `json:"packed_meals"`
}

// attending_dates is a JSON array column; each engine has its own way of
// turning it into one row per date.
const (
	accommodationQuerySQLite = `
SELECT r.name, r.age, r.gender, r.origin, r.bookers_email, r.contact, d.value AS date
FROM event_registrations r, json_each(r.attending_dates) d
WHERE r.accommodation = true
ORDER BY date, r.gender, r.name`

	accommodationQueryPostgres = `
SELECT r.name, r.age, r.gender, r.origin, r.bookers_email, r.contact, d.date
FROM event_registrations r
CROSS JOIN LATERAL json_array_elements_text(r.attending_dates::json) AS d(date)
WHERE r.accommodation = true
ORDER BY d.date, r.gender, r.name`
)

const (
	cotQuery = `
SELECT name, age, gender, origin, bookers_email, contact
FROM event_registrations
WHERE cot_required = true
ORDER BY gender, name`

	recordingQuery = `
SELECT name, bookers_email, contact, recordprograms
FROM event_registrations
WHERE recordings = true AND recordprograms IS NOT NULL AND recordprograms != ''
ORDER BY name`

	specialRequestQuery = `
SELECT name, bookers_email, contact, specialrequests
FROM event_registrations
WHERE specialrequests IS NOT NULL AND specialrequests != ''
ORDER BY name`

	packedMealQuery = `
SELECT d.date, d.name, r.bookers_email, r.contact, r.age, r.origin,
       d.packed_lunch, d.packed_dinner
FROM event_dates d
JOIN event_registrations r ON d.email_id = r.bookers_email AND d.name = r.name
WHERE d.packed_lunch = true OR d.packed_dinner = true
ORDER BY d.date, d.name`
)

func (s *Store) accommodationQuery() string {
	if s.db.Dialector.Name() == "postgres" {
		return accommodationQueryPostgres
	}
	return accommodationQuerySQLite
}

// DetailedAnalytics runs the five dashboard breakdowns. A failure in any of
// them fails the whole report.
func (s *Store) DetailedAnalytics(ctx context.Context) (*DetailedAnalytics, error) {
	db := s.db.WithContext(ctx)
	var out DetailedAnalytics

	if err := db.Raw(s.accommodationQuery()).Scan(&out.Accommodations).Error; err != nil {
		return nil, fmt.Errorf("accommodations: %w", err)
	}
	if err := db.Raw(cotQuery).Scan(&out.Cots).Error; err != nil {
		return nil, fmt.Errorf("cots: %w", err)
	}
	if err := db.Raw(recordingQuery).Scan(&out.Recordings).Error; err != nil {
		return nil, fmt.Errorf("recordings: %w", err)
	}
	if err := db.Raw(specialRequestQuery).Scan(&out.SpecialRequests).Error; err != nil {
		return nil, fmt.Errorf("special requests: %w", err)
	}
	if err := db.Raw(packedMealQuery).Scan(&out.PackedMeals).Error; err != nil {
		return nil, fmt.Errorf("packed meals: %w", err)
	}

	out.Accommodations = nonNil(out.Accommodations)
	out.Cots = nonNil(out.Cots)
	out.Recordings = nonNil(out.Recordings)
	out.SpecialRequests = nonNil(out.SpecialRequests)
	out.PackedMeals = nonNil(out.PackedMeals)

	return &out, nil
}
