package outstation

import (
	"time"

	"github.com/google/uuid"
)

// Car is one vehicle option on a route entry, stored as JSONB
type Car struct {
	Type      string  `json:"type"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

// Trip types for an intercity route
const (
	TripOneWay = "one-way"
	TripTwoWay = "two-way"
)

// Entry is one intercity route with its distance and car options
type Entry struct {
	ID        uuid.UUID  `json:"_id" db:"id"`
	City1     string     `json:"city1" db:"city1"`
	City2     string     `json:"city2" db:"city2"`
	DateTime  *time.Time `json:"dateTime,omitempty" db:"date_time"`
	Distance  float64    `json:"distance" db:"distance"`
	TripType  string     `json:"tripType" db:"trip_type"`
	Cars      []Car      `json:"cars" db:"cars"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// SearchRequest is the body of POST /api/intercity/search
type SearchRequest struct {
	City1    string `json:"city1"`
	City2    string `json:"city2"`
	TripType string `json:"tripType"`
}

// CityMap is the availability listing: every origin city mapped to the
// destinations it serves.
type CityMap struct {
	CityMap    map[string][]string `json:"cityMap"`
	FromCities []string            `json:"fromCities"`
}

// ConfirmationEmailRequest is the body of POST /send-intercity-email
type ConfirmationEmailRequest struct {
	Email     string `json:"email"`
	Route     string `json:"route"`
	Cab       *Car   `json:"cab"`
	Traveller struct {
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
	} `json:"traveller"`
}

// AnnouncementEmailRequest is the body of POST /send-route-email
type AnnouncementEmailRequest struct {
	Email string `json:"email"`
	Route string `json:"route"`
	Cars  []Car  `json:"cars"`
}
