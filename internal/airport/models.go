package airport

import (
	"time"

	"github.com/google/uuid"
)

// Car is one vehicle option on a service entry, stored as JSONB
type Car struct {
	Type      string  `json:"type"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

// Entry is one airport transfer service: an airport city paired with another
// location, in the drop or pick direction, with its car options.
type Entry struct {
	ID            uuid.UUID  `json:"_id" db:"id"`
	AirportCity   string     `json:"airportCity" db:"airport_city"`
	AirportName   string     `json:"airportName,omitempty" db:"airport_name"`
	AirportCode   string     `json:"airportCode,omitempty" db:"airport_code"`
	ServiceType   string     `json:"serviceType" db:"service_type"`
	OtherLocation string     `json:"otherLocation" db:"other_location"`
	DateTime      *time.Time `json:"dateTime,omitempty" db:"date_time"`
	Distance      float64    `json:"distance,omitempty" db:"distance"`
	Cars          []Car      `json:"cars" db:"cars"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}

// SearchRequest is the body of POST /api/search-cabs-forairport
type SearchRequest struct {
	ServiceType   string `json:"serviceType"`
	AirportCity   string `json:"airportCity"`
	OtherLocation string `json:"otherLocation"`
}

// Availability groups the served locations of one airport city by direction
type Availability struct {
	AirportCity   string   `json:"airportCity"`
	DropLocations []string `json:"dropLocations"`
	PickLocations []string `json:"pickLocations"`
}

// ConfirmationEmailRequest is the body of POST /api/send-airport-email
type ConfirmationEmailRequest struct {
	Email         string `json:"email"`
	Route         string `json:"route"`
	Cab           *Car   `json:"cab"`
	Traveller     struct {
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
	} `json:"traveller"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ServiceType string `json:"serviceType"`
}

// AnnouncementEmailRequest is the body of POST /send-airport-email
type AnnouncementEmailRequest struct {
	Email string `json:"email"`
	Route string `json:"route"`
	Cars  []Car  `json:"cars"`
}
