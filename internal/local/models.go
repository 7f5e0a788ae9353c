package local

import (
	"time"

	"github.com/google/uuid"
)

// Car is one vehicle option on a ride entry, stored as JSONB
type Car struct {
	Type      string  `json:"type"`
	Available bool    `json:"available"`
	Price     float64 `json:"price"`
}

// Entry is one local ride offering: a city paired with an hourly package
// (e.g. "8hr/80km") and its car options.
type Entry struct {
	ID        uuid.UUID  `json:"_id" db:"id"`
	City      string     `json:"city" db:"city"`
	Package   string     `json:"package" db:"package"`
	DateTime  *time.Time `json:"dateTime,omitempty" db:"date_time"`
	Cars      []Car      `json:"cars" db:"cars"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

// SearchRequest is the body of POST /api/local-ride/search
type SearchRequest struct {
	City    string `json:"city"`
	Package string `json:"package"`
}

// BulkCreateRequest is the body of POST /add-local-bulk. A city is always
// onboarded with all four hourly packages at once.
type BulkCreateRequest struct {
	Entries []Entry `json:"entries"`
}

// ConfirmationEmailRequest is the body of POST /send-local-email
type ConfirmationEmailRequest struct {
	Email     string `json:"email"`
	Route     string `json:"route"`
	Car       *Car   `json:"car"`
	Traveller struct {
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
	} `json:"traveller"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	BookingID     string  `json:"bookingId"`
	PaymentMethod string  `json:"paymentMethod"`
	TotalFare     float64 `json:"totalFare"`
}

// InquiryRequest is the body of the local inquiry endpoints
type InquiryRequest struct {
	City        string `json:"city"`
	Package     string `json:"package"`
	Date        string `json:"date"`
	PickupTime  string `json:"pickupTime"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}
