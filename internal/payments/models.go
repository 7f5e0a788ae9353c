package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// BoolString accepts JSON true/false as well as the "true"/"false" strings
// some form clients send.
type BoolString bool

func (b *BoolString) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	*b = BoolString(string(data) == "true")
	return nil
}

// BookingDraft is the client-submitted, unpersisted booking data that rides
// along with an order or a verification request.
type BookingDraft struct {
	ServiceType       string     `json:"serviceType"`
	TripType          string     `json:"tripType"`
	City              string     `json:"city"`
	From              string     `json:"from"`
	To                string     `json:"to"`
	Date              string     `json:"date"`
	Time              string     `json:"time"`
	PickupTime        string     `json:"pickupTime"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Mobile            string     `json:"mobile"`
	PhoneNumber       string     `json:"phoneNumber"`
	Pickup            string     `json:"pickup"`
	Drop              string     `json:"drop"`
	Whatsapp          BoolString `json:"whatsapp"`
	GSTDetails        BoolString `json:"gstDetails"`
	SelectedCabType   string     `json:"selectedCabType"`
	SelectedCabPrice  string     `json:"selectedCabPrice"`
	SelectedCabID     string     `json:"selectedCabId"`
	SelectedCabName   string     `json:"selectedCabName"`
	Car               string     `json:"car"`
	EstimatedDistance string     `json:"estimatedDistance"`
}

// PickupTimeOrTime returns the draft's time field, falling back to pickupTime
func (d *BookingDraft) PickupTimeOrTime() string {
	if d.Time != "" {
		return d.Time
	}
	return d.PickupTime
}

// MobileOrPhone returns the draft's mobile, falling back to phoneNumber
func (d *BookingDraft) MobileOrPhone() string {
	if d.Mobile != "" {
		return d.Mobile
	}
	return d.PhoneNumber
}

// CabName returns the cab display name, falling back to the generic car field
func (d *BookingDraft) CabName() string {
	if d.SelectedCabName != "" {
		return d.SelectedCabName
	}
	return d.Car
}

// CreateOrderRequest is the body of POST /api/create-order. Price is loosely
// typed because clients send it both as a number and as a string.
type CreateOrderRequest struct {
	Price           interface{}   `json:"price"`
	Booking         *BookingDraft `json:"booking"`
	SelectedPayment string        `json:"selectedPayment"`
}

// ParsePrice returns the numeric price, or an error for missing or
// non-numeric values.
func (r *CreateOrderRequest) ParsePrice() (float64, error) {
	switch v := r.Price.(type) {
	case float64:
		return v, nil
	case string:
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("non-numeric price %q", v)
		}
		return price, nil
	case json.Number:
		price, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("non-numeric price %q", v.String())
		}
		return price, nil
	default:
		return 0, fmt.Errorf("missing or invalid price")
	}
}

// VerifyPaymentRequest is the body of POST /api/verify-payment, carrying the
// gateway callback fields plus the original booking draft.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string        `json:"razorpay_order_id"`
	RazorpayPaymentID string        `json:"razorpay_payment_id"`
	RazorpaySignature string        `json:"razorpay_signature"`
	BookingData       *BookingDraft `json:"bookingData"`
	SelectedPayment   string        `json:"selectedPayment"`
	TotalFare         float64       `json:"totalFare"`
}

// OrderRequest is a gateway order creation request. Amount is in the smallest
// currency unit (paise). Notes are short descriptive strings the gateway
// persists for operator-side reconciliation.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

// GatewayOrder is the gateway's view of a created order, returned verbatim
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// BookingRef identifies a persisted booking
type BookingRef struct {
	ID              string
	CustomBookingID string
}
