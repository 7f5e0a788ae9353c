package bookings

import (
	"time"

	"github.com/google/uuid"
)

// ServiceType classifies a booking
type ServiceType string

const (
	ServiceAirport    ServiceType = "AIRPORT"
	ServiceLocal      ServiceType = "LOCAL"
	ServiceOutstation ServiceType = "OUTSTATION"
)

// Status is the booking lifecycle state.
// pending -> accepted | declined; accepted -> driver_sent.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusDeclined   Status = "declined"
	StatusDriverSent Status = "driver_sent"
)

// ValidTransition reports whether a status change is allowed.
// There is no transition out of declined or driver_sent.
func ValidTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusDeclined
	case StatusAccepted:
		return to == StatusDriverSent
	default:
		return false
	}
}

// Traveller holds the customer details on a booking
type Traveller struct {
	Name          string `json:"name" db:"traveller_name"`
	Email         string `json:"email" db:"traveller_email"`
	Mobile        string `json:"mobile" db:"traveller_mobile"`
	Pickup        string `json:"pickup,omitempty" db:"traveller_pickup"`
	Drop          string `json:"drop,omitempty" db:"traveller_drop"`
	PickupAddress string `json:"pickupAddress,omitempty" db:"traveller_pickup_address"`
	DropAddress   string `json:"dropAddress,omitempty" db:"traveller_drop_address"`
	Remark        string `json:"remark,omitempty" db:"traveller_remark"`
	GST           string `json:"gst,omitempty" db:"traveller_gst"`
	Whatsapp      bool   `json:"whatsapp" db:"traveller_whatsapp"`
	GSTDetails    bool   `json:"gstDetails" db:"traveller_gst_details"`
}

// Cab is the vehicle selection attached to a booking
type Cab struct {
	Type  string `json:"type" db:"cab_type"`
	Price int64  `json:"price" db:"cab_price"`
	RefID string `json:"_id,omitempty" db:"cab_ref_id"`
}

// PaymentDetails is the payment breakdown, computed once at verification time
type PaymentDetails struct {
	TotalFare         float64    `json:"totalFare" db:"total_fare"`
	AmountPaid        float64    `json:"amountPaid" db:"amount_paid"`
	RemainingAmount   float64    `json:"remainingAmount" db:"remaining_amount"`
	PaymentStatus     string     `json:"paymentStatus" db:"payment_status"`
	RazorpayOrderID   string     `json:"razorpayOrderId,omitempty" db:"razorpay_order_id"`
	RazorpayPaymentID string     `json:"razorpayPaymentId,omitempty" db:"razorpay_payment_id"`
	PaymentDate       *time.Time `json:"paymentDate,omitempty" db:"payment_date"`
}

// DriverDetails is attached on the accepted -> driver_sent transition
type DriverDetails struct {
	Name           string `json:"name"`
	WhatsappNumber string `json:"whatsappNumber"`
	VehicleNumber  string `json:"vehicleNumber"`
	CarName        string `json:"carName"`
}

// BookingRequest is a customer booking and its lifecycle state
type BookingRequest struct {
	ID                uuid.UUID      `json:"_id" db:"id"`
	BookingID         string         `json:"bookingId" db:"booking_id"`
	ServiceType       ServiceType    `json:"serviceType" db:"service_type"`
	Traveller         Traveller      `json:"traveller"`
	Route             string         `json:"route,omitempty" db:"route"`
	Cab               Cab            `json:"cab"`
	Date              string         `json:"date,omitempty" db:"travel_date"`
	Time              string         `json:"time,omitempty" db:"travel_time"`
	EstimatedDistance string         `json:"estimatedDistance,omitempty" db:"estimated_distance"`
	PaymentMethod     string         `json:"paymentMethod" db:"payment_method"`
	PaymentDetails    PaymentDetails `json:"paymentDetails"`
	Status            Status         `json:"status" db:"status"`
	DriverDetails     *DriverDetails `json:"driverDetails,omitempty"`
	AdminNotes        string         `json:"adminNotes,omitempty" db:"admin_notes"`
	CreatedAt         time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time      `json:"updatedAt" db:"updated_at"`
}

// CalculatedPayment is the method-derived payment summary the admin listing
// shows for each booking
type CalculatedPayment struct {
	RemainingAmount float64 `json:"remainingAmount"`
	PaymentStatus   string  `json:"paymentStatus"`
	TotalFare       float64 `json:"totalFare"`
}

// ListEntry is one row of the paginated booking listing
type ListEntry struct {
	BookingRequest
	CalculatedPayment CalculatedPayment `json:"calculatedPayment"`
	CabName           string            `json:"cabName"`
}

// ========================================
// REQUEST TYPES
// ========================================

// CreateBookingRequest is the body of POST /api/create-booking-request
type CreateBookingRequest struct {
	ServiceType       ServiceType `json:"serviceType" validate:"required,service_type"`
	Traveller         Traveller   `json:"traveller"`
	Route             string      `json:"route"`
	Cab               Cab         `json:"cab"`
	Date              string      `json:"date"`
	Time              string      `json:"time"`
	EstimatedDistance string      `json:"estimatedDistance"`
	PaymentMethod     string      `json:"paymentMethod"`
}

// UpdateStatusRequest is the body of PUT /api/booking-requests/:id/status
type UpdateStatusRequest struct {
	Status     Status `json:"status" validate:"required,booking_status"`
	AdminNotes string `json:"adminNotes"`
}

// UpdateDriverDetailsRequest is the body of PUT /api/booking-requests/:id/driver-details
type UpdateDriverDetailsRequest struct {
	DriverDetails DriverDetails `json:"driverDetails"`
}

// DeclineEmailRequest is the body of POST /api/send-decline-email
type DeclineEmailRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Route  string `json:"route"`
	Reason string `json:"reason"`
}
