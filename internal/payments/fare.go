package payments

import "math"

// Payment method selectors sent by the web client.
const (
	MethodCash        = "0"   // pay on delivery
	MethodPartialPaid = "20"  // 20% advance
	MethodFullPaid    = "100" // 100% advance
)

// Payment statuses stored on a booking.
const (
	StatusPending = "pending"
	StatusPartial = "partial"
	StatusFull    = "full"
)

// FareBreakdown is the derived payment split for a booking
type FareBreakdown struct {
	TotalFare       float64 `json:"totalFare"`
	AmountPaid      float64 `json:"amountPaid"`
	RemainingAmount float64 `json:"remainingAmount"`
	PaymentStatus   string  `json:"paymentStatus"`
}

// SplitFare derives amount paid, remaining amount and payment status from a
// total fare and the selected payment method. Unrecognized methods fall back
// to the cash branch, matching the behavior the web client depends on.
func SplitFare(totalFare float64, method string) FareBreakdown {
	b := FareBreakdown{
		TotalFare:     totalFare,
		PaymentStatus: StatusPending,
	}

	switch method {
	case MethodPartialPaid:
		b.AmountPaid = math.Round(totalFare * 0.2)
		b.PaymentStatus = StatusPartial
	case MethodFullPaid:
		b.AmountPaid = totalFare
		b.PaymentStatus = StatusFull
	}

	b.RemainingAmount = totalFare - b.AmountPaid
	return b
}
