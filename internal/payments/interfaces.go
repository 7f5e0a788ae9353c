package payments

import "context"

// OrderClientInterface creates orders against the payment gateway
type OrderClientInterface interface {
	CreateOrder(req *OrderRequest) (*GatewayOrder, error)
}

// BookingCreatorInterface persists a booking composed from a verified payment
type BookingCreatorInterface interface {
	CreateFromPayment(ctx context.Context, draft *BookingDraft, breakdown FareBreakdown, method, orderID, paymentID string) (*BookingRef, error)
}
