package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richxcame/cab-booking/pkg/common"
	"github.com/richxcame/cab-booking/pkg/config"
)

type fakeOrderClient struct {
	lastReq *OrderRequest
	order   *GatewayOrder
	err     error
}

func (f *fakeOrderClient) CreateOrder(req *OrderRequest) (*GatewayOrder, error) {
	f.lastReq = req
	return f.order, f.err
}

type fakeBookingCreator struct {
	called    bool
	draft     *BookingDraft
	breakdown FareBreakdown
	method    string
	orderID   string
	paymentID string
	ref       *BookingRef
	err       error
}

func (f *fakeBookingCreator) CreateFromPayment(ctx context.Context, draft *BookingDraft, breakdown FareBreakdown, method, orderID, paymentID string) (*BookingRef, error) {
	f.called = true
	f.draft = draft
	f.breakdown = breakdown
	f.method = method
	f.orderID = orderID
	f.paymentID = paymentID
	return f.ref, f.err
}

func newTestService(orders *fakeOrderClient, bookings *fakeBookingCreator, secret string) *Service {
	return NewService(orders, bookings, &config.RazorpayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: secret,
	})
}

func TestCreateOrder_ConvertsToPaise(t *testing.T) {
	orders := &fakeOrderClient{order: &GatewayOrder{ID: "order_1", Amount: 150000, Currency: "INR", Status: "created"}}
	svc := newTestService(orders, &fakeBookingCreator{}, "secret")

	draft := &BookingDraft{
		ServiceType: "AIRPORT",
		City:        "Ahmedabad",
		Name:        "Asha",
		Mobile:      "9876543210",
	}
	order, err := svc.CreateOrder(context.Background(), 1500.00, draft, "20")
	require.NoError(t, err)
	assert.Equal(t, "order_1", order.ID)

	require.NotNil(t, orders.lastReq)
	assert.Equal(t, int64(150000), orders.lastReq.Amount)
	assert.Equal(t, "INR", orders.lastReq.Currency)
	assert.Contains(t, orders.lastReq.Receipt, "receipt_")
	assert.Equal(t, "20", orders.lastReq.Notes["selectedPayment"])
	assert.Equal(t, "Ahmedabad", orders.lastReq.Notes["city"])
	assert.Equal(t, "9876543210", orders.lastReq.Notes["mobile"])
}

func TestCreateOrder_RoundsFractionalPaise(t *testing.T) {
	orders := &fakeOrderClient{order: &GatewayOrder{ID: "order_2"}}
	svc := newTestService(orders, &fakeBookingCreator{}, "secret")

	_, err := svc.CreateOrder(context.Background(), 1234.565, nil, "100")
	require.NoError(t, err)
	assert.Equal(t, int64(123457), orders.lastReq.Amount)
}

func TestCreateOrder_GatewayError(t *testing.T) {
	orders := &fakeOrderClient{err: errors.New("gateway down")}
	svc := newTestService(orders, &fakeBookingCreator{}, "secret")

	_, err := svc.CreateOrder(context.Background(), 500, nil, "0")
	require.Error(t, err)

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.StatusCode())
}

func TestVerifyPayment_MissingSecret(t *testing.T) {
	svc := newTestService(&fakeOrderClient{}, &fakeBookingCreator{}, "")

	_, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
	})
	require.Error(t, err)

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.StatusCode())
}

func TestVerifyPayment_InvalidSignature(t *testing.T) {
	bookingCreator := &fakeBookingCreator{}
	svc := newTestService(&fakeOrderClient{}, bookingCreator, "secret")

	_, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: ComputeSignature("order_1", "pay_1", "wrong-secret"),
		BookingData:       &BookingDraft{Name: "Asha", Email: "a@b.c", Mobile: "9876543210"},
		TotalFare:         1500,
	})
	require.Error(t, err)

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.False(t, bookingCreator.called, "no booking may be written for a bad signature")
}

func TestVerifyPayment_NoBookingData(t *testing.T) {
	bookingCreator := &fakeBookingCreator{}
	svc := newTestService(&fakeOrderClient{}, bookingCreator, "secret")

	result, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: ComputeSignature("order_1", "pay_1", "secret"),
	})
	require.NoError(t, err)
	assert.Nil(t, result.Booking)
	assert.False(t, bookingCreator.called)
}

func TestVerifyPayment_CreatesBooking(t *testing.T) {
	bookingCreator := &fakeBookingCreator{
		ref: &BookingRef{ID: "uuid-1", CustomBookingID: "PC2026082801"},
	}
	svc := newTestService(&fakeOrderClient{}, bookingCreator, "secret")

	result, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: ComputeSignature("order_1", "pay_1", "secret"),
		BookingData: &BookingDraft{
			ServiceType: "OUTSTATION",
			Name:        "Asha",
			Email:       "asha@example.com",
			Mobile:      "9876543210",
		},
		SelectedPayment: "20",
		TotalFare:       1500,
	})
	require.NoError(t, err)

	require.NotNil(t, result.Booking)
	assert.Equal(t, "PC2026082801", result.Booking.CustomBookingID)
	require.NotNil(t, result.Breakdown)
	assert.Equal(t, 300.0, result.Breakdown.AmountPaid)
	assert.Equal(t, 1200.0, result.Breakdown.RemainingAmount)

	assert.True(t, bookingCreator.called)
	assert.Equal(t, "order_1", bookingCreator.orderID)
	assert.Equal(t, "pay_1", bookingCreator.paymentID)
	assert.Equal(t, "20", bookingCreator.method)
}

func TestVerifyPayment_MissingTravellerFields(t *testing.T) {
	bookingCreator := &fakeBookingCreator{}
	svc := newTestService(&fakeOrderClient{}, bookingCreator, "secret")

	_, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: ComputeSignature("order_1", "pay_1", "secret"),
		BookingData:       &BookingDraft{Name: "Asha"},
		TotalFare:         1500,
	})
	require.Error(t, err)

	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
	assert.False(t, bookingCreator.called)
}

func TestVerifyPayment_PersistenceFailure(t *testing.T) {
	bookingCreator := &fakeBookingCreator{err: errors.New("connection refused")}
	svc := newTestService(&fakeOrderClient{}, bookingCreator, "secret")

	_, err := svc.VerifyPayment(context.Background(), &VerifyPaymentRequest{
		RazorpayOrderID:   "order_1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: ComputeSignature("order_1", "pay_1", "secret"),
		BookingData:       &BookingDraft{Name: "Asha", Email: "a@b.c", Mobile: "9876543210"},
		TotalFare:         800,
	})
	require.Error(t, err)

	var bookingErr *BookingCreationError
	require.ErrorAs(t, err, &bookingErr)
	assert.ErrorContains(t, bookingErr.Err, "connection refused")
}
