package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richxcame/cab-booking/pkg/config"
)

type fakeEmailClient struct {
	sent    []*Message
	failFor string // address whose sends fail
}

func (f *fakeEmailClient) Send(ctx context.Context, msg *Message) error {
	if f.failFor != "" && msg.ToAddress == f.failFor {
		return errors.New("delivery failed")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestMailer(client *fakeEmailClient) *Service {
	return NewService(client, &config.EmailConfig{
		FromAddress:  "no-reply@pentacabs.in",
		FromName:     "Penta Cabs",
		AdminAddress: "ops@pentacabs.in",
	})
}

func TestSendBookingConfirmation_SendsUserAndAdminCopies(t *testing.T) {
	client := &fakeEmailClient{}
	svc := newTestMailer(client)

	err := svc.SendBookingConfirmation(context.Background(), &BookingConfirmation{
		BookingID:       "PC2026082801",
		Name:            "Asha",
		Email:           "asha@example.com",
		ServiceType:     "OUTSTATION",
		Route:           "Ahmedabad to Udaipur",
		CabName:         "SEDAN",
		TotalFare:       4500,
		AmountPaid:      900,
		RemainingAmount: 3600,
		PaymentStatus:   "partial",
		PaymentMethod:   "20",
	})
	require.NoError(t, err)

	require.Len(t, client.sent, 2)
	user, admin := client.sent[0], client.sent[1]

	assert.Equal(t, "asha@example.com", user.ToAddress)
	assert.Equal(t, "Booking Confirmation - PC2026082801", user.Subject)
	assert.Contains(t, user.HTMLBody, "PC2026082801")
	assert.Contains(t, user.HTMLBody, "Ahmedabad to Udaipur")

	assert.Equal(t, "ops@pentacabs.in", admin.ToAddress)
	assert.Equal(t, "New Booking Request - PC2026082801", admin.Subject)
}

func TestSendBookingConfirmation_AdminFailureIsSwallowed(t *testing.T) {
	client := &fakeEmailClient{failFor: "ops@pentacabs.in"}
	svc := newTestMailer(client)

	err := svc.SendBookingConfirmation(context.Background(), &BookingConfirmation{
		BookingID: "PC2026082802",
		Name:      "Asha",
		Email:     "asha@example.com",
	})
	require.NoError(t, err)
	require.Len(t, client.sent, 1)
	assert.Equal(t, "asha@example.com", client.sent[0].ToAddress)
}

func TestSendBookingConfirmation_UserFailurePropagates(t *testing.T) {
	client := &fakeEmailClient{failFor: "asha@example.com"}
	svc := newTestMailer(client)

	err := svc.SendBookingConfirmation(context.Background(), &BookingConfirmation{
		BookingID: "PC2026082803",
		Name:      "Asha",
		Email:     "asha@example.com",
	})
	assert.Error(t, err)
}

func TestSendServiceConfirmation_AdminCopyOnlyWhenRequested(t *testing.T) {
	t.Run("without admin copy", func(t *testing.T) {
		client := &fakeEmailClient{}
		svc := newTestMailer(client)

		err := svc.SendServiceConfirmation(context.Background(), &ServiceConfirmation{
			Email:       "ravi@example.com",
			Name:        "Ravi",
			ServiceType: "AIRPORT",
			Route:       "Ahmedabad Airport to Bopal",
		})
		require.NoError(t, err)
		require.Len(t, client.sent, 1)
		assert.Equal(t, "AIRPORT Booking Confirmation", client.sent[0].Subject)
	})

	t.Run("with admin copy", func(t *testing.T) {
		client := &fakeEmailClient{}
		svc := newTestMailer(client)

		err := svc.SendServiceConfirmation(context.Background(), &ServiceConfirmation{
			Email:       "ravi@example.com",
			Name:        "Ravi",
			ServiceType: "LOCAL",
			Route:       "Ahmedabad - 8hr/80km",
			AdminCopy:   true,
		})
		require.NoError(t, err)
		require.Len(t, client.sent, 2)
		assert.Equal(t, "ops@pentacabs.in", client.sent[1].ToAddress)
		assert.Equal(t, "New LOCAL Booking: Ahmedabad - 8hr/80km", client.sent[1].Subject)
	})
}

func TestSendInquiry_SubjectReflectsAvailability(t *testing.T) {
	client := &fakeEmailClient{}
	svc := newTestMailer(client)

	inq := &Inquiry{
		City:        "Rajkot",
		Package:     "4hr/40km",
		Name:        "Meera",
		PhoneNumber: "9000000002",
	}

	inq.ServiceAvailable = true
	require.NoError(t, svc.SendInquiry(context.Background(), inq))

	inq.ServiceAvailable = false
	require.NoError(t, svc.SendInquiry(context.Background(), inq))

	require.Len(t, client.sent, 2)
	assert.Equal(t, "New Local Inquiry: Rajkot - 4hr/40km - Meera", client.sent[0].Subject)
	assert.Equal(t, "Service Not Available - Local: Rajkot - 4hr/40km - Meera", client.sent[1].Subject)
	assert.Equal(t, "ops@pentacabs.in", client.sent[0].ToAddress)
}

func TestSendRouteAnnouncement(t *testing.T) {
	client := &fakeEmailClient{}
	svc := newTestMailer(client)

	err := svc.SendRouteAnnouncement(context.Background(), &RouteAnnouncement{
		Email: "subscriber@example.com",
		Route: "Ahmedabad to Mount Abu",
		Kind:  "Outstation",
		Cars: []AnnouncedCar{
			{Type: "sedan", Available: true, Price: 4500},
			{Type: "suv", Available: true, Price: 6000},
		},
	})
	require.NoError(t, err)

	require.Len(t, client.sent, 1)
	assert.Equal(t, "New Outstation Route Now Available!", client.sent[0].Subject)
	assert.Contains(t, client.sent[0].HTMLBody, "Ahmedabad to Mount Abu")
	assert.Contains(t, client.sent[0].HTMLBody, "sedan")
}

func TestSendDecline(t *testing.T) {
	client := &fakeEmailClient{}
	svc := newTestMailer(client)

	err := svc.SendDecline(context.Background(), &Decline{
		Email:  "asha@example.com",
		Route:  "Ahmedabad to Udaipur",
		Reason: "No cars available for the selected date",
	})
	require.NoError(t, err)

	require.Len(t, client.sent, 1)
	assert.Equal(t, "Update on Your Booking Request", client.sent[0].Subject)
	assert.Contains(t, client.sent[0].HTMLBody, "No cars available for the selected date")
}
