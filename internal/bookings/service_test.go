package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richxcame/cab-booking/internal/notifications"
	"github.com/richxcame/cab-booking/internal/payments"
	"github.com/richxcame/cab-booking/pkg/common"
	"github.com/richxcame/cab-booking/pkg/pagination"
)

type fakeRepo struct {
	count        int
	countErr     error
	insertErrs   []error // popped per Insert call
	inserted     []BookingRequest
	stored       map[uuid.UUID]*BookingRequest
	listResult   []BookingRequest
	listTotal    int64
	updateStatus *BookingRequest
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{stored: map[uuid.UUID]*BookingRequest{}}
}

func (f *fakeRepo) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	return f.count, f.countErr
}

func (f *fakeRepo) Insert(ctx context.Context, b *BookingRequest) error {
	if len(f.insertErrs) > 0 {
		err := f.insertErrs[0]
		f.insertErrs = f.insertErrs[1:]
		if err != nil {
			f.count++ // a concurrent writer took this sequence number
			return err
		}
	}
	b.ID = uuid.New()
	f.inserted = append(f.inserted, *b)
	return nil
}

func (f *fakeRepo) List(ctx context.Context, limit, offset int) ([]BookingRequest, int64, error) {
	return f.listResult, f.listTotal, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*BookingRequest, error) {
	b, ok := f.stored[id]
	if !ok {
		return nil, ErrNotFound
	}
	return b, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, adminNotes string) (*BookingRequest, error) {
	b, ok := f.stored[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Status = status
	b.AdminNotes = adminNotes
	return b, nil
}

func (f *fakeRepo) UpdateDriverDetails(ctx context.Context, id uuid.UUID, d DriverDetails) (*BookingRequest, error) {
	b, ok := f.stored[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Status = StatusDriverSent
	b.DriverDetails = &d
	return b, nil
}

type fakeMailer struct {
	confirmations []*notifications.BookingConfirmation
	assignments   []*notifications.DriverAssignment
	declines      []*notifications.Decline
	err           error
}

func (f *fakeMailer) SendBookingConfirmation(ctx context.Context, bc *notifications.BookingConfirmation) error {
	f.confirmations = append(f.confirmations, bc)
	return f.err
}

func (f *fakeMailer) SendDriverDetails(ctx context.Context, da *notifications.DriverAssignment) error {
	f.assignments = append(f.assignments, da)
	return f.err
}

func (f *fakeMailer) SendDecline(ctx context.Context, d *notifications.Decline) error {
	f.declines = append(f.declines, d)
	return f.err
}

func newTestService(repo *fakeRepo, mailer *fakeMailer) *Service {
	svc := NewService(repo, mailer)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestGenerateBookingID(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMailer{})

	t.Run("first booking of the day", func(t *testing.T) {
		repo.count = 0
		id, err := svc.GenerateBookingID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "PC2026082801", id)
	})

	t.Run("sequence increments with the day's count", func(t *testing.T) {
		repo.count = 11
		id, err := svc.GenerateBookingID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "PC2026082812", id)
	})

	t.Run("count failure propagates", func(t *testing.T) {
		repo.countErr = errors.New("db down")
		_, err := svc.GenerateBookingID(context.Background())
		assert.Error(t, err)
		repo.countErr = nil
	})
}

func TestCreate_RetriesOnBookingIDCollision(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErrs = []error{ErrDuplicateBookingID}
	svc := newTestService(repo, &fakeMailer{})

	b, err := svc.Create(context.Background(), &CreateBookingRequest{
		ServiceType:   ServiceAirport,
		Traveller:     Traveller{Name: "Asha", Email: "asha@example.com", Mobile: "9876543210"},
		Cab:           Cab{Type: "sedan", Price: 1500},
		PaymentMethod: "20",
	})
	require.NoError(t, err)

	// The collision consumed PC2026082801; the retry regenerated from the
	// bumped count.
	assert.Equal(t, "PC2026082802", b.BookingID)
	require.Len(t, repo.inserted, 1)
}

func TestCreate_GivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErrs = []error{ErrDuplicateBookingID, ErrDuplicateBookingID, ErrDuplicateBookingID}
	svc := newTestService(repo, &fakeMailer{})

	_, err := svc.Create(context.Background(), &CreateBookingRequest{
		ServiceType: ServiceLocal,
		Traveller:   Traveller{Name: "Asha", Email: "asha@example.com", Mobile: "9876543210"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "exhausted")
}

func TestCreate_SplitsFareAndSendsConfirmation(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	b, err := svc.Create(context.Background(), &CreateBookingRequest{
		ServiceType:   ServiceOutstation,
		Traveller:     Traveller{Name: "Asha", Email: "asha@example.com", Mobile: "9876543210"},
		Route:         "Ahmedabad to Udaipur",
		Cab:           Cab{Type: "innova crysta", Price: 5000},
		Date:          "2026-09-01",
		Time:          "06:00",
		PaymentMethod: "20",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, 5000.0, b.PaymentDetails.TotalFare)
	assert.Equal(t, 1000.0, b.PaymentDetails.AmountPaid)
	assert.Equal(t, 4000.0, b.PaymentDetails.RemainingAmount)

	require.Len(t, mailer.confirmations, 1)
	assert.Equal(t, "INNOVA CRYSTAL", mailer.confirmations[0].CabName)
	assert.Equal(t, b.BookingID, mailer.confirmations[0].BookingID)
}

func TestCreate_EmailFailureDoesNotFailBooking(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{err: errors.New("sendgrid 503")}
	svc := newTestService(repo, mailer)

	b, err := svc.Create(context.Background(), &CreateBookingRequest{
		ServiceType: ServiceAirport,
		Traveller:   Traveller{Name: "Asha", Email: "asha@example.com", Mobile: "9876543210"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b.BookingID)
}

func TestCreateFromPayment(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	draft := &payments.BookingDraft{
		ServiceType:      "outstation",
		From:             "Ahmedabad",
		To:               "Mount Abu",
		Date:             "2026-09-05",
		PickupTime:       "07:30",
		Name:             "Ravi",
		Email:            "ravi@example.com",
		PhoneNumber:      "9123456780",
		SelectedCabType:  "sedan",
		SelectedCabPrice: "4499.50",
	}
	breakdown := payments.SplitFare(4500, "100")

	ref, err := svc.CreateFromPayment(context.Background(), draft, breakdown, "100", "order_9", "pay_9")
	require.NoError(t, err)
	assert.Equal(t, "PC2026082801", ref.CustomBookingID)

	require.Len(t, repo.inserted, 1)
	b := repo.inserted[0]
	assert.Equal(t, ServiceOutstation, b.ServiceType)
	assert.Equal(t, "Ahmedabad to Mount Abu", b.Route)
	assert.Equal(t, "9123456780", b.Traveller.Mobile)
	assert.Equal(t, "07:30", b.Time)
	assert.Equal(t, int64(4500), b.Cab.Price) // rounded from "4499.50"
	assert.Equal(t, "order_9", b.PaymentDetails.RazorpayOrderID)
	assert.Equal(t, "pay_9", b.PaymentDetails.RazorpayPaymentID)
	require.NotNil(t, b.PaymentDetails.PaymentDate)
	assert.Equal(t, payments.StatusFull, b.PaymentDetails.PaymentStatus)
}

func TestNormalizeServiceType(t *testing.T) {
	assert.Equal(t, ServiceAirport, normalizeServiceType(" airport "))
	assert.Equal(t, ServiceLocal, normalizeServiceType("LOCAL"))
	assert.Equal(t, ServiceOutstation, normalizeServiceType("outstation"))
	assert.Equal(t, ServiceOutstation, normalizeServiceType("roundtrip"))
	assert.Equal(t, ServiceOutstation, normalizeServiceType(""))
}

func TestCalculatePayment(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		total         float64
		wantRemaining float64
		wantStatus    string
	}{
		{"20 percent advance", "20", 1500, 1200, "20% Advance"},
		{"full advance", "100", 800, 0, "100% Advance"},
		{"cash", "0", 950, 950, "Cash on Delivery"},
		{"unknown method treated as cash", "weird", 950, 950, "Cash on Delivery"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &BookingRequest{
				PaymentMethod:  tt.method,
				PaymentDetails: PaymentDetails{TotalFare: tt.total},
			}
			got := calculatePayment(b)
			assert.Equal(t, tt.wantRemaining, got.RemainingAmount)
			assert.Equal(t, tt.wantStatus, got.PaymentStatus)
			assert.Equal(t, tt.total, got.TotalFare)
		})
	}
}

func TestList_AnnotatesEntries(t *testing.T) {
	repo := newFakeRepo()
	repo.listResult = []BookingRequest{
		{
			BookingID:      "PC2026082801",
			PaymentMethod:  "20",
			PaymentDetails: PaymentDetails{TotalFare: 2000},
			Cab:            Cab{RefID: "4", Type: "suv"},
		},
	}
	repo.listTotal = 25
	svc := newTestService(repo, &fakeMailer{})

	entries, meta, err := svc.List(context.Background(), pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "INNOVA CRYSTAL", entries[0].CabName) // ref id wins over type
	assert.Equal(t, 1600.0, entries[0].CalculatedPayment.RemainingAmount)
	assert.Equal(t, "20% Advance", entries[0].CalculatedPayment.PaymentStatus)

	require.NotNil(t, meta)
	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMailer{})

	id := uuid.New()
	repo.stored[id] = &BookingRequest{ID: id, Status: StatusPending}

	t.Run("pending to accepted", func(t *testing.T) {
		b, err := svc.UpdateStatus(context.Background(), id, &UpdateStatusRequest{Status: StatusAccepted, AdminNotes: "confirmed on phone"})
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, b.Status)
		assert.Equal(t, "confirmed on phone", b.AdminNotes)
	})

	t.Run("accepted back to pending is rejected", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), id, &UpdateStatusRequest{Status: StatusPending})
		var appErr *common.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.StatusCode())
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.UpdateStatus(context.Background(), uuid.New(), &UpdateStatusRequest{Status: StatusAccepted})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAssignDriver(t *testing.T) {
	repo := newFakeRepo()
	mailer := &fakeMailer{}
	svc := newTestService(repo, mailer)

	id := uuid.New()
	repo.stored[id] = &BookingRequest{
		ID:        id,
		BookingID: "PC2026082803",
		Status:    StatusAccepted,
		Traveller: Traveller{Name: "Asha", Email: "asha@example.com"},
		Route:     "Airport to Bopal",
	}

	details := DriverDetails{
		Name:           "Mahesh",
		WhatsappNumber: "9000000001",
		VehicleNumber:  "GJ01AB1234",
		CarName:        "Innova",
	}
	b, err := svc.AssignDriver(context.Background(), id, details)
	require.NoError(t, err)

	assert.Equal(t, StatusDriverSent, b.Status)
	require.NotNil(t, b.DriverDetails)
	assert.Equal(t, "Mahesh", b.DriverDetails.Name)

	require.Len(t, mailer.assignments, 1)
	assert.Equal(t, "asha@example.com", mailer.assignments[0].Email)
	assert.Equal(t, "GJ01AB1234", mailer.assignments[0].VehicleNumber)
}

func TestAssignDriver_RejectedForPendingBooking(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeMailer{})

	id := uuid.New()
	repo.stored[id] = &BookingRequest{ID: id, Status: StatusPending}

	_, err := svc.AssignDriver(context.Background(), id, DriverDetails{Name: "Mahesh"})
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestValidTransition(t *testing.T) {
	assert.True(t, ValidTransition(StatusPending, StatusAccepted))
	assert.True(t, ValidTransition(StatusPending, StatusDeclined))
	assert.True(t, ValidTransition(StatusAccepted, StatusDriverSent))
	assert.False(t, ValidTransition(StatusPending, StatusDriverSent))
	assert.False(t, ValidTransition(StatusDeclined, StatusAccepted))
	assert.False(t, ValidTransition(StatusDriverSent, StatusAccepted))
	assert.False(t, ValidTransition(StatusAccepted, StatusPending))
}

func TestDisplayCabName(t *testing.T) {
	assert.Equal(t, "Innova", DisplayCabName(Cab{RefID: "1"}))
	assert.Equal(t, "INNOVA CRYSTAL", DisplayCabName(Cab{Type: "Innova Crysta"}))
	assert.Equal(t, "Innova", DisplayCabName(Cab{Type: "innova"}))
	assert.Equal(t, "SEDAN", DisplayCabName(Cab{Type: "Sedan (Dzire)"}))
	assert.Equal(t, "Tempo Traveller", DisplayCabName(Cab{Type: "Tempo Traveller"}))
}
