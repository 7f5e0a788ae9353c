package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateBookingID is returned when an insert hits the booking_id
// unique index; the caller regenerates the ID and retries.
var ErrDuplicateBookingID = errors.New("duplicate booking id")

// ErrNotFound is returned when the addressed booking does not exist
var ErrNotFound = errors.New("booking request not found")

// Shared column list for booking queries
const bookingColumns = `
	b.id, b.booking_id, b.service_type,
	b.traveller_name, b.traveller_email, b.traveller_mobile,
	COALESCE(b.traveller_pickup, ''), COALESCE(b.traveller_drop, ''),
	COALESCE(b.traveller_pickup_address, ''), COALESCE(b.traveller_drop_address, ''),
	COALESCE(b.traveller_remark, ''), COALESCE(b.traveller_gst, ''),
	b.traveller_whatsapp, b.traveller_gst_details,
	COALESCE(b.route, ''),
	COALESCE(b.cab_type, ''), b.cab_price, COALESCE(b.cab_ref_id, ''),
	COALESCE(b.travel_date, ''), COALESCE(b.travel_time, ''), COALESCE(b.estimated_distance, ''),
	b.payment_method,
	b.total_fare, b.amount_paid, b.remaining_amount, b.payment_status,
	COALESCE(b.razorpay_order_id, ''), COALESCE(b.razorpay_payment_id, ''), b.payment_date,
	b.status,
	b.driver_name, b.driver_whatsapp_number, b.driver_vehicle_number, b.driver_car_name,
	COALESCE(b.admin_notes, ''),
	b.created_at, b.updated_at`

// scanBooking scans a row into a BookingRequest
func scanBooking(scan func(dest ...interface{}) error) (BookingRequest, error) {
	b := BookingRequest{}
	var driverName, driverWhatsapp, driverVehicle, driverCar *string
	err := scan(
		&b.ID, &b.BookingID, &b.ServiceType,
		&b.Traveller.Name, &b.Traveller.Email, &b.Traveller.Mobile,
		&b.Traveller.Pickup, &b.Traveller.Drop,
		&b.Traveller.PickupAddress, &b.Traveller.DropAddress,
		&b.Traveller.Remark, &b.Traveller.GST,
		&b.Traveller.Whatsapp, &b.Traveller.GSTDetails,
		&b.Route,
		&b.Cab.Type, &b.Cab.Price, &b.Cab.RefID,
		&b.Date, &b.Time, &b.EstimatedDistance,
		&b.PaymentMethod,
		&b.PaymentDetails.TotalFare, &b.PaymentDetails.AmountPaid,
		&b.PaymentDetails.RemainingAmount, &b.PaymentDetails.PaymentStatus,
		&b.PaymentDetails.RazorpayOrderID, &b.PaymentDetails.RazorpayPaymentID, &b.PaymentDetails.PaymentDate,
		&b.Status,
		&driverName, &driverWhatsapp, &driverVehicle, &driverCar,
		&b.AdminNotes,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return b, err
	}
	if driverName != nil || driverWhatsapp != nil || driverVehicle != nil || driverCar != nil {
		b.DriverDetails = &DriverDetails{
			Name:           deref(driverName),
			WhatsappNumber: deref(driverWhatsapp),
			VehicleNumber:  deref(driverVehicle),
			CarName:        deref(driverCar),
		}
	}
	return b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Repository handles booking data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new booking repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CountCreatedBetween counts bookings created in [from, to)
func (r *Repository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM booking_requests WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&count)
	return count, err
}

// Insert creates one booking document. A unique violation on booking_id is
// reported as ErrDuplicateBookingID.
func (r *Repository) Insert(ctx context.Context, b *BookingRequest) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO booking_requests (
			booking_id, service_type,
			traveller_name, traveller_email, traveller_mobile,
			traveller_pickup, traveller_drop, traveller_pickup_address, traveller_drop_address,
			traveller_remark, traveller_gst, traveller_whatsapp, traveller_gst_details,
			route, cab_type, cab_price, cab_ref_id,
			travel_date, travel_time, estimated_distance,
			payment_method, total_fare, amount_paid, remaining_amount, payment_status,
			razorpay_order_id, razorpay_payment_id, payment_date,
			status, admin_notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25,
			NULLIF($26, ''), NULLIF($27, ''), $28, $29, $30
		)
		RETURNING id, created_at, updated_at`,
		b.BookingID, b.ServiceType,
		b.Traveller.Name, b.Traveller.Email, b.Traveller.Mobile,
		b.Traveller.Pickup, b.Traveller.Drop, b.Traveller.PickupAddress, b.Traveller.DropAddress,
		b.Traveller.Remark, b.Traveller.GST, b.Traveller.Whatsapp, b.Traveller.GSTDetails,
		b.Route, b.Cab.Type, b.Cab.Price, b.Cab.RefID,
		b.Date, b.Time, b.EstimatedDistance,
		b.PaymentMethod, b.PaymentDetails.TotalFare, b.PaymentDetails.AmountPaid,
		b.PaymentDetails.RemainingAmount, b.PaymentDetails.PaymentStatus,
		b.PaymentDetails.RazorpayOrderID, b.PaymentDetails.RazorpayPaymentID, b.PaymentDetails.PaymentDate,
		b.Status, b.AdminNotes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateBookingID
	}
	return err
}

// List returns bookings newest first with the total count
func (r *Repository) List(ctx context.Context, limit, offset int) ([]BookingRequest, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM booking_requests`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM booking_requests b ORDER BY b.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []BookingRequest
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

// GetByID returns a single booking
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*BookingRequest, error) {
	b, err := scanBooking(func(dest ...interface{}) error {
		return r.db.QueryRow(ctx,
			`SELECT `+bookingColumns+` FROM booking_requests b WHERE b.id = $1`, id,
		).Scan(dest...)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateStatus sets the status and admin notes, returning the updated booking
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, adminNotes string) (*BookingRequest, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE booking_requests SET status = $2, admin_notes = $3, updated_at = now() WHERE id = $1`,
		id, status, adminNotes,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// UpdateDriverDetails attaches driver details and moves the booking to
// driver_sent, returning the updated booking
func (r *Repository) UpdateDriverDetails(ctx context.Context, id uuid.UUID, d DriverDetails) (*BookingRequest, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE booking_requests
		SET driver_name = $2, driver_whatsapp_number = $3,
		    driver_vehicle_number = $4, driver_car_name = $5,
		    status = $6, updated_at = now()
		WHERE id = $1`,
		id, d.Name, d.WhatsappNumber, d.VehicleNumber, d.CarName, StatusDriverSent,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
