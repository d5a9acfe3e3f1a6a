package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/car-rental/internal/model"
)

// BookingRepo provides persistence for rentals over the rented_cars
// table. Creating a booking is a two-statement unit (flip the car's
// status, insert the booking row) that must run inside one
// transaction owned by the caller; the Tx methods exist for that.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for handler-owned transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// RentCarTx flips the car's status to Unavailable iff it is currently
// Available. The conditional update is what makes concurrent bookings
// safe: of two racing customers, exactly one statement affects a row.
// Zero affected rows means either the car is gone (ErrCarNotFound) or
// someone else got there first (ErrCarUnavailable).
func (r *BookingRepo) RentCarTx(ctx context.Context, tx *sql.Tx, carID string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE available_cars SET status=? WHERE car_id=? AND status=?",
		model.StatusUnavailable, carID, model.StatusAvailable)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	var one int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM available_cars WHERE car_id=? LIMIT 1", carID).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrCarNotFound
		}
		return err
	}
	return ErrCarUnavailable
}

// CreateTx inserts a booking row within the caller's transaction and
// populates the generated ID on the provided record.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO rented_cars (username, car_id, duration, date) VALUES (?,?,?,?)",
		b.Username, b.CarID, b.Duration, b.Date)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// BookingDetail is a booking enriched with the car's model and brand
// for display. The car may have been removed from the fleet after the
// rental ended, so those fields are nullable.
type BookingDetail struct {
	ID       uint64    `json:"id"`
	Username string    `json:"username"`
	CarID    string    `json:"car_id"`
	Duration int       `json:"duration"`
	Date     string    `json:"date"`
	CarModel *string   `json:"model,omitempty"`
	CarBrand *string   `json:"brand,omitempty"`
}

// ListByUser returns every booking made by the given customer in
// creation order.
func (r *BookingRepo) ListByUser(ctx context.Context, username string) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.username, b.car_id, b.duration, b.date, c.model, c.brand
	           FROM rented_cars b
	           LEFT JOIN available_cars c ON c.car_id = b.car_id
	           WHERE b.username = ?
	           ORDER BY b.id`
	return r.listDetails(ctx, q, username)
}

// ListAll returns every booking in the system in creation order, for
// administrator review.
func (r *BookingRepo) ListAll(ctx context.Context) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.username, b.car_id, b.duration, b.date, c.model, c.brand
	           FROM rented_cars b
	           LEFT JOIN available_cars c ON c.car_id = b.car_id
	           ORDER BY b.id`
	return r.listDetails(ctx, q)
}

func (r *BookingRepo) listDetails(ctx context.Context, query string, args ...interface{}) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var date sql.NullTime
		var carModel, carBrand sql.NullString
		if err := rows.Scan(&d.ID, &d.Username, &d.CarID, &d.Duration, &date, &carModel, &carBrand); err != nil {
			return nil, err
		}
		if date.Valid {
			d.Date = date.Time.UTC().Format("2006-01-02 15:04:05")
		}
		if carModel.Valid {
			m := carModel.String
			d.CarModel = &m
		}
		if carBrand.Valid {
			b := carBrand.String
			d.CarBrand = &b
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
