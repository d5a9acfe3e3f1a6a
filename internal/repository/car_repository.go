package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/car-rental/internal/model"
)

// CarRepo provides fleet persistence over the available_cars table.
// Mutations that require the car to be Available (update, remove) run
// inside a transaction that locks the row first, so the precondition
// holds even against a concurrent booking.
type CarRepo struct {
	db *sql.DB
}

// NewCarRepo returns a new CarRepo bound to the given database.
func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span this repo and BookingRepo.
func (r *CarRepo) DB() *sql.DB { return r.db }

// Create inserts a new car. A duplicate car_id yields ErrCarExists.
func (r *CarRepo) Create(ctx context.Context, c model.Car) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO available_cars (car_id, model, brand, year, status) VALUES (?,?,?,?,?)",
		c.CarID, c.Model, c.Brand, c.Year, c.Status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrCarExists
		}
		return err
	}
	return nil
}

// GetByID fetches a single car. Returns sql.ErrNoRows when absent.
func (r *CarRepo) GetByID(ctx context.Context, carID string) (model.Car, error) {
	var c model.Car
	err := r.db.QueryRowContext(ctx,
		"SELECT car_id, model, brand, year, status, created_at, updated_at FROM available_cars WHERE car_id=? LIMIT 1",
		carID).Scan(&c.CarID, &c.Model, &c.Brand, &c.Year, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListAvailable returns all cars currently rentable, in insertion order.
func (r *CarRepo) ListAvailable(ctx context.Context) ([]model.Car, error) {
	return r.list(ctx,
		"SELECT car_id, model, brand, year, status, created_at, updated_at FROM available_cars WHERE status=? ORDER BY created_at, car_id",
		model.StatusAvailable)
}

// ListAll returns the whole fleet regardless of status, in insertion
// order. Used by the admin dashboard.
func (r *CarRepo) ListAll(ctx context.Context) ([]model.Car, error) {
	return r.list(ctx,
		"SELECT car_id, model, brand, year, status, created_at, updated_at FROM available_cars ORDER BY created_at, car_id")
}

func (r *CarRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Car, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cars := make([]model.Car, 0)
	for rows.Next() {
		var c model.Car
		if err := rows.Scan(&c.CarID, &c.Model, &c.Brand, &c.Year, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return cars, nil
}

// requireAvailableTx locks the car's row and verifies that it is
// currently Available. It returns ErrCarNotFound when the car does
// not exist and ErrCarUnavailable when it is rented.
func requireAvailableTx(ctx context.Context, tx *sql.Tx, carID string) error {
	var status string
	err := tx.QueryRowContext(ctx,
		"SELECT status FROM available_cars WHERE car_id=? FOR UPDATE",
		carID).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrCarNotFound
		}
		return err
	}
	if !model.CanRent(status) {
		return ErrCarUnavailable
	}
	return nil
}

// Update overwrites model, brand, year and status for an Available
// car. Editing a rented car is rejected with ErrCarUnavailable;
// returning a rented car to the fleet goes through Release instead.
func (r *CarRepo) Update(ctx context.Context, carID, carModel, brand string, year int, status string) error {
	return r.mutateAvailable(ctx, carID, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"UPDATE available_cars SET model=?, brand=?, year=?, status=? WHERE car_id=?",
			carModel, brand, year, status, carID)
		return err
	})
}

// Release flips a rented car back to Available. This is the manual
// admin transition out of Unavailable; it fails with ErrCarNotFound
// for unknown ids and is a no-op for cars already Available.
func (r *CarRepo) Release(ctx context.Context, carID string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE available_cars SET status=? WHERE car_id=?",
		model.StatusAvailable, carID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero affected rows both for a missing car and
		// for an unchanged status, so confirm existence explicitly.
		var one int
		if err := r.db.QueryRowContext(ctx,
			"SELECT 1 FROM available_cars WHERE car_id=? LIMIT 1", carID).Scan(&one); err != nil {
			if err == sql.ErrNoRows {
				return ErrCarNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes an Available car from the fleet. Rented cars cannot
// be removed.
func (r *CarRepo) Delete(ctx context.Context, carID string) error {
	return r.mutateAvailable(ctx, carID, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM available_cars WHERE car_id=?", carID)
		return err
	})
}

// mutateAvailable runs fn inside a transaction after asserting the
// Available precondition under a row lock.
func (r *CarRepo) mutateAvailable(ctx context.Context, carID string, fn func(context.Context, *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := requireAvailableTx(ctx, tx, carID); err != nil {
		return err
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
