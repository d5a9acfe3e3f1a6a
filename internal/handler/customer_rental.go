package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-rental/internal/model"
	"github.com/iliyamo/car-rental/internal/queue"
	"github.com/iliyamo/car-rental/internal/repository"
	queue_publisher "github.com/iliyamo/car-rental/internal/service"
)

// RentalHandler serves the customer side: browsing available cars,
// renting one and listing own bookings. CreateBooking runs its
// critical section inside a transaction so the booking insert and the
// car's status flip commit or roll back together.
type RentalHandler struct {
	Cars     *repository.CarRepo
	Bookings *repository.BookingRepo
}

// NewRentalHandler constructs a RentalHandler and panics if a dependency is nil.
func NewRentalHandler(cars *repository.CarRepo, bookings *repository.BookingRepo) *RentalHandler {
	if cars == nil || bookings == nil {
		panic("nil repository passed to NewRentalHandler")
	}
	return &RentalHandler{Cars: cars, Bookings: bookings}
}

// ListAvailableCars handles GET /v1/cars/available. It drives both the
// customer browse view and the admin update/remove selection, so it is
// left public and fronted by the response cache.
func (h *RentalHandler) ListAvailableCars(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cars, err := h.Cars.ListAvailable(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load cars failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cars})
}

// CreateBooking handles POST /v1/bookings. The request carries the
// car_id and duration explicitly; the renting customer comes from the
// JWT. The status-check-and-flip is a single conditional UPDATE inside
// the transaction, so of two customers racing for the same car exactly
// one booking succeeds and the loser gets a conflict.
func (h *RentalHandler) CreateBooking(c echo.Context) error {
	username, err := getUsername(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		CarID    string `json:"car_id"`
		Duration int    `json:"duration"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.CarID = strings.TrimSpace(body.CarID)
	if body.CarID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "car_id is required"})
	}
	if !model.ValidDuration(body.Duration) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration must be between 1 and 365 days"})
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Bookings.RentCarTx(ctx, tx, body.CarID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCarNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		case errors.Is(err, repository.ErrCarUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "car no longer available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to rent car"})
	}

	booking := &model.Booking{
		Username: username,
		CarID:    body.CarID,
		Duration: body.Duration,
		Date:     time.Now().UTC(),
	}
	if err := h.Bookings.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Best-effort event publish after the commit; a broker outage must
	// not fail a booking that is already durable.
	ev := queue.BookingConfirmedEvent{
		BookingID:    booking.ID,
		Username:     booking.Username,
		CarID:        booking.CarID,
		DurationDays: booking.Duration,
		BookedAt:     booking.Date.Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingConfirmed(pubCtx, ev)
	}()

	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// ListMyBookings handles GET /v1/bookings/my. It returns every booking
// made by the current customer in creation order.
func (h *RentalHandler) ListMyBookings(c echo.Context) error {
	username, err := getUsername(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Bookings.ListByUser(ctx, username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}
