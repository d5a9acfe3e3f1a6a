package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-rental/internal/model"
	"github.com/iliyamo/car-rental/internal/repository"
)

// FleetHandler groups the repositories administrators need to manage
// the car fleet and review bookings. All methods assume JWT
// authentication and the ADMIN role check have already run in
// middleware.
type FleetHandler struct {
	Cars     *repository.CarRepo
	Bookings *repository.BookingRepo
}

// NewFleetHandler constructs a FleetHandler and panics if a dependency is nil.
func NewFleetHandler(cars *repository.CarRepo, bookings *repository.BookingRepo) *FleetHandler {
	if cars == nil || bookings == nil {
		panic("nil repository passed to NewFleetHandler")
	}
	return &FleetHandler{Cars: cars, Bookings: bookings}
}

type carReq struct {
	CarID  string `json:"car_id"`
	Model  string `json:"model"`
	Brand  string `json:"brand"`
	Year   int    `json:"year"`
	Status string `json:"status"`
}

// validate normalizes the request and returns a user-facing message
// when a field is missing or out of range.
func (r *carReq) validate(requireID bool) string {
	r.CarID = strings.TrimSpace(r.CarID)
	r.Model = strings.TrimSpace(r.Model)
	r.Brand = strings.TrimSpace(r.Brand)
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		r.Status = model.StatusAvailable
	}
	if requireID && r.CarID == "" {
		return "car_id is required"
	}
	if r.Model == "" || r.Brand == "" {
		return "model and brand are required"
	}
	if !model.ValidYear(r.Year) {
		return "year out of range"
	}
	if !model.ValidStatus(r.Status) {
		return "status must be Available or Unavailable"
	}
	return ""
}

// AddCar handles POST /v1/cars. A duplicate car_id is a conflict;
// missing fields abort before touching storage.
func (h *FleetHandler) AddCar(c echo.Context) error {
	var req carReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(true); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	car := model.Car{CarID: req.CarID, Model: req.Model, Brand: req.Brand, Year: req.Year, Status: req.Status}
	if err := h.Cars.Create(ctx, car); err != nil {
		if errors.Is(err, repository.ErrCarExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "car id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create car failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"car": car})
}

// ListFleet handles GET /v1/cars and returns every car regardless of
// status for the admin dashboard.
func (h *FleetHandler) ListFleet(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cars, err := h.Cars.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load fleet failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cars})
}

// UpdateCar handles PUT /v1/cars/:id. Only Available cars may be
// edited; the precondition is enforced server-side inside the
// repository transaction, not by trusting the admin UI's selection
// list.
func (h *FleetHandler) UpdateCar(c echo.Context) error {
	carID := strings.TrimSpace(c.Param("id"))
	if carID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
	}
	var req carReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(false); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cars.Update(ctx, carID, req.Model, req.Brand, req.Year, req.Status); err != nil {
		switch {
		case errors.Is(err, repository.ErrCarNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		case errors.Is(err, repository.ErrCarUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "car is currently rented"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update car failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"car_id": carID})
}

// ReleaseCar handles POST /v1/cars/:id/release. It is the manual
// admin transition that returns a rented car to Available, the only
// way out of Unavailable since no expiry exists.
func (h *FleetHandler) ReleaseCar(c echo.Context) error {
	carID := strings.TrimSpace(c.Param("id"))
	if carID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cars.Release(ctx, carID); err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release car failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"car_id": carID, "status": model.StatusAvailable})
}

// RemoveCar handles DELETE /v1/cars/:id. Removing a rented car is
// rejected with a conflict; its booking still references it.
func (h *FleetHandler) RemoveCar(c echo.Context) error {
	carID := strings.TrimSpace(c.Param("id"))
	if carID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Cars.Delete(ctx, carID); err != nil {
		switch {
		case errors.Is(err, repository.ErrCarNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
		case errors.Is(err, repository.ErrCarUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "car is currently rented"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove car failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListAllBookings handles GET /v1/bookings for administrator review.
// Bookings are returned in creation order.
func (h *FleetHandler) ListAllBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Bookings.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load bookings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}
