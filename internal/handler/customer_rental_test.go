package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/car-rental/internal/repository"
)

func newRentalTest(t *testing.T) (sqlmock.Sqlmock, *RentalHandler, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := NewRentalHandler(repository.NewCarRepo(db), repository.NewBookingRepo(db))
	return mock, h, func() { db.Close() }
}

func postBooking(t *testing.T, h *RentalHandler, username, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if username != "" {
		c.Set("username", username)
	}
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("CreateBooking returned error: %v", err)
	}
	return rec
}

func TestCreateBookingRequiresAuthContext(t *testing.T) {
	_, h, done := newRentalTest(t)
	defer done()

	rec := postBooking(t, h, "", `{"car_id":"CAR-1","duration":3}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateBookingValidatesInput(t *testing.T) {
	mock, h, done := newRentalTest(t)
	defer done()

	cases := []string{
		`{"car_id":"","duration":3}`,
		`{"car_id":"   ","duration":3}`,
		`{"car_id":"CAR-1","duration":0}`,
		`{"car_id":"CAR-1","duration":-1}`,
		`{"car_id":"CAR-1","duration":366}`,
	}
	for _, body := range cases {
		rec := postBooking(t, h, "alice", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	// None of the rejected requests may have touched the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	mock, h, done := newRentalTest(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE available_cars SET status").
		WithArgs("Unavailable", "CAR-1", "Available").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO rented_cars").
		WithArgs("alice", "CAR-1", 7, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	rec := postBooking(t, h, "alice", `{"car_id":"CAR-1","duration":7}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"id":42`) || !strings.Contains(body, `"car_id":"CAR-1"`) {
		t.Fatalf("unexpected body: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingRaceLoserGetsConflict(t *testing.T) {
	mock, h, done := newRentalTest(t)
	defer done()

	// The conditional update touches no row because another customer
	// already flipped the status, but the car still exists.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE available_cars SET status").
		WithArgs("Unavailable", "CAR-1", "Available").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM available_cars").
		WithArgs("CAR-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectRollback()

	rec := postBooking(t, h, "bob", `{"car_id":"CAR-1","duration":2}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingUnknownCar(t *testing.T) {
	mock, h, done := newRentalTest(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE available_cars SET status").
		WithArgs("Unavailable", "CAR-404", "Available").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT 1 FROM available_cars").
		WithArgs("CAR-404").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	rec := postBooking(t, h, "bob", `{"car_id":"CAR-404","duration":2}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListMyBookings(t *testing.T) {
	mock, h, done := newRentalTest(t)
	defer done()

	rows := sqlmock.NewRows([]string{"id", "username", "car_id", "duration", "date", "model", "brand"}).
		AddRow(1, "alice", "CAR-1", 3, nil, "Model 3", "Tesla")
	mock.ExpectQuery("FROM rented_cars b").
		WithArgs("alice").
		WillReturnRows(rows)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/my", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "alice")

	if err := h.ListMyBookings(c); err != nil {
		t.Fatalf("ListMyBookings: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"model":"Model 3"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
