package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/car-rental/internal/config"
	"github.com/iliyamo/car-rental/internal/repository"
	"github.com/iliyamo/car-rental/internal/utils"
)

func newAuthTest(t *testing.T) (sqlmock.Sqlmock, *AuthHandler, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	cfg := config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
	h := NewAuthHandler(cfg, repository.NewCredentialRepo(db), repository.NewTokenRepo(db))
	return mock, h, func() { db.Close() }
}

// mysqlDuplicate mimics the driver error raised on a unique key clash.
func mysqlDuplicate() error {
	return errors.New("Error 1062 (23000): Duplicate entry")
}

func futureTime() time.Time {
	return time.Now().UTC().Add(24 * time.Hour)
}

func callJSON(t *testing.T, fn echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := fn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRegisterValidatesInput(t *testing.T) {
	mock, h, done := newAuthTest(t)
	defer done()

	cases := []string{
		`{"username":"","password":"pw","role":"ADMIN"}`,
		`{"username":"alice","password":"","role":"ADMIN"}`,
		`{"username":"alice","password":"pw","role":"MANAGER"}`,
		`{"username":"alice","password":"pw","role":""}`,
	}
	for _, body := range cases {
		rec := callJSON(t, h.Register, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func TestRegisterCreatesCredentialAndIssuesTokens(t *testing.T) {
	mock, h, done := newAuthTest(t)
	defer done()

	mock.ExpectExec("INSERT INTO customer").
		WithArgs("alice", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs("alice", "CUSTOMER", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := callJSON(t, h.Register, `{"username":"alice","password":"pw","role":"customer"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"username":"alice"`) || !strings.Contains(body, `"role":"CUSTOMER"`) {
		t.Fatalf("unexpected body: %s", body)
	}
	if !strings.Contains(body, `"access"`) || !strings.Contains(body, `"refresh"`) {
		t.Fatalf("expected token pair in body: %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	mock, h, done := newAuthTest(t)
	defer done()

	mock.ExpectExec("INSERT INTO admin").
		WithArgs("root", sqlmock.AnyArg()).
		WillReturnError(mysqlDuplicate())

	rec := callJSON(t, h.Register, `{"username":"root","password":"pw","role":"ADMIN"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	mock, h, done := newAuthTest(t)
	defer done()

	hash, err := utils.HashPassword("pw", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	mock.ExpectQuery("SELECT username, password_hash, created_at FROM customer").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "created_at"}).
			AddRow("alice", hash, time.Now()))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs("alice", "CUSTOMER", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := callJSON(t, h.Login, `{"username":"alice","password":"pw","role":"CUSTOMER"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginFailuresLookIdentical(t *testing.T) {
	hash := func(t *testing.T) string {
		t.Helper()
		h, err := utils.HashPassword("right", bcrypt.MinCost)
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		return h
	}

	t.Run("unknown role", func(t *testing.T) {
		_, h, done := newAuthTest(t)
		defer done()
		rec := callJSON(t, h.Login, `{"username":"alice","password":"pw","role":"MANAGER"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		mock, h, done := newAuthTest(t)
		defer done()
		mock.ExpectQuery("SELECT username, password_hash, created_at FROM customer").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "created_at"}))
		rec := callJSON(t, h.Login, `{"username":"ghost","password":"pw","role":"CUSTOMER"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		mock, h, done := newAuthTest(t)
		defer done()
		mock.ExpectQuery("SELECT username, password_hash, created_at FROM customer").
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"username", "password_hash", "created_at"}).
				AddRow("alice", hash(t), time.Now()))
		rec := callJSON(t, h.Login, `{"username":"alice","password":"wrong","role":"CUSTOMER"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRefreshRotatesToken(t *testing.T) {
	mock, h, done := newAuthTest(t)
	defer done()

	raw := strings.Repeat("ab", 48)
	hash := utils.HashRefreshRaw(raw)

	mock.ExpectQuery("SELECT username, role, expires_at, revoked_at FROM refresh_tokens").
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"username", "role", "expires_at", "revoked_at"}).
			AddRow("alice", "CUSTOMER", futureTime(), nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(hash).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs("alice", "CUSTOMER", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	rec := callJSON(t, h.Refresh, `{"refresh_token":"`+raw+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if strings.Contains(body, raw) {
		t.Fatalf("rotated response must not echo the old refresh token")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLogoutRevokesAllSessions(t *testing.T) {
	mock, h, done := newAuthTest(t)
	defer done()

	raw := strings.Repeat("cd", 48)
	hash := utils.HashRefreshRaw(raw)

	mock.ExpectQuery("SELECT username, role, expires_at, revoked_at FROM refresh_tokens").
		WithArgs(hash).
		WillReturnRows(sqlmock.NewRows([]string{"username", "role", "expires_at", "revoked_at"}).
			AddRow("alice", "CUSTOMER", futureTime(), nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs("alice", "CUSTOMER").
		WillReturnResult(sqlmock.NewResult(0, 2))

	rec := callJSON(t, h.Logout, `{"refresh_token":"`+raw+`"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
