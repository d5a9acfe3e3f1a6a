package model

import "time"

// Car status values as stored in available_cars.status.  A car is
// Unavailable exactly while it is rented; there is no automatic
// return transition, only an admin release flips it back.
const (
    StatusAvailable   = "Available"
    StatusUnavailable = "Unavailable"
)

// Year bounds accepted for a car record.
const (
    MinYear = 1900
    MaxYear = 2100
)

// ValidStatus reports whether s is a legal car status value.
func ValidStatus(s string) bool {
    return s == StatusAvailable || s == StatusUnavailable
}

// ValidYear reports whether y falls inside the accepted model-year range.
func ValidYear(y int) bool {
    return y >= MinYear && y <= MaxYear
}

// CanRent reports whether a car in the given status may be booked.
// The only legal transition out of Available is the booking flip to
// Unavailable; the reverse transition is an explicit admin release.
func CanRent(status string) bool {
    return status == StatusAvailable
}

// Car describes a fleet vehicle as stored in the `available_cars`
// table.  The table holds the whole fleet despite its name; the
// status column distinguishes rentable cars from rented ones.
//
// Fields:
//  CarID     – unique external identifier chosen by the admin.
//  Model     – model name (e.g. "Civic").
//  Brand     – manufacturer (e.g. "Honda").
//  Year      – model year, within [MinYear, MaxYear].
//  Status    – Available or Unavailable.
//  CreatedAt – insertion timestamp; drives listing order.
//  UpdatedAt – last modification timestamp.
type Car struct {
    CarID     string    `json:"car_id"`     // available_cars.car_id
    Model     string    `json:"model"`      // available_cars.model
    Brand     string    `json:"brand"`      // available_cars.brand
    Year      int       `json:"year"`       // available_cars.year
    Status    string    `json:"status"`     // available_cars.status
    CreatedAt time.Time `json:"created_at"` // available_cars.created_at
    UpdatedAt time.Time `json:"updated_at"` // available_cars.updated_at
}
