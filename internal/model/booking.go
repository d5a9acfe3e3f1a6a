package model

import "time"

// Rental duration bounds in days.
const (
    MinDurationDays = 1
    MaxDurationDays = 365
)

// ValidDuration reports whether d is an acceptable rental length.
func ValidDuration(d int) bool {
    return d >= MinDurationDays && d <= MaxDurationDays
}

// Booking records a customer renting a specific car, as stored in the
// `rented_cars` table.  Bookings are immutable once created and are
// never deleted; the referenced car may later be removed from the
// fleet, so readers must tolerate a dangling CarID.
//
// Fields:
//  ID       – auto-increment primary key; insertion order.
//  Username – customer who rented the car.
//  CarID    – car rented at creation time.
//  Duration – rental length in days, within [MinDurationDays, MaxDurationDays].
//  Date     – creation timestamp in UTC.
type Booking struct {
    ID       uint64    `json:"id"`       // rented_cars.id
    Username string    `json:"username"` // rented_cars.username
    CarID    string    `json:"car_id"`   // rented_cars.car_id
    Duration int       `json:"duration"` // rented_cars.duration
    Date     time.Time `json:"date"`     // rented_cars.date
}
