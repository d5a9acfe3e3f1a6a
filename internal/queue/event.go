// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a rental booking commits.
// It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID    uint64 `json:"booking_id"`
    Username     string `json:"username"`
    CarID        string `json:"car_id"`
    DurationDays int    `json:"duration_days"`
    BookedAt     string `json:"booked_at"`
}
