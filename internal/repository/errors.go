// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrCarUnavailable covers both the booking race loss and an
// admin targeting a rented car, while the duplicate errors signal
// unique-key violations that callers surface as conflicts.
package repository

import "errors"

// ErrUsernameExists is returned by credential creation when the
// username is already taken within the target role's table. Handlers
// should translate this into an HTTP 409 response.
var ErrUsernameExists = errors.New("username already exists")

// ErrUnknownRole is returned when a role string does not name one of
// the two credential tables. Lookups with an unknown role never touch
// storage.
var ErrUnknownRole = errors.New("unknown role")

// ErrCarExists is returned when adding a car whose car_id is already
// present in the fleet.
var ErrCarExists = errors.New("car id already exists")

// ErrCarNotFound is returned when an operation references a car_id
// that does not exist in the fleet.
var ErrCarNotFound = errors.New("car not found")

// ErrCarUnavailable is returned when an operation requires a car in
// Available status but the car is currently rented. This includes the
// loser of a booking race. Handlers should translate this into an
// HTTP 409 response.
var ErrCarUnavailable = errors.New("car not available")
