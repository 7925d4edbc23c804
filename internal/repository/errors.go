// Package repository implements durable storage access for users and
// bookings on top of database/sql. Sentinel errors defined here let
// handlers distinguish failure cases without inspecting driver errors:
// ErrEmailExists maps to the inline "already registered" form message and
// ErrBookingNotFound maps to an HTTP 404.
package repository

import "errors"

// ErrEmailExists is returned when registration hits the UNIQUE index on
// users.email. The index, not a prior SELECT, is what guarantees that two
// concurrent registrations of the same address cannot both succeed.
var ErrEmailExists = errors.New("email already exists")

// ErrBookingNotFound is returned when a booking id does not exist. Handlers
// translate this into a 404 page; unknown identifiers are surfaced, never
// silently redirected.
var ErrBookingNotFound = errors.New("booking not found")
