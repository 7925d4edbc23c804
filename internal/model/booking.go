package model

import (
	"strings"
	"time"
)

// Booking is a finalized purchase record as stored in the `bookings` table.
// Rows are append-only: once written at payment confirmation they are never
// updated or deleted, so the dashboard history stays stable forever.
//
// Fields:
//  ID        – bookings.id, surrogate primary key.
//  BookingID – bookings.booking_id, short public token printed on the ticket.
//  UserID    – bookings.user_id, owner of the booking.
//  Movie     – movie title at booking time (catalog may change later).
//  Theater   – theater name chosen during checkout.
//  Showtime  – showtime display string chosen during checkout.
//  Seats     – comma-joined distinct seat labels in selection order.
//  Total     – price actually charged: movie price × distinct seat count.
//  CreatedAt – bookings.created_at, orders the dashboard newest-first.
type Booking struct {
	ID        uint64
	BookingID string
	UserID    uint64
	Movie     string
	Theater   string
	Showtime  string
	Seats     string
	Total     int
	CreatedAt time.Time
}

// SeatList splits the stored seat string back into individual labels.
func (b Booking) SeatList() []string {
	if b.Seats == "" {
		return nil
	}
	return strings.Split(b.Seats, ",")
}
