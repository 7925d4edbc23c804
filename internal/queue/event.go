// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when payment is confirmed and the
// booking row has been written. It carries enough information for
// downstream consumers to notify or log without querying the primary
// database. Delivery is fire-and-forget: the checkout never waits on it.
type BookingConfirmedEvent struct {
	BookingID string   `json:"booking_id"`
	UserID    uint64   `json:"user_id"`
	UserEmail string   `json:"user_email"`
	UserName  string   `json:"user_name"`
	Movie     string   `json:"movie"`
	Theater   string   `json:"theater"`
	Showtime  string   `json:"showtime"`
	Seats     []string `json:"seats"`
	Total     int      `json:"total"`
	BookedAt  string   `json:"booked_at"`
}
