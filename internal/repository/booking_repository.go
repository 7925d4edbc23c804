package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/moviemagic/movie-booking/internal/model"
)

// bookingIDLen is the length of the public booking token. Sixteen hex
// characters give 64 bits of randomness; the UNIQUE index plus the retry in
// Create covers the (vanishing) collision case.
const bookingIDLen = 16

// createAttempts bounds the id-collision retry loop.
const createAttempts = 3

type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// NewBookingID derives a short public token from a random v4 UUID.
func NewBookingID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:bookingIDLen]
}

// Create inserts a finalized booking and returns its public booking id.
// Bookings are append-only: there are no update or delete operations. If
// the generated id collides with an existing row (duplicate-key error) a
// fresh id is generated and the insert retried.
func (r *BookingRepo) Create(ctx context.Context, b model.Booking) (string, error) {
	var lastErr error
	for i := 0; i < createAttempts; i++ {
		id := NewBookingID()
		_, err := r.DB.ExecContext(ctx,
			"INSERT INTO bookings (booking_id, user_id, movie, theater, show_time, seats, price) VALUES (?,?,?,?,?,?,?)",
			id, b.UserID, b.Movie, b.Theater, b.Showtime, b.Seats, b.Total)
		if err == nil {
			return id, nil
		}
		if !isDuplicateKey(err) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

// GetByBookingID fetches a booking by its public token.
func (r *BookingRepo) GetByBookingID(ctx context.Context, bookingID string) (model.Booking, error) {
	var b model.Booking
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,booking_id,user_id,movie,theater,show_time,seats,price,created_at FROM bookings WHERE booking_id=? LIMIT 1",
		bookingID).Scan(&b.ID, &b.BookingID, &b.UserID, &b.Movie, &b.Theater, &b.Showtime, &b.Seats, &b.Total, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// ListByUser returns all bookings of a user, most recent first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,booking_id,user_id,movie,theater,show_time,seats,price,created_at FROM bookings WHERE user_id=? ORDER BY created_at DESC, id DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.BookingID, &b.UserID, &b.Movie, &b.Theater, &b.Showtime, &b.Seats, &b.Total, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
