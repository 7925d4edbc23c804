package model

// CheckoutSession carries the in-progress booking across the multi-step
// checkout (movie → seating → payment → ticket). It lives in the session
// store keyed by the login session id, is visible only to its owner, and is
// never persisted to the relational store; the durable Booking row is
// written exactly once, at payment confirmation.
type CheckoutSession struct {
	MovieTitle string   `json:"movie_title"`
	MovieImage string   `json:"movie_image"`
	UnitPrice  int      `json:"unit_price"`
	Theater    string   `json:"theater"`
	Showtime   string   `json:"showtime"`
	Seats      []string `json:"seats,omitempty"`
	// BookingID is set once payment has been confirmed and acts as the
	// "current ticket" pointer. A non-empty value also makes a repeated
	// payment submit idempotent: the existing booking is reused.
	BookingID string `json:"booking_id,omitempty"`
}

// SetSeats replaces the seat selection, dropping duplicates while keeping
// the first-seen order. Duplicate tokens submitted by the client must never
// inflate the total.
func (cs *CheckoutSession) SetSeats(seats []string) {
	seen := make(map[string]struct{}, len(seats))
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	cs.Seats = out
}

// Total is the single place the checkout price is computed:
// unit price × distinct seat count.
func (cs *CheckoutSession) Total() int {
	return cs.UnitPrice * len(cs.Seats)
}

// HasSelection reports whether a theater and showtime have been chosen.
func (cs *CheckoutSession) HasSelection() bool {
	return cs != nil && cs.Theater != "" && cs.Showtime != ""
}

// HasSeats reports whether at least one seat has been picked.
func (cs *CheckoutSession) HasSeats() bool {
	return cs != nil && len(cs.Seats) > 0
}
