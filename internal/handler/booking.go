package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviemagic/movie-booking/internal/catalog"
	"github.com/moviemagic/movie-booking/internal/config"
	"github.com/moviemagic/movie-booking/internal/model"
	"github.com/moviemagic/movie-booking/internal/queue"
	"github.com/moviemagic/movie-booking/internal/repository"
	queue_publisher "github.com/moviemagic/movie-booking/internal/service"
	"github.com/moviemagic/movie-booking/internal/session"
	"github.com/moviemagic/movie-booking/internal/ticket"
)

// BookingHandler drives the checkout state machine:
// browse → select showing → pick seats → pay → ticket. The carried state is
// the CheckoutSession in the session store; each step validates that the
// previous step's data is present and otherwise rewinds with a redirect
// instead of erroring ("fail-safe rewind"). Only unknown resource
// identifiers (movie title, booking id) produce a 404.
type BookingHandler struct {
	Cfg      config.Config
	Catalog  *catalog.Catalog
	Bookings BookingStore
	Checkout session.Store

	mu         sync.Mutex
	confirming map[string]*sync.Mutex
}

func NewBookingHandler(cfg config.Config, cat *catalog.Catalog, bookings BookingStore, checkout session.Store) *BookingHandler {
	return &BookingHandler{Cfg: cfg, Catalog: cat, Bookings: bookings, Checkout: checkout}
}

// seatRows is the fixed seating grid offered on the seat-selection page.
// There is no per-show seat inventory: seat labels are free-form tokens and
// only their distinct count matters for pricing.
func seatRows() [][]string {
	rows := make([][]string, 0, 4)
	for _, r := range []string{"A", "B", "C", "D"} {
		row := make([]string, 0, 6)
		for n := 1; n <= 6; n++ {
			row = append(row, fmt.Sprintf("%s%d", r, n))
		}
		rows = append(rows, row)
	}
	return rows
}

// BookingPage shows theater and showtime choices for a movie. Unknown
// titles get a 404 so stale links are visible instead of silently
// redirecting.
func (h *BookingHandler) BookingPage(c echo.Context) error {
	m, ok := h.Catalog.Find(c.Param("title"))
	if !ok {
		return notFound(c, "Movie not found")
	}
	return c.Render(http.StatusOK, "booking.html", map[string]any{"Movie": m})
}

// SelectShowing handles the showing form POST and starts a fresh checkout.
// The form carries theater and showtime as separate fields; a legacy
// "seating" field joined with '|' is still accepted and split. A missing or
// malformed selection re-renders the page with no state stored.
func (h *BookingHandler) SelectShowing(c echo.Context) error {
	m, ok := h.Catalog.Find(c.Param("title"))
	if !ok {
		return notFound(c, "Movie not found")
	}
	_, _, _, sid, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	theater := strings.TrimSpace(c.FormValue("theater"))
	showtime := strings.TrimSpace(c.FormValue("showtime"))
	if theater == "" && showtime == "" {
		if legacy := c.FormValue("seating"); strings.Count(legacy, "|") == 1 {
			parts := strings.SplitN(legacy, "|", 2)
			theater, showtime = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		}
	}
	if theater == "" || showtime == "" {
		return c.Render(http.StatusOK, "booking.html", map[string]any{"Movie": m})
	}
	if !h.Catalog.HasShowing(m.Title, theater, showtime) {
		return c.Render(http.StatusOK, "booking.html", map[string]any{
			"Movie": m, "Error": "Please pick one of the listed showings.",
		})
	}

	cs := model.CheckoutSession{
		MovieTitle: m.Title,
		MovieImage: m.Image,
		UnitPrice:  m.Price,
		Theater:    theater,
		Showtime:   showtime,
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Checkout.Put(ctx, sid, cs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not start checkout")
	}
	return c.Redirect(http.StatusSeeOther, "/seating")
}

// SeatingPage shows the seat grid for the showing chosen in the previous
// step. Without that state it rewinds to the catalog.
func (h *BookingHandler) SeatingPage(c echo.Context) error {
	cs, ok, err := h.checkout(c)
	if err != nil {
		return err
	}
	if !ok || !cs.HasSelection() {
		return c.Redirect(http.StatusSeeOther, "/home")
	}
	return c.Render(http.StatusOK, "seating.html", map[string]any{
		"Session": cs, "Rows": seatRows(),
	})
}

// SelectSeats stores the seat choice on the checkout session. Seats arrive
// as repeated selected_seats values (a lone comma-joined value is split for
// old forms); duplicates are dropped, keeping first-seen order. An empty
// selection silently re-renders the page. No booking row is written here:
// the durable record is created once, at payment confirmation.
func (h *BookingHandler) SelectSeats(c echo.Context) error {
	cs, ok, err := h.checkout(c)
	if err != nil {
		return err
	}
	if !ok || !cs.HasSelection() {
		return c.Redirect(http.StatusSeeOther, "/home")
	}

	form, err := c.FormParams()
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/seating")
	}
	seats := form["selected_seats"]
	if len(seats) == 1 && strings.Contains(seats[0], ",") {
		seats = strings.Split(seats[0], ",")
	}
	for i := range seats {
		seats[i] = strings.TrimSpace(seats[i])
	}
	cs.SetSeats(seats)
	if !cs.HasSeats() {
		return c.Render(http.StatusOK, "seating.html", map[string]any{
			"Session": cs, "Rows": seatRows(),
		})
	}

	_, _, _, sid, _ := currentUser(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Checkout.Put(ctx, sid, cs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save seats")
	}
	return c.Redirect(http.StatusSeeOther, "/payment")
}

// PaymentPage shows the computed total before confirmation.
func (h *BookingHandler) PaymentPage(c echo.Context) error {
	cs, ok, err := h.checkout(c)
	if err != nil {
		return err
	}
	if !ok || !cs.HasSeats() {
		return c.Redirect(http.StatusSeeOther, "/home")
	}
	return c.Render(http.StatusOK, "payment.html", map[string]any{
		"Session": cs, "Total": cs.Total(),
	})
}

// confirmLock returns the mutex serializing payment confirmation for one
// session, so simultaneous submits cannot both miss the ticket pointer and
// write two rows.
func (h *BookingHandler) confirmLock(sid string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.confirming == nil {
		h.confirming = make(map[string]*sync.Mutex)
	}
	m, ok := h.confirming[sid]
	if !ok {
		m = &sync.Mutex{}
		h.confirming[sid] = m
	}
	return m
}

// ConfirmPayment finalizes the checkout: exactly one booking row is written
// and its id becomes the session's ticket pointer. A repeated submit finds
// the pointer already set and reuses the existing booking instead of
// double-booking. The confirmation event is published fire-and-forget.
func (h *BookingHandler) ConfirmPayment(c echo.Context) error {
	userID, email, name, sid, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	// The pointer check and the row insert must be one step per session.
	lock := h.confirmLock(sid)
	lock.Lock()
	defer lock.Unlock()

	cs, ok, err := h.checkout(c)
	if err != nil {
		return err
	}
	if !ok || !cs.HasSeats() {
		return c.Redirect(http.StatusSeeOther, "/home")
	}
	if cs.BookingID != "" {
		return c.Redirect(http.StatusSeeOther, "/ticket")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	bookingID, err := h.Bookings.Create(ctx, model.Booking{
		UserID:   userID,
		Movie:    cs.MovieTitle,
		Theater:  cs.Theater,
		Showtime: cs.Showtime,
		Seats:    strings.Join(cs.Seats, ","),
		Total:    cs.Total(),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "payment failed")
	}

	cs.BookingID = bookingID
	if err := h.Checkout.Put(ctx, sid, cs); err != nil {
		// The booking row exists; losing the pointer only costs the
		// redirect target, so surface the ticket by id lookup instead.
		c.Logger().Warnf("checkout: saving ticket pointer failed: %v", err)
	}

	ev := queue.BookingConfirmedEvent{
		BookingID: bookingID,
		UserID:    userID,
		UserEmail: email,
		UserName:  name,
		Movie:     cs.MovieTitle,
		Theater:   cs.Theater,
		Showtime:  cs.Showtime,
		Seats:     cs.Seats,
		Total:     cs.Total(),
		BookedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishBookingConfirmed(pubCtx, ev) // never blocks the user flow
	}()

	return c.Redirect(http.StatusSeeOther, "/ticket")
}

// Ticket renders the receipt for the session's current booking. The page is
// idempotently re-enterable: it only re-fetches by id.
func (h *BookingHandler) Ticket(c echo.Context) error {
	b, done, err := h.currentBooking(c)
	if done || err != nil {
		return err
	}
	image := ""
	if m, ok := h.Catalog.Find(b.Movie); ok {
		image = m.Image
	}
	return c.Render(http.StatusOK, "ticket.html", map[string]any{
		"Booking": b, "Image": image,
	})
}

// TicketPDF streams the PDF artifact for the current booking.
func (h *BookingHandler) TicketPDF(c echo.Context) error {
	b, done, err := h.currentBooking(c)
	if done || err != nil {
		return err
	}
	out, err := ticket.PDF(b)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not render ticket")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="ticket_%s.pdf"`, b.BookingID))
	return c.Blob(http.StatusOK, "application/pdf", out)
}

// TicketQR streams the QR PNG for the current booking.
func (h *BookingHandler) TicketQR(c echo.Context) error {
	b, done, err := h.currentBooking(c)
	if done || err != nil {
		return err
	}
	out, err := ticket.QR(b)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not render ticket")
	}
	return c.Blob(http.StatusOK, "image/png", out)
}

// Dashboard lists the user's booking history, most recent first.
func (h *BookingHandler) Dashboard(c echo.Context) error {
	userID, _, name, _, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	bookings, err := h.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not load bookings")
	}
	return c.Render(http.StatusOK, "dashboard.html", map[string]any{
		"Name": name, "Bookings": bookings,
	})
}

// checkout loads the caller's checkout state. ok is false when there is no
// state yet; err is non-nil only for real store failures.
func (h *BookingHandler) checkout(c echo.Context) (model.CheckoutSession, bool, error) {
	_, _, _, sid, ok := currentUser(c)
	if !ok {
		return model.CheckoutSession{}, false, nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	cs, err := h.Checkout.Get(ctx, sid)
	if err == session.ErrNotFound {
		return model.CheckoutSession{}, false, nil
	}
	if err != nil {
		return model.CheckoutSession{}, false, echo.NewHTTPError(http.StatusInternalServerError, "session store unavailable")
	}
	return cs, true, nil
}

// currentBooking resolves the session's ticket pointer to a booking row.
// done is true when a response (redirect or 404) has already been written.
func (h *BookingHandler) currentBooking(c echo.Context) (model.Booking, bool, error) {
	cs, ok, err := h.checkout(c)
	if err != nil {
		return model.Booking{}, true, err
	}
	if !ok || cs.BookingID == "" {
		return model.Booking{}, true, c.Redirect(http.StatusSeeOther, "/home")
	}
	userID, _, _, _, _ := currentUser(c)

	ctx, cancel := reqCtx(c)
	defer cancel()
	b, err := h.Bookings.GetByBookingID(ctx, cs.BookingID)
	if err == repository.ErrBookingNotFound {
		return model.Booking{}, true, notFound(c, "Booking not found")
	}
	if err != nil {
		return model.Booking{}, true, echo.NewHTTPError(http.StatusInternalServerError, "could not load booking")
	}
	if b.UserID != userID {
		// A session can only ever point at its own booking; anything else
		// is a stale or forged pointer.
		return model.Booking{}, true, notFound(c, "Booking not found")
	}
	return b, false, nil
}
