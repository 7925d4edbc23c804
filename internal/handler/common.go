package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviemagic/movie-booking/internal/middleware"
	"github.com/moviemagic/movie-booking/internal/model"
)

// UserStore is the slice of the user repository the handlers need. The
// concrete implementation is repository.UserRepo; tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, name, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// BookingStore is the slice of the booking repository the handlers need.
// Bookings are append-only, so the interface has no update or delete.
type BookingStore interface {
	Create(ctx context.Context, b model.Booking) (string, error)
	GetByBookingID(ctx context.Context, bookingID string) (model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
}

// dbTimeout bounds every storage call made from a handler.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUser pulls the identity placed in context by SessionAuth.
func currentUser(c echo.Context) (userID uint64, email, name, sid string, ok bool) {
	userID, ok = c.Get(middleware.CtxUserID).(uint64)
	if !ok || userID == 0 {
		return 0, "", "", "", false
	}
	email, _ = c.Get(middleware.CtxEmail).(string)
	name, _ = c.Get(middleware.CtxName).(string)
	sid, _ = c.Get(middleware.CtxSID).(string)
	return userID, email, name, sid, sid != ""
}

// notFound renders the 404 page. Unknown resource identifiers (movie title,
// booking id) are the only cases that surface an error status; everything
// else in the flow rewinds with a redirect.
func notFound(c echo.Context, message string) error {
	return c.Render(http.StatusNotFound, "notfound.html", map[string]any{"Message": message})
}
