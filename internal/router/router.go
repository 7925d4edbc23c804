// Package router defines how HTTP routes are registered for the site.
package router

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/moviemagic/movie-booking/internal/config"
	"github.com/moviemagic/movie-booking/internal/handler"
	"github.com/moviemagic/movie-booking/internal/middleware"
)

// RegisterRoutes wires every route of the booking site onto the provided
// Echo instance. Routes past the catalog require the session cookie; the
// SessionAuth middleware redirects anonymous requests to /login instead of
// returning an error status. rdb may be nil, which disables rate limiting
// and page caching.
func RegisterRoutes(e *echo.Echo, cfg config.Config, rdb *redis.Client,
	auth *handler.AuthHandler, pages *handler.PageHandler, booking *handler.BookingHandler) {

	e.GET("/healthz", handler.Health)
	e.GET("/", pages.Index)
	e.Static("/static", "web/static")

	// Anonymous form routes. POSTs are throttled per client IP.
	limited := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	e.GET("/register", auth.ShowRegister)
	e.POST("/register", auth.Register, limited)
	e.GET("/login", auth.ShowLogin)
	e.POST("/login", auth.Login, limited)
	e.GET("/logout", auth.Logout) // soft: succeeds without a session

	// Public informational pages are the only cacheable responses; every
	// other page varies by session.
	cached := middleware.PageCache(rdb, 5*time.Minute)
	e.GET("/about", pages.About, cached)
	e.GET("/services", pages.Services, cached)

	// Everything past browsing carries the checkout through the session.
	p := e.Group("", middleware.SessionAuth(cfg.SessionSecret))
	p.GET("/home", pages.Home)
	p.GET("/booking/:title", booking.BookingPage)
	p.POST("/booking/:title", booking.SelectShowing)
	p.GET("/seating", booking.SeatingPage)
	p.POST("/seating", booking.SelectSeats)
	p.GET("/payment", booking.PaymentPage)
	p.POST("/payment", booking.ConfirmPayment)
	p.GET("/ticket", booking.Ticket)
	p.GET("/ticket/pdf", booking.TicketPDF)
	p.GET("/ticket/qr", booking.TicketQR)
	p.GET("/dashboard", booking.Dashboard)
}
