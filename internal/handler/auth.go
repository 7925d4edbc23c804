package handler

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moviemagic/movie-booking/internal/config"
	"github.com/moviemagic/movie-booking/internal/middleware"
	"github.com/moviemagic/movie-booking/internal/repository"
	"github.com/moviemagic/movie-booking/internal/session"
	"github.com/moviemagic/movie-booking/internal/utils"
)

// AuthHandler bundles dependencies for registration, login and logout.
type AuthHandler struct {
	Cfg      config.Config
	Users    UserStore
	Checkout session.Store
}

func NewAuthHandler(cfg config.Config, users UserStore, checkout session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Checkout: checkout}
}

// Failed logins always show this exact message, whether the email is
// unknown or the password is wrong, so the form leaks nothing about which
// accounts exist.
const invalidCredentials = "Invalid email or password."

// ShowRegister renders the empty registration form.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	// Name/Email must be present even when empty: the template echoes them
	// into value attributes.
	return c.Render(http.StatusOK, "register.html", map[string]any{
		"Name": "", "Email": "",
	})
}

// Register handles the registration form POST. Duplicate emails surface as
// an inline message on the same form (no redirect); success redirects to
// the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")

	rerender := func(msg string) error {
		return c.Render(http.StatusOK, "register.html", map[string]any{
			"Error": msg, "Name": name, "Email": email,
		})
	}
	if name == "" || email == "" || password == "" {
		return rerender("All fields are required.")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Users.Create(ctx, name, email, password, h.Cfg.BcryptCost); err != nil {
		if err == repository.ErrEmailExists {
			return rerender("Email already registered.")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
	}
	return c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

// ShowLogin renders the login form, with a notice after registration.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	data := map[string]any{"Email": ""}
	if c.QueryParam("registered") == "1" {
		data["Notice"] = "Registration successful. Please login."
	}
	return c.Render(http.StatusOK, "login.html", data)
}

// Login verifies credentials and establishes the session cookie. Unknown
// email and wrong password are indistinguishable to the client.
func (h *AuthHandler) Login(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	password := c.FormValue("password")

	rerender := func() error {
		return c.Render(http.StatusOK, "login.html", map[string]any{
			"Error": invalidCredentials, "Email": email,
		})
	}
	if email == "" || password == "" {
		return rerender()
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return rerender()
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return rerender()
	}

	tok, err := utils.NewSessionToken(h.Cfg.SessionSecret, u.ID, u.Email, u.Name, h.Cfg.SessionTTLMin)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	middleware.SetSessionCookie(c, tok)
	return c.Redirect(http.StatusSeeOther, "/home")
}

// Logout clears the session cookie and discards any in-progress checkout.
// It is idempotent and succeeds even without a valid session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.CookieName); err == nil && cookie.Value != "" {
		if claims, err := utils.ParseSessionToken(h.Cfg.SessionSecret, cookie.Value); err == nil {
			ctx, cancel := reqCtx(c)
			defer cancel()
			_ = h.Checkout.Delete(ctx, claims.SID)
		}
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}
