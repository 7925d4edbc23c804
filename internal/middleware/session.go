package middleware // middleware provides shared request processing for handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemagic/movie-booking/internal/utils"
)

// CookieName is the session cookie set at login and cleared at logout.
const CookieName = "mm_session"

// Context keys populated by SessionAuth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxName   = "name"
	CtxSID    = "sid"
)

// SessionAuth returns an Echo middleware that validates the signed session
// cookie and injects the user's identity and session id into the request
// context. This is a browser flow, so a missing or invalid cookie never
// produces an error status: the request is redirected to the login page
// (303) and any stale cookie is cleared.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			claims, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				ClearSessionCookie(c)
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)
			c.Set(CtxName, claims.Name)
			c.Set(CtxSID, claims.SID)
			return next(c)
		}
	}
}

// SetSessionCookie writes the signed session token as an HttpOnly cookie.
func SetSessionCookie(c echo.Context, tok utils.SessionToken) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie. Safe to call when no
// cookie is present, which keeps logout idempotent.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
