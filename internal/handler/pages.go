package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemagic/movie-booking/internal/catalog"
)

// PageHandler serves the landing, catalog and informational pages.
type PageHandler struct {
	Catalog *catalog.Catalog
}

func NewPageHandler(cat *catalog.Catalog) *PageHandler {
	return &PageHandler{Catalog: cat}
}

func (h *PageHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}

// Home lists the catalog for the logged-in user.
func (h *PageHandler) Home(c echo.Context) error {
	_, _, name, _, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Render(http.StatusOK, "home.html", map[string]any{
		"Name":   name,
		"Movies": h.Catalog.List(),
	})
}

func (h *PageHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", nil)
}

func (h *PageHandler) Services(c echo.Context) error {
	return c.Render(http.StatusOK, "services.html", nil)
}
