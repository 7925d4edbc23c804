// Package view implements echo.Renderer over html/template. The templates
// are intentionally bare-bones markup: page design is not this service's
// concern, the renderer only exists so handlers have a concrete rendering
// collaborator and tests can assert on the produced HTML.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	templates *template.Template
}

// New parses all embedded templates once at startup. Template names are the
// file base names ("login.html", "ticket.html", ...).
func New() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
