// Package view renders the storefront's HTML fragments. Components are
// pure renderers: they accept a view model, write it into their fragment
// and return the markup. Business logic lives behind the event bus.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer holds the parsed template set shared by all components of one
// session. Template lookup failures surface at construction time.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) render(name string, vm any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, vm); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// FormatPrice renders a price for display. The priceless sentinel renders
// as a fixed label instead of an amount.
func FormatPrice(p *decimal.Decimal) string {
	if p == nil {
		return "Priceless"
	}
	return p.String() + " credits"
}
