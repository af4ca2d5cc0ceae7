package view

import (
	"html/template"

	"storefront/internal/events"
)

// Page is the outer shell: basket counter, scroll lock and the gallery.
// The counter follows BasketChanged by subscription.
type Page struct {
	r       *Renderer
	counter int
	locked  bool

	gallery    []template.HTML
	catalogErr string
}

// NewPage creates the shell and wires the counter subscription.
func NewPage(r *Renderer, bus *events.Bus) *Page {
	p := &Page{r: r}
	events.On(bus, func(e events.BasketChanged) {
		p.counter = e.Count
	})
	return p
}

// SetLocked toggles the page-wide scroll lock used while a modal is open.
func (p *Page) SetLocked(locked bool) {
	p.locked = locked
}

// Locked reports the scroll lock flag.
func (p *Page) Locked() bool {
	return p.locked
}

// Counter reports the basket badge value.
func (p *Page) Counter() int {
	return p.counter
}

// SetGallery replaces the rendered catalog tiles.
func (p *Page) SetGallery(cards []template.HTML) {
	p.gallery = cards
	p.catalogErr = ""
}

// SetCatalogError replaces the gallery with a visible failure state.
func (p *Page) SetCatalogError(msg string) {
	p.gallery = nil
	p.catalogErr = msg
}

type pageVM struct {
	Counter      int
	Locked       bool
	Gallery      []template.HTML
	CatalogError string
	Modal        template.HTML
}

// Render produces the full document around the given modal markup.
func (p *Page) Render(modal template.HTML) (template.HTML, error) {
	return p.r.render("page", pageVM{
		Counter:      p.counter,
		Locked:       p.locked,
		Gallery:      p.gallery,
		CatalogError: p.catalogErr,
		Modal:        modal,
	})
}

// SuccessPanel shows the confirmed purchase amount.
type SuccessPanel struct {
	r *Renderer
}

func NewSuccessPanel(r *Renderer) *SuccessPanel {
	return &SuccessPanel{r: r}
}

type successVM struct {
	Total string
}

func (s *SuccessPanel) Render(total string) (template.HTML, error) {
	return s.r.render("success", successVM{Total: total})
}
