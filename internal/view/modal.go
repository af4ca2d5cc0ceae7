package view

import (
	"html/template"

	"storefront/internal/events"
)

// Modal is the shared shell every checkout fragment opens in. Opening and
// closing is observable on the bus: dismissal always emits ModalClosed so
// the orchestration can unlock the page and reset the order draft no
// matter how the modal was closed.
type Modal struct {
	r       *Renderer
	bus     *events.Bus
	open    bool
	content template.HTML
}

// NewModal creates a closed modal.
func NewModal(r *Renderer, bus *events.Bus) *Modal {
	return &Modal{r: r, bus: bus}
}

// Open swaps in the given content and shows the modal.
func (m *Modal) Open(content template.HTML) {
	m.content = content
	m.open = true
}

// Replace swaps the content without touching visibility. Used when the
// open modal advances to the next checkout fragment.
func (m *Modal) Replace(content template.HTML) {
	m.content = content
}

// Close hides the modal and announces the dismissal.
func (m *Modal) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.content = ""
	m.bus.Emit(events.ModalClosed{})
}

// IsOpen reports visibility.
func (m *Modal) IsOpen() bool {
	return m.open
}

type modalVM struct {
	Open    bool
	Content template.HTML
}

// Render returns the shell markup; an empty string when closed.
func (m *Modal) Render() (template.HTML, error) {
	return m.r.render("modal", modalVM{Open: m.open, Content: m.content})
}
