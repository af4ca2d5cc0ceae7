package view

import (
	"html/template"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/events"
)

// BasketPanel renders the basket modal. It subscribes to BasketChanged and
// keeps its own derived display state, so no orchestration code has to
// remember to renumber rows or disable the checkout button after a
// mutation.
type BasketPanel struct {
	r     *Renderer
	count int
	total decimal.Decimal
}

// NewBasketPanel creates the panel and wires its subscription.
func NewBasketPanel(r *Renderer, bus *events.Bus) *BasketPanel {
	p := &BasketPanel{r: r}
	events.On(bus, func(e events.BasketChanged) {
		p.count = e.Count
		p.total = e.Total
	})
	return p
}

type basketVM struct {
	Rows             []BasketRowVM
	Total            string
	CheckoutDisabled bool
}

// Render writes the given products as numbered rows. Indices are assigned
// here, 1..N in display order; the checkout button is disabled whenever
// the last observed basket state was empty.
func (p *BasketPanel) Render(items []*domain.Product) (template.HTML, error) {
	rows := make([]BasketRowVM, 0, len(items))
	for i, item := range items {
		rows = append(rows, BasketRowVM{
			Index: i + 1,
			ID:    item.ID,
			Title: item.Title,
			Price: FormatPrice(item.Price),
		})
	}

	return p.r.render("basket", basketVM{
		Rows:             rows,
		Total:            p.total.String() + " credits",
		CheckoutDisabled: p.count == 0,
	})
}
