package app

import (
	"context"
	"html/template"

	"go.uber.org/zap"

	"storefront/internal/events"
)

// LoadCatalog fetches the catalog once at session start. A failure is
// terminal for the session view: the gallery shows a visible error state
// instead of silently staying empty, and nothing retries.
func (e *Engine) LoadCatalog(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	items, err := e.shop.Products(ctx)
	if err != nil {
		e.log.Error("catalog fetch failed", zap.Error(err))
		e.page.SetCatalogError("the catalog is unavailable right now")
		return
	}
	e.state.SetCatalog(items)
}

// SelectProduct opens the preview for the given catalog product.
func (e *Engine) SelectProduct(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	item := e.state.Find(id)
	if item == nil {
		return ErrUnknownProduct
	}
	return e.emit(events.CardSelected{Item: item})
}

// AddToBasket handles the preview's buy button.
func (e *Engine) AddToBasket(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	item := e.state.Find(id)
	if item == nil {
		return ErrUnknownProduct
	}
	return e.emit(events.CardToBasket{Item: item})
}

// OpenBasket shows the basket panel.
func (e *Engine) OpenBasket() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.emit(events.BasketOpened{})
}

// DeleteFromBasket handles a basket row's delete control.
func (e *Engine) DeleteFromBasket(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	item := e.state.Find(id)
	if item == nil {
		return ErrUnknownProduct
	}
	return e.emit(events.BasketItemDeleted{Item: item})
}

// BeginOrder starts checkout from the basket panel.
func (e *Engine) BeginOrder() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.emit(events.OrderRequested{})
}

// SetOrderField applies one checkout form input.
func (e *Engine) SetOrderField(field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.emit(events.OrderFieldChanged{Field: field, Value: value})
}

// SubmitOrder submits the payment/address step.
func (e *Engine) SubmitOrder() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.emit(events.OrderSubmitted{})
}

// SubmitContacts submits the contacts step, which sends the order to the
// shop. A network failure surfaces on the form, not as a gesture error.
func (e *Engine) SubmitContacts() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.emit(events.ContactsSubmitted{})
}

// CloseModal dismisses whatever the modal is showing.
func (e *Engine) CloseModal() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.modal.Close()
}

// RenderPage produces the full storefront document.
func (e *Engine) RenderPage() (template.HTML, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	modal, err := e.modal.Render()
	if err != nil {
		return "", err
	}
	return e.page.Render(modal)
}
