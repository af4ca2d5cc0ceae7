// Package app wires one storefront session together: the event bus, the
// application state, the checkout machine, the render components and the
// shop API client. Everything is constructed here and passed by reference;
// there are no package-level singletons.
package app

import (
	"context"
	"errors"
	"html/template"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/checkout"
	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/shopapi"
	"storefront/internal/state"
	"storefront/internal/view"
)

// ErrUnknownProduct is returned for a gesture naming a product id the
// catalog does not contain.
var ErrUnknownProduct = errors.New("unknown product")

// ShopClient is the slice of the shop API the engine needs.
type ShopClient interface {
	Products(ctx context.Context) ([]*domain.Product, error)
	CreateOrder(ctx context.Context, draft domain.OrderDraft) (*shopapi.OrderConfirmation, error)
	ImageURL(ref string) string
}

// Engine runs one browser session. All gestures are serialized by the
// engine's mutex, preserving the single-threaded model: every handler
// chain runs to completion before the next gesture is processed.
type Engine struct {
	mu  sync.Mutex
	log *zap.Logger

	bus     *events.Bus
	state   *state.State
	machine *checkout.Machine
	shop    ShopClient

	page         *view.Page
	modal        *view.Modal
	catalogCard  *view.CatalogCard
	previewCard  *view.PreviewCard
	basketPanel  *view.BasketPanel
	orderForm    *view.OrderForm
	contactsForm *view.ContactsForm
	success      *view.SuccessPanel

	// gestureErr carries a guard refusal out of the handler chain back
	// to the gesture that emitted the triggering event.
	gestureErr error
}

// NewEngine builds and wires a session.
func NewEngine(log *zap.Logger, shop ShopClient) (*Engine, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()

	e := &Engine{
		log:          log,
		bus:          bus,
		state:        state.New(bus),
		machine:      checkout.NewMachine(),
		shop:         shop,
		page:         view.NewPage(renderer, bus),
		modal:        view.NewModal(renderer, bus),
		catalogCard:  view.NewCatalogCard(renderer),
		previewCard:  view.NewPreviewCard(renderer),
		basketPanel:  view.NewBasketPanel(renderer, bus),
		orderForm:    view.NewOrderForm(renderer, bus),
		contactsForm: view.NewContactsForm(renderer, bus),
		success:      view.NewSuccessPanel(renderer),
	}

	e.wire()
	return e, nil
}

// wire registers the choreography: which handler reacts to which event.
// Registration order is dispatch order.
func (e *Engine) wire() {
	// Catalog replaced: rebuild the gallery tile by tile.
	events.On(e.bus, func(events.CatalogChanged) {
		cards := make([]template.HTML, 0, len(e.state.Catalog()))
		for _, item := range e.state.Catalog() {
			html, err := e.catalogCard.Render(view.NewCardVM(item, e.shop.ImageURL))
			if err != nil {
				e.log.Error("render catalog card", zap.String("product", item.ID), zap.Error(err))
				continue
			}
			cards = append(cards, html)
		}
		e.page.SetGallery(cards)
	})

	// Card clicked: open the preview.
	events.On(e.bus, func(ev events.CardSelected) {
		if err := e.machine.SelectCard(); err != nil {
			e.fail(err)
			return
		}
		e.page.SetLocked(true)
		html, err := e.previewCard.Render(view.NewPreviewVM(ev.Item, e.shop.ImageURL))
		if err != nil {
			e.log.Error("render preview", zap.Error(err))
			return
		}
		e.modal.Open(html)
	})

	// Buy pressed on the preview: into the basket, close the modal.
	events.On(e.bus, func(ev events.CardToBasket) {
		if err := e.machine.AddToBasket(); err != nil {
			e.fail(err)
			return
		}
		e.state.AddToBasket(ev.Item)
		e.modal.Close()
	})

	// Basket requested: open the panel.
	events.On(e.bus, func(events.BasketOpened) {
		e.machine.OpenBasket()
		e.page.SetLocked(true)
		e.openBasketPanel()
	})

	// Row deleted: mutate, then repaint the open panel. Counter, total
	// and the checkout button follow BasketChanged on their own.
	events.On(e.bus, func(ev events.BasketItemDeleted) {
		e.state.DeleteFromBasket(ev.Item.ID)
		e.openBasketPanel()
	})

	// Checkout started from the basket.
	events.On(e.bus, func(events.OrderRequested) {
		if err := e.machine.BeginOrder(e.state.BasketAmount() == 0); err != nil {
			e.fail(err)
			return
		}
		e.orderForm.Reset()
		e.replaceWithOrderForm()
	})

	// A form field changed: mutate the draft, repaint the open form so
	// the submit button and error line track the new validity.
	events.On(e.bus, func(ev events.OrderFieldChanged) {
		e.state.SetOrderField(ev.Field, ev.Value)
		switch e.machine.Stage() {
		case checkout.Order:
			e.replaceWithOrderForm()
		case checkout.Contacts:
			e.replaceWithContactsForm()
		}
	})

	// Order step submitted: guard, then finalize the draft from the
	// basket in one step and advance to contacts.
	events.On(e.bus, func(events.OrderSubmitted) {
		if err := e.machine.SubmitOrder(e.state.OrderValid()); err != nil {
			e.fail(err)
			return
		}
		e.state.FinalizeDraft()
		e.contactsForm.Reset()
		e.replaceWithContactsForm()
	})

	// Contacts submitted: guard, then the network round-trip. A refusal
	// or failure leaves the user on the form with a visible error; no
	// retries. The call deliberately ignores the gesture's own request
	// context: an in-flight submission completes even if the browser
	// navigates away.
	events.On(e.bus, func(events.ContactsSubmitted) {
		if err := e.machine.SubmitContacts(e.state.ContactsValid()); err != nil {
			e.fail(err)
			return
		}

		conf, err := e.shop.CreateOrder(context.Background(), e.state.Draft())
		if err != nil {
			e.log.Error("order submission failed", zap.Error(err))
			e.contactsForm.SetSubmitError("the shop did not accept the order, please try again later")
			e.replaceWithContactsForm()
			return
		}

		if err := e.machine.Complete(); err != nil {
			e.fail(err)
			return
		}
		e.bus.Emit(events.PurchaseCompleted{Total: conf.Total})
		e.state.ClearBasket()
		e.state.RefreshOrder()
		e.state.ResetSelected()
	})

	// Purchase confirmed: show the success panel.
	events.On(e.bus, func(ev events.PurchaseCompleted) {
		html, err := e.success.Render(ev.Total.String() + " credits")
		if err != nil {
			e.log.Error("render success panel", zap.Error(err))
			return
		}
		e.modal.Replace(html)
	})

	// Modal dismissed, by any means: unlock the page, reset the draft.
	events.On(e.bus, func(events.ModalClosed) {
		e.page.SetLocked(false)
		e.state.RefreshOrder()
		e.machine.Close()
	})
}

func (e *Engine) openBasketPanel() {
	html, err := e.basketPanel.Render(e.state.Basket())
	if err != nil {
		e.log.Error("render basket panel", zap.Error(err))
		return
	}
	e.modal.Open(html)
}

func (e *Engine) replaceWithOrderForm() {
	html, err := e.orderForm.Render(e.state.Draft())
	if err != nil {
		e.log.Error("render order form", zap.Error(err))
		return
	}
	e.modal.Replace(html)
}

func (e *Engine) replaceWithContactsForm() {
	html, err := e.contactsForm.Render(e.state.Draft())
	if err != nil {
		e.log.Error("render contacts form", zap.Error(err))
		return
	}
	e.modal.Replace(html)
}

func (e *Engine) fail(err error) {
	if e.gestureErr == nil {
		e.gestureErr = err
	}
	e.log.Warn("gesture refused", zap.Error(err))
}

// emit dispatches one gesture's event chain and reports a guard refusal.
func (e *Engine) emit(ev events.Event) error {
	e.gestureErr = nil
	e.bus.Emit(ev)
	return e.gestureErr
}
