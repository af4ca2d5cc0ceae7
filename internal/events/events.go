package events

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Event names. Exact-match dispatch only; the set is closed.
const (
	NameCatalogChanged        = "items:changed"
	NameCardSelected          = "card:select"
	NameCardToBasket          = "card:toBasket"
	NameBasketOpened          = "basket:open"
	NameBasketItemDeleted     = "basket:delete"
	NameBasketChanged         = "basket:changed"
	NameOrderRequested        = "basket:order"
	NameOrderFieldChanged     = "orderInput:change"
	NameOrderErrorsChanged    = "orderFormErrors:change"
	NameContactsErrorsChanged = "contactsFormErrors:change"
	NameOrderSubmitted        = "order:submit"
	NameContactsSubmitted     = "contacts:submit"
	NamePurchaseCompleted     = "order:success"
	NameModalClosed           = "modal:close"
)

// CatalogChanged fires after the catalog has been replaced wholesale.
type CatalogChanged struct{}

// CardSelected fires when a catalog or basket card is clicked open.
type CardSelected struct {
	Item *domain.Product
}

// CardToBasket fires when the preview card's buy button is pressed.
type CardToBasket struct {
	Item *domain.Product
}

// BasketOpened fires when the basket panel is requested.
type BasketOpened struct{}

// BasketItemDeleted fires when a basket row's delete control is pressed.
type BasketItemDeleted struct {
	Item *domain.Product
}

// BasketChanged fires after any basket mutation, carrying the derived
// values every subscriber needs to repaint itself.
type BasketChanged struct {
	Count int
	Total decimal.Decimal
}

// OrderRequested fires when checkout is started from the basket panel.
type OrderRequested struct{}

// OrderFieldChanged fires on every keystroke or choice in a checkout form.
type OrderFieldChanged struct {
	Field string
	Value string
}

// OrderErrorsChanged carries the recomputed {payment, address} group errors.
type OrderErrorsChanged struct {
	Errors domain.FormErrors
}

// ContactsErrorsChanged carries the recomputed {email, phone} group errors.
type ContactsErrorsChanged struct {
	Errors domain.FormErrors
}

// OrderSubmitted fires when the order step form is submitted.
type OrderSubmitted struct{}

// ContactsSubmitted fires when the contacts step form is submitted.
type ContactsSubmitted struct{}

// PurchaseCompleted fires once the shop API has accepted the order.
// Total is the amount confirmed by the shop, shown on the success panel.
type PurchaseCompleted struct {
	Total decimal.Decimal
}

// ModalClosed fires whenever the modal is dismissed, by any means.
type ModalClosed struct{}

func (CatalogChanged) EventName() string        { return NameCatalogChanged }
func (CardSelected) EventName() string          { return NameCardSelected }
func (CardToBasket) EventName() string          { return NameCardToBasket }
func (BasketOpened) EventName() string          { return NameBasketOpened }
func (BasketItemDeleted) EventName() string     { return NameBasketItemDeleted }
func (BasketChanged) EventName() string         { return NameBasketChanged }
func (OrderRequested) EventName() string        { return NameOrderRequested }
func (OrderFieldChanged) EventName() string     { return NameOrderFieldChanged }
func (OrderErrorsChanged) EventName() string    { return NameOrderErrorsChanged }
func (ContactsErrorsChanged) EventName() string { return NameContactsErrorsChanged }
func (OrderSubmitted) EventName() string        { return NameOrderSubmitted }
func (ContactsSubmitted) EventName() string     { return NameContactsSubmitted }
func (PurchaseCompleted) EventName() string     { return NamePurchaseCompleted }
func (ModalClosed) EventName() string           { return NameModalClosed }
