// Package state holds the storefront's session model: the catalog, the
// basket, the in-progress order draft and its validation errors. Every
// mutation completes before its change event is emitted.
package state

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/events"
)

// State is the single mutable model behind one storefront session.
type State struct {
	bus      *events.Bus
	validate *validator.Validate

	catalog []*domain.Product
	byID    map[string]*domain.Product
	basket  []*domain.Product

	draft domain.OrderDraft
}

// New creates an empty state publishing its change events on bus.
func New(bus *events.Bus) *State {
	return &State{
		bus:      bus,
		validate: validator.New(),
		byID:     make(map[string]*domain.Product),
	}
}

// SetCatalog replaces the catalog wholesale and emits CatalogChanged.
// Duplicate ids in the payload collapse to the first occurrence.
func (s *State) SetCatalog(items []*domain.Product) {
	s.catalog = s.catalog[:0]
	s.byID = make(map[string]*domain.Product, len(items))

	for _, item := range items {
		if _, dup := s.byID[item.ID]; dup {
			continue
		}
		s.byID[item.ID] = item
		s.catalog = append(s.catalog, item)
	}

	s.bus.Emit(events.CatalogChanged{})
}

// Catalog returns the products in display order.
func (s *State) Catalog() []*domain.Product {
	return s.catalog
}

// Find returns the catalog product with the given id, or nil.
func (s *State) Find(id string) *domain.Product {
	return s.byID[id]
}

// Basket returns the basket contents in insertion order.
func (s *State) Basket() []*domain.Product {
	return s.basket
}

// AddToBasket inserts the product unless it is already present, marks it
// selected and emits BasketChanged. Adding twice leaves one entry.
func (s *State) AddToBasket(item *domain.Product) {
	for _, p := range s.basket {
		if p.ID == item.ID {
			item.Selected = true
			return
		}
	}
	s.basket = append(s.basket, item)
	item.Selected = true
	s.emitBasketChanged()
}

// DeleteFromBasket removes the product by id and clears its selected flag.
// Removing an absent id is a no-op.
func (s *State) DeleteFromBasket(id string) {
	for i, p := range s.basket {
		if p.ID == id {
			s.basket = append(s.basket[:i], s.basket[i+1:]...)
			p.Selected = false
			s.emitBasketChanged()
			return
		}
	}
}

// BasketAmount returns the number of basket entries.
func (s *State) BasketAmount() int {
	return len(s.basket)
}

// TotalBasketPrice sums basket prices. A priceless item contributes zero:
// the shop refuses to sell it, so it can never add to the amount due.
func (s *State) TotalBasketPrice() decimal.Decimal {
	total := decimal.Zero
	for _, p := range s.basket {
		if p.Price == nil {
			continue
		}
		total = total.Add(*p.Price)
	}
	return total
}

// ClearBasket empties the basket and emits BasketChanged. Selected flags
// are reset separately via ResetSelected.
func (s *State) ClearBasket() {
	s.basket = nil
	s.emitBasketChanged()
}

// ResetSelected clears the selected flag on every catalog product.
func (s *State) ResetSelected() {
	for _, p := range s.catalog {
		p.Selected = false
	}
}

func (s *State) emitBasketChanged() {
	s.bus.Emit(events.BasketChanged{
		Count: s.BasketAmount(),
		Total: s.TotalBasketPrice(),
	})
}
