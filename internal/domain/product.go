package domain

import (
	"github.com/shopspring/decimal"
)

// Category is one of the fixed set of catalog tags delivered by the shop API.
type Category string

const (
	CategorySoftSkill  Category = "soft-skill"
	CategoryHardSkill  Category = "hard-skill"
	CategoryAdditional Category = "additional"
	CategoryButton     Category = "button"
	CategoryOther      Category = "other"
)

// Product represents a catalog item available in the storefront.
// Price is nil for items the shop marks as not for sale.
type Product struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Category    Category         `json:"category"`
	Price       *decimal.Decimal `json:"price"`

	// Selected is true while the product sits in the basket.
	// Not part of the API payload.
	Selected bool `json:"-"`
}

// Priceless reports whether the product carries the not-for-sale sentinel.
func (p *Product) Priceless() bool {
	return p.Price == nil
}
