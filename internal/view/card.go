package view

import (
	"html/template"

	"storefront/internal/domain"
)

// categoryClass maps a catalog tag onto its CSS modifier.
var categoryClass = map[domain.Category]string{
	domain.CategorySoftSkill:  "soft",
	domain.CategoryHardSkill:  "hard",
	domain.CategoryAdditional: "additional",
	domain.CategoryButton:     "button",
	domain.CategoryOther:      "other",
}

// CardVM is the view model shared by the catalog card and the preview card.
type CardVM struct {
	ID            string
	Title         string
	Description   string
	Image         string
	Category      domain.Category
	CategoryClass string
	Price         string
}

// NewCardVM builds the card view model for a product. imageURL resolves
// the catalog image reference to an absolute URL.
func NewCardVM(p *domain.Product, imageURL func(string) string) CardVM {
	return CardVM{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Image:         imageURL(p.Image),
		Category:      p.Category,
		CategoryClass: categoryClass[p.Category],
		Price:         FormatPrice(p.Price),
	}
}

// CatalogCard renders one gallery tile. Constructed per item, per render
// pass, like the rest of the gallery.
type CatalogCard struct {
	r *Renderer
}

func NewCatalogCard(r *Renderer) *CatalogCard {
	return &CatalogCard{r: r}
}

func (c *CatalogCard) Render(vm CardVM) (template.HTML, error) {
	return c.r.render("card", vm)
}

// PreviewVM extends the card with the buy button state.
type PreviewVM struct {
	CardVM
	ButtonLabel    string
	ButtonDisabled bool
}

// NewPreviewVM derives the buy button state: a priceless item cannot be
// bought, an already selected one cannot be added twice.
func NewPreviewVM(p *domain.Product, imageURL func(string) string) PreviewVM {
	vm := PreviewVM{CardVM: NewCardVM(p, imageURL), ButtonLabel: "Buy"}
	switch {
	case p.Priceless():
		vm.ButtonLabel = "Not for sale"
		vm.ButtonDisabled = true
	case p.Selected:
		vm.ButtonLabel = "Already in basket"
		vm.ButtonDisabled = true
	}
	return vm
}

// PreviewCard renders the full item card shown in the modal.
type PreviewCard struct {
	r *Renderer
}

func NewPreviewCard(r *Renderer) *PreviewCard {
	return &PreviewCard{r: r}
}

func (c *PreviewCard) Render(vm PreviewVM) (template.HTML, error) {
	return c.r.render("preview", vm)
}

// BasketRowVM is one numbered line of the basket panel.
type BasketRowVM struct {
	Index int
	ID    string
	Title string
	Price string
}
