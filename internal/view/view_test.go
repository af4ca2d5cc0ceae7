package view

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/events"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func identityURL(ref string) string { return ref }

func testProduct(id string, priced bool) *domain.Product {
	p := &domain.Product{
		ID:       id,
		Title:    "Widget " + id,
		Category: domain.CategoryOther,
	}
	if priced {
		d := decimal.NewFromInt(100)
		p.Price = &d
	}
	return p
}

func TestPreviewDisablesBuyForPricelessItem(t *testing.T) {
	vm := NewPreviewVM(testProduct("a", false), identityURL)

	if !vm.ButtonDisabled {
		t.Fatalf("priceless item must not be buyable")
	}
	if vm.Price != "Priceless" {
		t.Fatalf("expected priceless label, got %q", vm.Price)
	}
}

func TestPreviewDisablesBuyForSelectedItem(t *testing.T) {
	p := testProduct("a", true)
	p.Selected = true

	vm := NewPreviewVM(p, identityURL)
	if !vm.ButtonDisabled {
		t.Fatalf("item already in basket must not be buyable again")
	}
}

func TestBasketPanelFollowsBasketChanged(t *testing.T) {
	bus := events.NewBus()
	panel := NewBasketPanel(newRenderer(t), bus)

	// Empty basket: checkout disabled.
	html, err := panel.Render(nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "disabled") {
		t.Fatalf("checkout button must be disabled for an empty basket")
	}

	bus.Emit(events.BasketChanged{Count: 2, Total: decimal.NewFromInt(300)})

	items := []*domain.Product{testProduct("a", true), testProduct("b", true)}
	html, err = panel.Render(items)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	if strings.Contains(out, "disabled") {
		t.Fatalf("checkout button must be enabled after items arrive")
	}
	if !strings.Contains(out, "300 credits") {
		t.Fatalf("total must come from the subscribed basket state: %s", out)
	}
	// Rows are renumbered 1..N by the panel itself.
	if !strings.Contains(out, ">1<") || !strings.Contains(out, ">2<") {
		t.Fatalf("rows must carry indices 1..N: %s", out)
	}
}

func TestOrderFormValidityFollowsErrorsEvents(t *testing.T) {
	bus := events.NewBus()
	form := NewOrderForm(newRenderer(t), bus)

	bus.Emit(events.OrderErrorsChanged{Errors: domain.FormErrors{
		domain.FieldPayment: "choose a payment method",
	}})

	html, err := form.Render(domain.OrderDraft{Address: "Elm Street 7"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "disabled") {
		t.Fatalf("submit must stay disabled while the group has errors")
	}
	if !strings.Contains(out, "choose a payment method") {
		t.Fatalf("error text must be displayed: %s", out)
	}

	bus.Emit(events.OrderErrorsChanged{Errors: domain.FormErrors{}})
	html, _ = form.Render(domain.OrderDraft{Address: "Elm Street 7", Payment: domain.PaymentOnline})
	if strings.Contains(string(html), "disabled") {
		t.Fatalf("submit must enable once the group is error-free")
	}
}

func TestContactsFormShowsSubmitErrorInline(t *testing.T) {
	bus := events.NewBus()
	form := NewContactsForm(newRenderer(t), bus)

	bus.Emit(events.ContactsErrorsChanged{Errors: domain.FormErrors{}})
	form.SetSubmitError("the shop did not accept the order")

	html, err := form.Render(domain.OrderDraft{Email: "a@b.c", Phone: "+1"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "the shop did not accept the order") {
		t.Fatalf("submit failure must be visible on the form")
	}

	form.Reset()
	html, _ = form.Render(domain.OrderDraft{})
	if strings.Contains(string(html), "did not accept") {
		t.Fatalf("reset must clear the submit error")
	}
}

func TestModalCloseEmitsModalClosed(t *testing.T) {
	bus := events.NewBus()
	closed := 0
	events.On(bus, func(events.ModalClosed) { closed++ })

	m := NewModal(newRenderer(t), bus)
	m.Open("<p>content</p>")
	if !m.IsOpen() {
		t.Fatalf("modal must be open after Open")
	}

	m.Close()
	if m.IsOpen() {
		t.Fatalf("modal must be closed after Close")
	}
	if closed != 1 {
		t.Fatalf("Close must emit exactly one ModalClosed, got %d", closed)
	}

	// Closing a closed modal must not emit again.
	m.Close()
	if closed != 1 {
		t.Fatalf("redundant Close must not emit, got %d", closed)
	}
}

func TestPageCounterFollowsBasketChanged(t *testing.T) {
	bus := events.NewBus()
	page := NewPage(newRenderer(t), bus)

	bus.Emit(events.BasketChanged{Count: 3, Total: decimal.Zero})
	if page.Counter() != 3 {
		t.Fatalf("counter must follow BasketChanged, got %d", page.Counter())
	}

	html, err := page.Render("")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), ">3</span>") {
		t.Fatalf("counter must appear in the page markup")
	}
}

func TestPageRendersCatalogErrorState(t *testing.T) {
	bus := events.NewBus()
	page := NewPage(newRenderer(t), bus)
	page.SetCatalogError("catalog is unavailable")

	html, err := page.Render("")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(html), "catalog is unavailable") {
		t.Fatalf("catalog failure must be user-visible")
	}
}
