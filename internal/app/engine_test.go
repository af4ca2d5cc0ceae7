package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/checkout"
	"storefront/internal/domain"
	"storefront/internal/shopapi"
)

type fakeShop struct {
	products  []*domain.Product
	fetchErr  error
	orderErr  error
	lastDraft domain.OrderDraft
	confirmed decimal.Decimal
}

func (f *fakeShop) Products(ctx context.Context) ([]*domain.Product, error) {
	return f.products, f.fetchErr
}

func (f *fakeShop) CreateOrder(ctx context.Context, draft domain.OrderDraft) (*shopapi.OrderConfirmation, error) {
	f.lastDraft = draft
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	f.confirmed = draft.Total
	return &shopapi.OrderConfirmation{ID: "order-1", Total: draft.Total}, nil
}

func (f *fakeShop) ImageURL(ref string) string { return ref }

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func twoProducts() []*domain.Product {
	return []*domain.Product{
		{ID: "a", Title: "Widget A", Category: domain.CategoryOther, Price: price(100)},
		{ID: "b", Title: "Widget B", Category: domain.CategoryOther, Price: price(200)},
	}
}

func newEngine(t *testing.T, shop ShopClient) *Engine {
	t.Helper()
	e, err := NewEngine(zap.NewNop(), shop)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func addToBasket(t *testing.T, e *Engine, id string) {
	t.Helper()
	if err := e.SelectProduct(id); err != nil {
		t.Fatalf("select %s: %v", id, err)
	}
	if err := e.AddToBasket(id); err != nil {
		t.Fatalf("add %s: %v", id, err)
	}
}

func fillOrderStep(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.BeginOrder(); err != nil {
		t.Fatalf("begin order: %v", err)
	}
	if err := e.SetOrderField(domain.FieldAddress, "Elm Street 7"); err != nil {
		t.Fatalf("set address: %v", err)
	}
	if err := e.SetOrderField(domain.FieldPayment, string(domain.PaymentOnline)); err != nil {
		t.Fatalf("set payment: %v", err)
	}
	if err := e.SubmitOrder(); err != nil {
		t.Fatalf("submit order: %v", err)
	}
}

func fillContactsStep(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.SetOrderField(domain.FieldEmail, "shopper@example.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}
	if err := e.SetOrderField(domain.FieldPhone, "+10000000000"); err != nil {
		t.Fatalf("set phone: %v", err)
	}
}

func TestScenarioBrowseAndFillBasket(t *testing.T) {
	shop := &fakeShop{products: twoProducts()}
	e := newEngine(t, shop)
	e.LoadCatalog(context.Background())

	page, err := e.RenderPage()
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if got := strings.Count(string(page), `class="card"`); got != 2 {
		t.Fatalf("expected 2 catalog cards, got %d", got)
	}

	addToBasket(t, e, "a")
	addToBasket(t, e, "b")

	if e.state.BasketAmount() != 2 {
		t.Fatalf("expected basket count 2, got %d", e.state.BasketAmount())
	}
	if total := e.state.TotalBasketPrice(); !total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected total 300, got %s", total)
	}
	if e.page.Counter() != 2 {
		t.Fatalf("page counter must follow the basket, got %d", e.page.Counter())
	}
}

func TestScenarioDeleteLastItemDisablesCheckout(t *testing.T) {
	shop := &fakeShop{products: twoProducts()}
	e := newEngine(t, shop)
	e.LoadCatalog(context.Background())

	addToBasket(t, e, "a")
	if err := e.OpenBasket(); err != nil {
		t.Fatalf("open basket: %v", err)
	}
	if err := e.DeleteFromBasket("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	page, err := e.RenderPage()
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	out := string(page)
	if strings.Contains(out, "basket__item-index") {
		t.Fatalf("basket panel must show 0 rows after the delete")
	}
	if !strings.Contains(out, "disabled") {
		t.Fatalf("checkout button must be disabled on an empty basket")
	}
	if e.page.Counter() != 0 {
		t.Fatalf("page counter must be 0, got %d", e.page.Counter())
	}

	// Empty basket: checkout is refused by the machine too.
	if err := e.BeginOrder(); !errors.Is(err, checkout.ErrEmptyBasket) {
		t.Fatalf("expected ErrEmptyBasket, got %v", err)
	}
}

func TestScenarioFullCheckoutAgainstShopAPI(t *testing.T) {
	var posted map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/product/":
			w.Write([]byte(`{"total":2,"items":[
				{"id":"a","title":"Widget A","category":"other","price":100},
				{"id":"b","title":"Widget B","category":"other","price":200}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/order":
			if err := json.NewDecoder(r.Body).Decode(&posted); err != nil {
				t.Errorf("decode order: %v", err)
			}
			w.Write([]byte(`{"id":"order-1","total":300}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	e := newEngine(t, shopapi.NewClient(srv.URL, ""))
	e.LoadCatalog(context.Background())

	addToBasket(t, e, "a")
	addToBasket(t, e, "b")
	if err := e.OpenBasket(); err != nil {
		t.Fatalf("open basket: %v", err)
	}

	fillOrderStep(t, e)

	// The contacts form opens fresh: submit disabled, no error text yet.
	page, _ := e.RenderPage()
	if !strings.Contains(string(page), "disabled") {
		t.Fatalf("contacts submit must open disabled")
	}
	if strings.Contains(string(page), "enter an email") {
		t.Fatalf("untouched contacts form must not complain yet")
	}

	fillContactsStep(t, e)
	if err := e.SubmitContacts(); err != nil {
		t.Fatalf("submit contacts: %v", err)
	}

	// The POSTed order carries exactly the basket ids and the basket total.
	items := posted["items"].([]any)
	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Fatalf("order items mismatch: %v", posted["items"])
	}
	if posted["total"].(float64) != 300 {
		t.Fatalf("order total mismatch: %v", posted["total"])
	}

	// Post-purchase state: basket cleared, flags reset, counter 0.
	if e.state.BasketAmount() != 0 {
		t.Fatalf("basket must be cleared after purchase")
	}
	for _, p := range e.state.Catalog() {
		if p.Selected {
			t.Fatalf("selected flags must reset after purchase")
		}
	}
	if e.page.Counter() != 0 {
		t.Fatalf("page counter must reset, got %d", e.page.Counter())
	}

	// The success panel shows the confirmed total.
	page, _ = e.RenderPage()
	if !strings.Contains(string(page), "300 credits written off") {
		t.Fatalf("success panel must display the shop-confirmed total")
	}
}

func TestCloseModalAlwaysResetsDraft(t *testing.T) {
	shop := &fakeShop{products: twoProducts()}
	e := newEngine(t, shop)
	e.LoadCatalog(context.Background())

	addToBasket(t, e, "a")
	if err := e.OpenBasket(); err != nil {
		t.Fatalf("open basket: %v", err)
	}
	fillOrderStep(t, e)
	fillContactsStep(t, e)

	e.CloseModal()

	draft := e.state.Draft()
	if draft.Address != "" || draft.Payment != "" || draft.Email != "" || draft.Phone != "" {
		t.Fatalf("closing the modal must reset the draft: %+v", draft)
	}
	if e.page.Locked() {
		t.Fatalf("closing the modal must unlock the page")
	}
	if e.machine.Stage() != checkout.Browsing {
		t.Fatalf("closing the modal must return to browsing")
	}
}

func TestSubmitIsRefusedAgainstInvalidDraft(t *testing.T) {
	shop := &fakeShop{products: twoProducts()}
	e := newEngine(t, shop)
	e.LoadCatalog(context.Background())

	addToBasket(t, e, "a")
	if err := e.OpenBasket(); err != nil {
		t.Fatalf("open basket: %v", err)
	}
	if err := e.BeginOrder(); err != nil {
		t.Fatalf("begin order: %v", err)
	}

	// Only the address is filled; the machine must refuse the submit even
	// though nothing in the UI enforces it.
	if err := e.SetOrderField(domain.FieldAddress, "Elm Street 7"); err != nil {
		t.Fatalf("set address: %v", err)
	}
	if err := e.SubmitOrder(); !errors.Is(err, checkout.ErrDraftInvalid) {
		t.Fatalf("expected ErrDraftInvalid, got %v", err)
	}
	if e.machine.Stage() != checkout.Order {
		t.Fatalf("refused submit must not advance the flow")
	}
}

func TestCatalogFetchFailureIsVisible(t *testing.T) {
	shop := &fakeShop{fetchErr: errors.New("boom")}
	e := newEngine(t, shop)
	e.LoadCatalog(context.Background())

	page, err := e.RenderPage()
	if err != nil {
		t.Fatalf("render page: %v", err)
	}
	if !strings.Contains(string(page), "catalog is unavailable") {
		t.Fatalf("catalog failure must surface in the page")
	}
}

func TestOrderSubmissionFailureStaysOnContactsForm(t *testing.T) {
	shop := &fakeShop{products: twoProducts(), orderErr: errors.New("shop down")}
	e := newEngine(t, shop)
	e.LoadCatalog(context.Background())

	addToBasket(t, e, "a")
	if err := e.OpenBasket(); err != nil {
		t.Fatalf("open basket: %v", err)
	}
	fillOrderStep(t, e)
	fillContactsStep(t, e)

	if err := e.SubmitContacts(); err != nil {
		t.Fatalf("a network failure is not a gesture error: %v", err)
	}

	if e.machine.Stage() != checkout.Contacts {
		t.Fatalf("failed submission must keep the contacts stage, got %s", e.machine.Stage())
	}
	if e.state.BasketAmount() != 1 {
		t.Fatalf("failed submission must not clear the basket")
	}

	page, _ := e.RenderPage()
	if !strings.Contains(string(page), "did not accept the order") {
		t.Fatalf("submission failure must be visible on the form")
	}
}

func TestAddingPricelessItemIsNotOffered(t *testing.T) {
	products := twoProducts()
	products = append(products, &domain.Product{
		ID: "c", Title: "Rarity", Category: domain.CategoryOther,
	})
	shop := &fakeShop{products: products}
	e := newEngine(t, shop)
	e.LoadCatalog(context.Background())

	if err := e.SelectProduct("c"); err != nil {
		t.Fatalf("select: %v", err)
	}
	page, _ := e.RenderPage()
	if !strings.Contains(string(page), "Not for sale") {
		t.Fatalf("priceless preview must show the not-for-sale state")
	}
}
