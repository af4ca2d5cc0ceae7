package view

import (
	"html/template"

	"storefront/internal/domain"
	"storefront/internal/events"
)

// OrderForm renders the payment/address step. Its valid flag and error
// text are driven exclusively by OrderErrorsChanged events; the form does
// no validation of its own.
type OrderForm struct {
	r      *Renderer
	valid  bool
	errors string
}

// NewOrderForm creates the form and wires its errors subscription.
func NewOrderForm(r *Renderer, bus *events.Bus) *OrderForm {
	f := &OrderForm{r: r}
	events.On(bus, func(e events.OrderErrorsChanged) {
		f.valid = len(e.Errors) == 0
		f.errors = e.Errors.Join(domain.FieldPayment, domain.FieldAddress)
	})
	return f
}

// Reset returns the form to its initial rendering state: submit disabled,
// no error text. Used when the form is opened fresh.
func (f *OrderForm) Reset() {
	f.valid = false
	f.errors = ""
}

type orderFormVM struct {
	Payment string
	Address string
	Valid   bool
	Errors  string
}

// Render writes the current draft values alongside the validity state.
func (f *OrderForm) Render(draft domain.OrderDraft) (template.HTML, error) {
	return f.r.render("order", orderFormVM{
		Payment: string(draft.Payment),
		Address: draft.Address,
		Valid:   f.valid,
		Errors:  f.errors,
	})
}

// ContactsForm renders the email/phone step, driven by
// ContactsErrorsChanged the same way.
type ContactsForm struct {
	r      *Renderer
	valid  bool
	errors string

	// submitErr is the inline failure message shown when the shop
	// rejected the order. Cleared on reset.
	submitErr string
}

// NewContactsForm creates the form and wires its errors subscription.
func NewContactsForm(r *Renderer, bus *events.Bus) *ContactsForm {
	f := &ContactsForm{r: r}
	events.On(bus, func(e events.ContactsErrorsChanged) {
		f.valid = len(e.Errors) == 0
		f.errors = e.Errors.Join(domain.FieldPhone, domain.FieldEmail)
	})
	return f
}

// Reset returns the form to its initial rendering state.
func (f *ContactsForm) Reset() {
	f.valid = false
	f.errors = ""
	f.submitErr = ""
}

// SetSubmitError surfaces a failed order submission inline.
func (f *ContactsForm) SetSubmitError(msg string) {
	f.submitErr = msg
}

type contactsFormVM struct {
	Email  string
	Phone  string
	Valid  bool
	Errors string
}

// Render writes the current draft values alongside the validity state.
// A pending submit error takes over the error line.
func (f *ContactsForm) Render(draft domain.OrderDraft) (template.HTML, error) {
	errText := f.errors
	if f.submitErr != "" {
		errText = f.submitErr
	}
	return f.r.render("contacts", contactsFormVM{
		Email:  draft.Email,
		Phone:  draft.Phone,
		Valid:  f.valid,
		Errors: errText,
	})
}
