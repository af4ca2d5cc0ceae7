package state

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"storefront/internal/domain"
	"storefront/internal/events"
)

// Validation groups. The order step owns {payment, address}, the contacts
// step owns {email, phone}; each group is recomputed wholesale whenever one
// of its fields changes.
var (
	orderGroup    = []string{"Payment", "Address"}
	contactsGroup = []string{"Email", "Phone"}
)

var fieldNames = map[string]string{
	"Payment": domain.FieldPayment,
	"Address": domain.FieldAddress,
	"Email":   domain.FieldEmail,
	"Phone":   domain.FieldPhone,
}

var fieldMessages = map[string]string{
	domain.FieldPayment: "choose a payment method",
	domain.FieldAddress: "enter a delivery address",
	domain.FieldEmail:   "enter an email address",
	domain.FieldPhone:   "enter a phone number",
}

// Draft returns a copy of the current order draft.
func (s *State) Draft() domain.OrderDraft {
	return s.draft
}

// SetOrderField writes one draft field, revalidates the owning group and
// emits that group's errors-changed event with the full recomputed mapping.
// Unknown field names are ignored.
func (s *State) SetOrderField(field, value string) {
	switch field {
	case domain.FieldPayment:
		s.draft.Payment = domain.PaymentMethod(value)
	case domain.FieldAddress:
		s.draft.Address = value
	case domain.FieldEmail:
		s.draft.Email = value
	case domain.FieldPhone:
		s.draft.Phone = value
	default:
		return
	}

	switch field {
	case domain.FieldPayment, domain.FieldAddress:
		s.bus.Emit(events.OrderErrorsChanged{Errors: s.validateGroup(orderGroup)})
	default:
		s.bus.Emit(events.ContactsErrorsChanged{Errors: s.validateGroup(contactsGroup)})
	}
}

// OrderValid reports whether the {payment, address} group is error-free.
func (s *State) OrderValid() bool {
	return len(s.validateGroup(orderGroup)) == 0
}

// ContactsValid reports whether the {email, phone} group is error-free.
func (s *State) ContactsValid() bool {
	return len(s.validateGroup(contactsGroup)) == 0
}

// FinalizeDraft snapshots the basket into the draft in one step: total from
// the current basket price, items from the basket ids in display order.
func (s *State) FinalizeDraft() {
	s.draft.Total = s.TotalBasketPrice()
	s.draft.Items = make([]string, 0, len(s.basket))
	for _, p := range s.basket {
		s.draft.Items = append(s.draft.Items, p.ID)
	}
}

// RefreshOrder resets the draft to its empty initial values. Used both on
// modal close and after a successful purchase. No errors event is emitted:
// a freshly opened form starts with empty error text and a disabled submit,
// not with "required" complaints for fields the user has not touched yet.
func (s *State) RefreshOrder() {
	s.draft = domain.OrderDraft{}
}

func (s *State) validateGroup(group []string) domain.FormErrors {
	out := domain.FormErrors{}

	err := s.validate.StructPartial(s.draft, group...)
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Only tag failures are expected here; surface them generically.
		for _, f := range group {
			out[fieldNames[f]] = "invalid value"
		}
		return out
	}

	for _, fe := range verrs {
		name := fieldNames[fe.StructField()]
		out[name] = fieldMessages[name]
	}
	return out
}
