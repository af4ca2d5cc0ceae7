package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentMethod is one of the two payment choices offered at checkout.
type PaymentMethod string

const (
	PaymentOnline     PaymentMethod = "online"
	PaymentOnDelivery PaymentMethod = "cash"
)

// Order field names as used in form input events and validation errors.
const (
	FieldPayment = "payment"
	FieldAddress = "address"
	FieldEmail   = "email"
	FieldPhone   = "phone"
)

// OrderDraft accumulates checkout input field by field. Total and Items are
// filled atomically from the basket when the order step is submitted.
//
// Validation splits into two groups: {payment, address} for the order step
// and {email, phone} for the contacts step. A field is valid once it is set.
type OrderDraft struct {
	Payment PaymentMethod   `json:"payment" validate:"required"`
	Address string          `json:"address" validate:"required"`
	Email   string          `json:"email" validate:"required"`
	Phone   string          `json:"phone" validate:"required"`
	Total   decimal.Decimal `json:"total"`
	Items   []string        `json:"items"`
}

// FormErrors maps an order field name to a human-readable message. It is
// recomputed wholesale on every draft mutation, never patched.
type FormErrors map[string]string

// Join flattens the mapping into a single display string, listing the given
// fields in a stable order and skipping fields without an error.
func (e FormErrors) Join(fields ...string) string {
	out := ""
	for _, f := range fields {
		msg, ok := e[f]
		if !ok {
			continue
		}
		if out != "" {
			out += "; "
		}
		out += msg
	}
	return out
}
