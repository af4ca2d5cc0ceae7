// Package checkout models the purchase flow as an explicit state machine.
// The UI disables buttons as a courtesy; the machine is what actually
// refuses a submit against an invalid draft or an empty basket.
package checkout

import (
	"errors"
	"fmt"
)

// Stage is one step of the purchase flow.
type Stage int

const (
	Browsing Stage = iota
	Preview
	Basket
	Order
	Contacts
	Success
)

func (s Stage) String() string {
	switch s {
	case Browsing:
		return "browsing"
	case Preview:
		return "preview"
	case Basket:
		return "basket"
	case Order:
		return "order"
	case Contacts:
		return "contacts"
	case Success:
		return "success"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

var (
	// ErrTransition is returned for an event the current stage does not accept.
	ErrTransition = errors.New("gesture not allowed in this stage")

	// ErrDraftInvalid is returned when a submit is attempted against a draft
	// whose owning validation group still has errors.
	ErrDraftInvalid = errors.New("order draft is not valid")

	// ErrEmptyBasket is returned when checkout is started with nothing in it.
	ErrEmptyBasket = errors.New("basket is empty")
)

// Machine tracks the current stage and guards transitions.
type Machine struct {
	stage Stage
}

// NewMachine starts at Browsing.
func NewMachine() *Machine {
	return &Machine{stage: Browsing}
}

// Stage returns the current stage.
func (m *Machine) Stage() Stage {
	return m.stage
}

// SelectCard opens an item preview. Allowed while browsing, from the basket
// view, or from another preview.
func (m *Machine) SelectCard() error {
	switch m.stage {
	case Browsing, Basket, Preview:
		m.stage = Preview
		return nil
	default:
		return fmt.Errorf("%w: select from %s", ErrTransition, m.stage)
	}
}

// AddToBasket closes the preview back to browsing.
func (m *Machine) AddToBasket() error {
	if m.stage != Preview {
		return fmt.Errorf("%w: add to basket from %s", ErrTransition, m.stage)
	}
	m.stage = Browsing
	return nil
}

// OpenBasket shows the basket panel. Allowed from any stage.
func (m *Machine) OpenBasket() {
	m.stage = Basket
}

// BeginOrder moves from the basket to the order form. Refused on an empty
// basket even if the UI failed to disable the button.
func (m *Machine) BeginOrder(basketEmpty bool) error {
	if m.stage != Basket {
		return fmt.Errorf("%w: begin order from %s", ErrTransition, m.stage)
	}
	if basketEmpty {
		return ErrEmptyBasket
	}
	m.stage = Order
	return nil
}

// SubmitOrder moves from the order form to the contacts form, refusing
// when the {payment, address} group is not valid.
func (m *Machine) SubmitOrder(orderValid bool) error {
	if m.stage != Order {
		return fmt.Errorf("%w: submit order from %s", ErrTransition, m.stage)
	}
	if !orderValid {
		return ErrDraftInvalid
	}
	m.stage = Contacts
	return nil
}

// SubmitContacts checks that the contacts form may be submitted. The stage
// does not advance yet: the network round-trip decides whether Complete or
// nothing follows, so a failed submission leaves the user on the form.
func (m *Machine) SubmitContacts(contactsValid bool) error {
	if m.stage != Contacts {
		return fmt.Errorf("%w: submit contacts from %s", ErrTransition, m.stage)
	}
	if !contactsValid {
		return ErrDraftInvalid
	}
	return nil
}

// Complete records a shop-confirmed purchase and shows the success stage.
func (m *Machine) Complete() error {
	if m.stage != Contacts {
		return fmt.Errorf("%w: complete from %s", ErrTransition, m.stage)
	}
	m.stage = Success
	return nil
}

// Close dismisses whatever is open and returns to browsing. Always allowed.
func (m *Machine) Close() {
	m.stage = Browsing
}
