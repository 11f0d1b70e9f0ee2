package business

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrAlreadyConverted guards the one-shot conversions: a second
	// quotation convert or tax-invoice conversion fails with this.
	ErrAlreadyConverted = errors.New("document already converted")

	// ErrMissingTaxID is returned when a tax-invoice conversion is
	// requested for an organization without a registered tax number.
	ErrMissingTaxID = errors.New("organization has no registered tax number")

	// ErrInvalidVATNumber is returned when a VAT registration number does
	// not match the 15-digit ZATCA rule.
	ErrInvalidVATNumber = errors.New("VAT number must be exactly 15 digits")
)

// ValidationError reports malformed input. It is always raised before any
// mutation takes place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// InvalidTransitionError reports a status guard failure. The document is
// left unchanged.
type InvalidTransitionError struct {
	Current   string
	Requested string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.Current, e.Requested)
}

// NewInvalidTransition creates an InvalidTransitionError from any pair of
// status-like values.
func NewInvalidTransition(current, requested string) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Requested: requested}
}

// OverpaymentError reports a payment that would push the paid amount past
// the invoice total.
type OverpaymentError struct {
	Remaining decimal.Decimal
	Attempted decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds remaining balance of %s",
		e.Attempted.StringFixed(2), e.Remaining.StringFixed(2))
}
