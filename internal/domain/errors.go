package domain

import "fmt"

// UnknownJurisdictionError reports a jurisdiction code outside the fixed
// supported set. Always fatal to the calculation; never defaulted.
type UnknownJurisdictionError struct {
	Code string
}

func (e *UnknownJurisdictionError) Error() string {
	return fmt.Sprintf("unknown jurisdiction %q", e.Code)
}

// UnknownSchemeError reports a rule record referencing a scheme with no
// registered calculator. This is a configuration-integrity failure, not bad
// user input.
type UnknownSchemeError struct {
	Code   string
	Scheme TaxScheme
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("jurisdiction %s references unknown tax scheme %q", e.Code, e.Scheme)
}

// MissingFieldError reports a field required by the selected scheme or lease
// method that was not supplied.
type MissingFieldError struct {
	Field   string
	Context string
}

func (e *MissingFieldError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("missing required field %q for %s", e.Field, e.Context)
	}
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidDealInputError reports a semantically invalid monetary or
// classification input. Invalid values fail the calculation; they are never
// silently clamped.
type InvalidDealInputError struct {
	Field  string
	Reason string
}

func (e *InvalidDealInputError) Error() string {
	return fmt.Sprintf("invalid deal input %q: %s", e.Field, e.Reason)
}
