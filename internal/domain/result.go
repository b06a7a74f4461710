package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TaxableBaseBreakdown reports how the taxable base decomposes across
// vehicle, fee, and product components.
type TaxableBaseBreakdown struct {
	Vehicle  decimal.Decimal `json:"vehicle"`
	Fees     decimal.Decimal `json:"fees"`
	Products decimal.Decimal `json:"products"`
	Total    decimal.Decimal `json:"total"`
}

// ComponentTax is the tax contributed by a single rate component.
type ComponentTax struct {
	Label  string           `json:"label"`
	Type   JurisdictionType `json:"type"`
	Rate   decimal.Decimal  `json:"rate"`
	Amount decimal.Decimal  `json:"amount"`
}

// ReciprocityOutcome is the resolved cross-jurisdiction credit.
type ReciprocityOutcome struct {
	OriginState   string          `json:"origin_state"`
	Credit        decimal.Decimal `json:"credit"`
	ProofRequired bool            `json:"proof_required"`
	Note          string          `json:"note"`
}

// CalculationResult is the complete output of one tax calculation. It is
// produced fresh per call and never mutated after return.
type CalculationResult struct {
	Jurisdiction string    `json:"jurisdiction"`
	Scheme       TaxScheme `json:"scheme"`
	DealType     DealType  `json:"deal_type"`

	Base         TaxableBaseBreakdown `json:"taxable_base"`
	Components   []ComponentTax       `json:"component_taxes"`
	CombinedRate decimal.Decimal      `json:"combined_rate"`

	// TotalTax is the headline tax before any reciprocity credit, rounded
	// half-up to cents. MonthlyTax is set for monthly-method leases.
	TotalTax   decimal.Decimal `json:"total_tax"`
	MonthlyTax decimal.Decimal `json:"monthly_tax,omitempty"`

	Reciprocity *ReciprocityOutcome `json:"reciprocity,omitempty"`

	// NetTaxDue is TotalTax less any reciprocity credit, floored at zero.
	NetTaxDue decimal.Decimal `json:"net_tax_due"`

	// Approximate is set when a locality breakdown was requested but
	// unavailable and the flat state rate was used instead.
	Approximate bool `json:"approximate,omitempty"`

	// Notes is the ordered human-readable calculation trace. Ordering is
	// part of the observable contract.
	Notes []string `json:"notes"`
}

// AddNote appends a formatted trace note.
func (r *CalculationResult) AddNote(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Money formats a decimal amount as dollars and cents for trace notes.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Percent formats a decimal rate for trace notes (0.07 -> "7.00%").
func Percent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
