package calculation

import (
	"fmt"

	"github.com/dealdesk/autotax/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolveReciprocityCredit resolves the credit a home jurisdiction grants
// for tax already paid to an origin jurisdiction, per the home rule's
// mode × scope matrix and any pairwise override for the origin state. The
// credit is never negative, and the ProofRequired flag is surfaced without
// affecting the computed amount.
func ResolveReciprocityCredit(homeTax decimal.Decimal, origin domain.OriginTax, rule domain.ReciprocityRule, dealType domain.DealType) domain.ReciprocityOutcome {
	outcome := domain.ReciprocityOutcome{
		OriginState:   origin.State,
		Credit:        decimal.Zero,
		ProofRequired: rule.ProofRequired,
	}

	if !rule.Scope.Covers(dealType) {
		outcome.Note = fmt.Sprintf("Reciprocity scope %s does not cover %s deals; no credit for %s applied",
			rule.Scope, dealType, domain.Money(origin.TaxPaid))
		return outcome
	}

	mode := rule.OverrideFor(origin.State)
	overridden := mode != rule.Mode

	if !origin.TaxPaid.IsPositive() {
		outcome.Note = "No origin tax paid; no reciprocity credit"
		return outcome
	}

	switch mode {
	case domain.ReciprocityUpToStateRate:
		outcome.Credit = decimal.Min(origin.TaxPaid, homeTax)
		outcome.Note = fmt.Sprintf("Credit of %s for tax paid to %s, capped at the home tax of %s",
			domain.Money(outcome.Credit), origin.State, domain.Money(homeTax))
	case domain.ReciprocityCreditFull:
		outcome.Credit = origin.TaxPaid
		outcome.Note = fmt.Sprintf("Full credit of %s for tax paid to %s", domain.Money(outcome.Credit), origin.State)
		if origin.TaxPaid.GreaterThan(homeTax) {
			outcome.Note += "; excess over the home tax is not refunded"
		}
	case domain.ReciprocityHomeStateOnly:
		outcome.Note = fmt.Sprintf("Home jurisdiction tax applies in full; no credit for %s paid to %s",
			domain.Money(origin.TaxPaid), origin.State)
	default:
		outcome.Note = fmt.Sprintf("No reciprocity credit offered for tax paid to %s", origin.State)
	}

	if overridden {
		outcome.Note += fmt.Sprintf(" (per-state override %s for origin %s)", mode, origin.State)
	}
	if rule.ProofRequired && outcome.Credit.IsPositive() {
		outcome.Note += "; proof of origin tax payment required"
	}
	return outcome
}
