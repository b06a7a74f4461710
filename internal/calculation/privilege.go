package calculation

import (
	"fmt"

	"github.com/dealdesk/autotax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculatePrivilegeTax assesses a class-based vehicle privilege tax: the
// vehicle is placed in a value class from the jurisdiction's tier table and
// the class's flat amount or rate applies. A value exactly on a tier edge
// belongs to the higher tier; states whose source documentation leaves the
// boundary unspecified get an explicit trace flag instead of a silent
// assumption.
func calculatePrivilegeTax(deal domain.DealInput, rule domain.JurisdictionRule) (*domain.CalculationResult, error) {
	tiers := rule.Special.PrivilegeTiers
	if len(tiers) == 0 {
		return nil, fmt.Errorf("jurisdiction %s: privilege tier table not configured", rule.Code)
	}

	value := deal.FairMarketValue
	if value.IsZero() {
		value = deal.VehiclePrice
	}
	if value.IsZero() {
		return nil, &domain.InvalidDealInputError{Field: "vehicle_price", Reason: "a vehicle value is required to classify the vehicle"}
	}

	result := &domain.CalculationResult{
		Jurisdiction: rule.Code,
		Scheme:       domain.SchemePrivilege,
		DealType:     deal.DealType,
		Components:   []domain.ComponentTax{},
	}
	result.AddNote("Vehicle privilege tax: class-based assessment on declared value of %s", domain.Money(value))

	tier, onBoundary := resolveTier(tiers, value)
	result.AddNote("Vehicle classified as %s", tier.Label)
	if onBoundary {
		if rule.Special.Boundary == domain.BoundaryUnspecified {
			result.AddNote("Value sits exactly on a class boundary; source documentation does not specify placement, higher tier applied pending legal review")
		} else {
			result.AddNote("Value sits exactly on a class boundary; assigned to the higher tier")
		}
	}

	var tax decimal.Decimal
	var rate decimal.Decimal
	if !tier.Rate.IsZero() {
		rate = tier.Rate
		tax = roundTax(value.Mul(tier.Rate))
		result.AddNote("Privilege tax: %s × %s = %s", domain.Money(value), domain.Percent(tier.Rate), domain.Money(tax))
	} else {
		tax = tier.Amount
		result.AddNote("Privilege tax: flat amount of %s for %s", domain.Money(tax), tier.Label)
	}

	result.Base = domain.TaxableBaseBreakdown{Vehicle: value, Total: value}
	result.CombinedRate = rate
	result.TotalTax = tax
	result.Components = append(result.Components, domain.ComponentTax{
		Label:  tier.Label,
		Type:   domain.JurisdictionState,
		Rate:   rate,
		Amount: tax,
	})
	return result, nil
}

// resolveTier finds the class for a value. A tier covers values strictly
// below its UpTo edge, so an exact edge value falls through to the next
// (higher) tier; a zero UpTo marks the open-ended top tier. onBoundary
// reports whether the value landed exactly on any edge.
func resolveTier(tiers []domain.PrivilegeTier, value decimal.Decimal) (domain.PrivilegeTier, bool) {
	onBoundary := false
	for _, tier := range tiers {
		if tier.UpTo.IsZero() {
			return tier, onBoundary
		}
		if value.Equal(tier.UpTo) {
			onBoundary = true
			continue
		}
		if value.LessThan(tier.UpTo) {
			return tier, onBoundary
		}
	}
	// Table had no open-ended tier; the last tier takes the overflow.
	return tiers[len(tiers)-1], onBoundary
}
