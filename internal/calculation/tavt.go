package calculation

import (
	"fmt"

	"github.com/dealdesk/autotax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculateTAVT computes the one-time ad valorem title tax. The computation
// is scheme-uniform: retail and lease deals are taxed identically, with
// lessor/lessee responsibility surfaced as a note only.
func calculateTAVT(deal domain.DealInput, rule domain.JurisdictionRule) (*domain.CalculationResult, error) {
	if rule.Special.TAVTRate.IsZero() {
		return nil, fmt.Errorf("jurisdiction %s: TAVT rate not configured", rule.Code)
	}

	result := &domain.CalculationResult{
		Jurisdiction: rule.Code,
		Scheme:       domain.SchemeTAVT,
		DealType:     deal.DealType,
		Components:   []domain.ComponentTax{},
	}
	result.AddNote("Ad valorem title tax: one-time tax on title transfer, in place of sales tax")

	base := titleTaxBase(deal, result)
	base = applyManufacturerRebate(base, deal, rule, result)
	base = applyTradeIn(base, deal, rule.TradeIn, result)
	if base.IsNegative() {
		base = decimal.Zero
		result.AddNote("Credits exceed vehicle value; taxable base floored at zero")
	}

	result.Base = domain.TaxableBaseBreakdown{Vehicle: base, Total: base}
	result.CombinedRate = rule.Special.TAVTRate
	result.TotalTax = roundTax(base.Mul(rule.Special.TAVTRate))
	result.Components = append(result.Components, domain.ComponentTax{
		Label:  "Ad valorem title tax",
		Type:   domain.JurisdictionState,
		Rate:   rule.Special.TAVTRate,
		Amount: base.Mul(rule.Special.TAVTRate),
	})
	result.AddNote("Title tax: %s × %s = %s",
		domain.Money(base), domain.Percent(rule.Special.TAVTRate), domain.Money(result.TotalTax))
	if deal.DealType == domain.DealLease {
		result.AddNote("Lease deal: title tax amount is unchanged; lessor/lessee payment responsibility is a contract term")
	}
	return result, nil
}

// titleTaxBase starts from fair market value, falling back to the agreed
// vehicle price when no FMV was supplied.
func titleTaxBase(deal domain.DealInput, result *domain.CalculationResult) decimal.Decimal {
	if deal.FairMarketValue.IsPositive() {
		result.AddNote("Fair market value: %s", domain.Money(deal.FairMarketValue))
		return deal.FairMarketValue
	}
	result.AddNote("No fair market value supplied; vehicle price of %s used", domain.Money(deal.VehiclePrice))
	return deal.VehiclePrice
}
