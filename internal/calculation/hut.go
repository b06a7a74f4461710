package calculation

import (
	"fmt"
	"time"

	"github.com/dealdesk/autotax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculateHUT computes the highway-use tax. Liability attaches at title
// transfer; exemptions and reciprocity offsets must be claimed within a
// statutory window, so the trace reports whether asOf falls inside it. The
// window verdict never changes the headline tax amount.
func calculateHUT(deal domain.DealInput, rule domain.JurisdictionRule, asOf time.Time) (*domain.CalculationResult, error) {
	if rule.Special.HUTRate.IsZero() || rule.Special.HUTWindowDays == 0 {
		return nil, fmt.Errorf("jurisdiction %s: HUT parameters not configured", rule.Code)
	}
	if deal.TitleDate.IsZero() {
		return nil, &domain.MissingFieldError{Field: "title_date", Context: "highway-use tax"}
	}
	if asOf.IsZero() {
		return nil, &domain.MissingFieldError{Field: "as_of", Context: "highway-use tax window check"}
	}

	result := &domain.CalculationResult{
		Jurisdiction: rule.Code,
		Scheme:       domain.SchemeHUT,
		DealType:     deal.DealType,
		Components:   []domain.ComponentTax{},
	}
	result.AddNote("Highway-use tax: liability attaches at title transfer on %s", deal.TitleDate.Format("2006-01-02"))

	base := titleTaxBase(deal, result)
	base = applyManufacturerRebate(base, deal, rule, result)
	base = applyTradeIn(base, deal, rule.TradeIn, result)
	if base.IsNegative() {
		base = decimal.Zero
		result.AddNote("Credits exceed vehicle value; taxable base floored at zero")
	}

	result.Base = domain.TaxableBaseBreakdown{Vehicle: base, Total: base}
	result.CombinedRate = rule.Special.HUTRate
	result.TotalTax = roundTax(base.Mul(rule.Special.HUTRate))
	result.Components = append(result.Components, domain.ComponentTax{
		Label:  "Highway-use tax",
		Type:   domain.JurisdictionState,
		Rate:   rule.Special.HUTRate,
		Amount: base.Mul(rule.Special.HUTRate),
	})
	result.AddNote("Highway-use tax: %s × %s = %s",
		domain.Money(base), domain.Percent(rule.Special.HUTRate), domain.Money(result.TotalTax))

	// The window runs from title transfer through its final day inclusive.
	windowEnd := deal.TitleDate.AddDate(0, 0, rule.Special.HUTWindowDays)
	if !asOf.Before(deal.TitleDate) && !asOf.After(windowEnd) {
		result.AddNote("As of %s the transaction is within the %d-day collection window (ends %s); exemption and reciprocity claims remain open",
			asOf.Format("2006-01-02"), rule.Special.HUTWindowDays, windowEnd.Format("2006-01-02"))
	} else {
		result.AddNote("As of %s the transaction is outside the %d-day collection window (ended %s); exemption and reciprocity claims are closed",
			asOf.Format("2006-01-02"), rule.Special.HUTWindowDays, windowEnd.Format("2006-01-02"))
	}
	return result, nil
}
