package calculation

import (
	"github.com/dealdesk/autotax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculateRetail computes sales/use tax for an ordinary retail deal under
// STATE_ONLY or STATE_PLUS_LOCAL rules. Trace notes follow calculation
// order; the ordering is part of the observable contract.
func calculateRetail(deal domain.DealInput, rule domain.JurisdictionRule, components []domain.RateComponent) (*domain.CalculationResult, error) {
	result := &domain.CalculationResult{
		Jurisdiction: rule.Code,
		Scheme:       rule.Scheme,
		DealType:     domain.DealRetail,
		Components:   []domain.ComponentTax{},
	}

	base := deal.VehiclePrice
	result.AddNote("Vehicle price: %s", domain.Money(base))

	base = applyDealerDiscount(base, deal, result)
	base = applyManufacturerRebate(base, deal, rule, result)
	base = applyTradeIn(base, deal, rule.TradeIn, result)

	if base.IsNegative() {
		base = decimal.Zero
		result.AddNote("Adjustments exceed vehicle price; taxable base floored at zero")
	}

	feeBase, productBase := applyFees(deal, rule, domain.DealRetail, result)
	totalBase := base.Add(feeBase).Add(productBase)

	result.Base = domain.TaxableBaseBreakdown{
		Vehicle:  base,
		Fees:     feeBase,
		Products: productBase,
		Total:    totalBase,
	}

	applyRateComponents(result, totalBase, components)
	result.AddNote("Total tax: %s on taxable base of %s at combined rate %s",
		domain.Money(result.TotalTax), domain.Money(totalBase), domain.Percent(result.CombinedRate))
	if result.CombinedRate.IsZero() {
		result.AddNote("Zero-rate jurisdiction: no vehicle sales tax applies")
	}

	return result, nil
}

// applyDealerDiscount reduces the selling price before tax. Dealer
// discounts are pre-tax price reductions in every jurisdiction.
func applyDealerDiscount(base decimal.Decimal, deal domain.DealInput, result *domain.CalculationResult) decimal.Decimal {
	if !deal.DealerDiscount.IsPositive() {
		return base
	}
	result.AddNote("Dealer discount of %s reduces the selling price before tax", domain.Money(deal.DealerDiscount))
	return base.Sub(deal.DealerDiscount)
}

// applyManufacturerRebate subtracts a manufacturer rebate from the base only
// when the state exempts it and the vehicle is new. Rebates on used vehicles
// never reduce the base, in every state.
func applyManufacturerRebate(base decimal.Decimal, deal domain.DealInput, rule domain.JurisdictionRule, result *domain.CalculationResult) decimal.Decimal {
	if !deal.ManufacturerRebate.IsPositive() {
		return base
	}
	if !deal.VehicleNew {
		result.AddNote("Manufacturer rebate of %s not deducted: rebates on used vehicles do not reduce the taxable base",
			domain.Money(deal.ManufacturerRebate))
		return base
	}
	if rule.Rebates.Manufacturer != domain.RebateExemptFromBase {
		result.AddNote("Manufacturer rebate of %s is taxable in %s and does not reduce the base",
			domain.Money(deal.ManufacturerRebate), rule.Code)
		return base
	}
	result.AddNote("Manufacturer rebate of %s reduces the taxable base (new vehicle)", domain.Money(deal.ManufacturerRebate))
	return base.Sub(deal.ManufacturerRebate)
}

// applyTradeIn subtracts the trade-in credit per the state policy. The
// credit derives from the trade allowance; the payoff affects deal equity,
// not the tax credit, and negative equity never increases the base.
func applyTradeIn(base decimal.Decimal, deal domain.DealInput, policy domain.TradeInRule, result *domain.CalculationResult) decimal.Decimal {
	if !deal.TradeAllowance.IsPositive() {
		return base
	}
	credit := decimal.Zero
	switch policy.Policy {
	case domain.TradeInFull:
		credit = deal.TradeAllowance
		result.AddNote("Trade-in policy: Full credit of %s", domain.Money(credit))
	case domain.TradeInCapped:
		credit = decimal.Min(deal.TradeAllowance, policy.Cap)
		result.AddNote("Trade-in policy: Credit of %s (allowance %s capped at %s)",
			domain.Money(credit), domain.Money(deal.TradeAllowance), domain.Money(policy.Cap))
	case domain.TradeInPercent:
		credit = deal.TradeAllowance.Mul(policy.Percent)
		result.AddNote("Trade-in policy: %s of allowance credited (%s)",
			domain.Percent(policy.Percent), domain.Money(credit))
	default:
		result.AddNote("Trade-in policy: No credit for trade-in allowance of %s", domain.Money(deal.TradeAllowance))
	}
	if deal.TradePayoff.GreaterThan(deal.TradeAllowance) {
		result.AddNote("Trade payoff of %s exceeds allowance; negative equity does not increase the taxable base",
			domain.Money(deal.TradePayoff))
	}
	return base.Sub(credit)
}

// applyFees adds taxable fees and aftermarket products per the state's
// category rules, honoring retail/lease-conditional taxability. Returns the
// fee and product contributions to the taxable base separately.
func applyFees(deal domain.DealInput, rule domain.JurisdictionRule, dealType domain.DealType, result *domain.CalculationResult) (fees, products decimal.Decimal) {
	for _, item := range deal.Fees {
		taxability, ok := rule.Fees[item.Category]
		if !ok {
			taxability = domain.FeeExempt
		}
		label := item.Category.DisplayName()
		if item.Description != "" {
			label = item.Description
		}
		if taxability.AppliesTo(dealType) {
			if item.Category.IsProduct() {
				products = products.Add(item.Amount)
			} else {
				fees = fees.Add(item.Amount)
			}
			result.AddNote("%s of %s is taxable (%s)", label, domain.Money(item.Amount), taxability)
		} else {
			result.AddNote("%s of %s is exempt (%s)", label, domain.Money(item.Amount), taxability)
		}
	}
	return fees, products
}

// applyRateComponents fills the per-component tax breakdown and headline
// total. Component amounts stay at full precision so they sum exactly to
// the unrounded total; only the total is rounded, half-up to the cent.
func applyRateComponents(result *domain.CalculationResult, base decimal.Decimal, components []domain.RateComponent) {
	combined := domain.CombinedRate(components)
	for _, c := range components {
		result.Components = append(result.Components, domain.ComponentTax{
			Label:  c.Name,
			Type:   c.Type,
			Rate:   c.Rate,
			Amount: base.Mul(c.Rate),
		})
	}
	result.CombinedRate = combined
	result.TotalTax = roundTax(base.Mul(combined))
}
