package calculation

import (
	"fmt"

	"github.com/dealdesk/autotax/internal/domain"
	"github.com/shopspring/decimal"
)

// calculateLease computes lease tax under the jurisdiction's lease method.
// A required field missing for the selected method fails with
// MissingFieldError, never a silent zero.
func calculateLease(deal domain.DealInput, rule domain.JurisdictionRule, components []domain.RateComponent) (*domain.CalculationResult, error) {
	lt := deal.Lease
	result := &domain.CalculationResult{
		Jurisdiction: rule.Code,
		Scheme:       rule.Scheme,
		DealType:     domain.DealLease,
		Components:   []domain.ComponentTax{},
	}
	combined := domain.CombinedRate(components)
	result.CombinedRate = combined
	result.AddNote("Lease method: %s", rule.Lease.Method.DisplayName())

	var err error
	var vehicleBase decimal.Decimal
	switch rule.Lease.Method {
	case domain.LeaseMonthly:
		vehicleBase, err = leaseMonthly(deal, lt, combined, result)
	case domain.LeaseFullUpfront:
		vehicleBase, err = leaseFullUpfront(lt, combined, result)
	case domain.LeaseHybrid:
		vehicleBase, err = leaseHybrid(lt, combined, result)
	case domain.LeaseNetCapCost, domain.LeaseReducedBase:
		vehicleBase, err = leaseNetCapCost(deal, rule, lt, combined, result)
	default:
		err = fmt.Errorf("jurisdiction %s: no calculator for lease method %q", rule.Code, rule.Lease.Method)
	}
	if err != nil {
		return nil, err
	}

	// Fees and products are taxed once, upfront, per lease taxability rules.
	feeBase, productBase := applyFees(deal, rule, domain.DealLease, result)
	feeTax := feeBase.Add(productBase).Mul(combined)
	if feeTax.IsPositive() {
		result.AddNote("Upfront tax on fees and products: %s", domain.Money(roundTax(feeTax)))
	}

	totalBase := vehicleBase.Add(feeBase).Add(productBase)
	result.Base = domain.TaxableBaseBreakdown{
		Vehicle:  vehicleBase,
		Fees:     feeBase,
		Products: productBase,
		Total:    totalBase,
	}
	fillLeaseComponents(result, totalBase, components)
	result.TotalTax = roundTax(result.TotalTax.Add(feeTax))

	result.AddNote("Total lease tax: %s", domain.Money(result.TotalTax))
	if combined.IsZero() {
		result.AddNote("Zero-rate jurisdiction: no lease tax applies")
	}
	return result, nil
}

// leaseMonthly taxes each payment individually; the reported total is the
// sum of per-payment tax.
func leaseMonthly(deal domain.DealInput, lt *domain.LeaseTerms, combined decimal.Decimal, result *domain.CalculationResult) (decimal.Decimal, error) {
	if lt.BasePayment.IsZero() {
		return decimal.Zero, &domain.MissingFieldError{Field: "lease.base_payment", Context: "lease method MONTHLY"}
	}
	if lt.TermMonths == 0 {
		return decimal.Zero, &domain.MissingFieldError{Field: "lease.term_months", Context: "lease method MONTHLY"}
	}
	perPayment := roundTax(lt.BasePayment.Mul(combined))
	term := decimal.NewFromInt(int64(lt.TermMonths))
	result.MonthlyTax = perPayment
	result.TotalTax = perPayment.Mul(term)
	result.AddNote("Per-payment tax: %s × %s = %s",
		domain.Money(lt.BasePayment), domain.Percent(combined), domain.Money(perPayment))
	result.AddNote("Total over %d payments: %s", lt.TermMonths, domain.Money(result.TotalTax))
	if deal.TradeAllowance.IsPositive() {
		// The trade reduces the capitalized cost (and so the payment)
		// upstream; it does not change the per-payment tax formula.
		result.AddNote("Trade-in of %s reduces the capitalized cost; the savings show up in the payment, not the tax rate",
			domain.Money(deal.TradeAllowance))
	}
	return lt.BasePayment.Mul(term), nil
}

// leaseFullUpfront taxes the entire projected lease stream at signing:
// the payment stream when known, otherwise gross cap cost less residual.
func leaseFullUpfront(lt *domain.LeaseTerms, combined decimal.Decimal, result *domain.CalculationResult) (decimal.Decimal, error) {
	var stream decimal.Decimal
	switch {
	case lt.BasePayment.IsPositive() && lt.TermMonths > 0:
		stream = lt.BasePayment.Mul(decimal.NewFromInt(int64(lt.TermMonths)))
		result.AddNote("Lease stream: %d payments of %s = %s",
			lt.TermMonths, domain.Money(lt.BasePayment), domain.Money(stream))
	case lt.GrossCapCost.IsPositive():
		stream = lt.GrossCapCost.Sub(lt.ResidualValue)
		result.AddNote("Lease stream: gross cap cost %s less residual %s = %s",
			domain.Money(lt.GrossCapCost), domain.Money(lt.ResidualValue), domain.Money(stream))
	default:
		return decimal.Zero, &domain.MissingFieldError{Field: "lease.gross_cap_cost", Context: "lease method FULL_UPFRONT"}
	}
	if stream.IsNegative() {
		stream = decimal.Zero
		result.AddNote("Residual exceeds cap cost; taxable lease stream floored at zero")
	}
	result.TotalTax = stream.Mul(combined)
	result.AddNote("Tax due at signing: %s", domain.Money(roundTax(result.TotalTax)))
	return stream, nil
}

// leaseHybrid taxes the cap reduction upfront and each payment monthly.
// The two bases are taxed separately and never conflated.
func leaseHybrid(lt *domain.LeaseTerms, combined decimal.Decimal, result *domain.CalculationResult) (decimal.Decimal, error) {
	if lt.BasePayment.IsZero() {
		return decimal.Zero, &domain.MissingFieldError{Field: "lease.base_payment", Context: "lease method HYBRID"}
	}
	if lt.TermMonths == 0 {
		return decimal.Zero, &domain.MissingFieldError{Field: "lease.term_months", Context: "lease method HYBRID"}
	}
	term := decimal.NewFromInt(int64(lt.TermMonths))
	upfrontTax := lt.CapReduction.Mul(combined)
	perPayment := roundTax(lt.BasePayment.Mul(combined))
	monthlyTax := perPayment.Mul(term)
	result.MonthlyTax = perPayment
	result.TotalTax = upfrontTax.Add(monthlyTax)
	result.AddNote("Upfront tax on cap reduction of %s: %s",
		domain.Money(lt.CapReduction), domain.Money(roundTax(upfrontTax)))
	result.AddNote("Per-payment tax: %s × %s = %s",
		domain.Money(lt.BasePayment), domain.Percent(combined), domain.Money(perPayment))
	result.AddNote("Monthly portion over %d payments: %s", lt.TermMonths, domain.Money(monthlyTax))
	return lt.CapReduction.Add(lt.BasePayment.Mul(term)), nil
}

// leaseNetCapCost reduces the taxable cap cost by trade-in and rebate
// credits, consistent with the retail policy, then taxes the adjusted net
// figure: once upfront for NET_CAP_COST, spread monthly for REDUCED_BASE.
func leaseNetCapCost(deal domain.DealInput, rule domain.JurisdictionRule, lt *domain.LeaseTerms, combined decimal.Decimal, result *domain.CalculationResult) (decimal.Decimal, error) {
	if lt.GrossCapCost.IsZero() {
		return decimal.Zero, &domain.MissingFieldError{Field: "lease.gross_cap_cost", Context: "lease method " + rule.Lease.Method.String()}
	}
	adjusted := lt.GrossCapCost
	result.AddNote("Gross cap cost: %s", domain.Money(adjusted))
	if lt.CapReduction.IsPositive() {
		adjusted = adjusted.Sub(lt.CapReduction)
		result.AddNote("Cap reduction of %s lowers the taxable cap cost", domain.Money(lt.CapReduction))
	}
	adjusted = applyManufacturerRebate(adjusted, deal, rule, result)
	adjusted = applyTradeIn(adjusted, deal, rule.TradeIn, result)
	if adjusted.IsNegative() {
		adjusted = decimal.Zero
		result.AddNote("Credits exceed cap cost; taxable base floored at zero")
	}
	result.TotalTax = adjusted.Mul(combined)
	if rule.Lease.Method == domain.LeaseReducedBase {
		if lt.TermMonths == 0 {
			return decimal.Zero, &domain.MissingFieldError{Field: "lease.term_months", Context: "lease method REDUCED_BASE"}
		}
		term := decimal.NewFromInt(int64(lt.TermMonths))
		result.MonthlyTax = roundTax(result.TotalTax.Div(term))
		result.AddNote("Tax on adjusted cap cost of %s collected monthly: %s per payment over %d payments",
			domain.Money(adjusted), domain.Money(result.MonthlyTax), lt.TermMonths)
	} else {
		result.AddNote("Tax due upfront on adjusted cap cost of %s: %s",
			domain.Money(adjusted), domain.Money(roundTax(result.TotalTax)))
	}
	return adjusted, nil
}

// fillLeaseComponents reports each rate component's share of the lease base
// for breakdown display. The headline total is set by the method handlers;
// component amounts are informational at full precision.
func fillLeaseComponents(result *domain.CalculationResult, base decimal.Decimal, components []domain.RateComponent) {
	for _, c := range components {
		result.Components = append(result.Components, domain.ComponentTax{
			Label:  c.Name,
			Type:   c.Type,
			Rate:   c.Rate,
			Amount: base.Mul(c.Rate),
		})
	}
}
