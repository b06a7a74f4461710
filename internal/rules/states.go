package rules

import (
	"github.com/dealdesk/autotax/internal/domain"
	"github.com/shopspring/decimal"
)

// Builders for the state table. Each jurisdiction entry below encodes that
// state's statutory vehicle tax treatment: scheme, base rate, trade-in and
// rebate policy, fee/product taxability, lease method, and reciprocity.

func rate(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func dollars(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func fullTrade() domain.TradeInRule {
	return domain.TradeInRule{Policy: domain.TradeInFull}
}

func noTrade() domain.TradeInRule {
	return domain.TradeInRule{Policy: domain.TradeInNone}
}

func cappedTrade(cap int64) domain.TradeInRule {
	return domain.TradeInRule{Policy: domain.TradeInCapped, Cap: dollars(cap)}
}

// rebates builds the rebate rule; dealer discounts reduce the selling price
// before tax in every jurisdiction, only the manufacturer flag varies.
func rebates(mfr domain.RebateTreatment) domain.RebateRule {
	return domain.RebateRule{Manufacturer: mfr, Dealer: domain.RebateExemptFromBase}
}

func lease(m domain.LeaseMethod) domain.LeaseRule {
	return domain.LeaseRule{Method: m}
}

// feesCommon is the majority fee treatment: doc fees, service contracts and
// accessories taxed; GAP and government fees not.
func feesCommon() map[domain.FeeCategory]domain.FeeTaxability {
	return map[domain.FeeCategory]domain.FeeTaxability{
		domain.FeeDocFee:           domain.FeeTaxable,
		domain.FeeExtendedWarranty: domain.FeeTaxable,
		domain.FeeGAP:              domain.FeeExempt,
		domain.FeeMaintenance:      domain.FeeTaxable,
		domain.FeeAccessories:      domain.FeeTaxable,
		domain.FeeGovernment:       domain.FeeExempt,
	}
}

func feesWith(overrides map[domain.FeeCategory]domain.FeeTaxability) map[domain.FeeCategory]domain.FeeTaxability {
	fees := feesCommon()
	for cat, tax := range overrides {
		fees[cat] = tax
	}
	return fees
}

// recipStandard is the majority reciprocity posture: credit capped at what
// the home state would have charged, both deal types, proof of payment
// required.
func recipStandard() domain.ReciprocityRule {
	return domain.ReciprocityRule{
		Mode:          domain.ReciprocityUpToStateRate,
		Scope:         domain.ScopeBoth,
		ProofRequired: true,
	}
}

func recipNone() domain.ReciprocityRule {
	return domain.ReciprocityRule{Mode: domain.ReciprocityNone, Scope: domain.ScopeBoth}
}

func recipHomeOnly() domain.ReciprocityRule {
	return domain.ReciprocityRule{Mode: domain.ReciprocityHomeStateOnly, Scope: domain.ScopeBoth}
}

// allJurisdictionRules is the static rule table: the 50 states plus DC.
// Immutable after package init; the Registry validates it at startup.
var allJurisdictionRules = []domain.JurisdictionRule{
	{
		Code: "AL", Name: "Alabama", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.02),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		// No state sales tax; municipalities may levy local rates on their own.
		Code: "AK", Name: "Alaska", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipNone(),
	},
	{
		Code: "AZ", Name: "Arizona", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.056),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly),
		Reciprocity: domain.ReciprocityRule{
			Mode: domain.ReciprocityUpToStateRate, Scope: domain.ScopeBoth, ProofRequired: true,
			Overrides: map[string]domain.ReciprocityOverride{
				"CA": {Mode: domain.ReciprocityCreditFull},
			},
		},
	},
	{
		Code: "AR", Name: "Arkansas", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.065),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		// No trade-in credit; manufacturer rebates taxed. Optional service
		// contracts are not taxable.
		Code: "CA", Name: "California", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.0725),
		TradeIn: noTrade(), Rebates: rebates(domain.RebateTaxable),
		Fees: feesWith(map[domain.FeeCategory]domain.FeeTaxability{
			domain.FeeExtendedWarranty: domain.FeeExempt,
			domain.FeeMaintenance:      domain.FeeExempt,
		}),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "CO", Name: "Colorado", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.029),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "CT", Name: "Connecticut", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.0635),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		// Delaware levies a document fee on vehicle transfers in place of a
		// sales tax.
		Code: "DE", Name: "Delaware", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.0425),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		// Excise on full price with no trade-in offset and no credit for tax
		// paid elsewhere.
		Code: "DC", Name: "District of Columbia", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.06),
		TradeIn: noTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseNetCapCost), Reciprocity: recipHomeOnly(),
	},
	{
		Code: "FL", Name: "Florida", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.06),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly),
		Reciprocity: domain.ReciprocityRule{
			Mode: domain.ReciprocityUpToStateRate, Scope: domain.ScopeBoth, ProofRequired: true,
			// Georgia's TAVT is a title tax, not a sales tax, so it earns no
			// sales tax credit here.
			Overrides: map[string]domain.ReciprocityOverride{
				"GA": {Mode: domain.ReciprocityNone},
			},
		},
	},
	{
		// TAVT replaces sales tax on titled vehicles; the base rate remains as
		// the fallback for exempt transaction edge cases.
		Code: "GA", Name: "Georgia", Scheme: domain.SchemeTAVT, BaseStateRate: rate(0.04),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
		Special: domain.SpecialSchemeParams{TAVTRate: rate(0.07)},
	},
	{
		Code: "HI", Name: "Hawaii", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.04),
		TradeIn: noTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "ID", Name: "Idaho", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.06),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		// Trade-in credit capped; lease tax due on the cap reduction upfront
		// and on each payment thereafter.
		Code: "IL", Name: "Illinois", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.0625),
		TradeIn: cappedTrade(10000), Rebates: rebates(domain.RebateTaxable),
		Fees: feesWith(map[domain.FeeCategory]domain.FeeTaxability{
			domain.FeeExtendedWarranty: domain.FeeTaxableRetail,
		}),
		Lease: lease(domain.LeaseHybrid),
		Reciprocity: domain.ReciprocityRule{
			Mode: domain.ReciprocityUpToStateRate, Scope: domain.ScopeRetailOnly, ProofRequired: true,
		},
	},
	{
		Code: "IN", Name: "Indiana", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.07),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "IA", Name: "Iowa", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.05),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseFullUpfront), Reciprocity: recipStandard(),
	},
	{
		Code: "KS", Name: "Kansas", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.065),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		// Motor vehicle usage tax; rebates do not reduce the taxable value.
		Code: "KY", Name: "Kentucky", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.06),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "LA", Name: "Louisiana", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.0445),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "ME", Name: "Maine", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.055),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseFullUpfront), Reciprocity: recipStandard(),
	},
	{
		// Titling excise on full purchase price less trade; rebates are not
		// deducted.
		Code: "MD", Name: "Maryland", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.06),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseNetCapCost), Reciprocity: recipStandard(),
	},
	{
		Code: "MA", Name: "Massachusetts", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.0625),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "MI", Name: "Michigan", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.06),
		TradeIn: cappedTrade(10000), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly),
		Reciprocity: domain.ReciprocityRule{
			Mode: domain.ReciprocityUpToStateRate, Scope: domain.ScopeBoth, ProofRequired: true,
			Overrides: map[string]domain.ReciprocityOverride{
				"OH": {Mode: domain.ReciprocityCreditFull},
			},
		},
	},
	{
		Code: "MN", Name: "Minnesota", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.06875),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseFullUpfront), Reciprocity: recipStandard(),
	},
	{
		Code: "MS", Name: "Mississippi", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.05),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "MO", Name: "Missouri", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.04225),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "MT", Name: "Montana", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipNone(),
	},
	{
		Code: "NE", Name: "Nebraska", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.055),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "NV", Name: "Nevada", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.0685),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "NH", Name: "New Hampshire", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipNone(),
	},
	{
		Code: "NJ", Name: "New Jersey", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.06625),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase),
		Fees: feesWith(map[domain.FeeCategory]domain.FeeTaxability{
			domain.FeeGAP: domain.FeeTaxableLease,
		}),
		Lease: lease(domain.LeaseFullUpfront), Reciprocity: recipStandard(),
	},
	{
		Code: "NM", Name: "New Mexico", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.04),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		// Lease stream is taxed in full at signing.
		Code: "NY", Name: "New York", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.04),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseFullUpfront), Reciprocity: recipStandard(),
	},
	{
		// Highway-use tax in place of sales tax; offsets must be claimed
		// within the statutory 90-day window after title transfer.
		Code: "NC", Name: "North Carolina", Scheme: domain.SchemeHUT, BaseStateRate: rate(0.0475),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
		Special: domain.SpecialSchemeParams{HUTRate: rate(0.03), HUTWindowDays: 90},
	},
	{
		Code: "ND", Name: "North Dakota", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.05),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseReducedBase), Reciprocity: recipStandard(),
	},
	{
		Code: "OH", Name: "Ohio", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.0575),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseFullUpfront), Reciprocity: recipStandard(),
	},
	{
		Code: "OK", Name: "Oklahoma", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.0325),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipHomeOnly(),
	},
	{
		// Vehicle privilege tax assessed by value class instead of a sales
		// tax; no credit mechanism for tax paid elsewhere.
		Code: "OR", Name: "Oregon", Scheme: domain.SchemePrivilege, BaseStateRate: rate(0),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipHomeOnly(),
		Special: domain.SpecialSchemeParams{
			Boundary: domain.BoundaryHigherTier,
			PrivilegeTiers: []domain.PrivilegeTier{
				{Label: "Class A (under $10,000)", UpTo: dollars(10000), Amount: dollars(50)},
				{Label: "Class B ($10,000 to $35,000)", UpTo: dollars(35000), Rate: rate(0.005)},
				{Label: "Class C ($35,000 and above)", Rate: rate(0.0075)},
			},
		},
	},
	{
		Code: "PA", Name: "Pennsylvania", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.06),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "RI", Name: "Rhode Island", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.07),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseFullUpfront), Reciprocity: recipStandard(),
	},
	{
		Code: "SC", Name: "South Carolina", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.05),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "SD", Name: "South Dakota", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.04),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseReducedBase), Reciprocity: recipStandard(),
	},
	{
		Code: "TN", Name: "Tennessee", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.07),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		// Motor vehicle tax at the state rate only; leases are taxed upfront
		// on the adjusted cap cost. Service contracts are not taxable.
		Code: "TX", Name: "Texas", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.0625),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateTaxable),
		Fees: feesWith(map[domain.FeeCategory]domain.FeeTaxability{
			domain.FeeExtendedWarranty: domain.FeeExempt,
		}),
		Lease: lease(domain.LeaseNetCapCost), Reciprocity: recipStandard(),
	},
	{
		Code: "UT", Name: "Utah", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.0485),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "VT", Name: "Vermont", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.06),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseFullUpfront), Reciprocity: recipStandard(),
	},
	{
		// Sales and use tax on the full selling price with no trade-in
		// deduction; rebates are taxed.
		Code: "VA", Name: "Virginia", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.0415),
		TradeIn: noTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "WA", Name: "Washington", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.065),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateTaxable), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "WV", Name: "West Virginia", Scheme: domain.SchemeStateOnly, BaseStateRate: rate(0.06),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipHomeOnly(),
	},
	{
		Code: "WI", Name: "Wisconsin", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.05),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
	{
		Code: "WY", Name: "Wyoming", Scheme: domain.SchemeStatePlusLocal, BaseStateRate: rate(0.04),
		TradeIn: fullTrade(), Rebates: rebates(domain.RebateExemptFromBase), Fees: feesCommon(),
		Lease: lease(domain.LeaseMonthly), Reciprocity: recipStandard(),
	},
}
