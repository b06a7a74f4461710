package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxScheme_Validity(t *testing.T) {
	for _, s := range AllTaxSchemes() {
		assert.True(t, s.IsValid(), s)
		assert.NotEqual(t, "Unknown", s.DisplayName(), s)
	}
	assert.False(t, TaxScheme("VAT").IsValid())
	assert.Equal(t, "Unknown", TaxScheme("VAT").DisplayName())
}

func TestFeeCategory_ProductSplit(t *testing.T) {
	products := map[FeeCategory]bool{
		FeeDocFee:           false,
		FeeExtendedWarranty: true,
		FeeGAP:              true,
		FeeMaintenance:      true,
		FeeAccessories:      true,
		FeeGovernment:       false,
	}
	for _, cat := range AllFeeCategories() {
		assert.Equal(t, products[cat], cat.IsProduct(), cat)
	}
}

func TestFeeTaxability_AppliesTo(t *testing.T) {
	assert.True(t, FeeTaxable.AppliesTo(DealRetail))
	assert.True(t, FeeTaxable.AppliesTo(DealLease))
	assert.False(t, FeeExempt.AppliesTo(DealRetail))
	assert.False(t, FeeExempt.AppliesTo(DealLease))
	assert.True(t, FeeTaxableRetail.AppliesTo(DealRetail))
	assert.False(t, FeeTaxableRetail.AppliesTo(DealLease))
	assert.False(t, FeeTaxableLease.AppliesTo(DealRetail))
	assert.True(t, FeeTaxableLease.AppliesTo(DealLease))
}

func TestReciprocityRule_OverrideFor(t *testing.T) {
	rule := ReciprocityRule{
		Mode: ReciprocityUpToStateRate,
		Overrides: map[string]ReciprocityOverride{
			"OH": {Mode: ReciprocityCreditFull},
		},
	}
	assert.Equal(t, ReciprocityCreditFull, rule.OverrideFor("OH"))
	assert.Equal(t, ReciprocityUpToStateRate, rule.OverrideFor("KY"))
}

func TestCombinedRate(t *testing.T) {
	components := []RateComponent{
		{Type: JurisdictionState, Rate: decimal.NewFromFloat(0.0625)},
		{Type: JurisdictionCounty, Rate: decimal.NewFromFloat(0.01)},
		{Type: JurisdictionDistrict, Rate: decimal.NewFromFloat(0.0025)},
	}
	assert.True(t, CombinedRate(components).Equal(decimal.NewFromFloat(0.075)))
	assert.True(t, CombinedRate(nil).IsZero())
}

func TestMoneyAndPercentFormatting(t *testing.T) {
	assert.Equal(t, "$1234.50", Money(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "$0.00", Money(decimal.Zero))
	assert.Equal(t, "7.00%", Percent(decimal.NewFromFloat(0.07)))
	assert.Equal(t, "6.63%", Percent(decimal.NewFromFloat(0.06625)))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, `unknown jurisdiction "ZZ"`,
		(&UnknownJurisdictionError{Code: "ZZ"}).Error())
	assert.Equal(t, `jurisdiction GA references unknown tax scheme "BARTER"`,
		(&UnknownSchemeError{Code: "GA", Scheme: "BARTER"}).Error())
	assert.Equal(t, `missing required field "title_date" for highway-use tax`,
		(&MissingFieldError{Field: "title_date", Context: "highway-use tax"}).Error())
	assert.Equal(t, `missing required field "jurisdiction"`,
		(&MissingFieldError{Field: "jurisdiction"}).Error())
	assert.Equal(t, `invalid deal input "vehicle_price": must not be negative`,
		(&InvalidDealInputError{Field: "vehicle_price", Reason: "must not be negative"}).Error())
}
