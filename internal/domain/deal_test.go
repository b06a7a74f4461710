package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func validRetailDeal() DealInput {
	return DealInput{
		DealType:     DealRetail,
		Jurisdiction: "IN",
		VehiclePrice: dec(25000),
	}
}

func TestValidate_AcceptsMinimalRetailDeal(t *testing.T) {
	deal := validRetailDeal()
	assert.NoError(t, deal.Validate())
}

func TestValidate_RejectsNegativeAmounts(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*DealInput)
	}{
		{"vehicle_price", func(d *DealInput) { d.VehiclePrice = dec(-1) }},
		{"fair_market_value", func(d *DealInput) { d.FairMarketValue = dec(-1) }},
		{"gross_weight", func(d *DealInput) { d.GrossWeight = dec(-1) }},
		{"trade_allowance", func(d *DealInput) { d.TradeAllowance = dec(-1) }},
		{"trade_payoff", func(d *DealInput) { d.TradePayoff = dec(-1) }},
		{"manufacturer_rebate", func(d *DealInput) { d.ManufacturerRebate = dec(-1) }},
		{"dealer_discount", func(d *DealInput) { d.DealerDiscount = dec(-1) }},
	}
	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			deal := validRetailDeal()
			tc.mutate(&deal)
			var invalid *InvalidDealInputError
			require.ErrorAs(t, deal.Validate(), &invalid)
			assert.Equal(t, tc.field, invalid.Field)
		})
	}
}

func TestValidate_RejectsUnknownDealType(t *testing.T) {
	deal := validRetailDeal()
	deal.DealType = "AUCTION"
	var invalid *InvalidDealInputError
	require.ErrorAs(t, deal.Validate(), &invalid)
	assert.Equal(t, "deal_type", invalid.Field)
}

func TestValidate_RejectsUnknownFeeCategory(t *testing.T) {
	deal := validRetailDeal()
	deal.Fees = []FeeItem{{Category: "UNDERCOAT", Amount: dec(100)}}
	var invalid *InvalidDealInputError
	require.ErrorAs(t, deal.Validate(), &invalid)
	assert.Equal(t, "fees", invalid.Field)
}

func TestValidate_RejectsNegativeFeeAmount(t *testing.T) {
	deal := validRetailDeal()
	deal.Fees = []FeeItem{{Category: FeeDocFee, Amount: dec(-100)}}
	var invalid *InvalidDealInputError
	require.ErrorAs(t, deal.Validate(), &invalid)
	assert.Equal(t, "fees", invalid.Field)
}

func TestValidate_LeaseDealNeedsLeaseTerms(t *testing.T) {
	deal := validRetailDeal()
	deal.DealType = DealLease
	var missing *MissingFieldError
	require.ErrorAs(t, deal.Validate(), &missing)
	assert.Equal(t, "lease", missing.Field)
}

func TestValidate_RejectsNegativeLeaseAmounts(t *testing.T) {
	deal := validRetailDeal()
	deal.DealType = DealLease
	deal.Lease = &LeaseTerms{BasePayment: dec(-400), TermMonths: 36}
	var invalid *InvalidDealInputError
	require.ErrorAs(t, deal.Validate(), &invalid)
	assert.Equal(t, "lease", invalid.Field)
}

func TestValidate_OriginNeedsState(t *testing.T) {
	deal := validRetailDeal()
	deal.Origin = &OriginTax{TaxPaid: dec(500)}
	var missing *MissingFieldError
	require.ErrorAs(t, deal.Validate(), &missing)
	assert.Equal(t, "origin.state", missing.Field)
}

func TestValidate_RejectsNegativeOriginTax(t *testing.T) {
	deal := validRetailDeal()
	deal.Origin = &OriginTax{State: "OH", TaxPaid: dec(-1)}
	var invalid *InvalidDealInputError
	require.ErrorAs(t, deal.Validate(), &invalid)
	assert.Equal(t, "origin.tax_paid", invalid.Field)
}

func TestValidate_DealerStateSatisfiesJurisdiction(t *testing.T) {
	deal := DealInput{
		DealType:       DealRetail,
		DealerState:    "TX",
		UseDealerState: true,
		VehiclePrice:   dec(25000),
	}
	assert.NoError(t, deal.Validate())
}

func TestLeaseTerms_EquivalentAPR(t *testing.T) {
	lt := LeaseTerms{MoneyFactor: dec(0.00125)}
	assert.True(t, lt.EquivalentAPR().Equal(dec(3)), "factor 0.00125 is a 3%% APR")

	lt = LeaseTerms{APR: dec(4.9)}
	assert.True(t, lt.EquivalentAPR().Equal(dec(4.9)), "explicit APR passes through")
}
