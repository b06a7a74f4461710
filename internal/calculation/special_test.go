package calculation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/autotax/internal/domain"
)

func hasNote(result *domain.CalculationResult, substr string) bool {
	for _, note := range result.Notes {
		if strings.Contains(note, substr) {
			return true
		}
	}
	return false
}

func TestTAVT_GeorgiaRetail(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Calculate(domain.DealInput{
		DealType:        domain.DealRetail,
		Jurisdiction:    "GA",
		VehiclePrice:    d(38000),
		FairMarketValue: d(40000),
		TradeAllowance:  d(10000),
	})
	require.NoError(t, err)

	// (40000 - 10000) × 7% = 2100.00; FMV wins over the agreed price.
	assert.Equal(t, domain.SchemeTAVT, result.Scheme)
	assert.Equal(t, "30000", result.Base.Vehicle.String())
	assert.Equal(t, "2100.00", result.TotalTax.StringFixed(2))
	assert.True(t, hasNote(result, "Fair market value: $40000.00"))
	require.Len(t, result.Components, 1)
	assert.Equal(t, "Ad valorem title tax", result.Components[0].Label)
}

func TestTAVT_LeaseTaxedIdentically(t *testing.T) {
	engine := newTestEngine(t, nil)

	deal := domain.DealInput{
		Jurisdiction:    "GA",
		VehiclePrice:    d(38000),
		FairMarketValue: d(40000),
		TradeAllowance:  d(10000),
		Lease:           &domain.LeaseTerms{BasePayment: d(500), TermMonths: 36},
	}

	deal.DealType = domain.DealRetail
	retail, err := engine.Calculate(deal)
	require.NoError(t, err)

	deal.DealType = domain.DealLease
	leased, err := engine.Calculate(deal)
	require.NoError(t, err)

	assert.True(t, retail.TotalTax.Equal(leased.TotalTax),
		"Title tax is scheme-uniform: the lease amount must equal the retail amount")
	assert.True(t, hasNote(leased, "lessor/lessee payment responsibility is a contract term"))
}

func TestTAVT_FallsBackToVehiclePrice(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "GA",
		VehiclePrice: d(28000),
	})
	require.NoError(t, err)

	assert.Equal(t, "1960.00", result.TotalTax.StringFixed(2))
	assert.True(t, hasNote(result, "No fair market value supplied"))
}

func TestTAVT_RebateExemptOnNewVehicle(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Calculate(domain.DealInput{
		DealType:           domain.DealRetail,
		Jurisdiction:       "GA",
		VehiclePrice:       d(30000),
		VehicleNew:         true,
		ManufacturerRebate: d(2000),
	})
	require.NoError(t, err)

	// (30000 - 2000) × 7% = 1960.00
	assert.Equal(t, "1960.00", result.TotalTax.StringFixed(2))
}

func TestTAVT_CreditsFloorBaseAtZero(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Calculate(domain.DealInput{
		DealType:        domain.DealRetail,
		Jurisdiction:    "GA",
		VehiclePrice:    d(8000),
		FairMarketValue: d(8000),
		TradeAllowance:  d(12000),
	})
	require.NoError(t, err)

	assert.True(t, result.TotalTax.IsZero())
	assert.True(t, hasNote(result, "floored at zero"))
}

func TestHUT_NorthCarolinaInsideWindow(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Calculate(domain.DealInput{
		DealType:       domain.DealRetail,
		Jurisdiction:   "NC",
		VehiclePrice:   d(20000),
		TradeAllowance: d(5000),
		TitleDate:      time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		AsOf:           time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// (20000 - 5000) × 3% = 450.00
	assert.Equal(t, domain.SchemeHUT, result.Scheme)
	assert.Equal(t, "450.00", result.TotalTax.StringFixed(2))
	assert.True(t, hasNote(result, "within the 90-day collection window"))
}

func TestHUT_WindowFinalDayIsInside(t *testing.T) {
	engine := newTestEngine(t, nil)

	titleDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	result, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "NC",
		VehiclePrice: d(20000),
		TitleDate:    titleDate,
		AsOf:         titleDate.AddDate(0, 0, 90),
	})
	require.NoError(t, err)

	assert.True(t, hasNote(result, "within the 90-day collection window"),
		"The window runs through its final day inclusive")
}

func TestHUT_OutsideWindow(t *testing.T) {
	engine := newTestEngine(t, nil)

	titleDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	result, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "NC",
		VehiclePrice: d(20000),
		TitleDate:    titleDate,
		AsOf:         titleDate.AddDate(0, 0, 91),
	})
	require.NoError(t, err)

	assert.True(t, hasNote(result, "outside the 90-day collection window"))
	// The verdict is informational; the tax itself is unchanged.
	assert.Equal(t, "600.00", result.TotalTax.StringFixed(2))
}

func TestHUT_MissingTitleDate(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "NC",
		VehiclePrice: d(20000),
		AsOf:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "title_date", missing.Field)
}

func TestHUT_MissingAsOf(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "NC",
		VehiclePrice: d(20000),
		TitleDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "as_of", missing.Field)
}

func TestPrivilege_OregonTiers(t *testing.T) {
	engine := newTestEngine(t, nil)

	cases := []struct {
		name  string
		value float64
		tax   string
		label string
	}{
		{"flat class A", 8000, "50.00", "Class A (under $10,000)"},
		{"rate class B", 20000, "100.00", "Class B ($10,000 to $35,000)"},
		{"open top class C", 50000, "375.00", "Class C ($35,000 and above)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := engine.Calculate(domain.DealInput{
				DealType:        domain.DealRetail,
				Jurisdiction:    "OR",
				VehiclePrice:    d(tc.value),
				FairMarketValue: d(tc.value),
			})
			require.NoError(t, err)
			assert.Equal(t, domain.SchemePrivilege, result.Scheme)
			assert.Equal(t, tc.tax, result.TotalTax.StringFixed(2))
			require.Len(t, result.Components, 1)
			assert.Equal(t, tc.label, result.Components[0].Label)
		})
	}
}

func TestPrivilege_ExactBoundaryGoesToHigherTier(t *testing.T) {
	engine := newTestEngine(t, nil)

	// A value of exactly $10,000 misses the "under $10,000" class and is
	// assessed as Class B: 10000 × 0.5% = 50.00.
	result, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "OR",
		VehiclePrice: d(10000),
	})
	require.NoError(t, err)

	assert.Equal(t, "50.00", result.TotalTax.StringFixed(2))
	assert.Equal(t, "Class B ($10,000 to $35,000)", result.Components[0].Label)
	assert.True(t, hasNote(result, "assigned to the higher tier"))
}

func TestPrivilege_UpperBoundaryIsHigherTierToo(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "OR",
		VehiclePrice: d(35000),
	})
	require.NoError(t, err)

	// 35000 × 0.75% = 262.50 under Class C.
	assert.Equal(t, "262.50", result.TotalTax.StringFixed(2))
	assert.Equal(t, "Class C ($35,000 and above)", result.Components[0].Label)
}

func TestPrivilege_ZeroValueRejected(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "OR",
	})
	var invalid *domain.InvalidDealInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "vehicle_price", invalid.Field)
}

func TestPrivilege_UnspecifiedBoundaryFlagged(t *testing.T) {
	// A jurisdiction whose source documentation leaves boundary placement
	// open still gets the higher tier, with an explicit review flag.
	rule := domain.JurisdictionRule{
		Code: "ZZ", Name: "Test State", Scheme: domain.SchemePrivilege,
		Special: domain.SpecialSchemeParams{
			Boundary: domain.BoundaryUnspecified,
			PrivilegeTiers: []domain.PrivilegeTier{
				{Label: "Low", UpTo: d(15000), Amount: d(75)},
				{Label: "High", Rate: d(0.01)},
			},
		},
	}

	result, err := calculatePrivilegeTax(domain.DealInput{
		DealType:     domain.DealRetail,
		VehiclePrice: d(15000),
	}, rule)
	require.NoError(t, err)

	assert.Equal(t, "High", result.Components[0].Label)
	assert.Equal(t, "150.00", result.TotalTax.StringFixed(2))
	assert.True(t, hasNote(result, "pending legal review"))
}

func TestPrivilege_TableWithoutOpenTierTakesOverflow(t *testing.T) {
	tiers := []domain.PrivilegeTier{
		{Label: "A", UpTo: d(10000), Amount: d(50)},
		{Label: "B", UpTo: d(35000), Rate: d(0.005)},
	}
	tier, onBoundary := resolveTier(tiers, d(90000))
	assert.Equal(t, "B", tier.Label)
	assert.False(t, onBoundary)
}

func TestRetail_PercentTradePolicy(t *testing.T) {
	// No shipped jurisdiction uses a percentage credit today; the policy is
	// exercised against a synthetic rule.
	rule := domain.JurisdictionRule{
		Code: "ZZ", Name: "Test State", Scheme: domain.SchemeStateOnly,
		BaseStateRate: d(0.05),
		TradeIn:       domain.TradeInRule{Policy: domain.TradeInPercent, Percent: d(0.5)},
	}
	components := []domain.RateComponent{
		{Type: domain.JurisdictionState, Name: "Test state", Rate: d(0.05)},
	}

	result, err := calculateRetail(domain.DealInput{
		DealType:       domain.DealRetail,
		Jurisdiction:   "ZZ",
		VehiclePrice:   d(30000),
		TradeAllowance: d(10000),
	}, rule, components)
	require.NoError(t, err)

	// Half of the 10000 allowance credits: (30000 - 5000) × 5% = 1250.00.
	assert.Equal(t, "25000", result.Base.Vehicle.String())
	assert.Equal(t, "1250.00", result.TotalTax.StringFixed(2))
	assert.True(t, hasNote(result, "of allowance credited"))
}
