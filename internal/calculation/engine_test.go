package calculation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealdesk/autotax/internal/domain"
)

func TestEngine_EveryJurisdictionCalculates(t *testing.T) {
	// Exactly one calculator handles each supported jurisdiction; a rule
	// record the dispatcher cannot route would fail here.
	engine := newTestEngine(t, nil)

	titleDate := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, code := range engine.Rules.StateCodes() {
		t.Run(code, func(t *testing.T) {
			result, err := engine.Calculate(domain.DealInput{
				DealType:     domain.DealRetail,
				Jurisdiction: code,
				VehiclePrice: d(25000),
				TitleDate:    titleDate,
				AsOf:         titleDate.AddDate(0, 0, 30),
			})
			require.NoError(t, err)
			assert.Equal(t, code, result.Jurisdiction)
			assert.True(t, result.Scheme.IsValid())
			assert.False(t, result.TotalTax.IsNegative())
			assert.True(t, result.NetTaxDue.Equal(result.TotalTax))
		})
	}
}

func TestEngine_DeterministicResults(t *testing.T) {
	engine := newTestEngine(t, nil)

	deal := domain.DealInput{
		DealType:           domain.DealRetail,
		Jurisdiction:       "IN",
		VehiclePrice:       d(30000),
		VehicleNew:         true,
		ManufacturerRebate: d(2000),
		TradeAllowance:     d(10000),
		Fees:               []domain.FeeItem{{Category: domain.FeeDocFee, Amount: d(199)}},
		Origin:             &domain.OriginTax{State: "OH", TaxPaid: d(500)},
	}

	first, err := engine.Calculate(deal)
	require.NoError(t, err)
	second, err := engine.Calculate(deal)
	require.NoError(t, err)

	assert.Equal(t, first.TotalTax.String(), second.TotalTax.String())
	assert.Equal(t, first.NetTaxDue.String(), second.NetTaxDue.String())
	assert.Equal(t, first.Notes, second.Notes)
}

func TestEngine_UnknownJurisdiction(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "ZZ",
		VehiclePrice: d(20000),
	})
	var unknown *domain.UnknownJurisdictionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "ZZ", unknown.Code)
}

func TestEngine_JurisdictionCodeNormalized(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: " in ",
		VehiclePrice: d(20000),
	})
	require.NoError(t, err)
	assert.Equal(t, "IN", result.Jurisdiction)
}

func TestEngine_DealerStatePerspective(t *testing.T) {
	// The dealer rooftop's rules govern when the deal says so; the customer
	// jurisdiction is ignored entirely, with no fallback between the two.
	engine := newTestEngine(t, nil)

	result, err := engine.Calculate(domain.DealInput{
		DealType:       domain.DealRetail,
		Jurisdiction:   "CA",
		DealerState:    "TX",
		UseDealerState: true,
		VehiclePrice:   d(20000),
	})
	require.NoError(t, err)

	assert.Equal(t, "TX", result.Jurisdiction)
	assert.Equal(t, "1250.00", result.TotalTax.StringFixed(2))
}

func TestEngine_DealerPerspectiveWithoutState(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Calculate(domain.DealInput{
		DealType:       domain.DealRetail,
		Jurisdiction:   "CA",
		UseDealerState: true,
		VehiclePrice:   d(20000),
	})
	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "dealer_state", missing.Field)
}

func TestEngine_MissingJurisdiction(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		VehiclePrice: d(20000),
	})
	var missing *domain.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "jurisdiction", missing.Field)
}

func TestEngine_InvalidDealType(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Calculate(domain.DealInput{
		DealType:     "BARTER",
		Jurisdiction: "IN",
		VehiclePrice: d(20000),
	})
	var invalid *domain.InvalidDealInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "deal_type", invalid.Field)
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}
func (l *recordingLogger) Infof(format string, args ...any)  {}
func (l *recordingLogger) Warnf(format string, args ...any)  {}
func (l *recordingLogger) Errorf(format string, args ...any) {}

func TestEngine_SetLogger(t *testing.T) {
	engine := newTestEngine(t, nil)
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	_, err := engine.Calculate(domain.DealInput{
		DealType:     domain.DealRetail,
		Jurisdiction: "IN",
		VehiclePrice: d(20000),
	})
	require.NoError(t, err)
	require.NotEmpty(t, logger.lines)
	assert.Contains(t, logger.lines[0], "IN")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
