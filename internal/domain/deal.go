package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DealInput is a single tax calculation request. It is immutable per call;
// the engine never retains or mutates it.
type DealInput struct {
	DealType     DealType `yaml:"deal_type" json:"deal_type"`
	Jurisdiction string   `yaml:"jurisdiction" json:"jurisdiction"`

	// Locality is an optional finer-grained key (ZIP-derived) handed to the
	// rate resolver for a state/county/city/district breakdown.
	Locality string `yaml:"locality,omitempty" json:"locality,omitempty"`

	// DealerState with UseDealerState set routes the calculation through the
	// dealer rooftop's jurisdiction instead of the registration state.
	DealerState    string `yaml:"dealer_state,omitempty" json:"dealer_state,omitempty"`
	UseDealerState bool   `yaml:"use_dealer_state,omitempty" json:"use_dealer_state,omitempty"`

	VehiclePrice    decimal.Decimal `yaml:"vehicle_price" json:"vehicle_price"`
	VehicleNew      bool            `yaml:"vehicle_new" json:"vehicle_new"`
	FairMarketValue decimal.Decimal `yaml:"fair_market_value,omitempty" json:"fair_market_value,omitempty"`

	// GrossWeight supports weight-classed privilege tables.
	GrossWeight decimal.Decimal `yaml:"gross_weight,omitempty" json:"gross_weight,omitempty"`

	TradeAllowance decimal.Decimal `yaml:"trade_allowance,omitempty" json:"trade_allowance,omitempty"`
	TradePayoff    decimal.Decimal `yaml:"trade_payoff,omitempty" json:"trade_payoff,omitempty"`

	ManufacturerRebate decimal.Decimal `yaml:"manufacturer_rebate,omitempty" json:"manufacturer_rebate,omitempty"`
	DealerDiscount     decimal.Decimal `yaml:"dealer_discount,omitempty" json:"dealer_discount,omitempty"`

	Fees []FeeItem `yaml:"fees,omitempty" json:"fees,omitempty"`

	Lease *LeaseTerms `yaml:"lease,omitempty" json:"lease,omitempty"`

	// TitleDate is the title transfer date; AsOf is the evaluation date for
	// time-bound checks (HUT collection window). Both are caller-supplied;
	// the engine never reads the wall clock.
	TitleDate time.Time `yaml:"title_date,omitempty" json:"title_date,omitempty"`
	AsOf      time.Time `yaml:"as_of,omitempty" json:"as_of,omitempty"`

	Origin *OriginTax `yaml:"origin,omitempty" json:"origin,omitempty"`
}

// FeeItem is one itemized fee or aftermarket product on the deal.
type FeeItem struct {
	Category    FeeCategory     `yaml:"category" json:"category"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

// LeaseTerms carries the lease-specific inputs. Which fields are required
// depends on the jurisdiction's lease method.
type LeaseTerms struct {
	GrossCapCost  decimal.Decimal `yaml:"gross_cap_cost,omitempty" json:"gross_cap_cost,omitempty"`
	CapReduction  decimal.Decimal `yaml:"cap_reduction,omitempty" json:"cap_reduction,omitempty"`
	MoneyFactor   decimal.Decimal `yaml:"money_factor,omitempty" json:"money_factor,omitempty"`
	APR           decimal.Decimal `yaml:"apr,omitempty" json:"apr,omitempty"`
	ResidualValue decimal.Decimal `yaml:"residual_value,omitempty" json:"residual_value,omitempty"`
	TermMonths    int             `yaml:"term_months,omitempty" json:"term_months,omitempty"`
	BasePayment   decimal.Decimal `yaml:"base_payment,omitempty" json:"base_payment,omitempty"`
}

// EquivalentAPR converts a money factor to its approximate APR (factor × 2400).
func (lt LeaseTerms) EquivalentAPR() decimal.Decimal {
	if lt.MoneyFactor.IsZero() {
		return lt.APR
	}
	return lt.MoneyFactor.Mul(decimal.NewFromInt(2400))
}

// OriginTax describes tax already paid to another jurisdiction on the same
// vehicle, used for inter-state reciprocity credits.
type OriginTax struct {
	State   string          `yaml:"state" json:"state"`
	TaxPaid decimal.Decimal `yaml:"tax_paid" json:"tax_paid"`
}

// Validate checks semantic validity of monetary and classification inputs.
// Negative amounts are rejected outright, never clamped.
func (d *DealInput) Validate() error {
	if !d.DealType.IsValid() {
		return &InvalidDealInputError{Field: "deal_type", Reason: "must be RETAIL or LEASE"}
	}
	if d.Jurisdiction == "" && !(d.UseDealerState && d.DealerState != "") {
		return &MissingFieldError{Field: "jurisdiction"}
	}
	if d.VehiclePrice.IsNegative() {
		return &InvalidDealInputError{Field: "vehicle_price", Reason: "must not be negative"}
	}
	if d.FairMarketValue.IsNegative() {
		return &InvalidDealInputError{Field: "fair_market_value", Reason: "must not be negative"}
	}
	if d.GrossWeight.IsNegative() {
		return &InvalidDealInputError{Field: "gross_weight", Reason: "must not be negative"}
	}
	if d.TradeAllowance.IsNegative() {
		return &InvalidDealInputError{Field: "trade_allowance", Reason: "must not be negative"}
	}
	if d.TradePayoff.IsNegative() {
		return &InvalidDealInputError{Field: "trade_payoff", Reason: "must not be negative"}
	}
	if d.ManufacturerRebate.IsNegative() {
		return &InvalidDealInputError{Field: "manufacturer_rebate", Reason: "must not be negative"}
	}
	if d.DealerDiscount.IsNegative() {
		return &InvalidDealInputError{Field: "dealer_discount", Reason: "must not be negative"}
	}
	for i, fee := range d.Fees {
		if !fee.Category.IsValid() {
			return &InvalidDealInputError{Field: "fees", Reason: "unrecognized category " + string(fee.Category)}
		}
		if fee.Amount.IsNegative() {
			return &InvalidDealInputError{Field: "fees", Reason: fmt.Sprintf("fee amount must not be negative (item %d)", i)}
		}
	}
	if d.DealType == DealLease && d.Lease == nil {
		return &MissingFieldError{Field: "lease"}
	}
	if d.Lease != nil {
		if d.Lease.GrossCapCost.IsNegative() || d.Lease.CapReduction.IsNegative() ||
			d.Lease.ResidualValue.IsNegative() || d.Lease.BasePayment.IsNegative() {
			return &InvalidDealInputError{Field: "lease", Reason: "lease amounts must not be negative"}
		}
		if d.Lease.TermMonths < 0 {
			return &InvalidDealInputError{Field: "lease.term_months", Reason: "must not be negative"}
		}
	}
	if d.Origin != nil {
		if d.Origin.State == "" {
			return &MissingFieldError{Field: "origin.state"}
		}
		if d.Origin.TaxPaid.IsNegative() {
			return &InvalidDealInputError{Field: "origin.tax_paid", Reason: "must not be negative"}
		}
	}
	return nil
}
