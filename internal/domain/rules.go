package domain

import (
	"github.com/shopspring/decimal"
)

// JurisdictionRule contains the complete vehicle tax ruleset for one US
// titling jurisdiction. Records are loaded once at startup and treated as
// read-only for the process lifetime.
type JurisdictionRule struct {
	Code          string          `yaml:"code" json:"code"`
	Name          string          `yaml:"name" json:"name"`
	Scheme        TaxScheme       `yaml:"vehicle_tax_scheme" json:"vehicle_tax_scheme"`
	BaseStateRate decimal.Decimal `yaml:"base_state_rate" json:"base_state_rate"`

	TradeIn     TradeInRule                   `yaml:"trade_in" json:"trade_in"`
	Rebates     RebateRule                    `yaml:"rebates" json:"rebates"`
	Fees        map[FeeCategory]FeeTaxability `yaml:"fee_taxability" json:"fee_taxability"`
	Lease       LeaseRule                     `yaml:"lease" json:"lease"`
	Reciprocity ReciprocityRule               `yaml:"reciprocity" json:"reciprocity"`
	Special     SpecialSchemeParams           `yaml:"special_scheme" json:"special_scheme"`
}

// TradeInRule describes a jurisdiction's trade-in credit policy. Cap is the
// dollar cap for CAPPED; Percent is the credited fraction for PERCENT.
type TradeInRule struct {
	Policy  TradeInPolicy   `yaml:"policy" json:"policy"`
	Cap     decimal.Decimal `yaml:"cap,omitempty" json:"cap,omitempty"`
	Percent decimal.Decimal `yaml:"percent,omitempty" json:"percent,omitempty"`
}

// RebateRule describes per-rebate-type taxability. Manufacturer rebates
// follow the state flag (and only reduce the base on new vehicles);
// dealer discounts reduce the selling price before tax in every state.
type RebateRule struct {
	Manufacturer RebateTreatment `yaml:"manufacturer" json:"manufacturer"`
	Dealer       RebateTreatment `yaml:"dealer" json:"dealer"`
}

// LeaseRule selects the lease tax method and an optional scheme override
// when leases route differently than retail in the same state.
type LeaseRule struct {
	Method         LeaseMethod `yaml:"method" json:"method"`
	SchemeOverride TaxScheme   `yaml:"scheme_override,omitempty" json:"scheme_override,omitempty"`
}

// ReciprocityRule describes how the jurisdiction credits tax already paid
// to another state.
type ReciprocityRule struct {
	Mode          ReciprocityMode                `yaml:"mode" json:"mode"`
	Scope         ReciprocityScope               `yaml:"scope" json:"scope"`
	ProofRequired bool                           `yaml:"proof_required" json:"proof_required"`
	Overrides     map[string]ReciprocityOverride `yaml:"per_state_overrides,omitempty" json:"per_state_overrides,omitempty"`
}

// ReciprocityOverride replaces the default mode for a specific origin state.
type ReciprocityOverride struct {
	Mode ReciprocityMode `yaml:"mode" json:"mode"`
}

// OverrideFor returns the effective mode for an origin state, preferring a
// pairwise override when one exists.
func (r ReciprocityRule) OverrideFor(originState string) ReciprocityMode {
	if o, ok := r.Overrides[originState]; ok {
		return o.Mode
	}
	return r.Mode
}

// SpecialSchemeParams carries scheme-specific constants. Only the fields
// relevant to the jurisdiction's scheme are populated.
type SpecialSchemeParams struct {
	// TAVTRate is the flat ad valorem title tax rate.
	TAVTRate decimal.Decimal `yaml:"tavt_rate,omitempty" json:"tavt_rate,omitempty"`

	// HUTRate is the highway-use tax rate; HUTWindowDays is the statutory
	// collection window measured from title transfer.
	HUTRate       decimal.Decimal `yaml:"hut_rate,omitempty" json:"hut_rate,omitempty"`
	HUTWindowDays int             `yaml:"hut_window_days,omitempty" json:"hut_window_days,omitempty"`

	// PrivilegeTiers is the class table for privilege-tax states, ordered by
	// ascending UpTo. Boundary records how exact tier-edge values resolve.
	PrivilegeTiers []PrivilegeTier `yaml:"privilege_tiers,omitempty" json:"privilege_tiers,omitempty"`
	Boundary       BoundaryPolicy  `yaml:"boundary_policy,omitempty" json:"boundary_policy,omitempty"`
}

// PrivilegeTier is one class in a privilege-tax table. A tier matches values
// strictly below UpTo; a zero UpTo marks the open-ended top tier. Exactly one
// of Amount (flat) or Rate (percentage of value) is set.
type PrivilegeTier struct {
	Label  string          `yaml:"label" json:"label"`
	UpTo   decimal.Decimal `yaml:"up_to,omitempty" json:"up_to,omitempty"`
	Amount decimal.Decimal `yaml:"amount,omitempty" json:"amount,omitempty"`
	Rate   decimal.Decimal `yaml:"rate,omitempty" json:"rate,omitempty"`
}

// RateComponent is one layer of the effective combined rate. An ordered list
// of components sums to the combined rate; components are preserved
// individually for breakdown reporting.
type RateComponent struct {
	Type JurisdictionType `yaml:"type" json:"type"`
	Name string           `yaml:"name" json:"name"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// CombinedRate sums an ordered component list into the effective rate.
func CombinedRate(components []RateComponent) decimal.Decimal {
	total := decimal.Zero
	for _, c := range components {
		total = total.Add(c.Rate)
	}
	return total
}
