package domain

// TaxScheme selects which calculator handles a deal for a jurisdiction.
// Exactly one scheme applies per jurisdiction.
type TaxScheme string

const (
	SchemeStateOnly      TaxScheme = "STATE_ONLY"
	SchemeStatePlusLocal TaxScheme = "STATE_PLUS_LOCAL"
	SchemeTAVT           TaxScheme = "SPECIAL_TAVT"
	SchemeHUT            TaxScheme = "SPECIAL_HUT"
	SchemePrivilege      TaxScheme = "SPECIAL_PRIVILEGE"
)

// AllTaxSchemes returns every recognized tax scheme.
func AllTaxSchemes() []TaxScheme {
	return []TaxScheme{
		SchemeStateOnly,
		SchemeStatePlusLocal,
		SchemeTAVT,
		SchemeHUT,
		SchemePrivilege,
	}
}

// IsValid checks if the scheme is one of the recognized values.
func (s TaxScheme) IsValid() bool {
	switch s {
	case SchemeStateOnly, SchemeStatePlusLocal, SchemeTAVT, SchemeHUT, SchemePrivilege:
		return true
	}
	return false
}

func (s TaxScheme) String() string { return string(s) }

// DisplayName returns a human-readable name for the scheme.
func (s TaxScheme) DisplayName() string {
	switch s {
	case SchemeStateOnly:
		return "State rate only"
	case SchemeStatePlusLocal:
		return "State plus local rates"
	case SchemeTAVT:
		return "Ad valorem title tax (TAVT)"
	case SchemeHUT:
		return "Highway-use tax (HUT)"
	case SchemePrivilege:
		return "Vehicle privilege tax"
	default:
		return "Unknown"
	}
}

// TradeInPolicy governs how much of a trade-in allowance reduces the taxable base.
type TradeInPolicy string

const (
	TradeInNone    TradeInPolicy = "NONE"
	TradeInFull    TradeInPolicy = "FULL"
	TradeInCapped  TradeInPolicy = "CAPPED"
	TradeInPercent TradeInPolicy = "PERCENT"
)

func (p TradeInPolicy) IsValid() bool {
	switch p {
	case TradeInNone, TradeInFull, TradeInCapped, TradeInPercent:
		return true
	}
	return false
}

func (p TradeInPolicy) String() string { return string(p) }

// RebateTreatment states whether a rebate type reduces the taxable base.
type RebateTreatment string

const (
	RebateTaxable        RebateTreatment = "TAXABLE"
	RebateExemptFromBase RebateTreatment = "EXEMPT_FROM_BASE"
)

func (r RebateTreatment) IsValid() bool {
	return r == RebateTaxable || r == RebateExemptFromBase
}

func (r RebateTreatment) String() string { return string(r) }

// FeeCategory classifies itemized fees and aftermarket products on a deal.
type FeeCategory string

const (
	FeeDocFee           FeeCategory = "DOC_FEE"
	FeeExtendedWarranty FeeCategory = "EXTENDED_WARRANTY"
	FeeGAP              FeeCategory = "GAP"
	FeeMaintenance      FeeCategory = "MAINTENANCE_CONTRACT"
	FeeAccessories      FeeCategory = "ACCESSORIES"
	FeeGovernment       FeeCategory = "GOVERNMENT_FEE"
)

// AllFeeCategories returns every recognized fee/product category.
func AllFeeCategories() []FeeCategory {
	return []FeeCategory{
		FeeDocFee,
		FeeExtendedWarranty,
		FeeGAP,
		FeeMaintenance,
		FeeAccessories,
		FeeGovernment,
	}
}

func (c FeeCategory) IsValid() bool {
	switch c {
	case FeeDocFee, FeeExtendedWarranty, FeeGAP, FeeMaintenance, FeeAccessories, FeeGovernment:
		return true
	}
	return false
}

func (c FeeCategory) String() string { return string(c) }

// DisplayName returns a human-readable label for the category.
func (c FeeCategory) DisplayName() string {
	switch c {
	case FeeDocFee:
		return "Doc fee"
	case FeeExtendedWarranty:
		return "Extended warranty"
	case FeeGAP:
		return "GAP coverage"
	case FeeMaintenance:
		return "Maintenance contract"
	case FeeAccessories:
		return "Accessories"
	case FeeGovernment:
		return "Government fee"
	default:
		return "Unknown"
	}
}

// IsProduct reports whether the category is an aftermarket product rather
// than a transaction fee. Used for breakdown reporting only.
func (c FeeCategory) IsProduct() bool {
	switch c {
	case FeeExtendedWarranty, FeeGAP, FeeMaintenance, FeeAccessories:
		return true
	}
	return false
}

// FeeTaxability states whether a fee category is taxed, possibly
// conditional on deal type.
type FeeTaxability string

const (
	FeeTaxable       FeeTaxability = "TAXABLE"
	FeeExempt        FeeTaxability = "EXEMPT"
	FeeTaxableRetail FeeTaxability = "TAXABLE_ONLY_ON_RETAIL"
	FeeTaxableLease  FeeTaxability = "TAXABLE_ONLY_ON_LEASE"
)

func (t FeeTaxability) IsValid() bool {
	switch t {
	case FeeTaxable, FeeExempt, FeeTaxableRetail, FeeTaxableLease:
		return true
	}
	return false
}

func (t FeeTaxability) String() string { return string(t) }

// AppliesTo reports whether the taxability makes the fee taxable for the
// given deal type.
func (t FeeTaxability) AppliesTo(dealType DealType) bool {
	switch t {
	case FeeTaxable:
		return true
	case FeeTaxableRetail:
		return dealType == DealRetail
	case FeeTaxableLease:
		return dealType == DealLease
	}
	return false
}

// LeaseMethod selects how lease tax is computed for a jurisdiction.
type LeaseMethod string

const (
	LeaseFullUpfront LeaseMethod = "FULL_UPFRONT"
	LeaseMonthly     LeaseMethod = "MONTHLY"
	LeaseHybrid      LeaseMethod = "HYBRID"
	LeaseNetCapCost  LeaseMethod = "NET_CAP_COST"
	LeaseReducedBase LeaseMethod = "REDUCED_BASE"
)

func (m LeaseMethod) IsValid() bool {
	switch m {
	case LeaseFullUpfront, LeaseMonthly, LeaseHybrid, LeaseNetCapCost, LeaseReducedBase:
		return true
	}
	return false
}

func (m LeaseMethod) String() string { return string(m) }

// DisplayName returns a human-readable label for the lease method.
func (m LeaseMethod) DisplayName() string {
	switch m {
	case LeaseFullUpfront:
		return "Full upfront"
	case LeaseMonthly:
		return "Monthly"
	case LeaseHybrid:
		return "Hybrid (upfront + monthly)"
	case LeaseNetCapCost:
		return "Net cap cost"
	case LeaseReducedBase:
		return "Reduced base"
	default:
		return "Unknown"
	}
}

// ReciprocityMode selects how origin-state tax already paid is credited.
type ReciprocityMode string

const (
	ReciprocityNone          ReciprocityMode = "NONE"
	ReciprocityUpToStateRate ReciprocityMode = "CREDIT_UP_TO_STATE_RATE"
	ReciprocityCreditFull    ReciprocityMode = "CREDIT_FULL"
	ReciprocityHomeStateOnly ReciprocityMode = "HOME_STATE_ONLY"
)

func (m ReciprocityMode) IsValid() bool {
	switch m {
	case ReciprocityNone, ReciprocityUpToStateRate, ReciprocityCreditFull, ReciprocityHomeStateOnly:
		return true
	}
	return false
}

func (m ReciprocityMode) String() string { return string(m) }

// ReciprocityScope restricts which deal types a reciprocity mode covers.
type ReciprocityScope string

const (
	ScopeRetailOnly ReciprocityScope = "RETAIL_ONLY"
	ScopeLeaseOnly  ReciprocityScope = "LEASE_ONLY"
	ScopeBoth       ReciprocityScope = "BOTH"
)

func (s ReciprocityScope) IsValid() bool {
	return s == ScopeRetailOnly || s == ScopeLeaseOnly || s == ScopeBoth
}

func (s ReciprocityScope) String() string { return string(s) }

// Covers reports whether the scope includes the given deal type.
func (s ReciprocityScope) Covers(dealType DealType) bool {
	switch s {
	case ScopeBoth:
		return true
	case ScopeRetailOnly:
		return dealType == DealRetail
	case ScopeLeaseOnly:
		return dealType == DealLease
	}
	return false
}

// DealType distinguishes retail sales from leases.
type DealType string

const (
	DealRetail DealType = "RETAIL"
	DealLease  DealType = "LEASE"
)

func (d DealType) IsValid() bool { return d == DealRetail || d == DealLease }

func (d DealType) String() string { return string(d) }

// BoundaryPolicy records how a privilege-tax tier boundary resolves when a
// value lands exactly on a tier edge. UNSPECIFIED marks states whose source
// documentation is silent; the calculator still places the value in the
// higher tier but flags the ruling in the trace.
type BoundaryPolicy string

const (
	BoundaryHigherTier  BoundaryPolicy = "HIGHER_TIER"
	BoundaryUnspecified BoundaryPolicy = "UNSPECIFIED"
)

func (b BoundaryPolicy) IsValid() bool {
	return b == BoundaryHigherTier || b == BoundaryUnspecified
}

func (b BoundaryPolicy) String() string { return string(b) }

// JurisdictionType identifies which layer of government a rate component
// belongs to.
type JurisdictionType string

const (
	JurisdictionState    JurisdictionType = "STATE"
	JurisdictionCounty   JurisdictionType = "COUNTY"
	JurisdictionCity     JurisdictionType = "CITY"
	JurisdictionTownship JurisdictionType = "TOWNSHIP"
	JurisdictionDistrict JurisdictionType = "SPECIAL_DISTRICT"
)

func (j JurisdictionType) IsValid() bool {
	switch j {
	case JurisdictionState, JurisdictionCounty, JurisdictionCity, JurisdictionTownship, JurisdictionDistrict:
		return true
	}
	return false
}

func (j JurisdictionType) String() string { return string(j) }
