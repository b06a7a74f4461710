package calculation

import (
	"github.com/dealdesk/autotax/internal/domain"
	"github.com/dealdesk/autotax/internal/rates"
	"github.com/dealdesk/autotax/internal/rules"
	"github.com/shopspring/decimal"
)

// Engine orchestrates all vehicle tax calculations: perspective resolution,
// rate resolution, scheme dispatch, and reciprocity post-processing. It is
// a pure synchronous core; identical input against the immutable rule table
// always produces an identical result, and it is safe for concurrent use.
type Engine struct {
	Rules  *rules.Registry
	Rates  *rates.Resolver
	Logger Logger
}

// NewEngine creates an engine over the given registry and rate resolver.
func NewEngine(registry *rules.Registry, resolver *rates.Resolver) *Engine {
	return &Engine{
		Rules:  registry,
		Rates:  resolver,
		Logger: NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Calculate computes the tax for one deal. Exactly one calculator handles
// the deal, selected by the governing jurisdiction's scheme; a rule record
// referencing a scheme with no calculator is a configuration-integrity
// failure, never silently defaulted.
func (e *Engine) Calculate(deal domain.DealInput) (*domain.CalculationResult, error) {
	if err := deal.Validate(); err != nil {
		return nil, err
	}

	rule, err := e.Rules.ResolvePerspective(deal)
	if err != nil {
		return nil, err
	}
	if deal.Origin != nil {
		// The origin code must be in the supported set for override lookups
		// to be meaningful.
		if _, err := e.Rules.GetRulesForState(deal.Origin.State); err != nil {
			return nil, err
		}
	}

	scheme := effectiveScheme(rule, deal.DealType)
	e.Logger.Debugf("calculating %s deal for %s under scheme %s", deal.DealType, rule.Code, scheme)

	var result *domain.CalculationResult
	switch scheme {
	case domain.SchemeStateOnly, domain.SchemeStatePlusLocal:
		components, approximate := e.Rates.Components(rule, deal.Locality)
		if deal.DealType == domain.DealLease {
			result, err = calculateLease(deal, rule, components)
		} else {
			result, err = calculateRetail(deal, rule, components)
		}
		if err == nil && approximate {
			result.Approximate = true
			result.AddNote("Locality rate breakdown for %q unavailable; flat state rate applied (approximation)", deal.Locality)
		}
	case domain.SchemeTAVT:
		result, err = calculateTAVT(deal, rule)
	case domain.SchemeHUT:
		result, err = calculateHUT(deal, rule, deal.AsOf)
	case domain.SchemePrivilege:
		result, err = calculatePrivilegeTax(deal, rule)
	default:
		return nil, &domain.UnknownSchemeError{Code: rule.Code, Scheme: scheme}
	}
	if err != nil {
		return nil, err
	}
	result.Scheme = scheme

	if deal.Origin != nil {
		outcome := ResolveReciprocityCredit(result.TotalTax, *deal.Origin, rule.Reciprocity, deal.DealType)
		result.Reciprocity = &outcome
		result.AddNote("%s", outcome.Note)
		result.NetTaxDue = result.TotalTax.Sub(outcome.Credit)
		if result.NetTaxDue.IsNegative() {
			result.NetTaxDue = decimal.Zero
			result.AddNote("Credit exceeds home tax; net tax due floored at zero (excess is not refunded)")
		}
	} else {
		result.NetTaxDue = result.TotalTax
	}

	return result, nil
}

// effectiveScheme is the jurisdiction's scheme, honoring a lease-specific
// override where the state routes leases differently than retail sales.
func effectiveScheme(rule domain.JurisdictionRule, dealType domain.DealType) domain.TaxScheme {
	if dealType == domain.DealLease && rule.Lease.SchemeOverride != "" {
		return rule.Lease.SchemeOverride
	}
	return rule.Scheme
}

// roundTax applies the final rounding policy: half-up to the cent, applied
// once at the headline total, never per component.
func roundTax(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
