package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dealdesk/autotax/internal/domain"
)

// Registry is the immutable per-jurisdiction rule table. It is built once
// from the static state table and is safe for concurrent reads without
// locking; nothing mutates it after construction.
type Registry struct {
	byCode map[string]domain.JurisdictionRule
	codes  []string
}

// NewRegistry builds the registry from the embedded state table, checking
// configuration integrity (unique codes, valid schemes and policies). An
// integrity failure here is a data bug, not user input.
func NewRegistry() (*Registry, error) {
	r := &Registry{byCode: make(map[string]domain.JurisdictionRule, len(allJurisdictionRules))}
	for _, rule := range allJurisdictionRules {
		code := strings.ToUpper(rule.Code)
		if _, exists := r.byCode[code]; exists {
			return nil, fmt.Errorf("duplicate jurisdiction rule for %s", code)
		}
		if !rule.Scheme.IsValid() {
			return nil, &domain.UnknownSchemeError{Code: code, Scheme: rule.Scheme}
		}
		if !rule.TradeIn.Policy.IsValid() {
			return nil, fmt.Errorf("jurisdiction %s: invalid trade-in policy %q", code, rule.TradeIn.Policy)
		}
		if !rule.Lease.Method.IsValid() {
			return nil, fmt.Errorf("jurisdiction %s: invalid lease method %q", code, rule.Lease.Method)
		}
		if !rule.Reciprocity.Mode.IsValid() || !rule.Reciprocity.Scope.IsValid() {
			return nil, fmt.Errorf("jurisdiction %s: invalid reciprocity rule", code)
		}
		for origin, override := range rule.Reciprocity.Overrides {
			if !override.Mode.IsValid() {
				return nil, fmt.Errorf("jurisdiction %s: invalid reciprocity override for %s", code, origin)
			}
		}
		for cat, tax := range rule.Fees {
			if !cat.IsValid() || !tax.IsValid() {
				return nil, fmt.Errorf("jurisdiction %s: invalid fee taxability %s=%s", code, cat, tax)
			}
		}
		r.byCode[code] = rule
		r.codes = append(r.codes, code)
	}
	sort.Strings(r.codes)
	return r, nil
}

// MustNewRegistry builds the registry or panics. Intended for process
// startup where a broken rule table should refuse to boot.
func MustNewRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// GetRulesForState returns the rule record for a jurisdiction code.
func (r *Registry) GetRulesForState(code string) (domain.JurisdictionRule, error) {
	rule, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return domain.JurisdictionRule{}, &domain.UnknownJurisdictionError{Code: code}
	}
	return rule, nil
}

// ResolvePerspective selects which jurisdiction's rules govern a deal:
// the dealer rooftop's state when the deal explicitly says so, otherwise
// the customer registration jurisdiction. There is no implicit fallback
// between the two.
func (r *Registry) ResolvePerspective(deal domain.DealInput) (domain.JurisdictionRule, error) {
	if deal.UseDealerState {
		if deal.DealerState == "" {
			return domain.JurisdictionRule{}, &domain.MissingFieldError{Field: "dealer_state", Context: "dealer rooftop perspective"}
		}
		return r.GetRulesForState(deal.DealerState)
	}
	if deal.Jurisdiction == "" {
		return domain.JurisdictionRule{}, &domain.MissingFieldError{Field: "jurisdiction"}
	}
	return r.GetRulesForState(deal.Jurisdiction)
}

// StateCodes returns all supported jurisdiction codes in sorted order.
// The returned slice is a copy.
func (r *Registry) StateCodes() []string {
	out := make([]string, len(r.codes))
	copy(out, r.codes)
	return out
}

// Len returns the number of jurisdictions in the registry.
func (r *Registry) Len() int { return len(r.codes) }

// RuleSummary renders a rule record as ordered label/value pairs for
// upstream display (CLI and TUI rule inspection).
func (r *Registry) RuleSummary(code string) ([][2]string, error) {
	rule, err := r.GetRulesForState(code)
	if err != nil {
		return nil, err
	}
	summary := [][2]string{
		{"Jurisdiction", fmt.Sprintf("%s (%s)", rule.Name, rule.Code)},
		{"Tax scheme", rule.Scheme.DisplayName()},
		{"Base state rate", domain.Percent(rule.BaseStateRate)},
		{"Trade-in policy", tradeInSummary(rule.TradeIn)},
		{"Manufacturer rebate", string(rule.Rebates.Manufacturer)},
		{"Dealer discount", string(rule.Rebates.Dealer)},
		{"Lease method", rule.Lease.Method.DisplayName()},
		{"Reciprocity", reciprocitySummary(rule.Reciprocity)},
	}
	for _, cat := range domain.AllFeeCategories() {
		if tax, ok := rule.Fees[cat]; ok {
			summary = append(summary, [2]string{cat.DisplayName(), string(tax)})
		}
	}
	switch rule.Scheme {
	case domain.SchemeTAVT:
		summary = append(summary, [2]string{"TAVT rate", domain.Percent(rule.Special.TAVTRate)})
	case domain.SchemeHUT:
		summary = append(summary, [2]string{"HUT rate", domain.Percent(rule.Special.HUTRate)})
		summary = append(summary, [2]string{"HUT window", fmt.Sprintf("%d days", rule.Special.HUTWindowDays)})
	case domain.SchemePrivilege:
		summary = append(summary, [2]string{"Privilege classes", fmt.Sprintf("%d tiers, boundary %s", len(rule.Special.PrivilegeTiers), rule.Special.Boundary)})
	}
	return summary, nil
}

func tradeInSummary(t domain.TradeInRule) string {
	switch t.Policy {
	case domain.TradeInFull:
		return "Full credit"
	case domain.TradeInCapped:
		return "Capped at " + domain.Money(t.Cap)
	case domain.TradeInPercent:
		return domain.Percent(t.Percent) + " of allowance"
	default:
		return "No credit"
	}
}

func reciprocitySummary(r domain.ReciprocityRule) string {
	s := fmt.Sprintf("%s (%s)", r.Mode, r.Scope)
	if r.ProofRequired {
		s += ", proof required"
	}
	if len(r.Overrides) > 0 {
		s += fmt.Sprintf(", %d per-state overrides", len(r.Overrides))
	}
	return s
}
