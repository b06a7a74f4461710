// Package rates resolves the rate components a calculation applies. Live
// locality rate data (ZIP-derived) is an external collaborator; this package
// only accepts its already-resolved output and supplies the static state
// rate when no finer breakdown is available.
package rates

import (
	"errors"

	"github.com/dealdesk/autotax/internal/domain"
)

// ErrLocalityNotFound signals that the provider has no breakdown for the
// requested locality. The resolver treats it as a fallback condition, not a
// failure.
var ErrLocalityNotFound = errors.New("locality not found")

// LocalityProvider supplies a fine-grained rate breakdown for a locality key
// within a jurisdiction. Implementations live outside this core (e.g. a
// ZIP-rate service); results are passed in as already-resolved data.
type LocalityProvider interface {
	RateBreakdown(jurisdiction, locality string) ([]domain.RateComponent, error)
}

// Resolver turns a jurisdiction rule plus an optional locality key into the
// ordered rate components to apply.
type Resolver struct {
	Provider LocalityProvider
}

// NewResolver creates a resolver. Provider may be nil; locality requests
// then always fall back to the flat state rate.
func NewResolver(provider LocalityProvider) *Resolver {
	return &Resolver{Provider: provider}
}

// Components returns the rate components for a deal. With no locality the
// jurisdiction's flat base rate is returned as a single STATE component.
// When a locality breakdown is requested but unavailable, the state rate is
// used and approximate is set; that is a flagged fallback, never an error.
func (r *Resolver) Components(rule domain.JurisdictionRule, locality string) (components []domain.RateComponent, approximate bool) {
	if locality == "" {
		return r.stateOnly(rule), false
	}
	if r.Provider == nil {
		return r.stateOnly(rule), true
	}
	breakdown, err := r.Provider.RateBreakdown(rule.Code, locality)
	if err != nil || len(breakdown) == 0 {
		return r.stateOnly(rule), true
	}
	out := make([]domain.RateComponent, len(breakdown))
	copy(out, breakdown)
	return out, false
}

func (r *Resolver) stateOnly(rule domain.JurisdictionRule) []domain.RateComponent {
	return []domain.RateComponent{{
		Type: domain.JurisdictionState,
		Name: rule.Name + " state rate",
		Rate: rule.BaseStateRate,
	}}
}

// StaticProvider is a LocalityProvider backed by an in-memory table, keyed
// "STATE:locality". Used by the CLI for deal files that carry a pre-resolved
// breakdown, and in tests.
type StaticProvider map[string][]domain.RateComponent

// RateBreakdown implements LocalityProvider.
func (p StaticProvider) RateBreakdown(jurisdiction, locality string) ([]domain.RateComponent, error) {
	if components, ok := p[jurisdiction+":"+locality]; ok {
		return components, nil
	}
	return nil, ErrLocalityNotFound
}
