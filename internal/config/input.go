package config

import (
	"fmt"
	"os"

	"github.com/dealdesk/autotax/internal/domain"
	"github.com/dealdesk/autotax/internal/rates"
	"gopkg.in/yaml.v3"
)

// DealFile is the on-disk shape of a tax calculation request: the deal
// itself plus an optional pre-resolved locality rate breakdown supplied by
// an external rate service, keyed "STATE:locality".
type DealFile struct {
	Deal          domain.DealInput                  `yaml:"deal"`
	LocalityRates map[string][]domain.RateComponent `yaml:"locality_rates,omitempty"`
}

// InputParser handles parsing of deal request files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a deal request from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*DealFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse unmarshals and validates a deal request.
func (ip *InputParser) Parse(data []byte) (*DealFile, error) {
	var df DealFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.Validate(&df); err != nil {
		return nil, fmt.Errorf("deal file validation failed: %w", err)
	}
	return &df, nil
}

// Validate checks the deal and any supplied locality breakdowns.
func (ip *InputParser) Validate(df *DealFile) error {
	if err := df.Deal.Validate(); err != nil {
		return err
	}
	for key, components := range df.LocalityRates {
		if len(components) == 0 {
			return fmt.Errorf("locality %q has an empty rate breakdown", key)
		}
		for i, c := range components {
			if !c.Type.IsValid() {
				return fmt.Errorf("locality %q component %d: invalid jurisdiction type %q", key, i, c.Type)
			}
			if c.Rate.IsNegative() {
				return fmt.Errorf("locality %q component %d: rate must not be negative", key, i)
			}
		}
	}
	return nil
}

// Provider exposes the file's locality breakdowns as a rate provider for
// the engine. Returns nil when the file carries none.
func (df *DealFile) Provider() rates.LocalityProvider {
	if len(df.LocalityRates) == 0 {
		return nil
	}
	return rates.StaticProvider(df.LocalityRates)
}
