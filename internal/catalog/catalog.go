// Package catalog loads the static welfare-scheme definitions the engine
// scores against. The catalog is read-only after loading and its declared
// order is significant: it breaks ranking ties.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

var ErrEmptyCatalog = errors.New("catalog contains no schemes")

type catalogFile struct {
	Schemes []domain.SchemeRule `yaml:"schemes"`
}

// Load reads and validates a scheme catalog from a YAML file, preserving
// the declared order.
func Load(path string) ([]domain.SchemeRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) ([]domain.SchemeRule, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if len(file.Schemes) == 0 {
		return nil, ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(file.Schemes))
	for i, scheme := range file.Schemes {
		if scheme.ID == "" {
			return nil, fmt.Errorf("scheme at index %d has no id", i)
		}
		if scheme.Name == "" {
			return nil, fmt.Errorf("scheme %q has no name", scheme.ID)
		}
		if seen[scheme.ID] {
			return nil, fmt.Errorf("duplicate scheme id %q", scheme.ID)
		}
		seen[scheme.ID] = true

		if err := validateCriteria(scheme); err != nil {
			return nil, err
		}
	}

	return file.Schemes, nil
}

func validateCriteria(scheme domain.SchemeRule) error {
	rule := scheme.Eligibility
	if rule.MinAge != nil && *rule.MinAge < 0 {
		return fmt.Errorf("scheme %q: min_age must not be negative", scheme.ID)
	}
	if rule.MinAge != nil && rule.MaxAge != nil && *rule.MinAge > *rule.MaxAge {
		return fmt.Errorf("scheme %q: min_age %d exceeds max_age %d", scheme.ID, *rule.MinAge, *rule.MaxAge)
	}
	if rule.MaxAnnualIncome != nil && *rule.MaxAnnualIncome < 0 {
		return fmt.Errorf("scheme %q: max_annual_income must not be negative", scheme.ID)
	}
	for _, cat := range rule.Categories {
		if cat == "" {
			return fmt.Errorf("scheme %q: empty category", scheme.ID)
		}
	}
	return nil
}

// ByID returns the scheme with the given id, if present.
func ByID(schemes []domain.SchemeRule, id string) (domain.SchemeRule, bool) {
	for _, s := range schemes {
		if s.ID == id {
			return s, true
		}
	}
	return domain.SchemeRule{}, false
}
