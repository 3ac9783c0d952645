// Package eligibility scores a user profile against the scheme catalog.
// Evaluation is pure: identical inputs produce identical outputs.
package eligibility

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

// Criterion weights. A criterion absent from a scheme's rule contributes
// nothing to that scheme's attainable score, so schemes are compared on an
// absolute 0-100 scale regardless of how many criteria they declare.
const (
	WeightAge      = 20
	WeightIncome   = 25
	WeightCategory = 20
	WeightRural    = 15
	WeightKisan    = 20
	WeightStudent  = 15
)

// DefaultProvisionalThreshold is the fraction of the attainable score a
// scheme must clear to be marked eligible while facts are still missing.
// A heuristic carried over from the source system, kept tunable.
const DefaultProvisionalThreshold = 0.7

// Engine evaluates profiles against a fixed, ordered scheme catalog.
type Engine struct {
	catalog   []domain.SchemeRule
	threshold float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithProvisionalThreshold overrides the provisional-eligibility threshold
// (a fraction in (0,1]).
func WithProvisionalThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 && t <= 1 {
			e.threshold = t
		}
	}
}

// NewEngine creates an engine over the given catalog. The catalog is
// treated as read-only; its declared order is the ranking tie-break.
func NewEngine(catalog []domain.SchemeRule, opts ...Option) *Engine {
	e := &Engine{catalog: catalog, threshold: DefaultProvisionalThreshold}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores the profile against every scheme and returns the ranked
// eligible and ineligible lists, both sorted descending by match score
// with catalog order breaking ties.
func (e *Engine) Evaluate(profile domain.UserProfile) domain.EligibilityReport {
	var report domain.EligibilityReport

	for _, scheme := range e.catalog {
		result := e.evaluateScheme(profile, scheme)
		if result.Eligible {
			report.Eligible = append(report.Eligible, result)
		} else {
			report.Ineligible = append(report.Ineligible, result)
		}
	}

	sort.SliceStable(report.Eligible, func(i, j int) bool {
		return report.Eligible[i].MatchScore > report.Eligible[j].MatchScore
	})
	sort.SliceStable(report.Ineligible, func(i, j int) bool {
		return report.Ineligible[i].MatchScore > report.Ineligible[j].MatchScore
	})

	return report
}

func (e *Engine) evaluateScheme(p domain.UserProfile, scheme domain.SchemeRule) domain.EligibilityResult {
	result := domain.EligibilityResult{
		SchemeID: scheme.ID,
		Name:     scheme.Name,
		Benefits: scheme.Benefits,
	}

	var accumulated, maxScore int
	rule := scheme.Eligibility

	if rule.MinAge != nil || rule.MaxAge != nil {
		maxScore += WeightAge
		switch {
		case p.Age == nil:
			result.MissingFields = append(result.MissingFields, domain.FieldAge)
		case meetsAgeRange(*p.Age, rule.MinAge, rule.MaxAge):
			accumulated += WeightAge
			result.MatchedReasons = append(result.MatchedReasons, fmt.Sprintf("age %d is within the eligible range", *p.Age))
		default:
			result.UnmetReasons = append(result.UnmetReasons, ageUnmetReason(*p.Age, rule.MinAge, rule.MaxAge))
		}
	}

	if rule.MaxAnnualIncome != nil {
		maxScore += WeightIncome
		switch {
		case p.AnnualIncome == nil:
			result.MissingFields = append(result.MissingFields, domain.FieldAnnualIncome)
		case *p.AnnualIncome <= *rule.MaxAnnualIncome:
			accumulated += WeightIncome
			result.MatchedReasons = append(result.MatchedReasons, "annual income is within the ceiling")
		default:
			result.UnmetReasons = append(result.UnmetReasons,
				fmt.Sprintf("annual income %d exceeds the ceiling of %d", *p.AnnualIncome, *rule.MaxAnnualIncome))
		}
	}

	if len(rule.Categories) > 0 {
		maxScore += WeightCategory
		switch {
		case len(p.Categories) == 0:
			result.MissingFields = append(result.MissingFields, domain.FieldCategories)
		case categoryMatches(p.Categories, rule.Categories):
			accumulated += WeightCategory
			result.MatchedReasons = append(result.MatchedReasons,
				fmt.Sprintf("category %s qualifies", strings.Join(p.Categories, ", ")))
		default:
			result.UnmetReasons = append(result.UnmetReasons,
				fmt.Sprintf("category %s does not qualify for this scheme", strings.Join(p.Categories, ", ")))
		}
	}

	if rule.IsRural {
		maxScore += WeightRural
		switch {
		case p.Location == nil:
			result.MissingFields = append(result.MissingFields, domain.FieldLocation)
		case p.Location.IsRural:
			accumulated += WeightRural
			result.MatchedReasons = append(result.MatchedReasons, "qualifies as a rural resident")
		default:
			result.UnmetReasons = append(result.UnmetReasons, "this scheme is restricted to rural areas")
		}
	}

	if rule.IsKisan {
		maxScore += WeightKisan
		switch {
		case p.Occupation == nil:
			result.MissingFields = append(result.MissingFields, domain.FieldOccupation)
		case isFarmer(*p.Occupation):
			accumulated += WeightKisan
			result.MatchedReasons = append(result.MatchedReasons, "qualifies under the farmer category")
		default:
			result.UnmetReasons = append(result.UnmetReasons, "this scheme is restricted to farmers")
		}
	}

	if rule.StudentStatus {
		maxScore += WeightStudent
		switch {
		case p.IsStudent == nil:
			result.MissingFields = append(result.MissingFields, domain.FieldIsStudent)
		case *p.IsStudent:
			accumulated += WeightStudent
			result.MatchedReasons = append(result.MatchedReasons, "qualifies as a student")
		default:
			result.UnmetReasons = append(result.UnmetReasons, "this scheme is restricted to students")
		}
	}

	if maxScore > 0 {
		result.MatchScore = 100 * float64(accumulated) / float64(maxScore)
	}
	// maxScore == 0: no checkable criteria, universally eligible at score 0.

	result.Eligible = len(result.UnmetReasons) == 0 &&
		(len(result.MissingFields) == 0 || result.MatchScore > e.threshold*100)

	return result
}

func meetsAgeRange(age int, min, max *int) bool {
	if min != nil && age < *min {
		return false
	}
	if max != nil && age > *max {
		return false
	}
	return true
}

func ageUnmetReason(age int, min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("age %d must be between %d and %d", age, *min, *max)
	case min != nil:
		return fmt.Sprintf("age %d is below the minimum of %d", age, *min)
	default:
		return fmt.Sprintf("age %d is above the maximum of %d", age, *max)
	}
}

func categoryMatches(have, want []string) bool {
	for _, w := range want {
		if w == domain.CategoryAll {
			return true
		}
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func isFarmer(occupation string) bool {
	return strings.EqualFold(occupation, "farmer") || strings.EqualFold(occupation, "kisan")
}
