package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

func intp(v int) *int    { return &v }
func strp(v string) *string { return &v }
func boolp(v bool) *bool { return &v }

func adultScheme() domain.SchemeRule {
	return domain.SchemeRule{
		ID:   "adult_support",
		Name: "Adult Support Scheme",
		Eligibility: domain.EligibilityCriteria{
			MinAge:          intp(18),
			MaxAge:          intp(60),
			MaxAnnualIncome: intp(800000),
		},
	}
}

func TestEvaluate_FullMatchScoresHundred(t *testing.T) {
	engine := NewEngine([]domain.SchemeRule{adultScheme()})

	profile := domain.UserProfile{
		Age:          intp(35),
		AnnualIncome: intp(400000),
	}

	report := engine.Evaluate(profile)
	require.Len(t, report.Eligible, 1)
	require.Empty(t, report.Ineligible)

	got := report.Eligible[0]
	assert.Equal(t, 100.0, got.MatchScore)
	assert.True(t, got.Eligible)
	assert.Empty(t, got.MissingFields)
	assert.Empty(t, got.UnmetReasons)
	assert.Len(t, got.MatchedReasons, 2)
}

func TestEvaluate_MissingAgeAndExcessIncome(t *testing.T) {
	engine := NewEngine([]domain.SchemeRule{adultScheme()})

	profile := domain.UserProfile{AnnualIncome: intp(5000000)}

	report := engine.Evaluate(profile)
	require.Empty(t, report.Eligible)
	require.Len(t, report.Ineligible, 1)

	got := report.Ineligible[0]
	assert.False(t, got.Eligible)
	assert.Contains(t, got.MissingFields, domain.FieldAge)
	require.Len(t, got.UnmetReasons, 1)
	assert.Contains(t, got.UnmetReasons[0], "exceeds the ceiling")
}

func TestEvaluate_MissingFactIsNeverAnUnmetReason(t *testing.T) {
	rule := domain.SchemeRule{
		ID:   "everything",
		Name: "Everything Scheme",
		Eligibility: domain.EligibilityCriteria{
			MinAge:          intp(18),
			MaxAnnualIncome: intp(100000),
			Categories:      []string{"SC", "ST"},
			IsRural:         true,
			IsKisan:         true,
			StudentStatus:   true,
		},
	}
	engine := NewEngine([]domain.SchemeRule{rule})

	report := engine.Evaluate(domain.UserProfile{})
	require.Len(t, report.Ineligible, 1)

	got := report.Ineligible[0]
	assert.Empty(t, got.UnmetReasons)
	assert.ElementsMatch(t, []string{
		domain.FieldAge,
		domain.FieldAnnualIncome,
		domain.FieldCategories,
		domain.FieldLocation,
		domain.FieldOccupation,
		domain.FieldIsStudent,
	}, got.MissingFields)
	assert.Equal(t, 0.0, got.MatchScore)
}

func TestEvaluate_NoCriteriaIsEligibleAtScoreZero(t *testing.T) {
	engine := NewEngine([]domain.SchemeRule{{ID: "universal", Name: "Universal Scheme"}})

	report := engine.Evaluate(domain.UserProfile{})
	require.Len(t, report.Eligible, 1)
	assert.Equal(t, 0.0, report.Eligible[0].MatchScore)
	assert.True(t, report.Eligible[0].Eligible)
}

func TestEvaluate_ProvisionalEligibilityAboveThreshold(t *testing.T) {
	// Age (20) + income (25) known and satisfied, category (20) unknown:
	// 45/65 = 69.2% -> below the 0.7 default, not eligible.
	rule := domain.SchemeRule{
		ID:   "partial",
		Name: "Partial Scheme",
		Eligibility: domain.EligibilityCriteria{
			MinAge:          intp(18),
			MaxAnnualIncome: intp(800000),
			Categories:      []string{"SC"},
		},
	}
	profile := domain.UserProfile{Age: intp(30), AnnualIncome: intp(100000)}

	report := NewEngine([]domain.SchemeRule{rule}).Evaluate(profile)
	require.Len(t, report.Ineligible, 1)
	assert.InDelta(t, 69.23, report.Ineligible[0].MatchScore, 0.01)

	// With a lowered threshold the same profile becomes provisionally eligible.
	report = NewEngine([]domain.SchemeRule{rule}, WithProvisionalThreshold(0.6)).Evaluate(profile)
	require.Len(t, report.Eligible, 1)
	assert.True(t, report.Eligible[0].Eligible)
	assert.Contains(t, report.Eligible[0].MissingFields, domain.FieldCategories)
}

func TestEvaluate_AnyUnmetReasonIsDisqualifying(t *testing.T) {
	// Income violated, everything else satisfied: high score but ineligible.
	rule := domain.SchemeRule{
		ID:   "strict",
		Name: "Strict Scheme",
		Eligibility: domain.EligibilityCriteria{
			MinAge:          intp(18),
			MaxAnnualIncome: intp(100000),
			Categories:      []string{"OBC"},
			IsRural:         true,
		},
	}
	profile := domain.UserProfile{
		Age:          intp(30),
		AnnualIncome: intp(900000),
		Categories:   []string{"OBC"},
		Location:     &domain.Location{IsRural: true},
	}

	report := NewEngine([]domain.SchemeRule{rule}).Evaluate(profile)
	require.Len(t, report.Ineligible, 1)
	assert.False(t, report.Ineligible[0].Eligible)
	assert.NotEmpty(t, report.Ineligible[0].UnmetReasons)
}

func TestEvaluate_CategoryWildcardAndCaseFolding(t *testing.T) {
	rule := domain.SchemeRule{
		ID:          "open",
		Name:        "Open Scheme",
		Eligibility: domain.EligibilityCriteria{Categories: []string{domain.CategoryAll}},
	}
	profile := domain.UserProfile{Categories: []string{"General"}}

	report := NewEngine([]domain.SchemeRule{rule}).Evaluate(profile)
	require.Len(t, report.Eligible, 1)
	assert.Equal(t, 100.0, report.Eligible[0].MatchScore)

	rule.Eligibility.Categories = []string{"sc"}
	profile.Categories = []string{"SC"}
	report = NewEngine([]domain.SchemeRule{rule}).Evaluate(profile)
	require.Len(t, report.Eligible, 1)
}

func TestEvaluate_KisanAndStudentCriteria(t *testing.T) {
	kisan := domain.SchemeRule{
		ID:          "kisan",
		Name:        "Farmer Scheme",
		Eligibility: domain.EligibilityCriteria{IsKisan: true},
	}
	student := domain.SchemeRule{
		ID:          "scholar",
		Name:        "Scholarship",
		Eligibility: domain.EligibilityCriteria{StudentStatus: true},
	}
	engine := NewEngine([]domain.SchemeRule{kisan, student})

	report := engine.Evaluate(domain.UserProfile{
		Occupation: strp("Farmer"),
		IsStudent:  boolp(false),
	})

	require.Len(t, report.Eligible, 1)
	assert.Equal(t, "kisan", report.Eligible[0].SchemeID)
	require.Len(t, report.Ineligible, 1)
	assert.Equal(t, "scholar", report.Ineligible[0].SchemeID)
	assert.NotEmpty(t, report.Ineligible[0].UnmetReasons)
}

func TestEvaluate_RankingIsStableOnTies(t *testing.T) {
	first := domain.SchemeRule{
		ID:          "first",
		Name:        "First",
		Eligibility: domain.EligibilityCriteria{MinAge: intp(18)},
	}
	second := domain.SchemeRule{
		ID:          "second",
		Name:        "Second",
		Eligibility: domain.EligibilityCriteria{MinAge: intp(18)},
	}
	engine := NewEngine([]domain.SchemeRule{first, second})

	report := engine.Evaluate(domain.UserProfile{Age: intp(30)})
	require.Len(t, report.Eligible, 2)
	assert.Equal(t, "first", report.Eligible[0].SchemeID, "catalog order breaks ties")
	assert.Equal(t, "second", report.Eligible[1].SchemeID)
}

func TestEvaluate_IsPure(t *testing.T) {
	engine := NewEngine([]domain.SchemeRule{adultScheme()})
	profile := domain.UserProfile{Age: intp(35), AnnualIncome: intp(400000)}

	a := engine.Evaluate(profile)
	b := engine.Evaluate(profile)
	assert.Equal(t, a, b)
}
