package domain

// CategoryAll is the wildcard in a scheme's category list: any known
// profile category satisfies the criterion.
const CategoryAll = "ALL"

// EligibilityCriteria is the checkable rule block of a scheme. Pointer
// fields are criteria only when set; the three boolean requirements are
// criteria only when true (a scheme is never "for non-farmers only").
type EligibilityCriteria struct {
	MinAge          *int     `json:"min_age,omitempty" yaml:"min_age"`
	MaxAge          *int     `json:"max_age,omitempty" yaml:"max_age"`
	MaxAnnualIncome *int     `json:"max_annual_income,omitempty" yaml:"max_annual_income"`
	Categories      []string `json:"categories,omitempty" yaml:"categories"`
	IsRural         bool     `json:"is_rural,omitempty" yaml:"is_rural"`
	IsKisan         bool     `json:"is_kisan,omitempty" yaml:"is_kisan"`
	StudentStatus   bool     `json:"student_status,omitempty" yaml:"student_status"`
}

// SchemeRule is one externally supplied welfare scheme definition.
// The catalog is immutable for the lifetime of the process and its
// declared order is the ranking tie-break.
type SchemeRule struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	Category    string              `json:"category,omitempty" yaml:"category"`
	Description string              `json:"description,omitempty" yaml:"description"`
	Benefits    string              `json:"benefits,omitempty" yaml:"benefits"`
	Eligibility EligibilityCriteria `json:"eligibility" yaml:"eligibility"`
}

// EligibilityResult is the scored outcome for one scheme.
type EligibilityResult struct {
	SchemeID       string   `json:"scheme_id"`
	Name           string   `json:"name"`
	Benefits       string   `json:"benefits,omitempty"`
	MatchScore     float64  `json:"match_score"`
	MissingFields  []string `json:"missing_fields,omitempty"`
	MatchedReasons []string `json:"matched_reasons,omitempty"`
	UnmetReasons   []string `json:"unmet_reasons,omitempty"`
	Eligible       bool     `json:"eligible"`
}

// EligibilityReport holds both ranked lists produced by one evaluation.
type EligibilityReport struct {
	Eligible   []EligibilityResult `json:"eligible"`
	Ineligible []EligibilityResult `json:"ineligible"`
}
