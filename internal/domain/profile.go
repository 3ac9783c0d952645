package domain

import "time"

// Profile field names, used for contradiction records, missing-field
// reporting and planner questions.
const (
	FieldAge          = "age"
	FieldAnnualIncome = "annual_income"
	FieldCategories   = "categories"
	FieldLocation     = "location"
	FieldOccupation   = "occupation"
	FieldIsStudent    = "is_student"
	FieldDependents   = "dependents"
)

// Location describes where the user lives, as far as eligibility cares.
type Location struct {
	IsRural bool `json:"is_rural" yaml:"is_rural"`
}

// UserProfile is the accumulated fact set for one conversation.
// Nil pointer means the field is still unknown. Categories is a set:
// empty means unknown, not "none". Dependents defaults to 0 because the
// original data model cannot distinguish "no dependents" from "never asked".
type UserProfile struct {
	Age          *int      `json:"age,omitempty"`
	AnnualIncome *int      `json:"annual_income,omitempty"`
	Categories   []string  `json:"categories,omitempty"`
	Location     *Location `json:"location,omitempty"`
	Occupation   *string   `json:"occupation,omitempty"`
	IsStudent    *bool     `json:"is_student,omitempty"`
	Dependents   int       `json:"dependents"`
}

// ProfileFacts is a partial profile as produced by the fact-extraction
// capability for a single turn. A nil field (or empty string for
// occupation) means "not mentioned this turn" and must never overwrite
// a known value.
type ProfileFacts struct {
	Age          *int      `json:"age,omitempty"`
	AnnualIncome *int      `json:"annual_income,omitempty"`
	Categories   []string  `json:"categories,omitempty"`
	Location     *Location `json:"location,omitempty"`
	Occupation   *string   `json:"occupation,omitempty"`
	IsStudent    *bool     `json:"is_student,omitempty"`
	Dependents   *int      `json:"dependents,omitempty"`
}

// IsEmpty reports whether the payload carries no usable facts.
func (f ProfileFacts) IsEmpty() bool {
	return f.Age == nil &&
		f.AnnualIncome == nil &&
		len(f.Categories) == 0 &&
		f.Location == nil &&
		(f.Occupation == nil || *f.Occupation == "") &&
		f.IsStudent == nil &&
		f.Dependents == nil
}

// Contradiction records a conflict between a stored scalar fact and a
// newly reported value. The log is append-only; it is cleared only by an
// explicit resolution action after the user confirmed the correct value.
type Contradiction struct {
	Field         string    `json:"field"`
	PreviousValue any       `json:"previous_value"`
	NewValue      any       `json:"new_value"`
	DetectedAt    time.Time `json:"detected_at"`
}
