// Package planner decides which profile fact is most valuable to ask for
// next. Ordering is deterministic so the conversation stays predictable.
package planner

import "github.com/sahayak-ai/sahayak/internal/domain"

// DependentsAgeThreshold gates the dependents question: it is only worth
// asking once the user is known to be older than this.
const DependentsAgeThreshold = 25

// Questions keyed by the field they collect.
const (
	QuestionAge        = "What is your age?"
	QuestionIncome     = "What is your annual income?"
	QuestionCategory   = "Which social category do you belong to (General, OBC, SC, ST)?"
	QuestionLocation   = "Do you live in a rural or an urban area?"
	QuestionDependents = "How many dependents do you have?"
)

// Planner produces the ordered list of pending questions for a profile.
type Planner struct{}

func New() *Planner { return &Planner{} }

// NextQuestions returns the questions still worth asking, in priority
// order: age, income, category, location, then dependents. A field that
// is already concrete is never asked again. Once the four gating fields
// (age, income, categories, location) are all concrete the planner is
// done and returns an empty list; dependents alone never keeps the
// conversation going.
func (p *Planner) NextQuestions(profile domain.UserProfile) []string {
	if p.Done(profile) {
		return nil
	}

	var questions []string

	if profile.Age == nil {
		questions = append(questions, QuestionAge)
	}
	if profile.AnnualIncome == nil {
		questions = append(questions, QuestionIncome)
	}
	if len(profile.Categories) == 0 {
		questions = append(questions, QuestionCategory)
	}
	if profile.Location == nil {
		questions = append(questions, QuestionLocation)
	}
	if profile.Dependents == 0 && profile.Age != nil && *profile.Age > DependentsAgeThreshold {
		questions = append(questions, QuestionDependents)
	}

	return questions
}

// Done reports whether every gating field is concrete.
func (p *Planner) Done(profile domain.UserProfile) bool {
	return profile.Age != nil &&
		profile.AnnualIncome != nil &&
		len(profile.Categories) > 0 &&
		profile.Location != nil
}
