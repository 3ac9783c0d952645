package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

func intp(v int) *int { return &v }

func TestNextQuestions_EmptyProfileAsksInPriorityOrder(t *testing.T) {
	p := New()

	got := p.NextQuestions(domain.UserProfile{})

	assert.Equal(t, []string{
		QuestionAge,
		QuestionIncome,
		QuestionCategory,
		QuestionLocation,
	}, got)
}

func TestNextQuestions_NeverAsksForConcreteFields(t *testing.T) {
	p := New()

	got := p.NextQuestions(domain.UserProfile{
		Age:        intp(40),
		Categories: []string{"OBC"},
	})

	assert.NotContains(t, got, QuestionAge)
	assert.NotContains(t, got, QuestionCategory)
	assert.Contains(t, got, QuestionIncome)
	assert.Contains(t, got, QuestionLocation)
}

func TestNextQuestions_DependentsGatedByAge(t *testing.T) {
	p := New()

	// Age over the threshold, dependents unreported: question appears last.
	got := p.NextQuestions(domain.UserProfile{Age: intp(40)})
	assert.Equal(t, QuestionDependents, got[len(got)-1])

	// Age at the threshold: not asked.
	got = p.NextQuestions(domain.UserProfile{Age: intp(25)})
	assert.NotContains(t, got, QuestionDependents)

	// Dependents already known: not asked.
	got = p.NextQuestions(domain.UserProfile{Age: intp(40), Dependents: 2})
	assert.NotContains(t, got, QuestionDependents)

	// Age unknown: not asked even with zero dependents.
	got = p.NextQuestions(domain.UserProfile{})
	assert.NotContains(t, got, QuestionDependents)
}

func TestNextQuestions_TerminatesWhenGatingFieldsConcrete(t *testing.T) {
	p := New()

	full := domain.UserProfile{
		Age:          intp(40),
		AnnualIncome: intp(300000),
		Categories:   []string{"General"},
		Location:     &domain.Location{IsRural: true},
	}

	assert.True(t, p.Done(full))
	// Dependents is still at its zero default and age exceeds the gate,
	// but the planner has nothing left to drive the conversation with.
	assert.Empty(t, p.NextQuestions(full))
}

func TestNextQuestions_IsDeterministic(t *testing.T) {
	p := New()
	profile := domain.UserProfile{Age: intp(30)}

	a := p.NextQuestions(profile)
	b := p.NextQuestions(profile)
	assert.Equal(t, a, b)
}
