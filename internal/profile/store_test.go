package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
func boolp(v bool) *bool    { return &v }

func TestMerge_AdoptsUnknownFieldsWithoutContradiction(t *testing.T) {
	s := NewStore()

	snap, fresh := s.Merge(domain.ProfileFacts{
		Age:          intp(30),
		AnnualIncome: intp(400000),
		Location:     &domain.Location{IsRural: true},
	})

	assert.Empty(t, fresh)
	require.NotNil(t, snap.Age)
	assert.Equal(t, 30, *snap.Age)
	require.NotNil(t, snap.AnnualIncome)
	assert.Equal(t, 400000, *snap.AnnualIncome)
	require.NotNil(t, snap.Location)
	assert.True(t, snap.Location.IsRural)
}

func TestMerge_ScalarConflictRecordsContradictionAndOverwrites(t *testing.T) {
	s := NewStore()
	s.Merge(domain.ProfileFacts{Age: intp(30)})

	snap, fresh := s.Merge(domain.ProfileFacts{Age: intp(40)})

	require.Len(t, fresh, 1)
	assert.Equal(t, domain.FieldAge, fresh[0].Field)
	assert.Equal(t, 30, fresh[0].PreviousValue)
	assert.Equal(t, 40, fresh[0].NewValue)
	assert.False(t, fresh[0].DetectedAt.IsZero())

	require.NotNil(t, snap.Age)
	assert.Equal(t, 40, *snap.Age, "last write wins")
	assert.Len(t, s.Contradictions(), 1)
	assert.Len(t, s.Clarifications(), 1)
}

func TestMerge_SameValueIsNotAContradiction(t *testing.T) {
	s := NewStore()
	s.Merge(domain.ProfileFacts{Age: intp(30)})

	_, fresh := s.Merge(domain.ProfileFacts{Age: intp(30)})

	assert.Empty(t, fresh)
	assert.Empty(t, s.Contradictions())
}

func TestMerge_CategoriesUnionWithoutContradiction(t *testing.T) {
	s := NewStore()
	s.Merge(domain.ProfileFacts{Categories: []string{"SC"}})

	snap, fresh := s.Merge(domain.ProfileFacts{Categories: []string{"OBC"}})

	assert.Empty(t, fresh)
	assert.ElementsMatch(t, []string{"SC", "OBC"}, snap.Categories)

	// Duplicates are not re-added.
	snap, _ = s.Merge(domain.ProfileFacts{Categories: []string{"SC"}})
	assert.Len(t, snap.Categories, 2)
}

func TestMerge_EmptyValuesMeanNotMentioned(t *testing.T) {
	s := NewStore()
	s.Merge(domain.ProfileFacts{Occupation: strp("farmer"), Categories: []string{"OBC"}})

	snap, fresh := s.Merge(domain.ProfileFacts{
		Occupation: strp(""),
		Categories: []string{""},
	})

	assert.Empty(t, fresh)
	require.NotNil(t, snap.Occupation)
	assert.Equal(t, "farmer", *snap.Occupation)
	assert.Equal(t, []string{"OBC"}, snap.Categories)
}

func TestMerge_DependentsContradictsOnlyKnownNonZero(t *testing.T) {
	s := NewStore()

	_, fresh := s.Merge(domain.ProfileFacts{Dependents: intp(3)})
	assert.Empty(t, fresh, "first report over the zero default is adoption")

	snap, fresh := s.Merge(domain.ProfileFacts{Dependents: intp(5)})
	require.Len(t, fresh, 1)
	assert.Equal(t, domain.FieldDependents, fresh[0].Field)
	assert.Equal(t, 5, snap.Dependents)
}

func TestMerge_BooleanAndLocationConflicts(t *testing.T) {
	s := NewStore()
	s.Merge(domain.ProfileFacts{
		IsStudent: boolp(true),
		Location:  &domain.Location{IsRural: true},
	})

	_, fresh := s.Merge(domain.ProfileFacts{
		IsStudent: boolp(false),
		Location:  &domain.Location{IsRural: false},
	})

	assert.Len(t, fresh, 2)
}

func TestSnapshot_IsIsolatedFromStore(t *testing.T) {
	s := NewStore()
	s.Merge(domain.ProfileFacts{Age: intp(30), Categories: []string{"SC"}})

	snap := s.Snapshot()
	*snap.Age = 99
	snap.Categories[0] = "mutated"

	again := s.Snapshot()
	assert.Equal(t, 30, *again.Age)
	assert.Equal(t, []string{"SC"}, again.Categories)
}

func TestResolveContradictions_ClearsLogAndClarifications(t *testing.T) {
	s := NewStore()
	s.Merge(domain.ProfileFacts{Age: intp(30)})
	s.Merge(domain.ProfileFacts{Age: intp(40)})
	require.NotEmpty(t, s.Contradictions())

	s.ResolveContradictions()

	assert.Empty(t, s.Contradictions())
	assert.Empty(t, s.Clarifications())

	// Profile keeps the last written value.
	snap := s.Snapshot()
	require.NotNil(t, snap.Age)
	assert.Equal(t, 40, *snap.Age)
}
