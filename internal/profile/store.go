// Package profile holds the evolving fact set for one conversation and
// detects contradictions between turns.
package profile

import (
	"sync"
	"time"

	"github.com/sahayak-ai/sahayak/internal/domain"
)

// Store owns the UserProfile and the contradiction log for a single
// conversation. Scalar fields are last-write-wins with the conflict
// surfaced as a Contradiction; set fields merge additively. A nil or
// empty incoming value means "not mentioned this turn" and never
// touches the stored profile.
type Store struct {
	mu             sync.Mutex
	profile        domain.UserProfile
	contradictions []domain.Contradiction
	clarifications []string
	now            func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// Merge applies one turn's extracted facts and returns the resulting
// snapshot together with the contradictions this payload introduced.
func (s *Store) Merge(facts domain.ProfileFacts) (domain.UserProfile, []domain.Contradiction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fresh []domain.Contradiction

	if facts.Age != nil {
		if c := s.setScalar(domain.FieldAge, intValue(s.profile.Age), *facts.Age, s.profile.Age != nil); c != nil {
			fresh = append(fresh, *c)
		}
		s.profile.Age = intPtr(*facts.Age)
	}

	if facts.AnnualIncome != nil {
		if c := s.setScalar(domain.FieldAnnualIncome, intValue(s.profile.AnnualIncome), *facts.AnnualIncome, s.profile.AnnualIncome != nil); c != nil {
			fresh = append(fresh, *c)
		}
		s.profile.AnnualIncome = intPtr(*facts.AnnualIncome)
	}

	// Categories are a set: union, never a contradiction.
	for _, cat := range facts.Categories {
		if cat == "" {
			continue
		}
		if !contains(s.profile.Categories, cat) {
			s.profile.Categories = append(s.profile.Categories, cat)
		}
	}

	if facts.Location != nil {
		if s.profile.Location != nil && s.profile.Location.IsRural != facts.Location.IsRural {
			c := s.record(domain.FieldLocation, *s.profile.Location, *facts.Location)
			fresh = append(fresh, c)
		}
		loc := *facts.Location
		s.profile.Location = &loc
	}

	if facts.Occupation != nil && *facts.Occupation != "" {
		if s.profile.Occupation != nil && *s.profile.Occupation != *facts.Occupation {
			c := s.record(domain.FieldOccupation, *s.profile.Occupation, *facts.Occupation)
			fresh = append(fresh, c)
		}
		occ := *facts.Occupation
		s.profile.Occupation = &occ
	}

	if facts.IsStudent != nil {
		if s.profile.IsStudent != nil && *s.profile.IsStudent != *facts.IsStudent {
			c := s.record(domain.FieldIsStudent, *s.profile.IsStudent, *facts.IsStudent)
			fresh = append(fresh, c)
		}
		st := *facts.IsStudent
		s.profile.IsStudent = &st
	}

	if facts.Dependents != nil {
		// Zero doubles as "never reported", so only a non-zero previous
		// value can be contradicted.
		if s.profile.Dependents != 0 && s.profile.Dependents != *facts.Dependents {
			c := s.record(domain.FieldDependents, s.profile.Dependents, *facts.Dependents)
			fresh = append(fresh, c)
		}
		s.profile.Dependents = *facts.Dependents
	}

	return s.snapshotLocked(), fresh
}

// setScalar records a contradiction for a known, differing int field.
// The caller still performs the overwrite (last-write-wins).
func (s *Store) setScalar(field string, prev, next int, known bool) *domain.Contradiction {
	if !known || prev == next {
		return nil
	}
	c := s.record(field, prev, next)
	return &c
}

func (s *Store) record(field string, prev, next any) domain.Contradiction {
	c := domain.Contradiction{
		Field:         field,
		PreviousValue: prev,
		NewValue:      next,
		DetectedAt:    s.now(),
	}
	s.contradictions = append(s.contradictions, c)
	s.clarifications = append(s.clarifications, clarificationText(field))
	return c
}

// Snapshot returns a read-only copy of the profile; internal slices and
// pointers are never shared with callers.
func (s *Store) Snapshot() domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.UserProfile {
	p := domain.UserProfile{Dependents: s.profile.Dependents}
	if s.profile.Age != nil {
		p.Age = intPtr(*s.profile.Age)
	}
	if s.profile.AnnualIncome != nil {
		p.AnnualIncome = intPtr(*s.profile.AnnualIncome)
	}
	if len(s.profile.Categories) > 0 {
		p.Categories = append([]string(nil), s.profile.Categories...)
	}
	if s.profile.Location != nil {
		loc := *s.profile.Location
		p.Location = &loc
	}
	if s.profile.Occupation != nil {
		occ := *s.profile.Occupation
		p.Occupation = &occ
	}
	if s.profile.IsStudent != nil {
		st := *s.profile.IsStudent
		p.IsStudent = &st
	}
	return p
}

// Contradictions returns a copy of the open contradiction log.
func (s *Store) Contradictions() []domain.Contradiction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Contradiction(nil), s.contradictions...)
}

// Clarifications returns the pending clarification texts, one per open
// contradiction.
func (s *Store) Clarifications() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.clarifications...)
}

// ResolveContradictions clears the contradiction log and any pending
// clarifications. Called only after the conversation explicitly confirmed
// the correct value with the user.
func (s *Store) ResolveContradictions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contradictions = nil
	s.clarifications = nil
}

func clarificationText(field string) string {
	return "Conflicting values reported for " + field + "; please confirm which one is correct."
}

func contains(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

func intPtr(v int) *int { return &v }

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
