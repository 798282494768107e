// Package enrollment keeps the many-to-many relation between learners and
// subjects.
package enrollment

import (
	"cmp"
	"slices"
	"strconv"
)

// Set is a set of entity identifiers.
type Set map[string]struct{}

// Has reports membership.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in numeric identifier order, falling back to
// lexical order for non-numeric identifiers. Only tests need a deterministic
// order; the resolver walks collections instead.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.SortFunc(out, compareIDs)
	return out
}

func compareIDs(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return cmp.Compare(na, nb)
	}
	return cmp.Compare(a, b)
}

// Store maps each learner to the set of subjects it is enrolled in. The
// learner-to-subjects direction is the only one stored; LearnersOf derives
// the reverse view by scanning.
//
// Store validates nothing about the identifiers it is given and is not safe
// for concurrent use. The resolver checks existence and serializes access.
type Store struct {
	edges map[string]Set
}

func NewStore() *Store {
	return &Store{edges: make(map[string]Set)}
}

// Init ensures the learner has an entry, empty if new.
func (s *Store) Init(learnerID string) {
	if _, ok := s.edges[learnerID]; !ok {
		s.edges[learnerID] = make(Set)
	}
}

// Link adds an edge. Adding an existing edge is a no-op.
func (s *Store) Link(learnerID, subjectID string) {
	s.Init(learnerID)
	s.edges[learnerID][subjectID] = struct{}{}
}

// Unlink removes an edge. Removing a missing edge is a no-op.
func (s *Store) Unlink(learnerID, subjectID string) {
	if subjects, ok := s.edges[learnerID]; ok {
		delete(subjects, subjectID)
	}
}

// SubjectsOf returns a copy of the learner's subject set.
func (s *Store) SubjectsOf(learnerID string) Set {
	out := make(Set, len(s.edges[learnerID]))
	for id := range s.edges[learnerID] {
		out[id] = struct{}{}
	}
	return out
}

// LearnersOf returns every learner whose set contains subjectID.
func (s *Store) LearnersOf(subjectID string) Set {
	out := make(Set)
	for learnerID, subjects := range s.edges {
		if subjects.Has(subjectID) {
			out[learnerID] = struct{}{}
		}
	}
	return out
}

// DropLearner removes the learner's whole entry.
func (s *Store) DropLearner(learnerID string) {
	delete(s.edges, learnerID)
}

// DropSubject removes subjectID from every learner's set. Learners left with
// no subjects keep an empty entry.
func (s *Store) DropSubject(subjectID string) {
	for _, subjects := range s.edges {
		delete(subjects, subjectID)
	}
}

// Count returns the total number of edges.
func (s *Store) Count() int {
	n := 0
	for _, subjects := range s.edges {
		n += len(subjects)
	}
	return n
}

// HasEntry reports whether the learner has an entry, even an empty one. It
// lets tests observe Init and DropLearner, which Len and SubjectsOf cannot
// tell apart.
func (s *Store) HasEntry(learnerID string) bool {
	_, ok := s.edges[learnerID]
	return ok
}

// Reset removes every entry.
func (s *Store) Reset() {
	clear(s.edges)
}
