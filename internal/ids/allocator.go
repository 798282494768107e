// Package ids issues per-kind string identifiers.
package ids

import "strconv"

// Kind names an identifier space.
type Kind string

const (
	KindLearner    Kind = "learner"
	KindSubject    Kind = "subject"
	KindCredential Kind = "credential"
)

// Allocator hands out strictly increasing, string-encoded integers per kind.
// Identifiers are never reused; gaps left by deletions stay gaps.
//
// Allocator is not safe for concurrent use. The resolver serializes calls.
type Allocator struct {
	next map[Kind]int
}

func NewAllocator() *Allocator {
	return &Allocator{next: make(map[Kind]int)}
}

// Seed positions the counter for kind after an existing collection of the
// given size, so the next identifier is size+1. Seeding never moves a counter
// backwards.
func (a *Allocator) Seed(kind Kind, size int) {
	if size+1 > a.peek(kind) {
		a.next[kind] = size + 1
	}
}

// Next returns the next identifier for kind.
func (a *Allocator) Next(kind Kind) string {
	n := a.peek(kind)
	a.next[kind] = n + 1
	return strconv.Itoa(n)
}

// Reset restarts every kind at 1.
func (a *Allocator) Reset() {
	clear(a.next)
}

func (a *Allocator) peek(kind Kind) int {
	if n, ok := a.next[kind]; ok {
		return n
	}
	return 1
}
