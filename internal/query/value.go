package query

import "golang.org/x/text/collate"

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindString
	kindInt
)

// Value is a sortable field value. The zero Value is absent.
type Value struct {
	kind valueKind
	s    string
	n    int
}

// String wraps a string field value.
func String(s string) Value {
	return Value{kind: kindString, s: s}
}

// Int wraps an integer field value.
func Int(n int) Value {
	return Value{kind: kindInt, n: n}
}

// Absent is a missing field value. It compares equal to everything.
var Absent = Value{}

// IsAbsent reports whether the value is missing.
func (v Value) IsAbsent() bool {
	return v.kind == kindAbsent
}

// compare orders two values. Pairs where either side is absent, or the kinds
// differ, compare equal so a stable sort keeps their input order.
func compare(col *collate.Collator, a, b Value) int {
	if a.kind == kindAbsent || b.kind == kindAbsent || a.kind != b.kind {
		return 0
	}
	switch a.kind {
	case kindInt:
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		}
		return 0
	default:
		return col.CompareString(a.s, b.s)
	}
}
