package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes structurally.
// The result is 0 if a == b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}
	switch a.Type {
	case NullType:
		return 0
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case ArrayType, SetType:
		return compareValues(a, b)
	case MapType, ObjectType:
		return compareKeyed(a, b)
	}
	return 0
}

// Equal reports structural equality.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank orders types for cross-type comparison:
// Null < Bool < Number < String < Array < Set < Map < Object.
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case ArrayType:
		return 4
	case SetType:
		return 5
	case MapType:
		return 6
	case ObjectType:
		return 7
	}
	return 8
}

func compareNumbers(a, b *Node) int {
	if a.Int64 != nil && b.Int64 != nil {
		return cmp.Compare(*a.Int64, *b.Int64)
	}
	af, aok := a.asFloat()
	bf, bok := b.asFloat()
	if aok && bok {
		return cmp.Compare(af, bf)
	}
	return strings.Compare(a.KeyString(), b.KeyString())
}

func (n *Node) asFloat() (float64, bool) {
	if n.Float64 != nil {
		return *n.Float64, true
	}
	if n.Int64 != nil {
		return float64(*n.Int64), true
	}
	return 0, false
}

func compareValues(a, b *Node) int {
	if c := cmp.Compare(len(a.Values), len(b.Values)); c != 0 {
		return c
	}
	for i := range a.Values {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareKeyed(a, b *Node) int {
	if c := cmp.Compare(len(a.Fields), len(b.Fields)); c != 0 {
		return c
	}
	for i := range a.Fields {
		if c := Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return 0
}
