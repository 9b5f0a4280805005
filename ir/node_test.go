package ir

import (
	"testing"
)

func TestCloneIndependence(t *testing.T) {
	orig := NewObject()
	orig.SetField("a", FromInt(1))
	inner := NewObject()
	inner.SetField("b", FromString("x"))
	orig.SetField("nested", inner)

	cp := orig.Clone()
	cp.Field("nested").SetField("b", FromString("changed"))
	cp.SetField("a", FromInt(2))

	if got := orig.Field("nested").Field("b").String; got != "x" {
		t.Errorf("clone mutation leaked into original: %q", got)
	}
	if got := *orig.Field("a").Int64; got != 1 {
		t.Errorf("clone mutation leaked into original: %d", got)
	}
}

func TestSetFieldOrder(t *testing.T) {
	n := NewObject()
	n.SetField("z", FromInt(1))
	n.SetField("a", FromInt(2))
	n.SetField("z", FromInt(3))

	names := n.FieldNames()
	if len(names) != 2 || names[0] != "z" || names[1] != "a" {
		t.Errorf("unexpected field order %v", names)
	}
	if got := *n.Field("z").Int64; got != 3 {
		t.Errorf("replaced field z = %d, want 3", got)
	}
}

func TestSetAdd(t *testing.T) {
	s := NewSet()
	if !s.Add(FromInt(1)) {
		t.Error("first add rejected")
	}
	if !s.Add(FromString("1")) {
		t.Error("string 1 should be distinct from number 1")
	}
	if s.Add(FromInt(1)) {
		t.Error("duplicate add accepted")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}

func TestMapPut(t *testing.T) {
	m := NewMap()
	m.Put(FromInt(3), FromString("three"))
	m.Put(FromBool(true), FromString("yes"))
	m.Put(FromInt(3), FromString("drei"))

	if m.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.Len())
	}
	if got := m.MapKey("3"); got == nil || got.String != "drei" {
		t.Errorf("key 3 = %v", got)
	}
	if got := m.MapKey("true"); got == nil || got.String != "yes" {
		t.Errorf("key true = %v", got)
	}
}

func TestSetAtPads(t *testing.T) {
	a := NewArray()
	a.SetAt(2, FromString("x"))
	if a.Len() != 3 {
		t.Fatalf("len = %d, want 3", a.Len())
	}
	if a.At(0).Type != NullType || a.At(1).Type != NullType {
		t.Error("padding is not null")
	}
	if a.At(2).String != "x" {
		t.Errorf("At(2) = %v", a.At(2))
	}
}

func TestKeyString(t *testing.T) {
	for _, tc := range []struct {
		node *Node
		want string
	}{
		{FromString("hi"), "hi"},
		{FromInt(-4), "-4"},
		{FromFloat(1.5), "1.5"},
		{FromBool(false), "false"},
		{Null(), "null"},
	} {
		if got := tc.node.KeyString(); got != tc.want {
			t.Errorf("KeyString(%s) = %q, want %q", tc.node.Type, got, tc.want)
		}
	}
}

func TestVisitOrder(t *testing.T) {
	n := NewObject()
	inner := NewArray()
	inner.SetAt(0, FromInt(1))
	inner.SetAt(1, FromInt(2))
	n.SetField("xs", inner)
	n.SetField("y", FromString("last"))

	var pre []Type
	err := n.Visit(func(v *Node, isPost bool) (bool, error) {
		if !isPost {
			pre = append(pre, v.Type)
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []Type{ObjectType, ArrayType, NumberType, NumberType, StringType}
	if len(pre) != len(want) {
		t.Fatalf("visited %v, want %v", pre, want)
	}
	for i := range want {
		if pre[i] != want[i] {
			t.Fatalf("visited %v, want %v", pre, want)
		}
	}
}
