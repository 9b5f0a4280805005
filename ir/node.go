package ir

import (
	"maps"
	"slices"
	"strconv"
)

// Node is one node of an ordered document tree.
//
// Containers keep their children in definition order: Objects and Maps use
// Fields[i] as the key of Values[i], Arrays and Sets use Values alone.  Object
// keys are StringType nodes; Map keys may be any scalar node.  Sets hold
// structurally distinct members.
type Node struct {
	Type Type

	Fields []*Node
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.String = n.String
	dst.Bool = n.Bool
	dst.Number = n.Number
	if n.Float64 != nil {
		f := *n.Float64
		dst.Float64 = &f
	}
	if n.Int64 != nil {
		i := *n.Int64
		dst.Int64 = &i
	}
	if n.Fields != nil {
		dst.Fields = make([]*Node, len(n.Fields))
		for i, f := range n.Fields {
			dst.Fields[i] = f.Clone()
		}
	}
	if n.Values != nil {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dst.Values[i] = v.Clone()
		}
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func NewArray() *Node {
	return &Node{Type: ArrayType}
}

func NewSet() *Node {
	return &Node{Type: SetType}
}

func NewMap() *Node {
	return &Node{Type: MapType}
}

// FromMap builds an object from a go map, with fields sorted by key.
func FromMap(m map[string]*Node) *Node {
	res := NewObject()
	res.Fields = make([]*Node, 0, len(m))
	res.Values = make([]*Node, 0, len(m))
	for _, key := range slices.Sorted(maps.Keys(m)) {
		res.Fields = append(res.Fields, FromString(key))
		res.Values = append(res.Values, m[key])
	}
	return res
}

func FromSlice(vs []*Node) *Node {
	res := NewArray()
	res.Values = vs
	return res
}

// ToMap projects an object's fields to a go map, losing field order.
func ToMap(n *Node) map[string]*Node {
	if n.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(n.Fields))
	for i := range n.Fields {
		res[n.Fields[i].String] = n.Values[i]
	}
	return res
}

func (n *Node) Len() int {
	return len(n.Values)
}

// Field returns the value stored under an object field, or nil.
func (n *Node) Field(name string) *Node {
	i := n.fieldIndex(name)
	if i == -1 {
		return nil
	}
	return n.Values[i]
}

func (n *Node) fieldIndex(name string) int {
	for i := range n.Fields {
		if n.Fields[i].String == name {
			return i
		}
	}
	return -1
}

// FieldNames returns the object's field names in definition order.
func (n *Node) FieldNames() []string {
	res := make([]string, len(n.Fields))
	for i := range n.Fields {
		res[i] = n.Fields[i].String
	}
	return res
}

// SetField replaces the value under name, appending a new field when absent.
func (n *Node) SetField(name string, v *Node) {
	if i := n.fieldIndex(name); i != -1 {
		n.Values[i] = v
		return
	}
	n.Fields = append(n.Fields, FromString(name))
	n.Values = append(n.Values, v)
}

func (n *Node) RemoveField(name string) bool {
	i := n.fieldIndex(name)
	if i == -1 {
		return false
	}
	n.Fields = slices.Delete(n.Fields, i, i+1)
	n.Values = slices.Delete(n.Values, i, i+1)
	return true
}

// At returns the i'th member of an array or set, or nil when out of bounds.
func (n *Node) At(i int) *Node {
	if i < 0 || i >= len(n.Values) {
		return nil
	}
	return n.Values[i]
}

// SetAt sets the i'th member of an array, padding with nulls as needed.
func (n *Node) SetAt(i int, v *Node) {
	for len(n.Values) <= i {
		n.Values = append(n.Values, Null())
	}
	n.Values[i] = v
}

func (n *Node) RemoveAt(i int) bool {
	if i < 0 || i >= len(n.Values) {
		return false
	}
	n.Values = slices.Delete(n.Values, i, i+1)
	if n.Fields != nil {
		n.Fields = slices.Delete(n.Fields, i, i+1)
	}
	return true
}

// Add appends a member to a set unless an equal member is already present.
func (n *Node) Add(v *Node) bool {
	for _, m := range n.Values {
		if Compare(m, v) == 0 {
			return false
		}
	}
	n.Values = append(n.Values, v)
	return true
}

// MapKey returns the value stored under a map key's canonical string, or nil.
func (n *Node) MapKey(key string) *Node {
	for i := range n.Fields {
		if n.Fields[i].KeyString() == key {
			return n.Values[i]
		}
	}
	return nil
}

// Put sets the value under a map key, appending when the key is absent.
func (n *Node) Put(key, v *Node) {
	ks := key.KeyString()
	for i := range n.Fields {
		if n.Fields[i].KeyString() == ks {
			n.Values[i] = v
			return
		}
	}
	n.Fields = append(n.Fields, key)
	n.Values = append(n.Values, v)
}

// KeyString is the canonical string form of a scalar node, used for map key
// path steps and coercing value comparison.
func (n *Node) KeyString() string {
	switch n.Type {
	case NullType:
		return "null"
	case BoolType:
		return strconv.FormatBool(n.Bool)
	case StringType:
		return n.String
	case NumberType:
		if n.Int64 != nil {
			return strconv.FormatInt(*n.Int64, 10)
		}
		if n.Float64 != nil {
			return strconv.FormatFloat(*n.Float64, 'g', -1, 64)
		}
		return n.Number
	default:
		return n.String
	}
}

// Visit walks the tree depth first in definition order.  f is called once
// before descending (isPost false) and once after (isPost true); returning
// false from the pre call skips the node's children.
func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, v := range n.Values {
			if err := v.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}
