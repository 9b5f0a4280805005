package ir

import "testing"

func obj(kvs ...any) *Node {
	res := NewObject()
	for i := 0; i < len(kvs); i += 2 {
		v, err := FromGo(kvs[i+1])
		if err != nil {
			panic(err)
		}
		res.SetField(kvs[i].(string), v)
	}
	return res
}

func TestCompare(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b *Node
		want int
	}{
		{"nil-nil", nil, nil, 0},
		{"nil-lt", nil, Null(), -1},
		{"null-eq", Null(), Null(), 0},
		{"bool", FromBool(false), FromBool(true), -1},
		{"int", FromInt(2), FromInt(10), -1},
		{"int-float", FromInt(2), FromFloat(2.0), 0},
		{"float", FromFloat(2.5), FromFloat(2.25), 1},
		{"string", FromString("a"), FromString("b"), -1},
		{"cross-type", FromInt(100), FromString("a"), -1},
		{"obj-eq", obj("a", 1, "b", 2), obj("a", 1, "b", 2), 0},
		{"obj-value", obj("a", 1), obj("a", 2), -1},
		{"obj-len", obj("a", 1), obj("a", 1, "b", 2), -1},
		{"array-eq", mustFromGo([]any{1, 2}), mustFromGo([]any{1, 2}), 0},
		{"array-len", mustFromGo([]any{1, 2}), mustFromGo([]any{1}), 1},
	} {
		if got := Compare(tc.a, tc.b); got != tc.want {
			t.Errorf("%s: Compare = %d, want %d", tc.name, got, tc.want)
		}
		if got := Compare(tc.b, tc.a); got != -tc.want {
			t.Errorf("%s: reversed Compare = %d, want %d", tc.name, got, -tc.want)
		}
	}
}

func mustFromGo(v any) *Node {
	n, err := FromGo(v)
	if err != nil {
		panic(err)
	}
	return n
}
