package ir

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// Set is an ordered unique-value collection in Go form.  FromGo drops
// duplicate members, keeping first occurrence order.
type Set []any

// Map is an ordered key/value mapping in Go form, for mappings whose keys are
// not (or not only) strings.
type Map []MapItem

type MapItem struct {
	Key   any
	Value any
}

// FromGo converts a Go value into a document tree.
//
// Ordered inputs (slices, yaml.MapSlice, Set, Map, structs) keep their
// definition order; plain Go maps are ordered by sorted key for determinism.
func FromGo(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		return x.Clone(), nil
	case bool:
		return FromBool(x), nil
	case string:
		return FromString(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint:
		return FromInt(int64(x)), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case uint64:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case Set:
		res := NewSet()
		for _, m := range x {
			mn, err := FromGo(m)
			if err != nil {
				return nil, err
			}
			res.Add(mn)
		}
		return res, nil
	case Map:
		res := NewMap()
		for _, kv := range x {
			kn, err := FromGo(kv.Key)
			if err != nil {
				return nil, err
			}
			if !kn.Type.IsLeaf() {
				return nil, fmt.Errorf("map key must be a scalar, got %s", kn.Type)
			}
			vn, err := FromGo(kv.Value)
			if err != nil {
				return nil, err
			}
			res.Put(kn, vn)
		}
		return res, nil
	case yaml.MapSlice:
		res := NewObject()
		for _, kv := range x {
			vn, err := FromGo(kv.Value)
			if err != nil {
				return nil, err
			}
			res.SetField(fmt.Sprintf("%v", kv.Key), vn)
		}
		return res, nil
	}
	return fromGoReflect(reflect.ValueOf(v))
}

func fromGoReflect(val reflect.Value) (*Node, error) {
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return Null(), nil
		}
		return FromGo(val.Elem().Interface())

	case reflect.Slice, reflect.Array:
		res := NewArray()
		res.Values = make([]*Node, val.Len())
		for i := 0; i < val.Len(); i++ {
			vn, err := FromGo(val.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			res.Values[i] = vn
		}
		return res, nil

	case reflect.Map:
		return fromGoMap(val)

	case reflect.Struct:
		return fromGoStruct(val)

	case reflect.Bool:
		return FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FromInt(int64(val.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return FromFloat(val.Float()), nil
	case reflect.String:
		return FromString(val.String()), nil
	}
	return nil, fmt.Errorf("cannot convert %s to a document node", val.Kind())
}

// fromGoMap orders map entries by key string.  String-keyed maps become
// objects, anything else becomes a Map.
func fromGoMap(val reflect.Value) (*Node, error) {
	type rawKV struct {
		ks  string
		key reflect.Value
	}
	kvs := make([]rawKV, 0, val.Len())
	iter := val.MapRange()
	stringKeys := true
	for iter.Next() {
		k := iter.Key()
		for k.Kind() == reflect.Interface {
			k = k.Elem()
		}
		if k.Kind() != reflect.String {
			stringKeys = false
		}
		kvs = append(kvs, rawKV{ks: fmt.Sprintf("%v", k.Interface()), key: iter.Key()})
	}
	sort.Slice(kvs, func(i, j int) bool { return kvs[i].ks < kvs[j].ks })

	if stringKeys {
		res := NewObject()
		for _, kv := range kvs {
			vn, err := FromGo(val.MapIndex(kv.key).Interface())
			if err != nil {
				return nil, err
			}
			res.SetField(kv.ks, vn)
		}
		return res, nil
	}
	res := NewMap()
	for _, kv := range kvs {
		kn, err := FromGo(kv.key.Interface())
		if err != nil {
			return nil, err
		}
		if !kn.Type.IsLeaf() {
			return nil, fmt.Errorf("map key must be a scalar, got %s", kn.Type)
		}
		vn, err := FromGo(val.MapIndex(kv.key).Interface())
		if err != nil {
			return nil, err
		}
		res.Put(kn, vn)
	}
	return res, nil
}

// fromGoStruct converts exported fields in declaration order, honoring yaml
// tag renames and "-" omission.
func fromGoStruct(val reflect.Value) (*Node, error) {
	res := NewObject()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("yaml"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		vn, err := FromGo(val.Field(i).Interface())
		if err != nil {
			return nil, err
		}
		res.SetField(name, vn)
	}
	return res, nil
}

// ToGo converts a document tree back to plain Go values.  Objects become
// map[string]any (field order is lost there), arrays []any, sets Set, maps
// Map, numbers int64 or float64.
func ToGo(n *Node) any {
	switch n.Type {
	case NullType:
		return nil
	case BoolType:
		return n.Bool
	case StringType:
		return n.String
	case NumberType:
		if n.Int64 != nil {
			return *n.Int64
		}
		if n.Float64 != nil {
			return *n.Float64
		}
		return n.Number
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToGo(v)
		}
		return res
	case SetType:
		res := make(Set, len(n.Values))
		for i, v := range n.Values {
			res[i] = ToGo(v)
		}
		return res
	case MapType:
		res := make(Map, len(n.Fields))
		for i := range n.Fields {
			res[i] = MapItem{Key: ToGo(n.Fields[i]), Value: ToGo(n.Values[i])}
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i := range n.Fields {
			res[n.Fields[i].String] = ToGo(n.Values[i])
		}
		return res
	}
	return nil
}
