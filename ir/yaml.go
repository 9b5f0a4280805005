package ir

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// FromYAML parses a YAML (or JSON) document into a tree, keeping mapping
// fields in document order.
func FromYAML(data []byte) (*Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return FromGo(v)
}

// ToYAML renders a tree as YAML with object fields in definition order.
// Sets render as sequences, maps as mappings keyed by canonical key strings.
func ToYAML(n *Node) ([]byte, error) {
	return yaml.Marshal(toYAMLValue(n))
}

func toYAMLValue(n *Node) any {
	switch n.Type {
	case ObjectType:
		res := make(yaml.MapSlice, len(n.Fields))
		for i := range n.Fields {
			res[i] = yaml.MapItem{Key: n.Fields[i].String, Value: toYAMLValue(n.Values[i])}
		}
		return res
	case MapType:
		res := make(yaml.MapSlice, len(n.Fields))
		for i := range n.Fields {
			res[i] = yaml.MapItem{Key: ToGo(n.Fields[i]), Value: toYAMLValue(n.Values[i])}
		}
		return res
	case ArrayType, SetType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = toYAMLValue(v)
		}
		return res
	default:
		return ToGo(n)
	}
}

// MustYAML is a convenience for debug output and tests.
func MustYAML(n *Node) string {
	d, err := ToYAML(n)
	if err != nil {
		return fmt.Sprintf("<encode error: %v>", err)
	}
	return string(d)
}

// MustYAMLInline renders a node in flow style on a single line.
func MustYAMLInline(n *Node) string {
	if n == nil {
		return "null"
	}
	d, err := yaml.MarshalWithOptions(toYAMLValue(n), yaml.Flow(true))
	if err != nil {
		return fmt.Sprintf("<encode error: %v>", err)
	}
	return strings.TrimRight(string(d), "\n")
}
