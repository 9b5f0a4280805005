package flatsync

import (
	"github.com/signadot/flatsync/dotpath"
	"github.com/signadot/flatsync/ir"
)

// Entry is one flattened record: a structural path paired with the value
// found there.  Minimal flattening emits entries for leaves only; the
// container-inclusive variant also emits one entry per container node, whose
// Value is a clone of the full sub-tree.
type Entry struct {
	Path    dotpath.Path
	DotPath string
	Key     dotpath.Step
	Value   *ir.Node
	Kind    string
}

func (e Entry) Clone() Entry {
	res := e
	res.Path = e.Path.Clone()
	if e.Value != nil {
		res.Value = e.Value.Clone()
	}
	return res
}

type flattenConfig struct {
	containers bool
}

type FlattenOption func(*flattenConfig)

// FlattenContainers makes Flatten additionally emit one entry per container
// node, so intermediate nodes are individually addressable.
func FlattenContainers(v bool) FlattenOption {
	return func(c *flattenConfig) { c.containers = v }
}

// Flatten walks node depth first in definition order, children before
// siblings, and returns entries in that same order.  Object and map children
// follow the container's stored field order, array and set children their
// ordinal order; map keys contribute their canonical string as the path
// step and set members a 0-based enumeration index.
//
// A scalar root has no addressable children and yields no entries.
func Flatten(node *ir.Node, opts ...FlattenOption) []Entry {
	cfg := &flattenConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	var res []Entry
	flattenInto(&res, node, nil, cfg)
	return res
}

func flattenInto(dst *[]Entry, node *ir.Node, path dotpath.Path, cfg *flattenConfig) {
	if node.Type.IsLeaf() {
		if len(path) == 0 {
			return
		}
		*dst = append(*dst, entryAt(path, node))
		return
	}
	if cfg.containers && len(path) > 0 {
		*dst = append(*dst, entryAt(path, node))
	}
	switch node.Type {
	case ir.ObjectType:
		for i := range node.Fields {
			flattenInto(dst, node.Values[i], path.Child(dotpath.FieldStep(node.Fields[i].String)), cfg)
		}
	case ir.MapType:
		for i := range node.Fields {
			flattenInto(dst, node.Values[i], path.Child(dotpath.FieldStep(node.Fields[i].KeyString())), cfg)
		}
	case ir.ArrayType, ir.SetType:
		for i, v := range node.Values {
			flattenInto(dst, v, path.Child(dotpath.IndexStep(i)), cfg)
		}
	}
}

func entryAt(path dotpath.Path, node *ir.Node) Entry {
	return Entry{
		Path:    path,
		DotPath: path.String(),
		Key:     path.Key(),
		Value:   node.Clone(),
		Kind:    node.Type.Kind(),
	}
}

// cloneEntries deep-copies an entry list.
func cloneEntries(entries []Entry) []Entry {
	res := make([]Entry, len(entries))
	for i := range entries {
		res[i] = entries[i].Clone()
	}
	return res
}
