package flatsync

import (
	"fmt"

	"github.com/signadot/flatsync/dotpath"
	"github.com/signadot/flatsync/ir"
)

// Rebuild reconstructs a nested tree from a flattened entry list.  The root
// is an object; for each intermediate level the container kind is chosen by
// the declared numericness of the next structural step, never by re-parsing
// the dot path string.  Entries apply in list order and the last write for a
// given path wins, so container-inclusive listings rebuild correctly: a
// container entry installs its sub-tree and the leaf entries that follow
// rewrite the same leaves in place.
//
// Rebuilt trees contain objects and arrays only; map and set containers come
// back as objects keyed by canonical key string, respectively arrays.
func Rebuild(entries []Entry) (*ir.Node, error) {
	root := ir.NewObject()
	for i := range entries {
		e := &entries[i]
		if len(e.Path) == 0 {
			continue
		}
		if e.Value == nil {
			return nil, fmt.Errorf("%w: entry %q has no value", ErrInvalidArgument, e.DotPath)
		}
		parent, err := ensureParents(root, e.Path)
		if err != nil {
			return nil, err
		}
		setStep(parent, e.Path.Key(), e.Value.Clone())
	}
	return root, nil
}

// ensureParents walks/creates the intermediate containers along path and
// returns the node owning the final step.
func ensureParents(root *ir.Node, path dotpath.Path) (*ir.Node, error) {
	cur := root
	for i := 0; i < len(path)-1; i++ {
		step := path[i]
		next := path[i+1]
		child := childAt(cur, step)
		if !stepFits(child, next) {
			if next.Numeric() {
				child = ir.NewArray()
			} else {
				child = ir.NewObject()
			}
			setStep(cur, step, child)
		}
		cur = child
	}
	return cur, nil
}

// stepFits reports whether child is a container that step can address.  An
// ambiguous all-digit step carries both a field and an index, so it fits
// keyed and sequence containers alike; the container present decides.
func stepFits(child *ir.Node, step dotpath.Step) bool {
	if child == nil || child.Type.IsLeaf() {
		return false
	}
	switch child.Type {
	case ir.ArrayType, ir.SetType:
		return step.Numeric()
	}
	return step.Field != nil
}

func childAt(n *ir.Node, step dotpath.Step) *ir.Node {
	switch n.Type {
	case ir.ObjectType:
		return n.Field(step.String())
	case ir.MapType:
		return n.MapKey(step.String())
	case ir.ArrayType, ir.SetType:
		if !step.Numeric() {
			return nil
		}
		return n.At(*step.Index)
	}
	return nil
}

func setStep(n *ir.Node, step dotpath.Step, v *ir.Node) {
	switch n.Type {
	case ir.ArrayType, ir.SetType:
		if step.Numeric() {
			n.SetAt(*step.Index, v)
			return
		}
		// declared field step against a sequence: fall through to field form
		n.Type = ir.ObjectType
		n.SetField(step.String(), v)
	case ir.MapType:
		n.Put(ir.FromString(step.String()), v)
	default:
		n.SetField(step.String(), v)
	}
}

func removeStep(n *ir.Node, step dotpath.Step) bool {
	switch n.Type {
	case ir.ArrayType, ir.SetType:
		if !step.Numeric() {
			return false
		}
		return n.RemoveAt(*step.Index)
	case ir.MapType, ir.ObjectType:
		for i := range n.Fields {
			if n.Fields[i].KeyString() == step.String() {
				n.RemoveAt(i)
				return true
			}
		}
	}
	return false
}
