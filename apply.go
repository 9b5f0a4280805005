package flatsync

import (
	"fmt"

	"github.com/signadot/flatsync/debug"
	"github.com/signadot/flatsync/dotpath"
	"github.com/signadot/flatsync/ir"
)

// ApplyChanges applies a change list to target in place and returns target.
// Intermediate containers are created along each change's path as needed;
// removed changes delete the final step, every other change sets it to the
// change's Value, falling back to NewValue.
//
// Index removals are deferred: the slot is marked and sequences are compacted
// once after the whole list, so sibling index removals keep addressing their
// original positions instead of shifting each other.
func ApplyChanges(target *ir.Node, changes []Change) (*ir.Node, error) {
	if target.Type.IsLeaf() {
		return nil, fmt.Errorf("%w: cannot apply changes to a %s", ErrInvalidArgument, target.Type)
	}
	for i := range changes {
		ch := &changes[i]
		steps, err := changeSteps(ch)
		if err != nil {
			return nil, err
		}
		if debug.Apply() {
			debug.Logf("apply %s at %s\n", ch.Type, ch.Path)
		}
		switch ch.Type {
		case Removed:
			parent := navigate(target, steps[:len(steps)-1])
			if parent != nil {
				clearStep(parent, steps.Key())
			}
		case Added, Modified:
			parent, err := ensureParents(target, steps)
			if err != nil {
				return nil, err
			}
			v := ch.Value
			if v == nil {
				v = ch.NewValue
			}
			if v == nil {
				v = ir.Null()
			}
			setStep(parent, steps.Key(), v.Clone())
		default:
			return nil, fmt.Errorf("%w: unknown change type %q", ErrInvalidArgument, ch.Type)
		}
	}
	compact(target)
	return target, nil
}

// tombstone marks an array or set slot deleted while a change list is in
// flight; compact sweeps it out afterwards.  Identified by pointer.
var tombstone = ir.Null()

// clearStep marks an index slot for deferred removal and removes keyed
// entries immediately, where deletion cannot shift siblings.
func clearStep(n *ir.Node, step dotpath.Step) {
	switch n.Type {
	case ir.ArrayType, ir.SetType:
		if step.Numeric() {
			if n.At(*step.Index) != nil {
				n.Values[*step.Index] = tombstone
			}
			return
		}
	}
	removeStep(n, step)
}

func compact(n *ir.Node) {
	switch n.Type {
	case ir.ArrayType, ir.SetType:
		kept := n.Values[:0]
		for _, v := range n.Values {
			if v == tombstone {
				continue
			}
			compact(v)
			kept = append(kept, v)
		}
		n.Values = kept
	case ir.MapType, ir.ObjectType:
		for _, v := range n.Values {
			compact(v)
		}
	}
}

// FromDiff returns a clone of base with diff applied; base is not touched.
func FromDiff(base *ir.Node, diff []Change) (*ir.Node, error) {
	return ApplyChanges(base.Clone(), diff)
}

// ReverseChanges computes the structural inverse of a change list: added
// becomes removed, removed becomes added carrying the old value, and
// modified swaps its old and new values.  Applying a change list and then
// its inverse restores the pre-change structure.
func ReverseChanges(diff []Change) ([]Change, error) {
	res := make([]Change, 0, len(diff))
	for i := range diff {
		ch := &diff[i]
		inv := Change{Path: ch.Path, Steps: ch.Steps.Clone()}
		switch ch.Type {
		case Added:
			inv.Type = Removed
			inv.OldValue = cloneNode(firstNode(ch.Value, ch.NewValue))
		case Removed:
			inv.Type = Added
			inv.Value = cloneNode(firstNode(ch.OldValue, ch.Value))
			inv.NewValue = cloneNode(inv.Value)
		case Modified:
			inv.Type = Modified
			inv.OldValue = cloneNode(ch.NewValue)
			inv.NewValue = cloneNode(ch.OldValue)
		default:
			return nil, fmt.Errorf("%w: unknown change type %q", ErrInvalidArgument, ch.Type)
		}
		res = append(res, inv)
	}
	return res, nil
}

func changeSteps(ch *Change) (dotpath.Path, error) {
	if len(ch.Steps) > 0 {
		return ch.Steps, nil
	}
	steps, err := dotpath.Parse(ch.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: change path: %v", ErrInvalidArgument, err)
	}
	return steps, nil
}

// navigate follows existing containers only, returning nil when the path is
// absent.
func navigate(node *ir.Node, steps dotpath.Path) *ir.Node {
	cur := node
	for _, step := range steps {
		if cur == nil || cur.Type.IsLeaf() {
			return nil
		}
		cur = childAt(cur, step)
	}
	return cur
}

func firstNode(ns ...*ir.Node) *ir.Node {
	for _, n := range ns {
		if n != nil {
			return n
		}
	}
	return nil
}

func cloneNode(n *ir.Node) *ir.Node {
	if n == nil {
		return nil
	}
	return n.Clone()
}
