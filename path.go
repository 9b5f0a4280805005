package flatsync

import (
	"fmt"

	"github.com/signadot/flatsync/dotpath"
	"github.com/signadot/flatsync/ir"
)

// Get returns a clone of the node at dotPath, or nil when the path does not
// exist.  All-digit segments resolve against the container actually found:
// an index for arrays and sets, a field for objects and maps.
func Get(node *ir.Node, dotPath string) (*ir.Node, error) {
	path, err := dotpath.Parse(dotPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	cur := node
	for _, step := range path {
		if cur == nil || cur.Type.IsLeaf() {
			return nil, nil
		}
		cur = childAt(cur, step)
	}
	if cur == nil {
		return nil, nil
	}
	return cur.Clone(), nil
}

// Set stores value at dotPath, creating intermediate containers along the
// way.  Intermediates are arrays when the following segment is numeric,
// objects otherwise.
func Set(node *ir.Node, dotPath string, value any) error {
	path, err := dotpath.Parse(dotPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if node.Type.IsLeaf() {
		return fmt.Errorf("%w: cannot set %q in a %s", ErrInvalidArgument, dotPath, node.Type)
	}
	v, err := ir.FromGo(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	parent, err := ensureParents(node, path)
	if err != nil {
		return err
	}
	setStep(parent, path.Key(), v)
	return nil
}
