package flatsync

import (
	"fmt"
	"strings"
	"sync"

	"github.com/signadot/flatsync/dotpath"
	"github.com/signadot/flatsync/ir"
)

// SyncTool owns an immutable baseline snapshot and a mutable flattened
// working set.  The baseline is set once at construction and is the sole
// diff reference for [SyncTool.Changes]; callers wanting a new baseline
// construct a new instance.
//
// Mutating operations run to completion synchronously.  The mutex exists
// only because the live watch loop polls from its own goroutine; callers
// must still serialize their own logical flows.
type SyncTool struct {
	mu       sync.Mutex
	original *ir.Node
	entries  []Entry
	opts     []FlattenOption
	live     *liveWatch
}

// New deep-clones the initial structure into the baseline and flattens it
// into the working set.  initial may be an *ir.Node or any convertible Go
// value; a non-container root is rejected.
func New(initial any, opts ...FlattenOption) (*SyncTool, error) {
	node, err := ir.FromGo(initial)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if node.Type.IsLeaf() {
		return nil, fmt.Errorf("%w: root must be a container, got %s", ErrInvalidArgument, node.Type)
	}
	return &SyncTool{
		original: node.Clone(),
		entries:  Flatten(node, opts...),
		opts:     opts,
	}, nil
}

// Original returns an independent copy of the baseline.
func (s *SyncTool) Original() *ir.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.original.Clone()
}

// Flat returns an independent copy of the working set.
func (s *SyncTool) Flat() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.entries)
}

// Rebuild reconstructs the nested structure described by the working set.
func (s *SyncTool) Rebuild() (*ir.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Rebuild(s.entries)
}

// UpdateEntry sets the value recorded at dotPath, adding a new entry when
// the path is not present in the working set.
func (s *SyncTool) UpdateEntry(dotPath string, value any) error {
	path, err := dotpath.Parse(dotPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	v, err := ir.FromGo(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].DotPath == dotPath {
			s.entries[i].Value = v
			s.entries[i].Kind = v.Type.Kind()
			return nil
		}
	}
	s.entries = append(s.entries, Entry{
		Path:    path,
		DotPath: dotPath,
		Key:     path.Key(),
		Value:   v,
		Kind:    v.Type.Kind(),
	})
	return nil
}

// RemoveEntry drops the entry at dotPath and any entries beneath it.
func (s *SyncTool) RemoveEntry(dotPath string) error {
	if _, err := dotpath.Parse(dotPath); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	prefix := dotPath + "."
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	for i := range s.entries {
		dp := s.entries[i].DotPath
		if dp == dotPath || strings.HasPrefix(dp, prefix) {
			continue
		}
		kept = append(kept, s.entries[i])
	}
	s.entries = kept
	return nil
}

// Changes re-flattens the rebuilt working set and diffs it against the
// flattened baseline.
func (s *SyncTool) Changes(opts *DiffOptions) ([]Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.flatLocked()
	if err != nil {
		return nil, err
	}
	return Watch(Flatten(s.original), cur, opts), nil
}

// MergeWith deep-merges source into the rebuilt working set and re-flattens.
func (s *SyncTool) MergeWith(source any) error {
	src, err := ir.FromGo(source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tree, err := Rebuild(s.entries)
	if err != nil {
		return err
	}
	Merge(tree, src)
	s.entries = Flatten(tree, s.opts...)
	return nil
}

// RevertChanges applies the structural inverse of diff to the rebuilt
// working set and re-flattens, rolling the working set back.
func (s *SyncTool) RevertChanges(diff []Change) error {
	inv, err := ReverseChanges(diff)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tree, err := Rebuild(s.entries)
	if err != nil {
		return err
	}
	if _, err := ApplyChanges(tree, inv); err != nil {
		return err
	}
	s.entries = Flatten(tree, s.opts...)
	return nil
}

// ToTree rebuilds a nested structure from the entries satisfying pred; a nil
// pred keeps everything.  Addressing intermediate nodes requires the
// container-inclusive flattening (see [FlattenContainers]).
func (s *SyncTool) ToTree(pred func(Entry) bool) (*ir.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pred == nil {
		return Rebuild(s.entries)
	}
	var picked []Entry
	for i := range s.entries {
		if pred(s.entries[i]) {
			picked = append(picked, s.entries[i])
		}
	}
	return Rebuild(picked)
}

// Find searches the working set.  The Mutate hook observes and may alter the
// live entries.
func (s *SyncTool) Find(opts *FindOptions) (*FindResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FindEntries(s.entries, opts)
}

// currentFlat is the watch loop's view: the minimal flattening of the
// rebuilt working set.
func (s *SyncTool) currentFlat() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flatLocked()
}

func (s *SyncTool) flatLocked() ([]Entry, error) {
	tree, err := Rebuild(s.entries)
	if err != nil {
		return nil, err
	}
	return Flatten(tree), nil
}
