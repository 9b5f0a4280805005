package flatsync

import (
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/flatsync/debug"
	"github.com/signadot/flatsync/dotpath"
	"github.com/signadot/flatsync/ir"
)

type ChangeType string

const (
	Added    ChangeType = "added"
	Removed  ChangeType = "removed"
	Modified ChangeType = "modified"
)

// Change is one structural delta between two flattened snapshots.
//
// Steps carries the authoritative structural path when the change was
// produced by [Watch]; appliers prefer it over re-parsing Path.  Text holds
// a compact textual patch for modified string leaves when requested with
// [DiffOptions.StringDiff].
type Change struct {
	Type     ChangeType
	Path     string
	Steps    dotpath.Path
	Value    *ir.Node
	OldValue *ir.Node
	NewValue *ir.Node
	Text     string
}

type DiffOptions struct {
	// DeepCompare compares values by canonical structure.
	DeepCompare bool
	// StrictTypes, when DeepCompare is off, requires identical types; with
	// it off as well, values compare by coercing canonical string form.
	StrictTypes bool
	// StringDiff attaches a textual patch to modified string leaves.
	StringDiff bool
}

// Watch compares two flattened snapshots by dot path and returns the changes
// that turn old into new.  Output order is deterministic: old-list order
// first, then paths only present in the new list, in new-list order.
func Watch(oldEntries, newEntries []Entry, opts *DiffOptions) []Change {
	if opts == nil {
		opts = &DiffOptions{}
	}
	oldByPath := entriesByPath(oldEntries)
	newByPath := entriesByPath(newEntries)

	var res []Change
	seen := make(map[string]bool, len(oldEntries))
	for i := range oldEntries {
		oe := &oldEntries[i]
		if seen[oe.DotPath] {
			continue
		}
		seen[oe.DotPath] = true
		ov := oldByPath[oe.DotPath].Value
		ne, ok := newByPath[oe.DotPath]
		if !ok {
			res = append(res, Change{
				Type:     Removed,
				Path:     oe.DotPath,
				Steps:    oe.Path.Clone(),
				OldValue: ov.Clone(),
			})
			continue
		}
		if equalValues(ov, ne.Value, opts) {
			continue
		}
		ch := Change{
			Type:     Modified,
			Path:     oe.DotPath,
			Steps:    oe.Path.Clone(),
			OldValue: ov.Clone(),
			NewValue: ne.Value.Clone(),
		}
		if opts.StringDiff && ov.Type == ir.StringType && ne.Value.Type == ir.StringType {
			ch.Text = stringPatch(ov.String, ne.Value.String)
		}
		res = append(res, ch)
	}
	for i := range newEntries {
		ne := &newEntries[i]
		if seen[ne.DotPath] {
			continue
		}
		seen[ne.DotPath] = true
		nv := newByPath[ne.DotPath].Value
		res = append(res, Change{
			Type:     Added,
			Path:     ne.DotPath,
			Steps:    ne.Path.Clone(),
			Value:    nv.Clone(),
			NewValue: nv.Clone(),
		})
	}
	if debug.Diff() {
		debug.Logf("diff: %d old, %d new, %d changes\n", len(oldEntries), len(newEntries), len(res))
	}
	return res
}

// entriesByPath projects an entry list to its dot path mapping; the last
// entry for a path wins, matching rebuild semantics.
func entriesByPath(entries []Entry) map[string]*Entry {
	res := make(map[string]*Entry, len(entries))
	for i := range entries {
		res[entries[i].DotPath] = &entries[i]
	}
	return res
}

func equalValues(a, b *ir.Node, opts *DiffOptions) bool {
	if opts.DeepCompare {
		return ir.Equal(a, b)
	}
	if opts.StrictTypes {
		return a.Type == b.Type && ir.Equal(a, b)
	}
	if a.Type.IsLeaf() && b.Type.IsLeaf() {
		return a.KeyString() == b.KeyString()
	}
	return ir.Equal(a, b)
}

func stringPatch(from, to string) string {
	dp := diffpatch.New()
	return dp.PatchToText(dp.PatchMake(from, to))
}
