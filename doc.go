// Package flatsync flattens arbitrarily nested data structures into
// path-addressed leaf entries and back, and builds structural diffing, deep
// merging, path-targeted search, and polling-based live change notification
// on top of that flattening.
//
// The document form is an ordered tree of [ir.Node] values; positions in a
// tree are addressed by [dotpath.Path] values and their dot-joined string
// form.  [Flatten] and [Rebuild] move between trees and entry lists, [Watch]
// diffs two entry lists into a change list, and [SyncTool] composes the whole
// thing around an immutable baseline and a mutable working set.
//
//	st, _ := flatsync.New(map[string]any{"user": map[string]any{"name": "John"}})
//	st.UpdateEntry("user.name", "Jane")
//	changes, _ := st.Changes(nil)   // one modified change at "user.name"
//
// # Related Packages
//
//   - github.com/signadot/flatsync/ir - ordered document trees
//   - github.com/signadot/flatsync/dotpath - structural paths and their string form
package flatsync
