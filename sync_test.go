package flatsync

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/flatsync/ir"
)

func newUserTool(t *testing.T) *SyncTool {
	t.Helper()
	st, err := New(map[string]any{
		"user": map[string]any{"name": "John", "age": 30},
	})
	if err != nil {
		t.Fatal(err)
	}
	return st
}

func TestNewRejectsScalarRoot(t *testing.T) {
	for _, bad := range []any{"scalar", 42, true, nil} {
		if _, err := New(bad); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("New(%v) err = %v, want ErrInvalidArgument", bad, err)
		}
	}
}

func TestUpdateGetChangesRevert(t *testing.T) {
	st := newUserTool(t)
	if err := st.UpdateEntry("user.name", "Jane"); err != nil {
		t.Fatal(err)
	}
	changes, err := st.Changes(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 1 {
		t.Fatalf("changes = %v", changeStrings(changes))
	}
	ch := changes[0]
	if ch.Type != Modified || ch.Path != "user.name" ||
		ch.OldValue.String != "John" || ch.NewValue.String != "Jane" {
		t.Fatalf("change = %+v", ch)
	}

	if err := st.RevertChanges(changes); err != nil {
		t.Fatal(err)
	}
	changes, err = st.Changes(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Errorf("after revert, changes = %v", changeStrings(changes))
	}
	tree, err := st.Rebuild()
	if err != nil {
		t.Fatal(err)
	}
	if got := tree.Field("user").Field("name").String; got != "John" {
		t.Errorf("name = %q, want John", got)
	}
}

func TestRemoveEntry(t *testing.T) {
	st := newUserTool(t)
	if err := st.RemoveEntry("user.age"); err != nil {
		t.Fatal(err)
	}
	changes, err := st.Changes(nil)
	if err != nil {
		t.Fatal(err)
	}
	got := changeStrings(changes)
	want := []string{"removed user.age (was 30)"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("changes (-want +got):\n%s", d)
	}

	if err := st.RemoveEntry(""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty path err = %v", err)
	}
}

func TestRemoveEntrySubtree(t *testing.T) {
	st, err := New(map[string]any{
		"user":  map[string]any{"name": "John", "age": 30},
		"other": "kept",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := st.RemoveEntry("user"); err != nil {
		t.Fatal(err)
	}
	flat := st.Flat()
	if len(flat) != 1 || flat[0].DotPath != "other" {
		t.Errorf("flat = %v", dotPaths(flat))
	}
}

func TestUpdateEntryAddsNewPath(t *testing.T) {
	st := newUserTool(t)
	if err := st.UpdateEntry("user.email", "j@example.com"); err != nil {
		t.Fatal(err)
	}
	changes, err := st.Changes(nil)
	if err != nil {
		t.Fatal(err)
	}
	got := changeStrings(changes)
	want := []string{"added user.email = j@example.com"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("changes (-want +got):\n%s", d)
	}
}

func TestOriginalIsImmutable(t *testing.T) {
	st := newUserTool(t)
	if err := st.UpdateEntry("user.name", "Jane"); err != nil {
		t.Fatal(err)
	}
	orig := st.Original()
	if got := orig.Field("user").Field("name").String; got != "John" {
		t.Errorf("baseline mutated: %q", got)
	}
	// mutating the returned copy must not touch internal state
	orig.Field("user").SetField("name", ir.FromString("Hacked"))
	again := st.Original()
	if got := again.Field("user").Field("name").String; got != "John" {
		t.Errorf("returned copy shares state: %q", got)
	}
}

func TestFlatIsACopy(t *testing.T) {
	st := newUserTool(t)
	flat := st.Flat()
	for i := range flat {
		flat[i].Value = ir.FromString("junk")
	}
	changes, err := st.Changes(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Errorf("mutating Flat() result changed state: %v", changeStrings(changes))
	}
}

func TestMergeWith(t *testing.T) {
	st := newUserTool(t)
	err := st.MergeWith(map[string]any{
		"user": map[string]any{"age": 31},
		"tags": []any{"a"},
	})
	if err != nil {
		t.Fatal(err)
	}
	changes, err := st.Changes(nil)
	if err != nil {
		t.Fatal(err)
	}
	got := changeStrings(changes)
	want := []string{"modified user.age: 30 -> 31", "added tags.0 = a"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("changes (-want +got):\n%s", d)
	}
}

func TestToTree(t *testing.T) {
	st, err := New(map[string]any{
		"keep": map[string]any{"a": 1},
		"drop": map[string]any{"b": 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	tree, err := st.ToTree(func(e Entry) bool { return e.DotPath != "drop.b" })
	if err != nil {
		t.Fatal(err)
	}
	want := mustYAML(t, `
keep:
  a: 1`)
	if !ir.Equal(want, tree) {
		t.Errorf("tree =\n%s", ir.MustYAML(tree))
	}
}

func TestSyncFind(t *testing.T) {
	st := newUserTool(t)
	res, err := st.Find(&FindOptions{Target: "nickname", Fallbacks: []string{"name"}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Matches[0].Value.String != "John" {
		t.Fatalf("res = %+v", res)
	}
}

func TestRevertArrayAdditions(t *testing.T) {
	st, err := New(map[string]any{"xs": []any{"a"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := st.UpdateEntry("xs.1", "b"); err != nil {
		t.Fatal(err)
	}
	if err := st.UpdateEntry("xs.2", "c"); err != nil {
		t.Fatal(err)
	}
	changes, err := st.Changes(nil)
	if err != nil {
		t.Fatal(err)
	}
	got := changeStrings(changes)
	want := []string{"added xs.1 = b", "added xs.2 = c"}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("changes (-want +got):\n%s", d)
	}
	if err := st.RevertChanges(changes); err != nil {
		t.Fatal(err)
	}
	changes, err = st.Changes(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 0 {
		t.Errorf("after revert, changes = %v", changeStrings(changes))
	}
}

func TestGetSet(t *testing.T) {
	doc := mustYAML(t, `
user:
  tags:
  - a
  - b`)
	got, err := Get(doc, "user.tags.1")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.String != "b" {
		t.Errorf("Get = %v", got)
	}

	missing, err := Get(doc, "user.none.deep")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Errorf("missing path = %v", missing)
	}

	if err := Set(doc, "user.tags.2", "c"); err != nil {
		t.Fatal(err)
	}
	if err := Set(doc, "meta.created", "today"); err != nil {
		t.Fatal(err)
	}
	want := mustYAML(t, `
user:
  tags:
  - a
  - b
  - c
meta:
  created: today`)
	if !ir.Equal(want, doc) {
		t.Errorf("after sets:\n%s", ir.MustYAML(doc))
	}

	if _, err := Get(doc, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty path err = %v", err)
	}
}

func TestSetDigitFieldKeepsObject(t *testing.T) {
	doc := mustYAML(t, `
a:
  "0": zero
  b: keep`)
	if err := Set(doc, "a.0", "nine"); err != nil {
		t.Fatal(err)
	}
	want := mustYAML(t, `
a:
  "0": nine
  b: keep`)
	if !ir.Equal(want, doc) {
		t.Errorf("after set:\n%s\nwant\n%s", ir.MustYAML(doc), ir.MustYAML(want))
	}
}

func TestSetIndexIntoSet(t *testing.T) {
	doc, err := ir.FromGo(map[string]any{"s": ir.Set{"a", "b"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := Set(doc, "s.2", "c"); err != nil {
		t.Fatal(err)
	}
	s := doc.Field("s")
	if s.Type != ir.SetType || s.Len() != 3 {
		t.Fatalf("set = %s", ir.MustYAML(s))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := s.At(i).String; got != want {
			t.Errorf("member %d = %q, want %q", i, got, want)
		}
	}
}
