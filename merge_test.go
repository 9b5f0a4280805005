package flatsync

import (
	"testing"

	"github.com/signadot/flatsync/ir"
)

type mergeTest struct {
	target string
	source string
	want   string
}

var mergeTests = []mergeTest{
	{
		target: `a: 1`,
		source: `a: 2`,
		want:   `a: 2`,
	},
	{
		target: `
a:
  b: 1`,
		source: `
a:
  c: 2`,
		want: `
a:
  b: 1
  c: 2`,
	},
	{
		target: `
xs:
- 1
- 2
- 3`,
		source: `
xs:
- 9`,
		want: `
xs:
- 9`,
	},
	{
		target: `
keep: here
deep:
  x:
    y: old
    z: stays`,
		source: `
deep:
  x:
    y: new
added: too`,
		want: `
keep: here
deep:
  x:
    y: new
    z: stays
added: too`,
	},
	{
		target: `
a:
  b: 1`,
		source: `a: scalar`,
		want:   `a: scalar`,
	},
}

func TestMerge(t *testing.T) {
	for i, tc := range mergeTests {
		target := mustYAML(t, tc.target)
		source := mustYAML(t, tc.source)
		want := mustYAML(t, tc.want)
		got := Merge(target, source)
		if !ir.Equal(want, got) {
			t.Errorf("test %d: merge gave\n%s\nwant\n%s", i, ir.MustYAML(got), ir.MustYAML(want))
		}
		if got != target {
			t.Errorf("test %d: merge did not return its target", i)
		}
	}
}

func TestMergeSourceIndependence(t *testing.T) {
	target := mustYAML(t, `a: 1`)
	source := mustYAML(t, `b: {c: 2}`)
	Merge(target, source)
	target.Field("b").SetField("c", ir.FromInt(99))
	if got := *source.Field("b").Field("c").Int64; got != 2 {
		t.Errorf("merge aliased source: %d", got)
	}
}
