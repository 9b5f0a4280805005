package flatsync

import "github.com/signadot/flatsync/ir"

// Merge deep-merges source into target in place and returns target.  Where
// both sides hold objects under the same field the merge recurses; any other
// pairing is replaced wholesale by a clone of the source value, so arrays,
// maps and sets are never element-merged.
func Merge(target, source *ir.Node) *ir.Node {
	if target.Type != ir.ObjectType || source.Type != ir.ObjectType {
		return target
	}
	for i := range source.Fields {
		name := source.Fields[i].String
		sv := source.Values[i]
		tv := target.Field(name)
		if tv != nil && tv.Type == ir.ObjectType && sv.Type == ir.ObjectType {
			Merge(tv, sv)
			continue
		}
		target.SetField(name, sv.Clone())
	}
	return target
}
