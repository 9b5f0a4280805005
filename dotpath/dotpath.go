// Package dotpath encodes sequences of structural steps as dot-joined path
// strings.
//
// A Path is the authoritative form: each Step declares whether it is an
// object field or a sequence index.  The dot-joined string form is a display
// and lookup convenience and is lossy in two documented ways: a field name
// containing '.' does not survive a round trip, and an all-digit field name
// is indistinguishable from an index in the string form.  Code that needs to
// pick a container kind must consult the structural Step, never re-parse the
// string.
package dotpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one structural step: an object field name or a sequence index.
// Steps produced by traversal have exactly one of Field, Index set.  Steps
// produced by Parse from an all-digit segment carry both, and navigation
// resolves the ambiguity against the container at hand.
type Step struct {
	Field *string
	Index *int
}

func FieldStep(name string) Step {
	return Step{Field: &name}
}

func IndexStep(i int) Step {
	return Step{Index: &i}
}

// Numeric reports whether the step declares a sequence index.
func (s Step) Numeric() bool {
	return s.Index != nil
}

func (s Step) String() string {
	if s.Field != nil {
		return *s.Field
	}
	if s.Index != nil {
		return strconv.Itoa(*s.Index)
	}
	return ""
}

type Path []Step

// String joins the steps with '.'.  The empty path encodes as "".
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// Key returns the last step, the zero Step for the root path.
func (p Path) Key() Step {
	if len(p) == 0 {
		return Step{}
	}
	return p[len(p)-1]
}

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	res := make(Path, len(p))
	copy(res, p)
	return res
}

// Child returns a new path extending p by one step.  The result never aliases
// p's backing array.
func (p Path) Child(s Step) Path {
	res := make(Path, len(p)+1)
	copy(res, p)
	res[len(p)] = s
	return res
}

// Parse decodes a dot-joined path string.  All-digit segments are ambiguous
// and yield steps carrying both a field name and an index.  An empty string
// or an empty segment is an error.
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, fmt.Errorf("empty path")
	}
	segs := strings.Split(s, ".")
	res := make(Path, 0, len(segs))
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("empty step in path %q", s)
		}
		step := FieldStep(seg)
		if i, err := strconv.Atoi(seg); err == nil && i >= 0 {
			step.Index = &i
		}
		res = append(res, step)
	}
	return res, nil
}
