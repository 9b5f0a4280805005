package flatsync

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/flatsync/debug"
	"github.com/signadot/flatsync/ir"
)

type ReturnFormat string

const (
	FullFormat   ReturnFormat = "full"
	DotPathsOnly ReturnFormat = "dotPaths"
	EntriesOnly  ReturnFormat = "entriesOnly"
)

// FindOptions configures a search over a flattened entry list.
//
// The target list is Target followed by the non-empty Fallbacks; the first
// target producing any match wins and later fallbacks are only consulted
// when every earlier target matched nothing.  By default both keys and
// values are tested and null or empty-string values are eligible; the
// Ignore*/Skip* fields turn those off.
type FindOptions struct {
	Target    string
	Fallbacks []string

	// IgnoreKeys and IgnoreValues exclude entry keys, respectively entry
	// values, from target matching.
	IgnoreKeys   bool
	IgnoreValues bool

	CaseInsensitive bool
	UseRegex        bool
	FindAll         bool

	// Mutate, when set, runs once per matched entry before it is recorded
	// and may alter the entry's value in place.
	Mutate func(*Entry)

	// OnlyTypes restricts matching to entries of the given kinds.
	OnlyTypes []string

	// SkipNull and SkipEmptyString exclude entries by value; they never
	// apply to keys.
	SkipNull        bool
	SkipEmptyString bool

	// Where is an optional expression predicate evaluated per entry with
	// the environment {key, path, value, kind}.  It composes with target
	// matching, and may be used alone with no targets at all.
	Where string

	ReturnFormat ReturnFormat
}

type Match struct {
	DotPath string
	Key     string
	Value   *ir.Node
	Kind    string
}

// FindResult reports a search outcome.  Exactly one of Matches, DotPaths,
// Entries is populated, per FindOptions.ReturnFormat.
type FindResult struct {
	Matched  bool
	Matches  []Match
	DotPaths []string
	Entries  []Entry
}

// FindEntries scans entries in order for the first target with any match.
// A search with no usable target and no Where predicate is not an error: it
// reports Matched false.
func FindEntries(entries []Entry, opts *FindOptions) (*FindResult, error) {
	if opts == nil {
		opts = &FindOptions{}
	}
	targets := make([]string, 0, 1+len(opts.Fallbacks))
	if opts.Target != "" {
		targets = append(targets, opts.Target)
	}
	for _, fb := range opts.Fallbacks {
		if fb != "" {
			targets = append(targets, fb)
		}
	}
	if len(targets) == 0 && opts.Where == "" {
		return &FindResult{}, nil
	}

	var where *vm.Program
	if opts.Where != "" {
		prog, err := expr.Compile(opts.Where)
		if err != nil {
			return nil, fmt.Errorf("%w: where %q: %v", ErrInvalidPattern, opts.Where, err)
		}
		where = prog
	}

	res := &FindResult{}
	seen := make(map[string]bool)
	if len(targets) == 0 {
		// predicate-only search
		if err := scan(entries, nil, where, opts, seen, res); err != nil {
			return nil, err
		}
		return res, nil
	}
	for _, target := range targets {
		match, err := newMatcher(target, opts)
		if err != nil {
			return nil, err
		}
		if err := scan(entries, match, where, opts, seen, res); err != nil {
			return nil, err
		}
		if res.Matched {
			break
		}
	}
	if debug.Find() {
		debug.Logf("find %q: matched=%v\n", opts.Target, res.Matched)
	}
	return res, nil
}

type matcher func(string) bool

func newMatcher(target string, opts *FindOptions) (matcher, error) {
	if opts.UseRegex {
		pat := target
		if opts.CaseInsensitive {
			pat = "(?i)" + pat
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, target, err)
		}
		return re.MatchString, nil
	}
	if opts.CaseInsensitive {
		return func(s string) bool { return strings.EqualFold(s, target) }, nil
	}
	return func(s string) bool { return s == target }, nil
}

func scan(entries []Entry, match matcher, where *vm.Program, opts *FindOptions, seen map[string]bool, res *FindResult) error {
	for i := range entries {
		e := &entries[i]
		if !admit(e, opts) {
			continue
		}
		if where != nil {
			ok, err := runWhere(where, e)
			if err != nil || !ok {
				continue
			}
		}
		if match != nil && !matchEntry(e, match, opts) {
			continue
		}
		if seen[e.DotPath] {
			continue
		}
		seen[e.DotPath] = true
		if opts.Mutate != nil {
			opts.Mutate(e)
		}
		record(res, e, opts)
		res.Matched = true
		if !opts.FindAll {
			return nil
		}
	}
	return nil
}

// admit applies the type and value filters; value filters never apply to
// keys.
func admit(e *Entry, opts *FindOptions) bool {
	if len(opts.OnlyTypes) > 0 {
		ok := false
		for _, t := range opts.OnlyTypes {
			if e.Kind == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if opts.SkipNull && e.Value.Type == ir.NullType {
		return false
	}
	if opts.SkipEmptyString && e.Value.Type == ir.StringType && e.Value.String == "" {
		return false
	}
	return true
}

func matchEntry(e *Entry, match matcher, opts *FindOptions) bool {
	if !opts.IgnoreKeys && match(e.Key.String()) {
		return true
	}
	if !opts.IgnoreValues && e.Value.Type.IsLeaf() && match(e.Value.KeyString()) {
		return true
	}
	return false
}

func runWhere(prog *vm.Program, e *Entry) (bool, error) {
	env := map[string]any{
		"key":   e.Key.String(),
		"path":  e.DotPath,
		"value": ir.ToGo(e.Value),
		"kind":  e.Kind,
	}
	out, err := vm.Run(prog, env)
	if err != nil {
		return false, err
	}
	ok, isBool := out.(bool)
	return isBool && ok, nil
}

func record(res *FindResult, e *Entry, opts *FindOptions) {
	switch opts.ReturnFormat {
	case DotPathsOnly:
		res.DotPaths = append(res.DotPaths, e.DotPath)
	case EntriesOnly:
		res.Entries = append(res.Entries, e.Clone())
	default:
		res.Matches = append(res.Matches, Match{
			DotPath: e.DotPath,
			Key:     e.Key.String(),
			Value:   e.Value.Clone(),
			Kind:    e.Kind,
		})
	}
}
