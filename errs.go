package flatsync

import "errors"

var (
	// ErrInvalidArgument reports malformed input: a non-container root, an
	// empty dot path, or a change with an unknown type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidPattern reports an unusable search pattern or predicate.
	ErrInvalidPattern = errors.New("invalid pattern")
)
