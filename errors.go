package assetcore

import "errors"

// Sentinel errors classify every failure the decoders detect themselves.
// Wrapped errors carry context (cursor offset, node name, sizes) and match
// these sentinels via errors.Is. An error returned by a host ClassRegistry
// construction is passed on wrapped and matches none of them.
var (
	// ErrBounds reports a read or copy that would cross the end of the
	// input, or a computed offset beyond a declared length.
	ErrBounds = errors.New("out of bounds")

	// ErrArgument reports malformed parameters: a bad byte-order code,
	// negative dimensions, a bit size outside 1..32, a missing required
	// argument.
	ErrArgument = errors.New("invalid argument")

	// ErrSchema reports a TypeTree whose node structure violates a schema
	// invariant, such as a pair without exactly two children.
	ErrSchema = errors.New("invalid schema")

	// ErrResolution reports a referenced-object lookup that found no
	// matching entry, or a required asset file or registry class that is
	// absent.
	ErrResolution = errors.New("resolution failed")
)
