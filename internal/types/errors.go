package types

import "errors"

// Sentinel errors for slovar operations.
// Callers match with errors.Is; engines wrap them with the offending key or path.
var (
	// ErrMalformedPath indicates a dotted path is empty or has an empty segment.
	ErrMalformedPath = errors.New("malformed path")

	// ErrStructuralConflict indicates a path requires a container already
	// committed to the opposite kind (map vs. sequence).
	ErrStructuralConflict = errors.New("structural conflict")

	// ErrMutuallyExclusiveSelection indicates both only and exclude keys were supplied.
	ErrMutuallyExclusiveSelection = errors.New("can only supply either positive or negative keys, but not both")

	// ErrNotAppendable indicates an append policy targets a value that is not a sequence.
	ErrNotAppendable = errors.New("value is not a sequence")

	// ErrMissingKey indicates a strict lookup referenced an absent path.
	ErrMissingKey = errors.New("missing key")

	// ErrTransform indicates a named transform cannot be applied to a value.
	ErrTransform = errors.New("transform failed")

	// ErrInvalidConfiguration indicates malformed rule or policy input.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidValue indicates a present key holds a value of the wrong type
	// or outside its allowed set.
	ErrInvalidValue = errors.New("invalid value")

	// ErrCoercionFailed indicates scalar coercion failed.
	ErrCoercionFailed = errors.New("type coercion failed")
)
