package exprs

import "fmt"

// All compilation failures are non-retryable: the transform is pure, so an
// error always means the request itself is unsupported or malformed. No
// partial SQL is ever returned alongside an error.

// UnsupportedConstructError reports a member or function combination outside
// the supported translation catalog.
type UnsupportedConstructError struct {
	Target string // declaring type tag
	Member string // method or member name
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("exprel: unsupported construct %s.%s", e.Target, e.Member)
}

// DialectRestrictionError reports a construct that the node model can
// express but the target dialect cannot.
type DialectRestrictionError struct {
	Construct string
}

func (e *DialectRestrictionError) Error() string {
	return fmt.Sprintf("exprel: %s is not supported by this dialect", e.Construct)
}

// InvalidShapeError reports a structurally malformed request, such as a
// non-basic constant or an IN right side that is neither an enumerable
// constant nor a single-column selection.
type InvalidShapeError struct {
	Reason string
}

func (e *InvalidShapeError) Error() string {
	return "exprel: invalid shape: " + e.Reason
}

// MissingContextError reports a member that cannot be resolved against the
// owning row shape.
type MissingContextError struct {
	Member string
	Shape  string
}

func (e *MissingContextError) Error() string {
	return fmt.Sprintf("exprel: member %q not found in %s", e.Member, e.Shape)
}
