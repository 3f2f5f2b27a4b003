// internal/app/system/taskboard/errors.go
package taskboard

import "fmt"

// The taskboard error taxonomy. All three are local, recoverable
// conditions reported back to the caller; none of them leaves the store
// half-mutated. Fatal conditions (corrupt seed data) are the loader's
// responsibility and never reach this package.

// ValidationError reports malformed task fields at create/update time:
// a value outside a closed enumeration, progress out of range, or a
// missing required field. The store is rejected-before-mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an operation referencing a task or group id that
// does not exist. Deleting a nonexistent task reports this error rather
// than crashing, and the store stays unchanged.
type NotFoundError struct {
	Kind string // "task" or "group"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func notFoundErr(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// InvalidMoveError reports a drag destination that resolves to a
// nonexistent container or an out-of-bounds index. The move is rolled
// back entirely; there is no partial removal-without-reinsertion.
type InvalidMoveError struct {
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return "invalid move: " + e.Reason
}

func invalidMoveErr(format string, args ...any) error {
	return &InvalidMoveError{Reason: fmt.Sprintf(format, args...)}
}
