package errors

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// CascadeError reports a cascade that aborted after applying some but not
// all of its steps. There is no rollback: the entity graph may now hold
// dangling references and the caller (or an out-of-band repair job) must
// decide how to remediate. It is surfaced distinctly from plain failures so
// callers can tell "operation refused" from "store left inconsistent".
type CascadeError struct {
	Root   string    // Entity kind of the cascade root ("product", "user", "review").
	RootID uuid.UUID // Id of the cascade root.
	Step   string    // The step that failed, e.g. "detach wishlist edges".
	Err    error     // Underlying cause.
}

// NewCascadeError creates a CascadeError for a cascade that already applied
// at least one mutation.
func NewCascadeError(root string, rootID uuid.UUID, step string, err error) *CascadeError {
	return &CascadeError{Root: root, RootID: rootID, Step: step, Err: err}
}

// Error implements the error interface.
func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade on %s %s aborted at step %q: %v", e.Root, e.RootID, e.Step, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CascadeError) Unwrap() error {
	return e.Err
}

// HTTPCode returns the HTTP status code.
func (e *CascadeError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *CascadeError) ErrorCode() string {
	return "PARTIAL_CASCADE_FAILURE"
}

// Message returns the user-friendly error message.
func (e *CascadeError) Message() string {
	return "Deletion was interrupted and may have left related records inconsistent"
}

// Details returns detailed error information.
func (e *CascadeError) Details() string {
	return e.Error()
}
