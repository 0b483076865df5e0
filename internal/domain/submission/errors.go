package submission

import (
	"fmt"
	"strings"
)

// SheetNotFoundError is the only extraction failure that aborts a submission.
type SheetNotFoundError struct {
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found (available: %s)", e.Sheet, strings.Join(e.Available, ", "))
}

// FieldRef names a form field for error reporting.
type FieldRef struct {
	Field FieldName
	Label string
	Cell  string
}

// MissingFieldError lists every mandatory field that came back empty.
type MissingFieldError struct {
	Fields []FieldRef
}

func (e *MissingFieldError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Label, f.Cell))
	}
	return "missing mandatory fields: " + strings.Join(parts, ", ")
}

// InvalidIdentifierError is a mandatory identifier that is not an integer.
type InvalidIdentifierError struct {
	FieldRef
	Value string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%s (%s): %q is not a valid id", e.Label, e.Cell, e.Value)
}

// UnresolvedReferenceError is an identifier with no matching catalog row.
type UnresolvedReferenceError struct {
	FieldRef
	ID uint64
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s (%s): id %d does not exist in the catalog", e.Label, e.Cell, e.ID)
}

// InactiveReferenceError is an identifier pointing at a deactivated catalog row.
type InactiveReferenceError struct {
	FieldRef
	ID uint64
}

func (e *InactiveReferenceError) Error() string {
	return fmt.Sprintf("%s (%s): id %d is inactive", e.Label, e.Cell, e.ID)
}

// ValidationFailedError carries the ordered list of problems found in one
// validation pass.
type ValidationFailedError struct {
	Problems []error
}

func (e *ValidationFailedError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Error())
	}
	return "submission rejected: " + strings.Join(msgs, "; ")
}

func (e *ValidationFailedError) Unwrap() []error {
	return e.Problems
}

// ProjectMismatchError is a project id that resolves to another client's project.
type ProjectMismatchError struct {
	FieldRef
	ProjectID uint64
	ClientID  uint64
}

func (e *ProjectMismatchError) Error() string {
	return fmt.Sprintf("%s (%s): project %d does not belong to client %d", e.Label, e.Cell, e.ProjectID, e.ClientID)
}
