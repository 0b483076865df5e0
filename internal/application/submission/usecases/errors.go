package usecases

import (
	stderrors "errors"

	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/shared/errors"
)

// Item codes reported to API clients.
const (
	CodeSheetNotFound       = "sheet_not_found"
	CodeMissingField        = "missing_field"
	CodeInvalidIdentifier   = "invalid_identifier"
	CodeUnresolvedReference = "unresolved_reference"
	CodeInactiveReference   = "inactive_reference"
	CodeProjectMismatch     = "project_mismatch"
)

// toAppError turns extraction and validation failures into an itemized
// unprocessable error. Other errors pass through unchanged.
func toAppError(err error) error {
	var (
		sheet   *submission.SheetNotFoundError
		missing *submission.MissingFieldError
		failed  *submission.ValidationFailedError
	)

	switch {
	case stderrors.As(err, &sheet):
		return errors.NewUnprocessableError(sheet.Error()).WithItems(errors.ErrorItem{
			Code:    CodeSheetNotFound,
			Source:  sheet.Sheet,
			Message: sheet.Error(),
		})
	case stderrors.As(err, &missing):
		appErr := errors.NewUnprocessableError("missing mandatory fields")
		for _, f := range missing.Fields {
			appErr.WithItems(errors.ErrorItem{
				Code:    CodeMissingField,
				Field:   string(f.Field),
				Source:  f.Cell,
				Message: f.Label + " is required",
			})
		}
		return appErr
	case stderrors.As(err, &failed):
		appErr := errors.NewUnprocessableError("submission rejected")
		for _, p := range failed.Problems {
			appErr.WithItems(problemItem(p))
		}
		return appErr
	}
	return err
}

func problemItem(p error) errors.ErrorItem {
	var (
		invalid    *submission.InvalidIdentifierError
		unresolved *submission.UnresolvedReferenceError
		inactive   *submission.InactiveReferenceError
		mismatch   *submission.ProjectMismatchError
	)

	item := errors.ErrorItem{Message: p.Error()}
	switch {
	case stderrors.As(p, &invalid):
		item.Code, item.Field, item.Source = CodeInvalidIdentifier, string(invalid.Field), invalid.Cell
	case stderrors.As(p, &unresolved):
		item.Code, item.Field, item.Source = CodeUnresolvedReference, string(unresolved.Field), unresolved.Cell
	case stderrors.As(p, &inactive):
		item.Code, item.Field, item.Source = CodeInactiveReference, string(inactive.Field), inactive.Cell
	case stderrors.As(p, &mismatch):
		item.Code, item.Field, item.Source = CodeProjectMismatch, string(mismatch.Field), mismatch.Cell
	}
	return item
}
