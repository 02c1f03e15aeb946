package payrollerrors

import (
	"net/http"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll document not found",
		http.StatusNotFound,
	)
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll item not found",
		http.StatusNotFound,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"a payroll document already exists for this period",
		http.StatusConflict,
	)
	ErrDocumentNotEditable = apperror.New(
		apperror.CodeConflict,
		"payroll document can only be modified while PREPARING or REJECTED",
		http.StatusConflict,
	)
	ErrStatusConflict = apperror.New(
		apperror.CodeConflict,
		"payroll document status changed concurrently",
		http.StatusConflict,
	)
	ErrItemLocked = apperror.New(
		apperror.CodeConflict,
		"payroll item is locked",
		http.StatusConflict,
	)
	ErrDocumentNotDeletable = apperror.New(
		apperror.CodeConflict,
		"approved or closed payroll documents cannot be deleted",
		http.StatusConflict,
	)
	ErrNoItemsToSubmit = apperror.New(
		apperror.CodeInvalidState,
		"payroll document has no items to submit",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12",
		http.StatusBadRequest,
	)
	ErrInvalidActor = apperror.New(
		apperror.CodeInvalidInput,
		"actor identity must be a valid UUID",
		http.StatusBadRequest,
	)
)
