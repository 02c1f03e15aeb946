package vouchererrors

import (
	"net/http"

	"github.com/azirkitai/utamaHR-sub001/internal/shared/apperror"
)

var (
	ErrVoucherNotFound = apperror.New(
		apperror.CodeNotFound,
		"payment voucher not found",
		http.StatusNotFound,
	)
	ErrNoClaimsToAggregate = apperror.New(
		apperror.CodeInvalidState,
		"no approved unpaid claims to aggregate",
		http.StatusUnprocessableEntity,
	)
	ErrClaimNotPayable = apperror.New(
		apperror.CodeInvalidState,
		"claim is not approved or already attached to a voucher",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidActor = apperror.New(
		apperror.CodeInvalidInput,
		"actor identity must be a valid UUID",
		http.StatusBadRequest,
	)
	ErrInvalidPaymentDate = apperror.New(
		apperror.CodeInvalidInput,
		"payment date must be formatted YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrStatusConflict = apperror.New(
		apperror.CodeConflict,
		"voucher status changed concurrently",
		http.StatusConflict,
	)
	ErrDuplicateVoucherNumber = apperror.New(
		apperror.CodeConflict,
		"voucher number already in use",
		http.StatusConflict,
	)
)
