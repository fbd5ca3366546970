package applicationerrors

import (
	"net/http"

	"github.com/1000bang/vacation-api-sub001/internal/shared/apperror"
)

var (
	ErrUnknownApplicationType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown application type",
		http.StatusBadRequest,
	)
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"application not found",
		http.StatusNotFound,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start date must be before or equal end date",
		http.StatusBadRequest,
	)
	ErrNotApplicationOwner = apperror.New(
		apperror.CodeForbidden,
		"application belongs to another user",
		http.StatusForbidden,
	)
)
