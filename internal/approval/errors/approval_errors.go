package approvalerrors

import (
	"net/http"

	"github.com/1000bang/vacation-api-sub001/internal/shared/apperror"
)

var (
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be APPROVE or REJECT",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	// ErrInvalidTransition covers every call from a status that does not
	// permit it, including the losing side of a concurrent decision.
	// Callers should treat it as "already processed" and re-fetch.
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"application status does not permit this operation",
		http.StatusConflict,
	)
	ErrNotTeamLeader = apperror.New(
		apperror.CodeForbidden,
		"a team leader decision requires the team leader role",
		http.StatusForbidden,
	)
	ErrNotDivisionHead = apperror.New(
		apperror.CodeForbidden,
		"a division head decision requires the division head role",
		http.StatusForbidden,
	)
	ErrOutOfScope = apperror.New(
		apperror.CodeForbidden,
		"application is outside your approval scope",
		http.StatusForbidden,
	)
	ErrNotApplicant = apperror.New(
		apperror.CodeForbidden,
		"only the applicant may resubmit this application",
		http.StatusForbidden,
	)
)
