package rejectionerrors

import (
	"net/http"

	"github.com/1000bang/vacation-api-sub001/internal/shared/apperror"
)

var (
	ErrRejectionNotFound = apperror.New(
		apperror.CodeNotFound,
		"no rejection record for this application",
		http.StatusNotFound,
	)
	ErrOutOfScope = apperror.New(
		apperror.CodeForbidden,
		"application is outside your approval scope",
		http.StatusForbidden,
	)
)
