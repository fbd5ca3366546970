package alarmerrors

import (
	"net/http"

	"github.com/1000bang/vacation-api-sub001/internal/shared/apperror"
)

var (
	ErrAlarmNotFound = apperror.New(
		apperror.CodeNotFound,
		"alarm not found",
		http.StatusNotFound,
	)
	ErrInvalidRecipient = apperror.New(
		apperror.CodeInvalidInput,
		"invalid alarm recipient",
		http.StatusBadRequest,
	)
)
