package approval

import "github.com/1000bang/vacation-api-sub001/internal/domain"

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TransitionResponse reports the status the application landed in.
type TransitionResponse struct {
	ApplicationType string                `json:"application_type"`
	ApplicationSeq  int64                 `json:"application_seq"`
	ApprovalStatus  domain.ApprovalStatus `json:"approval_status"`
}
