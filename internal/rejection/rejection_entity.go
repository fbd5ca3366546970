package rejection

import (
	"time"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

// RejectionRecord is append-only. Rows are inserted exactly once per
// reject transition and never updated or deleted; the newest row for a
// polymorphic key is the reason shown to the applicant.
type RejectionRecord struct {
	Seq             int64                  `json:"seq"`
	ApplicationType domain.ApplicationType `json:"application_type"`
	ApplicationSeq  int64                  `json:"application_seq"`
	RejectedBy      string                 `json:"rejected_by"`
	RejectionLevel  domain.RejectionLevel  `json:"rejection_level"`
	RejectionReason string                 `json:"rejection_reason"`
	CreatedAt       time.Time              `json:"created_at"`
}
