package alarm

import (
	"time"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

// Alarm is owned by its recipient. The engine only inserts; the only
// mutation afterwards is the read-state toggle.
type Alarm struct {
	Seq             int64
	UserID          string
	AlarmType       domain.ApprovalStatus
	ApplicationType domain.ApplicationType
	ApplicationSeq  int64
	Message         string
	IsRead          bool
	RedirectURL     string
	CreatedAt       time.Time
}
