package events

// AlarmCreatedTopic carries one message per alarm row. Delivery (push,
// email) is handled by downstream consumers; the API only guarantees the
// event is recorded in the same transaction as the status change.
const AlarmCreatedTopic = "hr.notifications"

type AlarmCreatedEvent struct {
	AlarmSeq        int64  `json:"alarm_seq"`
	UserID          string `json:"user_id"`
	AlarmType       string `json:"alarm_type"`
	ApplicationType string `json:"application_type"`
	ApplicationSeq  int64  `json:"application_seq"`
	Message         string `json:"message"`
	RedirectURL     string `json:"redirect_url"`
}
