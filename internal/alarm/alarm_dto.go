package alarm

import "time"

type AlarmResponse struct {
	Seq             int64  `json:"seq"`
	UserID          string `json:"user_id"`
	AlarmType       string `json:"alarm_type"`
	ApplicationType string `json:"application_type"`
	ApplicationSeq  int64  `json:"application_seq"`
	Message         string `json:"message"`
	IsRead          bool   `json:"is_read"`
	RedirectURL     string `json:"redirect_url"`
	CreatedAt       string `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func mapToResponse(a Alarm) AlarmResponse {
	return AlarmResponse{
		Seq:             a.Seq,
		UserID:          a.UserID,
		AlarmType:       string(a.AlarmType),
		ApplicationType: string(a.ApplicationType),
		ApplicationSeq:  a.ApplicationSeq,
		Message:         a.Message,
		IsRead:          a.IsRead,
		RedirectURL:     a.RedirectURL,
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(alarms []Alarm) []AlarmResponse {
	resp := make([]AlarmResponse, len(alarms))
	for i, a := range alarms {
		resp[i] = mapToResponse(a)
	}
	return resp
}
