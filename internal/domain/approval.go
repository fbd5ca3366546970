package domain

// ApplicationType tags which application table a polymorphic key
// (type, seq) points at. The set is closed: every workflow table is
// listed here and nowhere else.
type ApplicationType string

const (
	TypeVacation       ApplicationType = "VACATION"
	TypeExpense        ApplicationType = "EXPENSE"
	TypeRentalSupport  ApplicationType = "RENTAL_SUPPORT"
	TypeRentalProposal ApplicationType = "RENTAL_PROPOSAL"
)

func ApplicationTypes() []ApplicationType {
	return []ApplicationType{TypeVacation, TypeExpense, TypeRentalSupport, TypeRentalProposal}
}

func (t ApplicationType) Valid() bool {
	switch t {
	case TypeVacation, TypeExpense, TypeRentalSupport, TypeRentalProposal:
		return true
	}
	return false
}

// ParseApplicationType maps the URL segment form (kebab-case) to the enum.
func ParseApplicationType(s string) (ApplicationType, bool) {
	switch s {
	case "vacation":
		return TypeVacation, true
	case "expense":
		return TypeExpense, true
	case "rental-support":
		return TypeRentalSupport, true
	case "rental-proposal":
		return TypeRentalProposal, true
	}
	return "", false
}

// Slug is the inverse of ParseApplicationType, used for redirect URLs.
func (t ApplicationType) Slug() string {
	switch t {
	case TypeVacation:
		return "vacation"
	case TypeExpense:
		return "expense"
	case TypeRentalSupport:
		return "rental-support"
	case TypeRentalProposal:
		return "rental-proposal"
	}
	return ""
}

// Label is the human-readable form used in alarm messages.
func (t ApplicationType) Label() string {
	switch t {
	case TypeVacation:
		return "vacation"
	case TypeExpense:
		return "expense"
	case TypeRentalSupport:
		return "rental support"
	case TypeRentalProposal:
		return "rental proposal"
	}
	return "application"
}

// ApprovalStatus codes are shared by all four application types.
// Legal edges: A/AM -> B -> C, A/AM -> RB, B -> RC. RB/RC may return
// to AM only through the applicant-initiated resubmit entry point.
type ApprovalStatus string

const (
	StatusSubmitted     ApprovalStatus = "A"  // awaiting team-leader decision
	StatusResubmitted   ApprovalStatus = "AM" // resubmitted, awaiting team-leader decision
	StatusTeamApproved  ApprovalStatus = "B"  // awaiting division-head decision
	StatusTeamRejected  ApprovalStatus = "RB" // rejected by team leader
	StatusFinalApproved ApprovalStatus = "C"  // approved by division head
	StatusFinalRejected ApprovalStatus = "RC" // rejected by division head
)

// Terminal reports whether no further approver decision is permitted.
func (s ApprovalStatus) Terminal() bool {
	switch s {
	case StatusTeamRejected, StatusFinalApproved, StatusFinalRejected:
		return true
	}
	return false
}

func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusResubmitted, StatusTeamApproved,
		StatusTeamRejected, StatusFinalApproved, StatusFinalRejected:
		return true
	}
	return false
}

// Action is an approver decision. Resubmission is not an Action: it is
// applicant-initiated and has its own entry point on the engine.
type Action string

const (
	ActionApprove Action = "APPROVE"
	ActionReject  Action = "REJECT"
)

// RejectionLevel records which stage of the chain produced a rejection.
type RejectionLevel string

const (
	RejectedByTeamLeader   RejectionLevel = "TEAM_LEADER"
	RejectedByDivisionHead RejectionLevel = "DIVISION_HEAD"
)
