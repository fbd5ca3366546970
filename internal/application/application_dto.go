package application

import "time"

type CreateVacationRequest struct {
	VacationType string `json:"vacation_type" binding:"required,oneof=ANNUAL HALF SICK SPECIAL"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
	Reason       string `json:"reason"`
}

type CreateExpenseRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Category    string `json:"category" binding:"required,oneof=MEAL TRAVEL SUPPLIES EDUCATION ETC"`
	ExpenseDate string `json:"expense_date" binding:"required"`
	Description string `json:"description"`
}

type CreateRentalSupportRequest struct {
	MonthlyRent   int64  `json:"monthly_rent" binding:"required,gt=0"`
	Deposit       int64  `json:"deposit" binding:"gte=0"`
	ContractStart string `json:"contract_start" binding:"required"`
	ContractEnd   string `json:"contract_end" binding:"required"`
	Address       string `json:"address" binding:"required"`
}

type CreateRentalProposalRequest struct {
	MonthlyRent  int64  `json:"monthly_rent" binding:"required,gt=0"`
	Deposit      int64  `json:"deposit" binding:"gte=0"`
	Address      string `json:"address" binding:"required"`
	LandlordName string `json:"landlord_name"`
}

// Item is the uniform projection shared by the applicant views and the
// pending-approval aggregator. The discriminator is ApplicationType;
// payload fields irrelevant to a type stay nil so they are omitted from
// JSON instead of rendering as zero values.
type Item struct {
	ApplicationType string `json:"application_type"`
	Seq             int64  `json:"seq"`
	UserID          string `json:"user_id"`
	Division        string `json:"division"`
	Team            string `json:"team"`
	ApprovalStatus  string `json:"approval_status"`
	CreatedAt       string `json:"created_at"`

	// vacation
	VacationType *string `json:"vacation_type,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	Reason       *string `json:"reason,omitempty"`

	// expense
	Amount      *int64  `json:"amount,omitempty"`
	Category    *string `json:"category,omitempty"`
	ExpenseDate *string `json:"expense_date,omitempty"`
	Description *string `json:"description,omitempty"`

	// rental
	MonthlyRent   *int64  `json:"monthly_rent,omitempty"`
	Deposit       *int64  `json:"deposit,omitempty"`
	ContractStart *string `json:"contract_start,omitempty"`
	ContractEnd   *string `json:"contract_end,omitempty"`
	Address       *string `json:"address,omitempty"`
	LandlordName  *string `json:"landlord_name,omitempty"`
}

const dateLayout = "2006-01-02"

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func datePtr(t time.Time) *string {
	v := t.Format(dateLayout)
	return &v
}

func intPtr(v int64) *int64 {
	return &v
}

func VacationItem(v Vacation) Item {
	return Item{
		ApplicationType: "VACATION",
		Seq:             v.Seq,
		UserID:          v.UserID.String(),
		Division:        v.Division,
		Team:            v.Team,
		ApprovalStatus:  v.ApprovalStatus,
		CreatedAt:       v.CreatedAt.UTC().Format(time.RFC3339),
		VacationType:    strPtr(v.VacationType),
		StartDate:       datePtr(v.StartDate),
		EndDate:         datePtr(v.EndDate),
		Reason:          strPtr(v.Reason),
	}
}

func ExpenseItem(e Expense) Item {
	return Item{
		ApplicationType: "EXPENSE",
		Seq:             e.Seq,
		UserID:          e.UserID.String(),
		Division:        e.Division,
		Team:            e.Team,
		ApprovalStatus:  e.ApprovalStatus,
		CreatedAt:       e.CreatedAt.UTC().Format(time.RFC3339),
		Amount:          intPtr(e.Amount),
		Category:        strPtr(e.Category),
		ExpenseDate:     datePtr(e.ExpenseDate),
		Description:     strPtr(e.Description),
	}
}

func RentalSupportItem(rs RentalSupport) Item {
	return Item{
		ApplicationType: "RENTAL_SUPPORT",
		Seq:             rs.Seq,
		UserID:          rs.UserID.String(),
		Division:        rs.Division,
		Team:            rs.Team,
		ApprovalStatus:  rs.ApprovalStatus,
		CreatedAt:       rs.CreatedAt.UTC().Format(time.RFC3339),
		MonthlyRent:     intPtr(rs.MonthlyRent),
		Deposit:         intPtr(rs.Deposit),
		ContractStart:   datePtr(rs.ContractStart),
		ContractEnd:     datePtr(rs.ContractEnd),
		Address:         strPtr(rs.Address),
	}
}

func RentalProposalItem(rp RentalProposal) Item {
	return Item{
		ApplicationType: "RENTAL_PROPOSAL",
		Seq:             rp.Seq,
		UserID:          rp.UserID.String(),
		Division:        rp.Division,
		Team:            rp.Team,
		ApprovalStatus:  rp.ApprovalStatus,
		CreatedAt:       rp.CreatedAt.UTC().Format(time.RFC3339),
		MonthlyRent:     intPtr(rp.MonthlyRent),
		Deposit:         intPtr(rp.Deposit),
		Address:         strPtr(rp.Address),
		LandlordName:    strPtr(rp.LandlordName),
	}
}
