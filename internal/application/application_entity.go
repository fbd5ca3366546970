package application

import (
	"time"

	"github.com/google/uuid"
)

// The four application tables share no relational link to the rejection
// ledger or the alarm table; they are addressed by the polymorphic key
// (application type, seq). Division and team are denormalized onto every
// row so approver scoping never needs a join.

type Vacation struct {
	Seq      int64     `gorm:"primaryKey;autoIncrement"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_vacations_user"`
	Division string    `gorm:"type:varchar(50);not null;index:idx_vacations_scope"`
	Team     string    `gorm:"type:varchar(50);not null;index:idx_vacations_scope"`

	VacationType string    `gorm:"type:varchar(30);not null;default:'ANNUAL'"`
	StartDate    time.Time `gorm:"type:date;not null"`
	EndDate      time.Time `gorm:"type:date;not null"`
	Reason       string    `gorm:"type:text"`

	ApprovalStatus string `gorm:"type:varchar(2);not null;default:'A';index:idx_vacations_scope"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Vacation) TableName() string { return "vacations" }

type Expense struct {
	Seq      int64     `gorm:"primaryKey;autoIncrement"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_expenses_user"`
	Division string    `gorm:"type:varchar(50);not null;index:idx_expenses_scope"`
	Team     string    `gorm:"type:varchar(50);not null;index:idx_expenses_scope"`

	Amount      int64     `gorm:"type:bigint;not null"`
	Category    string    `gorm:"type:varchar(30);not null"`
	ExpenseDate time.Time `gorm:"type:date;not null"`
	Description string    `gorm:"type:text"`

	ApprovalStatus string `gorm:"type:varchar(2);not null;default:'A';index:idx_expenses_scope"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Expense) TableName() string { return "expenses" }

type RentalSupport struct {
	Seq      int64     `gorm:"primaryKey;autoIncrement"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_rental_supports_user"`
	Division string    `gorm:"type:varchar(50);not null;index:idx_rental_supports_scope"`
	Team     string    `gorm:"type:varchar(50);not null;index:idx_rental_supports_scope"`

	MonthlyRent   int64     `gorm:"type:bigint;not null"`
	Deposit       int64     `gorm:"type:bigint;not null"`
	ContractStart time.Time `gorm:"type:date;not null"`
	ContractEnd   time.Time `gorm:"type:date;not null"`
	Address       string    `gorm:"type:varchar(200);not null"`

	ApprovalStatus string `gorm:"type:varchar(2);not null;default:'A';index:idx_rental_supports_scope"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RentalSupport) TableName() string { return "rental_supports" }

type RentalProposal struct {
	Seq      int64     `gorm:"primaryKey;autoIncrement"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_rental_proposals_user"`
	Division string    `gorm:"type:varchar(50);not null;index:idx_rental_proposals_scope"`
	Team     string    `gorm:"type:varchar(50);not null;index:idx_rental_proposals_scope"`

	MonthlyRent  int64  `gorm:"type:bigint;not null"`
	Deposit      int64  `gorm:"type:bigint;not null"`
	Address      string `gorm:"type:varchar(200);not null"`
	LandlordName string `gorm:"type:varchar(100)"`

	ApprovalStatus string `gorm:"type:varchar(2);not null;default:'A';index:idx_rental_proposals_scope"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RentalProposal) TableName() string { return "rental_proposals" }
