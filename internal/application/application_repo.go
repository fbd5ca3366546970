package application

import (
	"context"

	"gorm.io/gorm"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

// PendingFilter narrows a pending query to the approver's visibility.
// Empty Division/Team means unscoped (admin override).
type PendingFilter struct {
	Statuses []domain.ApprovalStatus
	Division string
	Team     string
	Limit    int
}

//go:generate mockgen -source=application_repo.go -destination=mock/application_repo_mock.go -package=mock
type Repository interface {
	CreateVacation(ctx context.Context, v *Vacation) error
	CreateExpense(ctx context.Context, e *Expense) error
	CreateRentalSupport(ctx context.Context, rs *RentalSupport) error
	CreateRentalProposal(ctx context.Context, rp *RentalProposal) error

	FindVacationBySeq(ctx context.Context, seq int64) (*Vacation, error)
	FindExpenseBySeq(ctx context.Context, seq int64) (*Expense, error)
	FindRentalSupportBySeq(ctx context.Context, seq int64) (*RentalSupport, error)
	FindRentalProposalBySeq(ctx context.Context, seq int64) (*RentalProposal, error)

	FindVacationsByUser(ctx context.Context, userID string) ([]Vacation, error)
	FindExpensesByUser(ctx context.Context, userID string) ([]Expense, error)
	FindRentalSupportsByUser(ctx context.Context, userID string) ([]RentalSupport, error)
	FindRentalProposalsByUser(ctx context.Context, userID string) ([]RentalProposal, error)

	PendingVacations(ctx context.Context, f PendingFilter) ([]Vacation, int64, error)
	PendingExpenses(ctx context.Context, f PendingFilter) ([]Expense, int64, error)
	PendingRentalSupports(ctx context.Context, f PendingFilter) ([]RentalSupport, int64, error)
	PendingRentalProposals(ctx context.Context, f PendingFilter) ([]RentalProposal, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateVacation(ctx context.Context, v *Vacation) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) CreateExpense(ctx context.Context, e *Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) CreateRentalSupport(ctx context.Context, rs *RentalSupport) error {
	return r.db.WithContext(ctx).Create(rs).Error
}

func (r *repository) CreateRentalProposal(ctx context.Context, rp *RentalProposal) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *repository) FindVacationBySeq(ctx context.Context, seq int64) (*Vacation, error) {
	var v Vacation
	err := r.db.WithContext(ctx).First(&v, "seq = ?", seq).Error
	return &v, err
}

func (r *repository) FindExpenseBySeq(ctx context.Context, seq int64) (*Expense, error) {
	var e Expense
	err := r.db.WithContext(ctx).First(&e, "seq = ?", seq).Error
	return &e, err
}

func (r *repository) FindRentalSupportBySeq(ctx context.Context, seq int64) (*RentalSupport, error) {
	var rs RentalSupport
	err := r.db.WithContext(ctx).First(&rs, "seq = ?", seq).Error
	return &rs, err
}

func (r *repository) FindRentalProposalBySeq(ctx context.Context, seq int64) (*RentalProposal, error) {
	var rp RentalProposal
	err := r.db.WithContext(ctx).First(&rp, "seq = ?", seq).Error
	return &rp, err
}

func (r *repository) FindVacationsByUser(ctx context.Context, userID string) ([]Vacation, error) {
	var items []Vacation
	err := r.byUser(ctx, userID).Find(&items).Error
	return items, err
}

func (r *repository) FindExpensesByUser(ctx context.Context, userID string) ([]Expense, error) {
	var items []Expense
	err := r.byUser(ctx, userID).Find(&items).Error
	return items, err
}

func (r *repository) FindRentalSupportsByUser(ctx context.Context, userID string) ([]RentalSupport, error) {
	var items []RentalSupport
	err := r.byUser(ctx, userID).Find(&items).Error
	return items, err
}

func (r *repository) FindRentalProposalsByUser(ctx context.Context, userID string) ([]RentalProposal, error) {
	var items []RentalProposal
	err := r.byUser(ctx, userID).Find(&items).Error
	return items, err
}

func (r *repository) byUser(ctx context.Context, userID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, seq DESC")
}

func (r *repository) PendingVacations(ctx context.Context, f PendingFilter) ([]Vacation, int64, error) {
	var items []Vacation
	total, err := r.pending(ctx, &Vacation{}, f, &items)
	return items, total, err
}

func (r *repository) PendingExpenses(ctx context.Context, f PendingFilter) ([]Expense, int64, error) {
	var items []Expense
	total, err := r.pending(ctx, &Expense{}, f, &items)
	return items, total, err
}

func (r *repository) PendingRentalSupports(ctx context.Context, f PendingFilter) ([]RentalSupport, int64, error) {
	var items []RentalSupport
	total, err := r.pending(ctx, &RentalSupport{}, f, &items)
	return items, total, err
}

func (r *repository) PendingRentalProposals(ctx context.Context, f PendingFilter) ([]RentalProposal, int64, error) {
	var items []RentalProposal
	total, err := r.pending(ctx, &RentalProposal{}, f, &items)
	return items, total, err
}

func (r *repository) pending(ctx context.Context, model any, f PendingFilter, dest any) (int64, error) {
	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		statuses = append(statuses, string(s))
	}

	db := r.db.WithContext(ctx).
		Model(model).
		Where("approval_status IN ?", statuses)
	if f.Division != "" {
		db = db.Where("division = ?", f.Division)
	}
	if f.Team != "" {
		db = db.Where("team = ?", f.Team)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}

	err := db.Order("created_at DESC, seq DESC").Limit(limit).Find(dest).Error
	return total, err
}
