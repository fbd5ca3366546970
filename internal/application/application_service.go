package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	applicationerrors "github.com/1000bang/vacation-api-sub001/internal/application/errors"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

//go:generate mockgen -source=application_service.go -destination=mock/application_service_mock.go -package=mock
type Service interface {
	CreateVacation(ctx context.Context, actor domain.Actor, req CreateVacationRequest) (Item, error)
	CreateExpense(ctx context.Context, actor domain.Actor, req CreateExpenseRequest) (Item, error)
	CreateRentalSupport(ctx context.Context, actor domain.Actor, req CreateRentalSupportRequest) (Item, error)
	CreateRentalProposal(ctx context.Context, actor domain.Actor, req CreateRentalProposalRequest) (Item, error)

	ListMine(ctx context.Context, actor domain.Actor, typ domain.ApplicationType) ([]Item, error)
	Get(ctx context.Context, actor domain.Actor, typ domain.ApplicationType, seq int64) (Item, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("application.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("application.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) CreateVacation(ctx context.Context, actor domain.Actor, req CreateVacationRequest) (Item, error) {
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return Item{}, applicationerrors.ErrInvalidActorID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return Item{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return Item{}, err
	}
	if startDate.After(endDate) {
		return Item{}, applicationerrors.ErrInvalidDateRange
	}

	v := &Vacation{
		UserID:         userID,
		Division:       actor.Division,
		Team:           actor.Team,
		VacationType:   req.VacationType,
		StartDate:      startDate,
		EndDate:        endDate,
		Reason:         req.Reason,
		ApprovalStatus: string(domain.StatusSubmitted),
	}
	if err := s.repo.CreateVacation(ctx, v); err != nil {
		s.logger.Error("create vacation persist failed", zap.Error(err))
		return Item{}, err
	}

	s.logger.Info("create vacation success",
		zap.Int64("seq", v.Seq),
		zap.String("user_id", actor.UserID),
	)
	return VacationItem(*v), nil
}

func (s *service) CreateExpense(ctx context.Context, actor domain.Actor, req CreateExpenseRequest) (Item, error) {
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return Item{}, applicationerrors.ErrInvalidActorID
	}

	expenseDate, err := parseDate(req.ExpenseDate)
	if err != nil {
		return Item{}, err
	}

	e := &Expense{
		UserID:         userID,
		Division:       actor.Division,
		Team:           actor.Team,
		Amount:         req.Amount,
		Category:       req.Category,
		ExpenseDate:    expenseDate,
		Description:    req.Description,
		ApprovalStatus: string(domain.StatusSubmitted),
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		s.logger.Error("create expense persist failed", zap.Error(err))
		return Item{}, err
	}

	s.logger.Info("create expense success",
		zap.Int64("seq", e.Seq),
		zap.String("user_id", actor.UserID),
	)
	return ExpenseItem(*e), nil
}

func (s *service) CreateRentalSupport(ctx context.Context, actor domain.Actor, req CreateRentalSupportRequest) (Item, error) {
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return Item{}, applicationerrors.ErrInvalidActorID
	}

	contractStart, err := parseDate(req.ContractStart)
	if err != nil {
		return Item{}, err
	}
	contractEnd, err := parseDate(req.ContractEnd)
	if err != nil {
		return Item{}, err
	}
	if contractStart.After(contractEnd) {
		return Item{}, applicationerrors.ErrInvalidDateRange
	}

	rs := &RentalSupport{
		UserID:         userID,
		Division:       actor.Division,
		Team:           actor.Team,
		MonthlyRent:    req.MonthlyRent,
		Deposit:        req.Deposit,
		ContractStart:  contractStart,
		ContractEnd:    contractEnd,
		Address:        req.Address,
		ApprovalStatus: string(domain.StatusSubmitted),
	}
	if err := s.repo.CreateRentalSupport(ctx, rs); err != nil {
		s.logger.Error("create rental support persist failed", zap.Error(err))
		return Item{}, err
	}

	s.logger.Info("create rental support success",
		zap.Int64("seq", rs.Seq),
		zap.String("user_id", actor.UserID),
	)
	return RentalSupportItem(*rs), nil
}

func (s *service) CreateRentalProposal(ctx context.Context, actor domain.Actor, req CreateRentalProposalRequest) (Item, error) {
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return Item{}, applicationerrors.ErrInvalidActorID
	}

	rp := &RentalProposal{
		UserID:         userID,
		Division:       actor.Division,
		Team:           actor.Team,
		MonthlyRent:    req.MonthlyRent,
		Deposit:        req.Deposit,
		Address:        req.Address,
		LandlordName:   req.LandlordName,
		ApprovalStatus: string(domain.StatusSubmitted),
	}
	if err := s.repo.CreateRentalProposal(ctx, rp); err != nil {
		s.logger.Error("create rental proposal persist failed", zap.Error(err))
		return Item{}, err
	}

	s.logger.Info("create rental proposal success",
		zap.Int64("seq", rp.Seq),
		zap.String("user_id", actor.UserID),
	)
	return RentalProposalItem(*rp), nil
}

func (s *service) ListMine(ctx context.Context, actor domain.Actor, typ domain.ApplicationType) ([]Item, error) {
	switch typ {
	case domain.TypeVacation:
		items, err := s.repo.FindVacationsByUser(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		out := make([]Item, len(items))
		for i, v := range items {
			out[i] = VacationItem(v)
		}
		return out, nil
	case domain.TypeExpense:
		items, err := s.repo.FindExpensesByUser(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		out := make([]Item, len(items))
		for i, e := range items {
			out[i] = ExpenseItem(e)
		}
		return out, nil
	case domain.TypeRentalSupport:
		items, err := s.repo.FindRentalSupportsByUser(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		out := make([]Item, len(items))
		for i, rs := range items {
			out[i] = RentalSupportItem(rs)
		}
		return out, nil
	case domain.TypeRentalProposal:
		items, err := s.repo.FindRentalProposalsByUser(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		out := make([]Item, len(items))
		for i, rp := range items {
			out[i] = RentalProposalItem(rp)
		}
		return out, nil
	}
	return nil, applicationerrors.ErrUnknownApplicationType
}

func (s *service) Get(ctx context.Context, actor domain.Actor, typ domain.ApplicationType, seq int64) (Item, error) {
	var item Item

	switch typ {
	case domain.TypeVacation:
		v, err := s.repo.FindVacationBySeq(ctx, seq)
		if err != nil {
			return Item{}, mapFindError(err)
		}
		item = VacationItem(*v)
	case domain.TypeExpense:
		e, err := s.repo.FindExpenseBySeq(ctx, seq)
		if err != nil {
			return Item{}, mapFindError(err)
		}
		item = ExpenseItem(*e)
	case domain.TypeRentalSupport:
		rs, err := s.repo.FindRentalSupportBySeq(ctx, seq)
		if err != nil {
			return Item{}, mapFindError(err)
		}
		item = RentalSupportItem(*rs)
	case domain.TypeRentalProposal:
		rp, err := s.repo.FindRentalProposalBySeq(ctx, seq)
		if err != nil {
			return Item{}, mapFindError(err)
		}
		item = RentalProposalItem(*rp)
	default:
		return Item{}, applicationerrors.ErrUnknownApplicationType
	}

	if !CanView(actor, item) {
		return Item{}, applicationerrors.ErrNotApplicationOwner
	}
	return item, nil
}

// CanView implements the read-side visibility rule: applicants see their
// own rows, team leaders their team, division heads their division,
// admins everything.
func CanView(actor domain.Actor, item Item) bool {
	if actor.UserID == item.UserID {
		return true
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleDivisionHead:
		return actor.Division == item.Division
	case domain.RoleTeamLeader:
		return actor.Division == item.Division && actor.Team == item.Team
	}
	return false
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, applicationerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return applicationerrors.ErrApplicationNotFound
	}
	return err
}
