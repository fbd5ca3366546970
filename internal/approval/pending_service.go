package approval

import (
	"context"

	"go.uber.org/zap"

	"github.com/1000bang/vacation-api-sub001/internal/application"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

// PendingSection holds one application type's slice of the pending
// inbox. TotalCount is the full count before the page limit.
type PendingSection struct {
	Items      []application.Item `json:"items"`
	TotalCount int64              `json:"total_count"`
}

// PendingApprovalView is the combined inbox across all four
// application types, always with all four sections present.
type PendingApprovalView struct {
	Vacation       PendingSection `json:"vacation"`
	Expense        PendingSection `json:"expense"`
	RentalSupport  PendingSection `json:"rental_support"`
	RentalProposal PendingSection `json:"rental_proposal"`
}

// Aggregator assembles the pending inbox for an approver. Visibility
// follows the actor's role: team leaders see their own team's queue,
// division heads their division's, admins everything.
//
//go:generate mockgen -source=pending_service.go -destination=mock/pending_service_mock.go -package=mock
type Aggregator interface {
	ListPending(ctx context.Context, actor domain.Actor) (*PendingApprovalView, error)
}

type aggregator struct {
	apps   application.Repository
	logger *zap.Logger
}

func NewAggregator(apps application.Repository, logger ...*zap.Logger) Aggregator {
	l := zap.L().Named("approval.aggregator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.aggregator")
	}
	return &aggregator{apps: apps, logger: l}
}

func (a *aggregator) ListPending(ctx context.Context, actor domain.Actor) (*PendingApprovalView, error) {
	a.logger.Debug("pending inbox requested",
		zap.String("actor_id", actor.UserID),
		zap.String("actor_role", string(actor.Role)),
	)

	filter, ok := scopeFor(actor)
	if !ok {
		// No approver role: an empty view, not an error, so the client
		// can render the same screen for everyone.
		return &PendingApprovalView{
			Vacation:       PendingSection{Items: []application.Item{}},
			Expense:        PendingSection{Items: []application.Item{}},
			RentalSupport:  PendingSection{Items: []application.Item{}},
			RentalProposal: PendingSection{Items: []application.Item{}},
		}, nil
	}

	view := &PendingApprovalView{}

	vacations, vTotal, err := a.apps.PendingVacations(ctx, filter)
	if err != nil {
		a.logger.Error("pending vacations query failed", zap.Error(err))
		return nil, err
	}
	view.Vacation = PendingSection{Items: mapItems(vacations, application.VacationItem), TotalCount: vTotal}

	expenses, eTotal, err := a.apps.PendingExpenses(ctx, filter)
	if err != nil {
		a.logger.Error("pending expenses query failed", zap.Error(err))
		return nil, err
	}
	view.Expense = PendingSection{Items: mapItems(expenses, application.ExpenseItem), TotalCount: eTotal}

	supports, sTotal, err := a.apps.PendingRentalSupports(ctx, filter)
	if err != nil {
		a.logger.Error("pending rental supports query failed", zap.Error(err))
		return nil, err
	}
	view.RentalSupport = PendingSection{Items: mapItems(supports, application.RentalSupportItem), TotalCount: sTotal}

	proposals, pTotal, err := a.apps.PendingRentalProposals(ctx, filter)
	if err != nil {
		a.logger.Error("pending rental proposals query failed", zap.Error(err))
		return nil, err
	}
	view.RentalProposal = PendingSection{Items: mapItems(proposals, application.RentalProposalItem), TotalCount: pTotal}

	a.logger.Info("pending inbox assembled",
		zap.String("actor_id", actor.UserID),
		zap.Int64("vacations", vTotal),
		zap.Int64("expenses", eTotal),
		zap.Int64("rental_supports", sTotal),
		zap.Int64("rental_proposals", pTotal),
	)
	return view, nil
}

// scopeFor maps the actor's role to the statuses and org scope they
// may decide on. The second return is false when the actor is not an
// approver at all; the caller then skips the queries entirely.
func scopeFor(actor domain.Actor) (application.PendingFilter, bool) {
	switch actor.Role {
	case domain.RoleTeamLeader:
		return application.PendingFilter{
			Statuses: []domain.ApprovalStatus{domain.StatusSubmitted, domain.StatusResubmitted},
			Division: actor.Division,
			Team:     actor.Team,
		}, true
	case domain.RoleDivisionHead:
		return application.PendingFilter{
			Statuses: []domain.ApprovalStatus{domain.StatusTeamApproved},
			Division: actor.Division,
		}, true
	case domain.RoleAdmin:
		return application.PendingFilter{
			Statuses: []domain.ApprovalStatus{domain.StatusSubmitted, domain.StatusResubmitted, domain.StatusTeamApproved},
		}, true
	default:
		return application.PendingFilter{}, false
	}
}

func mapItems[T any](rows []T, mapper func(T) application.Item) []application.Item {
	items := make([]application.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapper(row))
	}
	return items
}
