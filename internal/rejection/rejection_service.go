package rejection

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/1000bang/vacation-api-sub001/internal/application"
	applicationerrors "github.com/1000bang/vacation-api-sub001/internal/application/errors"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
	rejectionerrors "github.com/1000bang/vacation-api-sub001/internal/rejection/errors"
)

// Service is the read side of the ledger. Writing is reserved for the
// approval engine, which inserts inside its own transaction.
//
//go:generate mockgen -source=rejection_service.go -destination=mock/rejection_service_mock.go -package=mock
type Service interface {
	Latest(ctx context.Context, actor domain.Actor, typ domain.ApplicationType, seq int64) (RejectionRecord, error)
	History(ctx context.Context, actor domain.Actor, typ domain.ApplicationType, seq int64) ([]RejectionRecord, error)
}

type service struct {
	repo   Repository
	stores application.StoreRegistry
	logger *zap.Logger
}

func NewService(repo Repository, stores application.StoreRegistry, logger ...*zap.Logger) Service {
	l := zap.L().Named("rejection.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rejection.service")
	}
	return &service{repo: repo, stores: stores, logger: l}
}

func (s *service) Latest(ctx context.Context, actor domain.Actor, typ domain.ApplicationType, seq int64) (RejectionRecord, error) {
	if err := s.checkScope(ctx, actor, typ, seq); err != nil {
		return RejectionRecord{}, err
	}

	rec, err := s.repo.FindLatest(ctx, typ, seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RejectionRecord{}, rejectionerrors.ErrRejectionNotFound
		}
		s.logger.Error("find latest rejection failed",
			zap.String("application_type", string(typ)),
			zap.Int64("application_seq", seq),
			zap.Error(err),
		)
		return RejectionRecord{}, err
	}
	return *rec, nil
}

func (s *service) History(ctx context.Context, actor domain.Actor, typ domain.ApplicationType, seq int64) ([]RejectionRecord, error) {
	if err := s.checkScope(ctx, actor, typ, seq); err != nil {
		return nil, err
	}

	records, err := s.repo.FindAll(ctx, typ, seq)
	if err != nil {
		s.logger.Error("find rejection history failed",
			zap.String("application_type", string(typ)),
			zap.Int64("application_seq", seq),
			zap.Error(err),
		)
		return nil, err
	}
	return records, nil
}

// checkScope resolves the application row behind the polymorphic key and
// applies the same visibility rule as the applicant views.
func (s *service) checkScope(ctx context.Context, actor domain.Actor, typ domain.ApplicationType, seq int64) error {
	store, err := s.stores.Store(typ)
	if err != nil {
		return applicationerrors.ErrUnknownApplicationType
	}

	rec, err := store.Get(ctx, seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return applicationerrors.ErrApplicationNotFound
		}
		return err
	}

	visible := application.CanView(actor, application.Item{
		UserID:   rec.UserID,
		Division: rec.Division,
		Team:     rec.Team,
	})
	if !visible {
		return rejectionerrors.ErrOutOfScope
	}
	return nil
}
