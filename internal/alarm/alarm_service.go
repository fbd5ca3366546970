package alarm

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	alarmerrors "github.com/1000bang/vacation-api-sub001/internal/alarm/errors"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

const (
	unreadCountKeyPrefix = "alarm:unread:"
	unreadCountTTL       = 30 * time.Second
)

func unreadCountKey(userID string) string {
	return unreadCountKeyPrefix + userID
}

//go:generate mockgen -source=alarm_service.go -destination=mock/alarm_service_mock.go -package=mock
type Service interface {
	Notify(ctx context.Context, userID string, alarmType domain.ApprovalStatus, typ domain.ApplicationType, applicationSeq int64, message, redirectURL string) (AlarmResponse, error)
	ListUnread(ctx context.Context, userID string) ([]AlarmResponse, error)
	ListAll(ctx context.Context, userID string) ([]AlarmResponse, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, seq int64) error
	MarkAllRead(ctx context.Context, userID string) error
	InvalidateUnreadCount(ctx context.Context, userID string)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("alarm.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("alarm.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) Notify(ctx context.Context, userID string, alarmType domain.ApprovalStatus, typ domain.ApplicationType, applicationSeq int64, message, redirectURL string) (AlarmResponse, error) {
	if userID == "" {
		return AlarmResponse{}, alarmerrors.ErrInvalidRecipient
	}

	a := &Alarm{
		UserID:          userID,
		AlarmType:       alarmType,
		ApplicationType: typ,
		ApplicationSeq:  applicationSeq,
		Message:         message,
		RedirectURL:     redirectURL,
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		s.logger.Error("notify persist failed",
			zap.String("user_id", userID),
			zap.String("alarm_type", string(alarmType)),
			zap.Error(err),
		)
		return AlarmResponse{}, err
	}

	s.InvalidateUnreadCount(ctx, userID)
	s.logger.Info("notify success",
		zap.Int64("alarm_seq", a.Seq),
		zap.String("user_id", userID),
		zap.String("alarm_type", string(alarmType)),
	)
	return mapToResponse(*a), nil
}

func (s *service) ListUnread(ctx context.Context, userID string) ([]AlarmResponse, error) {
	alarms, err := s.repo.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(alarms), nil
}

func (s *service) ListAll(ctx context.Context, userID string) ([]AlarmResponse, error) {
	alarms, err := s.repo.FindByUser(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(alarms), nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	cacheKey := unreadCountKey(userID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		count, err := s.repo.CountUnread(ctx, userID)
		if err != nil {
			return int64(0), err
		}
		if s.rdb != nil {
			if err := s.rdb.Set(ctx, cacheKey, strconv.FormatInt(count, 10), unreadCountTTL).Err(); err != nil {
				s.logger.Warn("unread count cache set failed", zap.String("user_id", userID), zap.Error(err))
			}
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (s *service) MarkRead(ctx context.Context, userID string, seq int64) error {
	updated, err := s.repo.MarkRead(ctx, userID, seq)
	if err != nil {
		s.logger.Error("mark read failed", zap.Int64("alarm_seq", seq), zap.Error(err))
		return err
	}
	if !updated {
		return alarmerrors.ErrAlarmNotFound
	}

	s.InvalidateUnreadCount(ctx, userID)
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	affected, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("mark all read failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	s.InvalidateUnreadCount(ctx, userID)
	s.logger.Debug("mark all read success",
		zap.String("user_id", userID),
		zap.Int64("affected", affected),
	)
	return nil
}

// InvalidateUnreadCount drops the cached unread count for one user. The
// approval engine calls this after its transaction commits, so counts
// reflect alarms the engine inserted outside this service.
func (s *service) InvalidateUnreadCount(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		s.logger.Warn("unread count cache invalidate failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}
