package approval

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/1000bang/vacation-api-sub001/internal/alarm"
	"github.com/1000bang/vacation-api-sub001/internal/application"
	applicationerrors "github.com/1000bang/vacation-api-sub001/internal/application/errors"
	approvalerrors "github.com/1000bang/vacation-api-sub001/internal/approval/errors"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
	"github.com/1000bang/vacation-api-sub001/internal/events"
	"github.com/1000bang/vacation-api-sub001/internal/messaging/kafka"
	"github.com/1000bang/vacation-api-sub001/internal/rejection"
	"github.com/1000bang/vacation-api-sub001/internal/shared/contextutil"
	"github.com/1000bang/vacation-api-sub001/internal/user"
)

// decisionLevel is derived from the current status, never passed in: a
// record in A/AM is in front of the team leader, a record in B in front
// of the division head. Everything else is terminal.
type decisionLevel string

const (
	levelTeamLeader   decisionLevel = "TEAM_LEADER"
	levelDivisionHead decisionLevel = "DIVISION_HEAD"
)

// Engine executes approval-chain transitions for all four application
// types. It is the only writer of approval status; every status write
// commits in one transaction with its rejection record, alarms and
// outbox events.
//
//go:generate mockgen -source=approval_service.go -destination=mock/approval_service_mock.go -package=mock
type Engine interface {
	Transition(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor, action domain.Action, reason string) (domain.ApprovalStatus, error)
	Resubmit(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor) (domain.ApprovalStatus, error)
}

// UnreadCacheInvalidator drops a recipient's cached unread alarm count.
// The engine inserts alarm rows directly inside its transaction, so it
// must evict the cache itself once the commit makes them visible.
// alarm.Service satisfies this.
type UnreadCacheInvalidator interface {
	InvalidateUnreadCount(ctx context.Context, userID string)
}

type engine struct {
	db          *sql.DB
	stores      application.StoreRegistry
	rejections  rejection.Repository
	alarms      alarm.Repository
	users       user.Repository
	outbox      kafka.OutboxRepository
	unreadCache UnreadCacheInvalidator
	logger      *zap.Logger
}

func NewEngine(
	db *sql.DB,
	stores application.StoreRegistry,
	rejections rejection.Repository,
	alarms alarm.Repository,
	users user.Repository,
	outbox kafka.OutboxRepository,
	unreadCache UnreadCacheInvalidator,
	logger ...*zap.Logger,
) Engine {
	l := zap.L().Named("approval.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.engine")
	}
	return &engine{
		db:          db,
		stores:      stores,
		rejections:  rejections,
		alarms:      alarms,
		users:       users,
		outbox:      outbox,
		unreadCache: unreadCache,
		logger:      l,
	}
}

func (e *engine) Transition(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor, action domain.Action, reason string) (domain.ApprovalStatus, error) {
	e.logger.Debug("transition requested",
		zap.String("application_type", string(typ)),
		zap.Int64("application_seq", seq),
		zap.String("actor_id", actor.UserID),
		zap.String("action", string(action)),
	)

	if action != domain.ActionApprove && action != domain.ActionReject {
		return "", approvalerrors.ErrInvalidAction
	}
	if action == domain.ActionReject && strings.TrimSpace(reason) == "" {
		return "", approvalerrors.ErrReasonRequired
	}

	store, err := e.stores.Store(typ)
	if err != nil {
		return "", applicationerrors.ErrUnknownApplicationType
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		e.logger.Error("transition begin tx failed", zap.Error(err))
		return "", err
	}
	defer tx.Rollback()

	qstore := store.WithTx(tx)

	// The row lock serializes concurrent decisions per key; the loser
	// re-reads an already-updated status and fails the level check or
	// the compare-and-swap below.
	rec, err := qstore.GetForUpdate(ctx, seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", applicationerrors.ErrApplicationNotFound
		}
		e.logger.Error("transition load record failed", zap.Error(err))
		return "", err
	}

	level, err := decisionLevelFor(rec.ApprovalStatus)
	if err != nil {
		e.logger.Warn("transition from non-decidable status",
			zap.String("application_type", string(typ)),
			zap.Int64("application_seq", seq),
			zap.String("current_status", string(rec.ApprovalStatus)),
		)
		return "", err
	}

	if err := authorizeDecision(actor, level, rec); err != nil {
		e.logger.Warn("transition forbidden",
			zap.String("actor_id", actor.UserID),
			zap.String("actor_role", string(actor.Role)),
			zap.String("level", string(level)),
		)
		return "", err
	}

	next := nextStatus(level, action)

	updated, err := qstore.UpdateStatus(ctx, seq, rec.ApprovalStatus, next)
	if err != nil {
		e.logger.Error("transition status update failed", zap.Error(err))
		return "", err
	}
	if !updated {
		// Concurrent loser: the row changed between read and write.
		return "", approvalerrors.ErrInvalidTransition
	}

	if action == domain.ActionReject {
		qrej := e.rejections.WithTx(tx)
		if err := qrej.Insert(ctx, &rejection.RejectionRecord{
			ApplicationType: typ,
			ApplicationSeq:  seq,
			RejectedBy:      actor.UserID,
			RejectionLevel:  rejectionLevelFor(level),
			RejectionReason: reason,
		}); err != nil {
			e.logger.Error("transition rejection persist failed", zap.Error(err))
			return "", err
		}
	}

	notified, err := e.fanOutAlarms(ctx, tx, typ, seq, rec, next, reason)
	if err != nil {
		e.logger.Error("transition alarm fan-out failed", zap.Error(err))
		return "", err
	}

	if err := tx.Commit(); err != nil {
		e.logger.Error("transition commit failed", zap.Error(err))
		return "", err
	}

	e.invalidateUnreadCounts(ctx, notified)

	e.logger.Info("transition success",
		zap.String("application_type", string(typ)),
		zap.Int64("application_seq", seq),
		zap.String("from_status", string(rec.ApprovalStatus)),
		zap.String("to_status", string(next)),
		zap.String("actor_id", actor.UserID),
	)
	return next, nil
}

func (e *engine) Resubmit(ctx context.Context, typ domain.ApplicationType, seq int64, actor domain.Actor) (domain.ApprovalStatus, error) {
	e.logger.Debug("resubmit requested",
		zap.String("application_type", string(typ)),
		zap.Int64("application_seq", seq),
		zap.String("actor_id", actor.UserID),
	)

	store, err := e.stores.Store(typ)
	if err != nil {
		return "", applicationerrors.ErrUnknownApplicationType
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		e.logger.Error("resubmit begin tx failed", zap.Error(err))
		return "", err
	}
	defer tx.Rollback()

	qstore := store.WithTx(tx)

	rec, err := qstore.GetForUpdate(ctx, seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", applicationerrors.ErrApplicationNotFound
		}
		e.logger.Error("resubmit load record failed", zap.Error(err))
		return "", err
	}

	if rec.UserID != actor.UserID {
		return "", approvalerrors.ErrNotApplicant
	}

	// Only rejected applications can come back; a finally approved one
	// stays closed.
	if rec.ApprovalStatus != domain.StatusTeamRejected && rec.ApprovalStatus != domain.StatusFinalRejected {
		return "", approvalerrors.ErrInvalidTransition
	}

	updated, err := qstore.UpdateStatus(ctx, seq, rec.ApprovalStatus, domain.StatusResubmitted)
	if err != nil {
		e.logger.Error("resubmit status update failed", zap.Error(err))
		return "", err
	}
	if !updated {
		return "", approvalerrors.ErrInvalidTransition
	}

	// The rejection ledger keeps its history: resubmission adds nothing
	// and removes nothing there.

	leaders, err := e.users.FindApprovers(ctx, domain.RoleTeamLeader, rec.Division, rec.Team)
	if err != nil {
		e.logger.Error("resubmit approver lookup failed", zap.Error(err))
		return "", err
	}
	notified := make([]string, 0, len(leaders))
	for _, leader := range leaders {
		if err := e.enqueueAlarm(ctx, tx, alarm.Alarm{
			UserID:          leader.ID.String(),
			AlarmType:       domain.StatusResubmitted,
			ApplicationType: typ,
			ApplicationSeq:  seq,
			Message:         fmt.Sprintf("A %s application has been resubmitted and is awaiting your decision", typ.Label()),
			RedirectURL:     redirectURL(typ, seq),
		}); err != nil {
			return "", err
		}
		notified = append(notified, leader.ID.String())
	}

	if err := tx.Commit(); err != nil {
		e.logger.Error("resubmit commit failed", zap.Error(err))
		return "", err
	}

	e.invalidateUnreadCounts(ctx, notified)

	e.logger.Info("resubmit success",
		zap.String("application_type", string(typ)),
		zap.Int64("application_seq", seq),
		zap.String("from_status", string(rec.ApprovalStatus)),
	)
	return domain.StatusResubmitted, nil
}

func decisionLevelFor(s domain.ApprovalStatus) (decisionLevel, error) {
	switch s {
	case domain.StatusSubmitted, domain.StatusResubmitted:
		return levelTeamLeader, nil
	case domain.StatusTeamApproved:
		return levelDivisionHead, nil
	case domain.StatusTeamRejected, domain.StatusFinalApproved, domain.StatusFinalRejected:
		return "", approvalerrors.ErrInvalidTransition
	default:
		return "", approvalerrors.ErrInvalidTransition
	}
}

func authorizeDecision(actor domain.Actor, level decisionLevel, rec application.Record) error {
	switch level {
	case levelTeamLeader:
		if actor.Role != domain.RoleTeamLeader {
			return approvalerrors.ErrNotTeamLeader
		}
		if actor.Division != rec.Division || actor.Team != rec.Team {
			return approvalerrors.ErrOutOfScope
		}
	case levelDivisionHead:
		if actor.Role != domain.RoleDivisionHead {
			return approvalerrors.ErrNotDivisionHead
		}
		if actor.Division != rec.Division {
			return approvalerrors.ErrOutOfScope
		}
	}
	return nil
}

func nextStatus(level decisionLevel, action domain.Action) domain.ApprovalStatus {
	if level == levelTeamLeader {
		if action == domain.ActionApprove {
			return domain.StatusTeamApproved
		}
		return domain.StatusTeamRejected
	}
	if action == domain.ActionApprove {
		return domain.StatusFinalApproved
	}
	return domain.StatusFinalRejected
}

func rejectionLevelFor(level decisionLevel) domain.RejectionLevel {
	if level == levelTeamLeader {
		return domain.RejectedByTeamLeader
	}
	return domain.RejectedByDivisionHead
}

// fanOutAlarms enqueues the applicant alarm for the new status and, on a
// team-leader approval, one alarm per eligible division head telling
// them the application is now pending their decision. It returns the
// recipients so the caller can evict their unread-count caches after
// the commit.
func (e *engine) fanOutAlarms(ctx context.Context, tx *sql.Tx, typ domain.ApplicationType, seq int64, rec application.Record, next domain.ApprovalStatus, reason string) ([]string, error) {
	if err := e.enqueueAlarm(ctx, tx, alarm.Alarm{
		UserID:          rec.UserID,
		AlarmType:       next,
		ApplicationType: typ,
		ApplicationSeq:  seq,
		Message:         applicantMessage(typ, next, reason),
		RedirectURL:     redirectURL(typ, seq),
	}); err != nil {
		return nil, err
	}
	notified := []string{rec.UserID}

	if next != domain.StatusTeamApproved {
		return notified, nil
	}

	heads, err := e.users.FindApprovers(ctx, domain.RoleDivisionHead, rec.Division, "")
	if err != nil {
		return nil, err
	}
	for _, head := range heads {
		if err := e.enqueueAlarm(ctx, tx, alarm.Alarm{
			UserID:          head.ID.String(),
			AlarmType:       domain.StatusSubmitted,
			ApplicationType: typ,
			ApplicationSeq:  seq,
			Message:         fmt.Sprintf("A %s application is awaiting your decision", typ.Label()),
			RedirectURL:     redirectURL(typ, seq),
		}); err != nil {
			return nil, err
		}
		notified = append(notified, head.ID.String())
	}
	return notified, nil
}

// invalidateUnreadCounts must run after commit: an earlier evict lets a
// concurrent refill cache the pre-commit count.
func (e *engine) invalidateUnreadCounts(ctx context.Context, userIDs []string) {
	if e.unreadCache == nil {
		return
	}
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		e.unreadCache.InvalidateUnreadCount(ctx, id)
	}
}

// enqueueAlarm inserts the alarm row and its delivery event through the
// same transaction, so a rollback leaves neither behind.
func (e *engine) enqueueAlarm(ctx context.Context, tx *sql.Tx, a alarm.Alarm) error {
	qalarms := e.alarms.WithTx(tx)
	if err := qalarms.Insert(ctx, &a); err != nil {
		return err
	}

	if e.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.AlarmCreatedEvent{
		AlarmSeq:        a.Seq,
		UserID:          a.UserID,
		AlarmType:       string(a.AlarmType),
		ApplicationType: string(a.ApplicationType),
		ApplicationSeq:  a.ApplicationSeq,
		Message:         a.Message,
		RedirectURL:     a.RedirectURL,
	})
	if err != nil {
		return err
	}

	qoutbox := e.outbox.WithTx(tx)
	return qoutbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "alarm",
		AggregateID:   strconv.FormatInt(a.Seq, 10),
		EventType:     "alarm_created",
		Topic:         events.AlarmCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func applicantMessage(typ domain.ApplicationType, next domain.ApprovalStatus, reason string) string {
	switch next {
	case domain.StatusTeamApproved:
		return fmt.Sprintf("Your %s application has been approved by the team leader", typ.Label())
	case domain.StatusFinalApproved:
		return fmt.Sprintf("Your %s application has been approved by the division head", typ.Label())
	case domain.StatusTeamRejected:
		return fmt.Sprintf("Your %s application has been rejected by the team leader: %s", typ.Label(), reason)
	case domain.StatusFinalRejected:
		return fmt.Sprintf("Your %s application has been rejected by the division head: %s", typ.Label(), reason)
	}
	return fmt.Sprintf("Your %s application status changed to %s", typ.Label(), next)
}

func redirectURL(typ domain.ApplicationType, seq int64) string {
	return fmt.Sprintf("/applications/%s/%d", typ.Slug(), seq)
}
