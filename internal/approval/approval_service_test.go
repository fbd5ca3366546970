package approval_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/1000bang/vacation-api-sub001/internal/alarm"
	"github.com/1000bang/vacation-api-sub001/internal/application"
	applicationerrors "github.com/1000bang/vacation-api-sub001/internal/application/errors"
	"github.com/1000bang/vacation-api-sub001/internal/approval"
	approvalerrors "github.com/1000bang/vacation-api-sub001/internal/approval/errors"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
	"github.com/1000bang/vacation-api-sub001/internal/events"
	"github.com/1000bang/vacation-api-sub001/internal/messaging/kafka"
	"github.com/1000bang/vacation-api-sub001/internal/rejection"
	"github.com/1000bang/vacation-api-sub001/internal/user"
)

type fakeRecordStore struct {
	getFn          func(ctx context.Context, seq int64) (application.Record, error)
	getForUpdateFn func(ctx context.Context, seq int64) (application.Record, error)
	updateStatusFn func(ctx context.Context, seq int64, from, to domain.ApprovalStatus) (bool, error)
}

func (f *fakeRecordStore) WithTx(tx *sql.Tx) application.RecordStore { return f }

func (f *fakeRecordStore) Get(ctx context.Context, seq int64) (application.Record, error) {
	if f.getFn != nil {
		return f.getFn(ctx, seq)
	}
	return application.Record{}, sql.ErrNoRows
}

func (f *fakeRecordStore) GetForUpdate(ctx context.Context, seq int64) (application.Record, error) {
	if f.getForUpdateFn != nil {
		return f.getForUpdateFn(ctx, seq)
	}
	return application.Record{}, sql.ErrNoRows
}

func (f *fakeRecordStore) UpdateStatus(ctx context.Context, seq int64, from, to domain.ApprovalStatus) (bool, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, seq, from, to)
	}
	return true, nil
}

type fakeStoreRegistry struct {
	store application.RecordStore
}

func (f *fakeStoreRegistry) Store(typ domain.ApplicationType) (application.RecordStore, error) {
	if !typ.Valid() {
		return nil, applicationerrors.ErrUnknownApplicationType
	}
	return f.store, nil
}

type fakeRejectionRepo struct {
	inserted []rejection.RejectionRecord
	insertFn func(ctx context.Context, rec *rejection.RejectionRecord) error
}

func (f *fakeRejectionRepo) WithTx(tx *sql.Tx) rejection.Repository { return f }

func (f *fakeRejectionRepo) Insert(ctx context.Context, rec *rejection.RejectionRecord) error {
	if f.insertFn != nil {
		return f.insertFn(ctx, rec)
	}
	rec.Seq = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, *rec)
	return nil
}

func (f *fakeRejectionRepo) FindLatest(ctx context.Context, typ domain.ApplicationType, seq int64) (*rejection.RejectionRecord, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeRejectionRepo) FindAll(ctx context.Context, typ domain.ApplicationType, seq int64) ([]rejection.RejectionRecord, error) {
	return nil, nil
}

type fakeAlarmRepo struct {
	inserted []alarm.Alarm
	insertFn func(ctx context.Context, a *alarm.Alarm) error
}

func (f *fakeAlarmRepo) WithTx(tx *sql.Tx) alarm.Repository { return f }

func (f *fakeAlarmRepo) Insert(ctx context.Context, a *alarm.Alarm) error {
	if f.insertFn != nil {
		return f.insertFn(ctx, a)
	}
	a.Seq = int64(len(f.inserted) + 1)
	f.inserted = append(f.inserted, *a)
	return nil
}

func (f *fakeAlarmRepo) FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]alarm.Alarm, error) {
	return nil, nil
}

func (f *fakeAlarmRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func (f *fakeAlarmRepo) MarkRead(ctx context.Context, userID string, seq int64) (bool, error) {
	return false, nil
}

func (f *fakeAlarmRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	findApproversFn func(ctx context.Context, role domain.RoleLevel, division, team string) ([]user.User, error)
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*user.User, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByLoginID(ctx context.Context, loginID string) (*user.User, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindApprovers(ctx context.Context, role domain.RoleLevel, division, team string) ([]user.User, error) {
	if f.findApproversFn != nil {
		return f.findApproversFn(ctx, role, division, team)
	}
	return nil, nil
}

type fakeOutboxRepo struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepo) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeUnreadCache struct {
	invalidated []string
}

func (f *fakeUnreadCache) InvalidateUnreadCount(ctx context.Context, userID string) {
	f.invalidated = append(f.invalidated, userID)
}

type engineDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	store       *fakeRecordStore
	rejections  *fakeRejectionRepo
	alarms      *fakeAlarmRepo
	users       *fakeUserRepo
	outbox      *fakeOutboxRepo
	unreadCache *fakeUnreadCache
	engine      approval.Engine
}

func setupEngineTest(t *testing.T) *engineDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	store := &fakeRecordStore{}
	rejections := &fakeRejectionRepo{}
	alarms := &fakeAlarmRepo{}
	users := &fakeUserRepo{}
	outbox := &fakeOutboxRepo{}
	unreadCache := &fakeUnreadCache{}

	eng := approval.NewEngine(db, &fakeStoreRegistry{store: store}, rejections, alarms, users, outbox, unreadCache)

	return &engineDeps{
		db:          db,
		sqlMock:     sqlMock,
		store:       store,
		rejections:  rejections,
		alarms:      alarms,
		users:       users,
		outbox:      outbox,
		unreadCache: unreadCache,
		engine:      eng,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingRecord(userID string, status domain.ApprovalStatus) application.Record {
	return application.Record{
		Seq:            7,
		UserID:         userID,
		Division:       "ENGINEERING",
		Team:           "PLATFORM",
		ApprovalStatus: status,
	}
}

func teamLeader() domain.Actor {
	return domain.Actor{
		UserID:   uuid.New().String(),
		Division: "ENGINEERING",
		Team:     "PLATFORM",
		Role:     domain.RoleTeamLeader,
	}
}

func divisionHead() domain.Actor {
	return domain.Actor{
		UserID:   uuid.New().String(),
		Division: "ENGINEERING",
		Role:     domain.RoleDivisionHead,
	}
}

func TestEngine_Transition_TeamLeaderApprove(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()
	headID := uuid.New()

	deps := setupEngineTest(t)
	defer deps.db.Close()

	deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
		return pendingRecord(applicantID, domain.StatusSubmitted), nil
	}
	deps.users.findApproversFn = func(ctx context.Context, role domain.RoleLevel, division, team string) ([]user.User, error) {
		assert.Equal(t, domain.RoleDivisionHead, role)
		assert.Equal(t, "ENGINEERING", division)
		assert.Empty(t, team)
		return []user.User{{ID: headID}}, nil
	}

	expectTx(t, deps.sqlMock, true)

	next, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, teamLeader(), domain.ActionApprove, "")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusTeamApproved, next)

	// Applicant alarm plus one per division head.
	assert.Len(t, deps.alarms.inserted, 2)
	assert.Equal(t, applicantID, deps.alarms.inserted[0].UserID)
	assert.Equal(t, domain.StatusTeamApproved, deps.alarms.inserted[0].AlarmType)
	assert.Equal(t, headID.String(), deps.alarms.inserted[1].UserID)
	assert.Equal(t, domain.StatusSubmitted, deps.alarms.inserted[1].AlarmType)

	assert.Empty(t, deps.rejections.inserted)
	assert.Equal(t, []string{applicantID, headID.String()}, deps.unreadCache.invalidated)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEngine_Transition_TeamLeaderReject(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()
	actor := teamLeader()

	deps := setupEngineTest(t)
	defer deps.db.Close()

	deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
		return pendingRecord(applicantID, domain.StatusResubmitted), nil
	}

	expectTx(t, deps.sqlMock, true)

	next, err := deps.engine.Transition(ctx, domain.TypeExpense, 7, actor, domain.ActionReject, "receipts missing")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusTeamRejected, next)

	assert.Len(t, deps.rejections.inserted, 1)
	rec := deps.rejections.inserted[0]
	assert.Equal(t, domain.TypeExpense, rec.ApplicationType)
	assert.Equal(t, int64(7), rec.ApplicationSeq)
	assert.Equal(t, actor.UserID, rec.RejectedBy)
	assert.Equal(t, domain.RejectedByTeamLeader, rec.RejectionLevel)
	assert.Equal(t, "receipts missing", rec.RejectionReason)

	// Rejection notifies only the applicant.
	assert.Len(t, deps.alarms.inserted, 1)
	assert.Equal(t, applicantID, deps.alarms.inserted[0].UserID)
	assert.Contains(t, deps.alarms.inserted[0].Message, "receipts missing")

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEngine_Transition_RejectRequiresReason(t *testing.T) {
	ctx := context.Background()

	deps := setupEngineTest(t)
	defer deps.db.Close()

	_, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, teamLeader(), domain.ActionReject, "   ")
	assert.ErrorIs(t, err, approvalerrors.ErrReasonRequired)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEngine_Transition_DivisionHead(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()

	t.Run("approve lands in final approval", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
			return pendingRecord(applicantID, domain.StatusTeamApproved), nil
		}

		expectTx(t, deps.sqlMock, true)

		next, err := deps.engine.Transition(ctx, domain.TypeRentalSupport, 7, divisionHead(), domain.ActionApprove, "")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusFinalApproved, next)
		assert.Len(t, deps.alarms.inserted, 1)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject records the final level", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
			return pendingRecord(applicantID, domain.StatusTeamApproved), nil
		}

		expectTx(t, deps.sqlMock, true)

		next, err := deps.engine.Transition(ctx, domain.TypeRentalProposal, 7, divisionHead(), domain.ActionReject, "over budget")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusFinalRejected, next)
		assert.Len(t, deps.rejections.inserted, 1)
		assert.Equal(t, domain.RejectedByDivisionHead, deps.rejections.inserted[0].RejectionLevel)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEngine_Transition_Authorization(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()

	t.Run("division head cannot decide the team stage", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
			return pendingRecord(applicantID, domain.StatusSubmitted), nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, divisionHead(), domain.ActionApprove, "")
		assert.ErrorIs(t, err, approvalerrors.ErrNotTeamLeader)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("team leader of another team is out of scope", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
			return pendingRecord(applicantID, domain.StatusSubmitted), nil
		}

		actor := teamLeader()
		actor.Team = "DATA"

		expectTx(t, deps.sqlMock, false)

		_, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, actor, domain.ActionApprove, "")
		assert.ErrorIs(t, err, approvalerrors.ErrOutOfScope)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin role has no decision authority", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
			return pendingRecord(applicantID, domain.StatusSubmitted), nil
		}

		actor := teamLeader()
		actor.Role = domain.RoleAdmin

		expectTx(t, deps.sqlMock, false)

		_, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, actor, domain.ActionApprove, "")
		assert.ErrorIs(t, err, approvalerrors.ErrNotTeamLeader)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEngine_Transition_TerminalStatus(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()

	for _, status := range []domain.ApprovalStatus{
		domain.StatusTeamRejected,
		domain.StatusFinalApproved,
		domain.StatusFinalRejected,
	} {
		t.Run(string(status), func(t *testing.T) {
			deps := setupEngineTest(t)
			defer deps.db.Close()

			deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
				return pendingRecord(applicantID, status), nil
			}

			expectTx(t, deps.sqlMock, false)

			_, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, teamLeader(), domain.ActionApprove, "")
			assert.ErrorIs(t, err, approvalerrors.ErrInvalidTransition)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestEngine_Transition_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupEngineTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	_, err := deps.engine.Transition(ctx, domain.TypeVacation, 404, teamLeader(), domain.ActionApprove, "")
	assert.ErrorIs(t, err, applicationerrors.ErrApplicationNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEngine_Transition_ConcurrentLoser(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()

	deps := setupEngineTest(t)
	defer deps.db.Close()

	deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
		return pendingRecord(applicantID, domain.StatusSubmitted), nil
	}
	deps.store.updateStatusFn = func(ctx context.Context, seq int64, from, to domain.ApprovalStatus) (bool, error) {
		// Another decision slipped in between the read and the write.
		return false, nil
	}

	expectTx(t, deps.sqlMock, false)

	_, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, teamLeader(), domain.ActionApprove, "")
	assert.ErrorIs(t, err, approvalerrors.ErrInvalidTransition)
	assert.Empty(t, deps.alarms.inserted)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEngine_Transition_OutboxEvent(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()

	deps := setupEngineTest(t)
	defer deps.db.Close()

	deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
		return pendingRecord(applicantID, domain.StatusTeamApproved), nil
	}

	expectTx(t, deps.sqlMock, true)

	_, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, divisionHead(), domain.ActionApprove, "")
	assert.NoError(t, err)

	assert.Len(t, deps.outbox.created, 1)
	event := deps.outbox.created[0]
	assert.Equal(t, "alarm", event.AggregateType)
	assert.Equal(t, "alarm_created", event.EventType)
	assert.Equal(t, events.AlarmCreatedTopic, event.Topic)
	assert.Equal(t, kafka.OutboxStatusPending, event.Status)

	var payload events.AlarmCreatedEvent
	assert.NoError(t, json.Unmarshal(event.Payload, &payload))
	assert.Equal(t, applicantID, payload.UserID)
	assert.Equal(t, string(domain.StatusFinalApproved), payload.AlarmType)
	assert.Equal(t, int64(7), payload.ApplicationSeq)
	assert.Equal(t, "/applications/vacation/7", payload.RedirectURL)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEngine_Resubmit(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()
	leaderID := uuid.New()

	applicant := domain.Actor{
		UserID:   applicantID,
		Division: "ENGINEERING",
		Team:     "PLATFORM",
		Role:     domain.RoleNone,
	}

	t.Run("owner brings a team-rejected application back", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
			return pendingRecord(applicantID, domain.StatusTeamRejected), nil
		}
		deps.users.findApproversFn = func(ctx context.Context, role domain.RoleLevel, division, team string) ([]user.User, error) {
			assert.Equal(t, domain.RoleTeamLeader, role)
			assert.Equal(t, "ENGINEERING", division)
			assert.Equal(t, "PLATFORM", team)
			return []user.User{{ID: leaderID}}, nil
		}

		expectTx(t, deps.sqlMock, true)

		next, err := deps.engine.Resubmit(ctx, domain.TypeVacation, 7, applicant)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusResubmitted, next)

		assert.Len(t, deps.alarms.inserted, 1)
		assert.Equal(t, leaderID.String(), deps.alarms.inserted[0].UserID)
		assert.Equal(t, domain.StatusResubmitted, deps.alarms.inserted[0].AlarmType)

		// The ledger keeps the old rejections untouched.
		assert.Empty(t, deps.rejections.inserted)
		assert.Equal(t, []string{leaderID.String()}, deps.unreadCache.invalidated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("finally rejected is also resubmittable", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
			return pendingRecord(applicantID, domain.StatusFinalRejected), nil
		}

		expectTx(t, deps.sqlMock, true)

		next, err := deps.engine.Resubmit(ctx, domain.TypeVacation, 7, applicant)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusResubmitted, next)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("only the applicant may resubmit", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
			return pendingRecord(uuid.New().String(), domain.StatusTeamRejected), nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.engine.Resubmit(ctx, domain.TypeVacation, 7, applicant)
		assert.ErrorIs(t, err, approvalerrors.ErrNotApplicant)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("a pending application cannot be resubmitted", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
			return pendingRecord(applicantID, domain.StatusSubmitted), nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.engine.Resubmit(ctx, domain.TypeVacation, 7, applicant)
		assert.ErrorIs(t, err, approvalerrors.ErrInvalidTransition)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEngine_Transition_RejectionInsertFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()

	deps := setupEngineTest(t)
	defer deps.db.Close()

	deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
		return pendingRecord(applicantID, domain.StatusSubmitted), nil
	}
	deps.rejections.insertFn = func(ctx context.Context, rec *rejection.RejectionRecord) error {
		return errors.New("insert failed")
	}

	expectTx(t, deps.sqlMock, false)

	_, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, teamLeader(), domain.ActionReject, "bad dates")
	assert.Error(t, err)
	assert.Empty(t, deps.alarms.inserted)
	assert.Empty(t, deps.unreadCache.invalidated)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEngine_Transition_EvictsUnreadCountsOncePerRecipient(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()
	headID := uuid.New()

	deps := setupEngineTest(t)
	defer deps.db.Close()

	deps.store.getForUpdateFn = func(ctx context.Context, seq int64) (application.Record, error) {
		return pendingRecord(applicantID, domain.StatusSubmitted), nil
	}
	// The same head listed twice must still be evicted once.
	deps.users.findApproversFn = func(ctx context.Context, role domain.RoleLevel, division, team string) ([]user.User, error) {
		return []user.User{{ID: headID}, {ID: headID}}, nil
	}

	expectTx(t, deps.sqlMock, true)

	_, err := deps.engine.Transition(ctx, domain.TypeVacation, 7, teamLeader(), domain.ActionApprove, "")
	assert.NoError(t, err)

	assert.Len(t, deps.alarms.inserted, 3)
	assert.Equal(t, []string{applicantID, headID.String()}, deps.unreadCache.invalidated)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
