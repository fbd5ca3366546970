package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/1000bang/vacation-api-sub001/internal/application"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

func recordColumns() []string {
	return []string{"seq", "user_id", "division", "team", "approval_status", "created_at"}
}

func TestStoreRegistry_ResolvesEveryType(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	registry := application.NewRegistry(db)

	for _, typ := range domain.ApplicationTypes() {
		store, err := registry.Store(typ)
		assert.NoError(t, err)
		assert.NotNil(t, store)
	}

	_, err = registry.Store(domain.ApplicationType("PAYROLL"))
	assert.Error(t, err)
}

func TestRecordStore_GetForUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	userID := uuid.New().String()
	mock.ExpectQuery(`SELECT seq, user_id::text, division, team, approval_status, created_at\s+FROM vacations\s+WHERE seq = \$1\s+FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(recordColumns()).
			AddRow(int64(7), userID, "ENGINEERING", "PLATFORM", "A", time.Now()))

	registry := application.NewRegistry(db)
	store, err := registry.Store(domain.TypeVacation)
	assert.NoError(t, err)

	rec, err := store.GetForUpdate(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), rec.Seq)
	assert.Equal(t, userID, rec.UserID)
	assert.Equal(t, domain.StatusSubmitted, rec.ApprovalStatus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStore_UpdateStatus(t *testing.T) {
	t.Run("matching expected status swaps", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE expenses\s+SET approval_status = \$1, updated_at = NOW\(\)\s+WHERE seq = \$2 AND approval_status = \$3`).
			WithArgs("B", int64(7), "A").
			WillReturnResult(sqlmock.NewResult(0, 1))

		store, err := application.NewRegistry(db).Store(domain.TypeExpense)
		assert.NoError(t, err)

		updated, err := store.UpdateStatus(context.Background(), 7, domain.StatusSubmitted, domain.StatusTeamApproved)
		assert.NoError(t, err)
		assert.True(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale expected status affects no rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`UPDATE expenses`).
			WithArgs("B", int64(7), "A").
			WillReturnResult(sqlmock.NewResult(0, 0))

		store, err := application.NewRegistry(db).Store(domain.TypeExpense)
		assert.NoError(t, err)

		updated, err := store.UpdateStatus(context.Background(), 7, domain.StatusSubmitted, domain.StatusTeamApproved)
		assert.NoError(t, err)
		assert.False(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
