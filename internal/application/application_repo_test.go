package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/1000bang/vacation-api-sub001/internal/application"
	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	assert.NoError(t, err)

	return gdb, mock
}

func TestRepository_PendingVacations_OrdersNewestFirst(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := application.NewRepository(gdb)

	now := time.Now()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "vacations" WHERE approval_status IN \(\$1,\$2\) AND division = \$3 AND team = \$4`).
		WithArgs("A", "AM", "ENGINEERING", "PLATFORM").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(`SELECT \* FROM "vacations" WHERE approval_status IN \(\$1,\$2\) AND division = \$3 AND team = \$4 ORDER BY created_at DESC, seq DESC LIMIT \$5`).
		WithArgs("A", "AM", "ENGINEERING", "PLATFORM", 20).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "approval_status", "created_at"}).
			AddRow(int64(9), "A", now).
			AddRow(int64(3), "AM", now.Add(-time.Hour)))

	items, total, err := repo.PendingVacations(context.Background(), application.PendingFilter{
		Statuses: []domain.ApprovalStatus{domain.StatusSubmitted, domain.StatusResubmitted},
		Division: "ENGINEERING",
		Team:     "PLATFORM",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(9), items[0].Seq)
	assert.Equal(t, int64(3), items[1].Seq)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_PendingExpenses_UnscopedKeepsOrdering(t *testing.T) {
	gdb, mock := newGormMock(t)
	repo := application.NewRepository(gdb)

	// Admin view: no division/team predicate, ordering unchanged.
	mock.ExpectQuery(`SELECT count\(\*\) FROM "expenses" WHERE approval_status IN \(\$1,\$2,\$3\)`).
		WithArgs("A", "AM", "B").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery(`SELECT \* FROM "expenses" WHERE approval_status IN \(\$1,\$2,\$3\) ORDER BY created_at DESC, seq DESC LIMIT \$4`).
		WithArgs("A", "AM", "B", 20).
		WillReturnRows(sqlmock.NewRows([]string{"seq", "approval_status", "created_at"}))

	items, total, err := repo.PendingExpenses(context.Background(), application.PendingFilter{
		Statuses: []domain.ApprovalStatus{
			domain.StatusSubmitted,
			domain.StatusResubmitted,
			domain.StatusTeamApproved,
		},
	})
	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)

	assert.NoError(t, mock.ExpectationsWereMet())
}
