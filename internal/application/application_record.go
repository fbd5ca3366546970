package application

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

// Record is the projection of one application row the workflow engine
// operates on. Type-specific payload never reaches the engine.
type Record struct {
	Seq            int64
	UserID         string
	Division       string
	Team           string
	ApprovalStatus domain.ApprovalStatus
	CreatedAt      time.Time
}

// RecordStore is the per-type keyed accessor behind the polymorphic key.
// One implementation per table; the engine is generic over this
// interface, never over the concrete entities.
//
//go:generate mockgen -source=application_record.go -destination=mock/application_record_mock.go -package=mock
type RecordStore interface {
	WithTx(tx *sql.Tx) RecordStore
	Get(ctx context.Context, seq int64) (Record, error)
	// GetForUpdate takes a row lock; callers must hold an open
	// transaction via WithTx or the lock is released immediately.
	GetForUpdate(ctx context.Context, seq int64) (Record, error)
	// UpdateStatus applies a compare-and-swap on approval_status.
	// It returns false when the expected current status no longer
	// matches, which is how a concurrent loser is detected.
	UpdateStatus(ctx context.Context, seq int64, from, to domain.ApprovalStatus) (bool, error)
}

// StoreRegistry resolves the record store for an application type.
type StoreRegistry interface {
	Store(t domain.ApplicationType) (RecordStore, error)
}

type registry struct {
	stores map[domain.ApplicationType]RecordStore
}

func NewRegistry(db *sql.DB) StoreRegistry {
	return &registry{stores: map[domain.ApplicationType]RecordStore{
		domain.TypeVacation:       newRecordStore(db, "vacations"),
		domain.TypeExpense:        newRecordStore(db, "expenses"),
		domain.TypeRentalSupport:  newRecordStore(db, "rental_supports"),
		domain.TypeRentalProposal: newRecordStore(db, "rental_proposals"),
	}}
}

func (r *registry) Store(t domain.ApplicationType) (RecordStore, error) {
	store, ok := r.stores[t]
	if !ok {
		return nil, fmt.Errorf("no record store for application type %q", t)
	}
	return store, nil
}

// recordStore serves all four tables; only the table name differs and it
// comes from the fixed registry above, never from calling code.
type recordStore struct {
	db    *sql.DB
	tx    *sql.Tx
	table string
}

func newRecordStore(db *sql.DB, table string) RecordStore {
	return &recordStore{db: db, table: table}
}

func (r *recordStore) WithTx(tx *sql.Tx) RecordStore {
	return &recordStore{db: r.db, tx: tx, table: r.table}
}

func (r *recordStore) Get(ctx context.Context, seq int64) (Record, error) {
	return r.get(ctx, seq, false)
}

func (r *recordStore) GetForUpdate(ctx context.Context, seq int64) (Record, error) {
	return r.get(ctx, seq, true)
}

func (r *recordStore) get(ctx context.Context, seq int64, lock bool) (Record, error) {
	query := fmt.Sprintf(`
SELECT seq, user_id::text, division, team, approval_status, created_at
FROM %s
WHERE seq = $1
`, r.table)
	if lock {
		query += "FOR UPDATE\n"
	}

	var rec Record
	err := r.queryer().QueryRowContext(ctx, query, seq).Scan(
		&rec.Seq,
		&rec.UserID,
		&rec.Division,
		&rec.Team,
		&rec.ApprovalStatus,
		&rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (r *recordStore) UpdateStatus(ctx context.Context, seq int64, from, to domain.ApprovalStatus) (bool, error) {
	query := fmt.Sprintf(`
UPDATE %s
SET approval_status = $1, updated_at = NOW()
WHERE seq = $2 AND approval_status = $3
`, r.table)

	res, err := r.execer().ExecContext(ctx, query, string(to), seq, string(from))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *recordStore) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *recordStore) queryer() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
