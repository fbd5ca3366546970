package rejection

import (
	"context"
	"database/sql"

	"github.com/1000bang/vacation-api-sub001/internal/domain"
)

//go:generate mockgen -source=rejection_repo.go -destination=mock/rejection_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Insert(ctx context.Context, rec *RejectionRecord) error
	FindLatest(ctx context.Context, typ domain.ApplicationType, applicationSeq int64) (*RejectionRecord, error)
	FindAll(ctx context.Context, typ domain.ApplicationType, applicationSeq int64) ([]RejectionRecord, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Insert(ctx context.Context, rec *RejectionRecord) error {
	query := `
INSERT INTO rejection_records (
	application_type, application_seq, rejected_by, rejection_level, rejection_reason
) VALUES ($1, $2, $3, $4, $5)
RETURNING seq, created_at
`
	return r.queryer().QueryRowContext(
		ctx, query,
		string(rec.ApplicationType), rec.ApplicationSeq,
		rec.RejectedBy, string(rec.RejectionLevel), rec.RejectionReason,
	).Scan(&rec.Seq, &rec.CreatedAt)
}

func (r *repository) FindLatest(ctx context.Context, typ domain.ApplicationType, applicationSeq int64) (*RejectionRecord, error) {
	query := `
SELECT seq, application_type, application_seq, rejected_by::text, rejection_level, rejection_reason, created_at
FROM rejection_records
WHERE application_type = $1 AND application_seq = $2
ORDER BY created_at DESC, seq DESC
LIMIT 1
`
	var rec RejectionRecord
	err := r.queryer().QueryRowContext(ctx, query, string(typ), applicationSeq).Scan(
		&rec.Seq,
		&rec.ApplicationType,
		&rec.ApplicationSeq,
		&rec.RejectedBy,
		&rec.RejectionLevel,
		&rec.RejectionReason,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindAll(ctx context.Context, typ domain.ApplicationType, applicationSeq int64) ([]RejectionRecord, error) {
	query := `
SELECT seq, application_type, application_seq, rejected_by::text, rejection_level, rejection_reason, created_at
FROM rejection_records
WHERE application_type = $1 AND application_seq = $2
ORDER BY created_at DESC, seq DESC
`
	rows, err := r.queryerMulti().QueryContext(ctx, query, string(typ), applicationSeq)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RejectionRecord
	for rows.Next() {
		var rec RejectionRecord
		if err := rows.Scan(
			&rec.Seq,
			&rec.ApplicationType,
			&rec.ApplicationSeq,
			&rec.RejectedBy,
			&rec.RejectionLevel,
			&rec.RejectionReason,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) queryer() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) queryerMulti() interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
