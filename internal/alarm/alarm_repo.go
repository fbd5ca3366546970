package alarm

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=alarm_repo.go -destination=mock/alarm_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Insert(ctx context.Context, a *Alarm) error
	FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]Alarm, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead returns false when no alarm with this seq belongs to the
	// user. An already-read alarm still counts as marked.
	MarkRead(ctx context.Context, userID string, seq int64) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
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

func (r *repository) Insert(ctx context.Context, a *Alarm) error {
	query := `
INSERT INTO alarms (
	user_id, alarm_type, application_type, application_seq, message, is_read, redirect_url
) VALUES ($1, $2, $3, $4, $5, FALSE, $6)
RETURNING seq, created_at
`
	return r.rowQueryer().QueryRowContext(
		ctx, query,
		a.UserID, string(a.AlarmType), string(a.ApplicationType),
		a.ApplicationSeq, a.Message, a.RedirectURL,
	).Scan(&a.Seq, &a.CreatedAt)
}

func (r *repository) FindByUser(ctx context.Context, userID string, unreadOnly bool) ([]Alarm, error) {
	query := `
SELECT seq, user_id::text, alarm_type, application_type, application_seq, message, is_read, redirect_url, created_at
FROM alarms
WHERE user_id = $1
`
	if unreadOnly {
		query += "	AND is_read = FALSE\n"
	}
	query += "ORDER BY created_at DESC, seq DESC\n"

	rows, err := r.queryer().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alarms []Alarm
	for rows.Next() {
		var a Alarm
		if err := rows.Scan(
			&a.Seq,
			&a.UserID,
			&a.AlarmType,
			&a.ApplicationType,
			&a.ApplicationSeq,
			&a.Message,
			&a.IsRead,
			&a.RedirectURL,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		alarms = append(alarms, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return alarms, nil
}

func (r *repository) CountUnread(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM alarms WHERE user_id = $1 AND is_read = FALSE`

	var count int64
	err := r.rowQueryer().QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, userID string, seq int64) (bool, error) {
	query := `
UPDATE alarms
SET is_read = TRUE
WHERE seq = $1 AND user_id = $2
`
	res, err := r.execer().ExecContext(ctx, query, seq, userID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *repository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	query := `
UPDATE alarms
SET is_read = TRUE
WHERE user_id = $1 AND is_read = FALSE
`
	res, err := r.execer().ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) queryer() interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) rowQueryer() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
