// Package notificationrepo manages repository layer of queued notifications.
package notificationrepo

import (
	"context"
	"time"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/dbpkg"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates notification repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns notification RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const notificationColumns = `
	id, email, subject, content, status, attempts, last_attempt_at, error_message, created_at`

const createQuery = `
INSERT INTO
    notifications (email, subject, content, status)
VALUES
    ($1, $2, $3, 'pending')
RETURNING` + notificationColumns

// Create persists a pending notification and then returns it.
func (r *RepoPGS) Create(ctx context.Context, email, subject, content string) (domain.Notification, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, email, subject, content)

	var n domain.Notification

	err := row.Scan(
		&n.ID,
		&n.Email,
		&n.Subject,
		&n.Content,
		&n.Status,
		&n.Attempts,
		&n.LastAttemptAt,
		&n.ErrorMessage,
		&n.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return n, errorspkg.ErrInternal
	}

	return n, nil
}

const listQuery = `
SELECT` + notificationColumns + `
FROM notifications
ORDER BY created_at DESC
LIMIT $1
`

// List returns the most recent notifications.
func (r *RepoPGS) List(ctx context.Context, limit int32) ([]domain.Notification, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, limit)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Notification{}

	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.Email,
			&n.Subject,
			&n.Content,
			&n.Status,
			&n.Attempts,
			&n.LastAttemptAt,
			&n.ErrorMessage,
			&n.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, n)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const claimPendingQuery = `
SELECT` + notificationColumns + `
FROM notifications
WHERE status = 'pending' AND attempts < $1
ORDER BY created_at
LIMIT $2
FOR UPDATE SKIP LOCKED
`

// ClaimPending returns a batch of deliverable notifications, skipping rows
// already claimed by a concurrent worker.
func ClaimPending(ctx context.Context, q dbpkg.SQLInterface, maxAttempts, limit int32) ([]domain.Notification, error) {
	l := zerolog.Ctx(ctx)

	rows, err := q.QueryContext(ctx, claimPendingQuery, maxAttempts, limit)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Notification{}

	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID,
			&n.Email,
			&n.Subject,
			&n.Content,
			&n.Status,
			&n.Attempts,
			&n.LastAttemptAt,
			&n.ErrorMessage,
			&n.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, n)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const markSentQuery = `
UPDATE notifications
SET status = 'sent', attempts = attempts + 1, last_attempt_at = $2, error_message = ''
WHERE id = $1
`

// MarkSent records a successful delivery attempt.
func MarkSent(ctx context.Context, q dbpkg.SQLInterface, id int64, at time.Time) error {
	if _, err := q.ExecContext(ctx, markSentQuery, id, at); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const markFailureQuery = `
UPDATE notifications
SET attempts = attempts + 1,
    last_attempt_at = $2,
    error_message = $3,
    status = CASE WHEN attempts + 1 >= $4 THEN 'failed' ELSE 'pending' END
WHERE id = $1
`

// MarkFailure records a failed delivery attempt; the row goes terminal once
// the attempt cap is reached.
func MarkFailure(ctx context.Context, q dbpkg.SQLInterface, id int64, at time.Time, msg string, maxAttempts int32) error {
	if _, err := q.ExecContext(ctx, markFailureQuery, id, at, msg, maxAttempts); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
