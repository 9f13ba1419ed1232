package notificationservice

import (
	"context"
	"database/sql"
	"time"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/internal/notificationrepo"
	"github.com/rs/zerolog"
)

// Sender delivers a single notification to its recipient.
type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}

// maxAttempts is the delivery attempt cap; a notification that fails this
// many times goes terminal.
const maxAttempts = 3

// batchSize is how many pending notifications one dispatch pass claims.
const batchSize = 10

// Worker periodically claims pending notifications and delivers them.
// Multiple workers can run against the same database: the claim query skips
// rows locked by other workers, so each notification is dispatched by at
// most one worker per pass.
type Worker struct {
	conn     *sql.DB
	sender   Sender
	interval time.Duration
}

// NewWorker returns a notification worker with a connection to start claim
// transactions.
func NewWorker(conn *sql.DB, sender Sender, interval time.Duration) *Worker {
	return &Worker{
		conn:     conn,
		sender:   sender,
		interval: interval,
	}
}

// Run dispatches pending notifications on every tick until the context is
// canceled. It never returns an error from a single failed pass; failures
// are logged and retried on the next tick.
func (w *Worker) Run(ctx context.Context) {
	l := zerolog.Ctx(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Info().Msg("notification worker stopped")
			return
		case <-ticker.C:
			if err := w.dispatch(ctx); err != nil {
				l.Error().Err(err).Msg("notification dispatch pass failed")
			}
		}
	}
}

// dispatch claims one batch of pending notifications and attempts delivery.
// Claim, send and status update happen inside a single transaction so that
// a crashed worker releases its claims and the rows stay pending.
func (w *Worker) dispatch(ctx context.Context) error {
	l := zerolog.Ctx(ctx)

	tx, err := w.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}
	defer rollback(ctx, tx)

	batch, err := notificationrepo.ClaimPending(ctx, tx, maxAttempts, batchSize)
	if err != nil {
		return err
	}

	now := time.Now()

	for _, n := range batch {
		if sendErr := w.sender.Send(ctx, n); sendErr != nil {
			l.Warn().Err(sendErr).
				Int64("notification_id", n.ID).
				Int32("attempts", n.Attempts+1).
				Msg("notification delivery failed")

			if err := notificationrepo.MarkFailure(ctx, tx, n.ID, now, sendErr.Error(), maxAttempts); err != nil {
				return err
			}

			continue
		}

		if err := notificationrepo.MarkSent(ctx, tx, n.ID, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return err
	}

	return nil
}

func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		zerolog.Ctx(ctx).Error().Err(err).Msg("rollback failed")
	}
}
