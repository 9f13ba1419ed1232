// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/dbpkg"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// lockNotAvailable is the SQLSTATE returned when FOR UPDATE NOWAIT loses the race.
const lockNotAvailable = "55P03"

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const accountColumns = `
	id, customer_id, account_number, account_type, balance, interest_rate, status, opened_date, last_transaction_at`

func scanAccount(row *sql.Row) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.AccountNumber,
		&a.AccountType,
		&a.Balance,
		&a.InterestRate,
		&a.Status,
		&a.OpenedAt,
		&a.LastTransactionAt,
	)

	return a, err
}

const createQuery = `
INSERT INTO
    accounts (customer_id, account_number, account_type, balance, interest_rate, status)
VALUES
    ($1, $2, $3, 0, $4, 'active')
RETURNING` + accountColumns

// Create creates the account with zero balance and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.CustomerID,
		arg.AccountNumber,
		arg.AccountType,
		arg.InterestRate,
	)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_account_number_key":
				return a, domain.ErrDuplicateAccountNumber
			case "accounts_customer_id_fkey":
				return a, domain.ErrCustomerNotFound
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE account_number = $1
`

// Get returns the account with the given account number.
func (r *RepoPGS) Get(ctx context.Context, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, accountNumber))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getForUpdateQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE account_number = $1
FOR UPDATE NOWAIT
`

// GetForUpdate locks the account row for the enclosing unit of work.
//
// The lock is taken with NOWAIT so a contended row fails fast with ErrBusy
// instead of queueing behind a long-running unit of work.
func GetForUpdate(ctx context.Context, q dbpkg.SQLInterface, accountNumber string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(q.QueryRowContext(ctx, getForUpdateQuery, accountNumber))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == lockNotAvailable {
			return a, errorspkg.ErrBusy
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listByCustomerQuery = `
SELECT` + accountColumns + `
FROM accounts
WHERE customer_id = (SELECT id FROM customers WHERE email = $1)
ORDER BY id
`

// ListByCustomerEmail returns all accounts owned by the customer with the given email.
func (r *RepoPGS) ListByCustomerEmail(ctx context.Context, email string) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByCustomerQuery, email)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.AccountNumber,
			&a.AccountType,
			&a.Balance,
			&a.InterestRate,
			&a.Status,
			&a.OpenedAt,
			&a.LastTransactionAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const setStatusQuery = `
UPDATE accounts
SET status = $1
WHERE account_number = $2
RETURNING` + accountColumns

// SetStatus updates the account status and returns the updated account.
func (r *RepoPGS) SetStatus(ctx context.Context, accountNumber, status string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, setStatusQuery, status, accountNumber))
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listInactiveQuery = `
SELECT
	a.id, a.customer_id, a.account_number, a.account_type, a.balance,
	a.interest_rate, a.status, a.opened_date, a.last_transaction_at, c.email
FROM accounts a
JOIN customers c ON c.id = a.customer_id
WHERE a.status = 'active'
  AND COALESCE(a.last_transaction_at, a.opened_date) < $1
ORDER BY COALESCE(a.last_transaction_at, a.opened_date)
`

// ListInactive returns active accounts whose last transaction (or opening,
// if they never transacted) predates the cutoff.
func (r *RepoPGS) ListInactive(ctx context.Context, cutoff time.Time) ([]domain.InactiveAccount, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listInactiveQuery, cutoff)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.InactiveAccount{}

	for rows.Next() {
		var (
			ia domain.InactiveAccount
			a  = &ia.Account
		)

		if err := rows.Scan(
			&a.ID,
			&a.CustomerID,
			&a.AccountNumber,
			&a.AccountType,
			&a.Balance,
			&a.InterestRate,
			&a.Status,
			&a.OpenedAt,
			&a.LastTransactionAt,
			&ia.Email,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		if a.LastTransactionAt == nil {
			ia.NeverTransacted = true
			ia.InactiveSince = a.OpenedAt
		} else {
			ia.InactiveSince = *a.LastTransactionAt
		}

		items = append(items, ia)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
