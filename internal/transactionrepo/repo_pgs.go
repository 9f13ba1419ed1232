// Package transactionrepo manages the repository layer of the ledger: every
// balance-affecting write goes through one of its units of work.
package transactionrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/bezell-bank/ledger-core/internal/accountrepo"
	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/dbpkg"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns transaction RepoPGS with a connection to start units of work.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const setBalanceQuery = `
UPDATE accounts
SET balance = $1, last_transaction_at = now()
WHERE id = $2
RETURNING id, customer_id, account_number, account_type, balance, interest_rate, status, opened_date, last_transaction_at
`

func setBalance(ctx context.Context, q dbpkg.SQLInterface, accountID int64, balance decimal.Decimal) (domain.Account, error) {
	var a domain.Account

	row := q.QueryRowContext(ctx, setBalanceQuery, balance, accountID)

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

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "accounts_balance_check" {
			return a, domain.ErrInsufficientFunds
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const insertTransactionQuery = `
INSERT INTO
    transactions (account_id, counterparty_account_id, transaction_type, amount, balance_after, reference, description)
VALUES
    ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, account_id, counterparty_account_id, transaction_type, amount, balance_after, reference, description, created_at
`

func insertTransaction(ctx context.Context, q dbpkg.SQLInterface, t domain.Transaction) (domain.Transaction, error) {
	row := q.QueryRowContext(ctx, insertTransactionQuery,
		t.AccountID,
		t.CounterpartyAccountID,
		t.Type,
		t.Amount,
		t.BalanceAfter,
		t.Reference,
		t.Description,
	)

	var out domain.Transaction

	err := row.Scan(
		&out.ID,
		&out.AccountID,
		&out.CounterpartyAccountID,
		&out.Type,
		&out.Amount,
		&out.BalanceAfter,
		&out.Reference,
		&out.Description,
		&out.CreatedAt,
	)

	if err != nil {
		return out, errorspkg.ErrInternal
	}

	return out, nil
}

// checkActive rejects accounts that are not allowed to transact.
func checkActive(a domain.Account) error {
	switch a.Status {
	case domain.StatusFrozen:
		return domain.ErrAccountFrozen
	case domain.StatusClosed:
		return domain.ErrAccountClosed
	}

	return nil
}

// DepositTx credits the account and records the ledger row as one atomic
// unit of work.
func (r *RepoPGS) DepositTx(ctx context.Context, arg domain.DepositTxParams) (domain.DepositTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.DepositTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	account, err := accountrepo.GetForUpdate(ctx, tx, arg.AccountNumber)
	if err != nil {
		return result, err
	}

	if err := checkActive(account); err != nil {
		return result, err
	}

	newBalance := account.Balance.Add(arg.Amount)

	result.Account, err = setBalance(ctx, tx, account.ID, newBalance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	result.Transaction, err = insertTransaction(ctx, tx, domain.Transaction{
		AccountID:    account.ID,
		Type:         domain.TxDeposit,
		Amount:       arg.Amount,
		BalanceAfter: newBalance,
		Reference:    arg.Reference,
		Description:  arg.Description,
	})
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.DepositTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

// WithdrawTx debits the account and records the ledger row as one atomic
// unit of work. The balance check runs under the row lock; the table check
// constraint backstops it.
func (r *RepoPGS) WithdrawTx(ctx context.Context, arg domain.WithdrawTxParams) (domain.DepositTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.DepositTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	account, err := accountrepo.GetForUpdate(ctx, tx, arg.AccountNumber)
	if err != nil {
		return result, err
	}

	if err := checkActive(account); err != nil {
		return result, err
	}

	if account.Balance.LessThan(arg.Amount) {
		return result, domain.ErrInsufficientFunds
	}

	newBalance := account.Balance.Sub(arg.Amount)

	result.Account, err = setBalance(ctx, tx, account.ID, newBalance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	result.Transaction, err = insertTransaction(ctx, tx, domain.Transaction{
		AccountID:    account.ID,
		Type:         domain.TxWithdrawal,
		Amount:       arg.Amount,
		BalanceAfter: newBalance,
		Reference:    arg.Reference,
		Description:  arg.Description,
	})
	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.DepositTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

const resolveIDQuery = `
SELECT id FROM accounts WHERE account_number = $1
`

func resolveID(ctx context.Context, q dbpkg.SQLInterface, accountNumber string) (int64, error) {
	var id int64

	err := q.QueryRowContext(ctx, resolveIDQuery, accountNumber).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrAccountNotFound
		}

		return 0, errorspkg.ErrInternal
	}

	return id, nil
}

// TransferTx moves money between two accounts: both balance updates and both
// ledger rows commit atomically or not at all.
//
// Rows are locked in ascending account id order regardless of transfer
// direction so that concurrent opposite-direction transfers cannot deadlock.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.TransferTxParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}
	defer rollback(ctx, tx)

	fromID, err := resolveID(ctx, tx, arg.FromAccountNumber)
	if err != nil {
		return result, err
	}

	toID, err := resolveID(ctx, tx, arg.ToAccountNumber)
	if err != nil {
		return result, err
	}

	var from, to domain.Account

	if fromID < toID {
		from, err = accountrepo.GetForUpdate(ctx, tx, arg.FromAccountNumber)
		if err == nil {
			to, err = accountrepo.GetForUpdate(ctx, tx, arg.ToAccountNumber)
		}
	} else {
		to, err = accountrepo.GetForUpdate(ctx, tx, arg.ToAccountNumber)
		if err == nil {
			from, err = accountrepo.GetForUpdate(ctx, tx, arg.FromAccountNumber)
		}
	}

	if err != nil {
		return result, err
	}

	if err := checkActive(from); err != nil {
		return result, err
	}

	if err := checkActive(to); err != nil {
		return result, err
	}

	// Fail fast on the debit side before touching the destination.
	if from.Balance.LessThan(arg.Amount) {
		return result, domain.ErrInsufficientFunds
	}

	newFromBalance := from.Balance.Sub(arg.Amount)
	newToBalance := to.Balance.Add(arg.Amount)

	result.FromAccount, err = setBalance(ctx, tx, from.ID, newFromBalance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	result.DebitLeg, err = insertTransaction(ctx, tx, domain.Transaction{
		AccountID:             from.ID,
		CounterpartyAccountID: &to.ID,
		Type:                  domain.TxTransferDebit,
		Amount:                arg.Amount,
		BalanceAfter:          newFromBalance,
		Reference:             arg.Reference,
		Description:           arg.Description,
	})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	result.ToAccount, err = setBalance(ctx, tx, to.ID, newToBalance)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	result.CreditLeg, err = insertTransaction(ctx, tx, domain.Transaction{
		AccountID:             to.ID,
		CounterpartyAccountID: &from.ID,
		Type:                  domain.TxTransferCredit,
		Amount:                arg.Amount,
		BalanceAfter:          newToBalance,
		Reference:             arg.Reference,
		Description:           arg.Description,
	})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		zerolog.Ctx(ctx).Error().Err(err).Send()
	}
}

// List returns one page of ledger history ordered newest first, together
// with summary totals computed over the whole filtered set.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransactionsParams) (domain.TransactionPage, error) {
	l := zerolog.Ctx(ctx)

	var page domain.TransactionPage

	where, args := buildFilters(arg)

	summaryQuery := `
SELECT
	COUNT(*),
	COALESCE(SUM(CASE WHEN t.transaction_type IN ('deposit', 'transfer_credit') THEN t.amount END), 0),
	COALESCE(SUM(CASE WHEN t.transaction_type IN ('withdrawal', 'transfer_debit') THEN t.amount END), 0)
FROM transactions t` + where

	row := r.db.QueryRowContext(ctx, summaryQuery, args...)

	if err := row.Scan(
		&page.Summary.TransactionCount,
		&page.Summary.TotalDeposits,
		&page.Summary.TotalWithdrawals,
	); err != nil {
		l.Error().Err(err).Send()
		return page, errorspkg.ErrInternal
	}

	limit := arg.Limit
	if limit <= 0 {
		limit = 10
	}

	pageID := arg.Page
	if pageID <= 0 {
		pageID = 1
	}

	listQuery := fmt.Sprintf(`
SELECT
	t.id, t.account_id, t.counterparty_account_id, t.transaction_type,
	t.amount, t.balance_after, t.reference, t.description, t.created_at
FROM transactions t%s
ORDER BY t.created_at DESC, t.id DESC
LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, listQuery, append(args, limit, (pageID-1)*limit)...)
	if err != nil {
		l.Error().Err(err).Send()
		return page, errorspkg.ErrInternal
	}
	defer rows.Close()

	page.Transactions = []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.CounterpartyAccountID,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.Reference,
			&t.Description,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return page, errorspkg.ErrInternal
		}

		page.Transactions = append(page.Transactions, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return page, errorspkg.ErrInternal
	}

	page.Pagination = domain.Pagination{
		Page:       pageID,
		Limit:      limit,
		Total:      page.Summary.TransactionCount,
		TotalPages: (page.Summary.TransactionCount + int64(limit) - 1) / int64(limit),
	}

	return page, nil
}

func buildFilters(arg domain.ListTransactionsParams) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)

	next := func() int { return len(args) + 1 }

	if arg.AccountNumber != "" {
		clauses = append(clauses, fmt.Sprintf(
			"t.account_id = (SELECT id FROM accounts WHERE account_number = $%d)", next()))
		args = append(args, arg.AccountNumber)
	}

	if arg.CustomerEmail != "" {
		clauses = append(clauses, fmt.Sprintf(
			"t.account_id IN (SELECT a.id FROM accounts a JOIN customers c ON c.id = a.customer_id WHERE c.email = $%d)", next()))
		args = append(args, arg.CustomerEmail)
	}

	if arg.Type != "" {
		clauses = append(clauses, fmt.Sprintf("t.transaction_type = $%d", next()))
		args = append(args, arg.Type)
	}

	if arg.From != nil {
		clauses = append(clauses, fmt.Sprintf("t.created_at >= $%d", next()))
		args = append(args, *arg.From)
	}

	if arg.To != nil {
		clauses = append(clauses, fmt.Sprintf("t.created_at <= $%d", next()))
		args = append(args, *arg.To)
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return "\nWHERE " + strings.Join(clauses, " AND "), args
}

const monthlyCountsQuery = `
SELECT
	to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
	COUNT(*)
FROM transactions
WHERE created_at >= date_trunc('month', now()) - make_interval(months => $1 - 1)
GROUP BY 1
ORDER BY 1
`

// MonthlyCounts returns per-month ledger row counts for the last n months.
func (r *RepoPGS) MonthlyCounts(ctx context.Context, months int) ([]domain.MonthlyCount, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, monthlyCountsQuery, months)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.MonthlyCount{}

	for rows.Next() {
		var mc domain.MonthlyCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, mc)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
