// Package customerrepo manages repository layer of customers.
package customerrepo

import (
	"context"
	"database/sql"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/dbpkg"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates customer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns customer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    customers (first_name, last_name, email, phone, hashed_password)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, first_name, last_name, email, phone, hashed_password, created_at
`

// Create creates the customer and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateCustomerParams) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		arg.Phone,
		arg.HashedPassword,
	)

	var c domain.Customer

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.HashedPassword,
		&c.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok && pqErr.Constraint == "customers_email_key" {
			return c, domain.ErrEmailAlreadyExists
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getByEmailQuery = `
SELECT
	id, first_name, last_name, email, phone, hashed_password, created_at
FROM customers
WHERE email = $1
`

// GetByEmail returns the customer with the given email.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByEmailQuery, email)

	var c domain.Customer

	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.HashedPassword,
		&c.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return c, domain.ErrCustomerNotFound
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const emailByAccountQuery = `
SELECT c.email
FROM customers c
JOIN accounts a ON a.customer_id = c.id
WHERE a.account_number = $1
`

// EmailByAccountNumber returns the owner email behind an account number.
func (r *RepoPGS) EmailByAccountNumber(ctx context.Context, accountNumber string) (string, error) {
	l := zerolog.Ctx(ctx)

	var email string

	err := r.db.QueryRowContext(ctx, emailByAccountQuery, accountNumber).Scan(&email)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return "", domain.ErrAccountNotFound
		}

		return "", errorspkg.ErrInternal
	}

	return email, nil
}
