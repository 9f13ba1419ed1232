package domain

import (
	"errors"
	"time"
)

var (
	// ErrCustomerNotFound indicates that the customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrEmailAlreadyExists indicates that a customer with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrWrongPassword indicates the wrong password for the given customer.
	ErrWrongPassword = errors.New("wrong password")
)

// Customer holds identity data for the owner of one or more accounts.
type Customer struct {
	ID             int64     `json:"customer_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateCustomerParams is the input data to create a customer.
type CreateCustomerParams struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	HashedPassword string
}
