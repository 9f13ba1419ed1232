// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/internal/middleware"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/bezell-bank/ledger-core/pkg/jsonresponse"
	"github.com/bezell-bank/ledger-core/pkg/tokenpkg"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (domain.DepositTxResult, error)
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (domain.DepositTxResult, error)
	Transfer(ctx context.Context, fromAccountNumber, toAccountNumber string, amount decimal.Decimal, description string) (domain.TransferTxResult, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) (domain.TransactionPage, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type moveRequest struct {
	AccountNumber string          `json:"account_number" binding:"required,len=10,numeric"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Description   string          `json:"description" binding:"max=255"`
}

type data struct {
	Account     domain.Account     `json:"account"`
	Transaction domain.Transaction `json:"transaction"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

// Deposit handles http request to credit an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.move(gctx, h.service.Deposit)
}

// Withdraw handles http request to debit an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.move(gctx, h.service.Withdraw)
}

func (h *Handler) move(gctx *gin.Context, op func(ctx context.Context, accountNumber string, amount decimal.Decimal, description string) (domain.DepositTxResult, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req moveRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + jsonresponse.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Response{Error: errMsg})

		return
	}

	result, err := op(ctx, req.AccountNumber, req.Amount, req.Description)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, jsonresponse.Error(err))

		return
	}

	res := response{
		Data: data{result.Account, result.Transaction},
	}

	gctx.JSON(http.StatusOK, res)
}

type transferRequest struct {
	FromAccountNumber string          `json:"from_account_number" binding:"required,len=10,numeric"`
	ToAccountNumber   string          `json:"to_account_number" binding:"required,len=10,numeric"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Description       string          `json:"description" binding:"max=255"`
}

type dataTransfer struct {
	FromAccount domain.Account     `json:"from_account"`
	ToAccount   domain.Account     `json:"to_account"`
	DebitLeg    domain.Transaction `json:"debit_leg"`
	CreditLeg   domain.Transaction `json:"credit_leg"`
}
type responseTransfer struct {
	Data dataTransfer `json:"data,omitempty"`
}

// Transfer handles http request to move money between two accounts.
func (h *Handler) Transfer(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req transferRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + jsonresponse.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Response{Error: errMsg})

		return
	}

	result, err := h.service.Transfer(ctx, req.FromAccountNumber, req.ToAccountNumber, req.Amount, req.Description)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusInternalServerError {
			err = errorspkg.ErrInternal
		}

		gctx.JSON(status, jsonresponse.Error(err))

		return
	}

	res := responseTransfer{
		Data: dataTransfer{
			FromAccount: result.FromAccount,
			ToAccount:   result.ToAccount,
			DebitLeg:    result.DebitLeg,
			CreditLeg:   result.CreditLeg,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

// statusFromError maps transaction engine errors to http statuses.
func statusFromError(err error) int {
	switch err {
	case domain.ErrInvalidAmount, domain.ErrSameAccount:
		return http.StatusBadRequest
	case domain.ErrAccountNotFound:
		return http.StatusNotFound
	case domain.ErrAccountFrozen, domain.ErrAccountClosed, domain.ErrInsufficientFunds:
		return http.StatusUnprocessableEntity
	case errorspkg.ErrBusy:
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

type listRequest struct {
	Page          int32  `form:"page" binding:"required,min=1"`
	Limit         int32  `form:"limit" binding:"required,min=1,max=100"`
	AccountNumber string `form:"account_number" binding:"omitempty,len=10,numeric"`
	Type          string `form:"type" binding:"omitempty,oneof=deposit withdrawal transfer_debit transfer_credit"`
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To            string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type dataPage struct {
	Page domain.TransactionPage `json:"transactions"`
}
type responsePage struct {
	Data dataPage `json:"data,omitempty"`
}

// List handles http request to page through the authorized customer's
// ledger history.
func (h *Handler) List(gctx *gin.Context) {
	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)
	h.list(gctx, authPayload.Email)
}

// ListAll handles http request to page through the full ledger history.
// Administrative endpoint.
func (h *Handler) ListAll(gctx *gin.Context) {
	h.list(gctx, "")
}

func (h *Handler) list(gctx *gin.Context, customerEmail string) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + jsonresponse.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Response{Error: errMsg})

		return
	}

	arg := domain.ListTransactionsParams{
		AccountNumber: req.AccountNumber,
		CustomerEmail: customerEmail,
		Type:          req.Type,
		Page:          req.Page,
		Limit:         req.Limit,
	}

	if req.From != "" {
		from, _ := time.Parse("2006-01-02", req.From)
		arg.From = &from
	}

	if req.To != "" {
		to, _ := time.Parse("2006-01-02", req.To)
		arg.To = &to
	}

	page, err := h.service.List(ctx, arg)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	res := responsePage{
		Data: dataPage{page},
	}

	gctx.JSON(http.StatusOK, res)
}
