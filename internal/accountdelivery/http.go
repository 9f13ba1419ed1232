// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/internal/middleware"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/bezell-bank/ledger-core/pkg/jsonresponse"
	"github.com/bezell-bank/ledger-core/pkg/tokenpkg"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	CreateByEmail(ctx context.Context, email string, accountTypeID int32) (domain.Account, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]domain.Account, error)
	Freeze(ctx context.Context, accountNumber string) (domain.Account, error)
	Unfreeze(ctx context.Context, accountNumber string) (domain.Account, error)
	ListInactive(ctx context.Context, days int32) ([]domain.InactiveAccount, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	AccountTypeID int32 `json:"account_type_id" binding:"required,min=1,max=4"`
}

// Create handles http request to open an account for the authorized customer.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
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

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	createdAccount, err := h.service.CreateByEmail(ctx, authPayload.Email, req.AccountTypeID)
	if err != nil {
		switch err {
		case domain.ErrCustomerNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
			return
		case domain.ErrInvalidAccountType:
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))
			return
		case domain.ErrDuplicateAccountNumber:
			gctx.JSON(http.StatusConflict, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{createdAccount},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}
type responseAccounts struct {
	Data dataAccounts `json:"data,omitempty"`
}

// List handles http request to list the authorized customer's accounts with
// their current balances.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	accounts, err := h.service.ListByCustomerEmail(ctx, authPayload.Email)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	res := responseAccounts{
		Data: dataAccounts{accounts},
	}

	gctx.JSON(http.StatusOK, res)
}

type statusRequest struct {
	AccountNumber string `json:"account_number" binding:"required,len=10,numeric"`
}

// Freeze handles http request to freeze an account.
func (h *Handler) Freeze(gctx *gin.Context) {
	h.setStatus(gctx, h.service.Freeze)
}

// Unfreeze handles http request to unfreeze an account.
func (h *Handler) Unfreeze(gctx *gin.Context) {
	h.setStatus(gctx, h.service.Unfreeze)
}

func (h *Handler) setStatus(gctx *gin.Context, transition func(ctx context.Context, accountNumber string) (domain.Account, error)) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req statusRequest
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

	account, err := transition(ctx, req.AccountNumber)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
			return
		case domain.ErrAccountClosed:
			gctx.JSON(http.StatusConflict, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{account},
	}

	gctx.JSON(http.StatusOK, res)
}

type listInactiveRequest struct {
	Days int32 `uri:"days" binding:"required,min=1"`
}

type dataInactive struct {
	Accounts []domain.InactiveAccount `json:"accounts"`
}
type responseInactive struct {
	Data dataInactive `json:"data,omitempty"`
}

// ListInactive handles http request to list accounts without recent activity.
func (h *Handler) ListInactive(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listInactiveRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
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

	accounts, err := h.service.ListInactive(ctx, req.Days)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	res := responseInactive{
		Data: dataInactive{accounts},
	}

	gctx.JSON(http.StatusOK, res)
}
