// Package customerdelivery manages delivery layer of customers: signup and
// signin with access token issuance.
package customerdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bezell-bank/ledger-core/internal/customerservice"
	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/configpkg"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/bezell-bank/ledger-core/pkg/jsonresponse"
	"github.com/bezell-bank/ledger-core/pkg/tokenpkg"
)

// Service provides service layer interface needed by customer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package customerdelivery
type Service interface {
	Signup(ctx context.Context, arg customerservice.SignupParams) (customerservice.SignupResult, error)
	CheckPassword(ctx context.Context, email, password string) (domain.Customer, error)
}

// Handler facilitates customer delivery layer logic.
type Handler struct {
	service    Service
	tokenMaker tokenpkg.Maker
	config     configpkg.Config
}

// NewHandler returns customer handler.
func NewHandler(cs Service, tm tokenpkg.Maker, config configpkg.Config) *Handler {
	return &Handler{
		service:    cs,
		tokenMaker: tm,
		config:     config,
	}
}

type signupRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// Signup handles http request to register a customer. The response carries
// the new customer, their first account and an access token.
func (h *Handler) Signup(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req signupRequest
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

	result, err := h.service.Signup(ctx, customerservice.SignupParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		switch err {
		case domain.ErrEmailAlreadyExists:
			gctx.JSON(http.StatusConflict, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	accessToken, _, err := h.tokenMaker.CreateToken(req.Email, h.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	res := jsonresponse.Response{
		AccessToken: accessToken,
		Data: struct {
			Customer domain.Customer `json:"customer"`
			Account  domain.Account  `json:"account"`
		}{
			Customer: result.Customer,
			Account:  result.Account,
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type signinRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Signin handles http request to authenticate a customer and issue an
// access token.
func (h *Handler) Signin(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req signinRequest
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

	customer, err := h.service.CheckPassword(ctx, req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrCustomerNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
			return
		case domain.ErrWrongPassword:
			gctx.JSON(http.StatusUnauthorized, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	accessToken, _, err := h.tokenMaker.CreateToken(customer.Email, h.config.AccessTokenDuration)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	res := jsonresponse.Response{
		AccessToken: accessToken,
		Data: struct {
			Customer domain.Customer `json:"customer"`
		}{
			Customer: customer,
		},
	}

	gctx.JSON(http.StatusOK, res)
}
