// Package assetdelivery manages delivery layer of portfolio assets.
// Administrative endpoints.
package assetdelivery

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
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/bezell-bank/ledger-core/pkg/jsonresponse"
)

// Service provides service layer interface needed by asset delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package assetdelivery
type Service interface {
	Create(ctx context.Context, arg domain.CreateAssetParams) (domain.Asset, error)
	Get(ctx context.Context, id int64) (domain.Asset, error)
	List(ctx context.Context) ([]domain.Asset, error)
	Delete(ctx context.Context, id int64) error
}

// Handler facilitates asset delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns asset handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type data struct {
	Asset domain.Asset `json:"asset"`
}
type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Name         string          `json:"asset_name" binding:"required,max=255"`
	Type         string          `json:"asset_type" binding:"required,oneof=cash-and-cash-equivalents investment-securities loans real-estate fixed other"`
	Value        decimal.Decimal `json:"asset_value" binding:"required"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	PurchaseDate string          `json:"purchase_date" binding:"required,datetime=2006-01-02"`
	MaturityDate string          `json:"maturity_date" binding:"omitempty,datetime=2006-01-02"`
}

// Create handles http request to create asset.
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

	if !req.Value.IsPositive() {
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(domain.ErrInvalidAmount))
		return
	}

	purchaseDate, _ := time.Parse("2006-01-02", req.PurchaseDate)

	arg := domain.CreateAssetParams{
		Name:         req.Name,
		Type:         req.Type,
		Value:        req.Value,
		InterestRate: req.InterestRate,
		PurchaseDate: purchaseDate,
	}

	if req.MaturityDate != "" {
		maturityDate, _ := time.Parse("2006-01-02", req.MaturityDate)
		arg.MaturityDate = &maturityDate
	}

	asset, err := h.service.Create(ctx, arg)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	res := response{
		Data: data{asset},
	}

	gctx.JSON(http.StatusOK, res)
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get asset.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
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

	asset, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrAssetNotFound {
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{asset},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataAssets struct {
	Assets []domain.Asset `json:"assets"`
}
type responseAssets struct {
	Data dataAssets `json:"data,omitempty"`
}

// List handles http request to list assets.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	assets, err := h.service.List(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	res := responseAssets{
		Data: dataAssets{assets},
	}

	gctx.JSON(http.StatusOK, res)
}

// Delete handles http request to delete asset.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
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

	if err := h.service.Delete(ctx, req.ID); err != nil {
		if err == domain.ErrAssetNotFound {
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, jsonresponse.Response{})
}
