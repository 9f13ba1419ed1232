// Package metricsdelivery manages delivery layer of regulatory metrics.
// Administrative endpoints.
package metricsdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/bezell-bank/ledger-core/pkg/jsonresponse"
)

// Service provides service layer interface needed by metrics delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package metricsdelivery
type Service interface {
	CapitalMetrics(ctx context.Context) (domain.CapitalMetrics, error)
	AssetAllocation(ctx context.Context) (domain.AssetAllocation, error)
	BaselReport(ctx context.Context) (domain.BaselReport, error)
}

// Handler facilitates metrics delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns metrics handler.
func NewHandler(ms Service) *Handler {
	return &Handler{service: ms}
}

type dataMetrics struct {
	Metrics domain.CapitalMetrics `json:"metrics"`
}
type responseMetrics struct {
	Data dataMetrics `json:"data,omitempty"`
}

// CapitalMetrics handles http request to compute capital adequacy figures.
func (h *Handler) CapitalMetrics(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	metrics, err := h.service.CapitalMetrics(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	res := responseMetrics{
		Data: dataMetrics{metrics},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataAllocation struct {
	Allocation domain.AssetAllocation `json:"allocation"`
}
type responseAllocation struct {
	Data dataAllocation `json:"data,omitempty"`
}

// AssetAllocation handles http request to group portfolio value by type.
func (h *Handler) AssetAllocation(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	allocation, err := h.service.AssetAllocation(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	res := responseAllocation{
		Data: dataAllocation{allocation},
	}

	gctx.JSON(http.StatusOK, res)
}

type dataReport struct {
	Report domain.BaselReport `json:"report"`
}
type responseReport struct {
	Data dataReport `json:"data,omitempty"`
}

// BaselReport handles http request to assemble the dashboard payload.
func (h *Handler) BaselReport(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	report, err := h.service.BaselReport(ctx)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	res := responseReport{
		Data: dataReport{report},
	}

	gctx.JSON(http.StatusOK, res)
}
