// Package notificationdelivery manages delivery layer of notifications.
// Administrative endpoints.
package notificationdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bezell-bank/ledger-core/internal/domain"
	"github.com/bezell-bank/ledger-core/pkg/errorspkg"
	"github.com/bezell-bank/ledger-core/pkg/jsonresponse"
)

// Service provides service layer interface needed by notification delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package notificationdelivery
type Service interface {
	Enqueue(ctx context.Context, email, subject, content string) error
	List(ctx context.Context, limit int32) ([]domain.Notification, error)
}

// Handler facilitates notification delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns notification handler.
func NewHandler(ns Service) *Handler {
	return &Handler{service: ns}
}

type enqueueRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// Enqueue handles http request to queue a notification for delivery.
func (h *Handler) Enqueue(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req enqueueRequest
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

	if err := h.service.Enqueue(ctx, req.Email, req.Subject, req.Content); err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusAccepted, jsonresponse.Response{})
}

type listRequest struct {
	Limit int32 `form:"limit" binding:"omitempty,min=1,max=100"`
}

type dataNotifications struct {
	Notifications []domain.Notification `json:"notifications"`
}
type responseNotifications struct {
	Data dataNotifications `json:"data,omitempty"`
}

// defaultLimit caps the listing when the client does not specify one.
const defaultLimit = 50

// List handles http request to list recent notifications.
func (h *Handler) List(gctx *gin.Context) {
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

	if req.Limit == 0 {
		req.Limit = defaultLimit
	}

	notifications, err := h.service.List(ctx, req.Limit)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))
		return
	}

	res := responseNotifications{
		Data: dataNotifications{notifications},
	}

	gctx.JSON(http.StatusOK, res)
}
