package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	domain "github.com/oggyb/zensend-gateway/internal/domain/message"
	"github.com/oggyb/zensend-gateway/internal/request"
	"github.com/oggyb/zensend-gateway/internal/response"
	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

// respondError maps service and provider errors onto the JSON error envelope:
// invalid input is 400, a provider rejection is 502 with its details, and
// anything else is 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *request.ValidationError
	if errors.As(err, &verr) {
		response.RespondErrorDetails(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}

	if domain.IsValidationError(err) ||
		errors.Is(err, zensend.ErrInvalidArgument) ||
		errors.Is(err, request.ErrInvalidBody) {
		response.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var ce *zensend.ClientError
	if errors.As(err, &ce) {
		zap.L().Warn("provider rejected request",
			zap.String("path", r.URL.Path),
			zap.Int("status", ce.HTTPStatus),
			zap.String("failcode", ce.FailCode),
		)
		response.RespondErrorDetails(w, http.StatusBadGateway, "provider rejected the request", response.FromClientError(ce))
		return
	}

	zap.L().Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	response.RespondError(w, http.StatusInternalServerError, "internal error")
}
