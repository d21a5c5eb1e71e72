package transport

import (
	"errors"
	"net/http"
	"strconv"

	"pc-catalog/internal/middleware"
	"pc-catalog/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var errInvalidID = errors.New("invalid id")

// parseID reads a positive numeric path parameter.
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// respondDecodeError answers a request whose body could not be decoded or
// failed validation.
func respondDecodeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Debug("Request validation failed", zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}

	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}

// respondServiceError maps service errors to HTTP responses. action names
// the operation in the 500 message.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, action string) {
	var refErr *repository.ReferenceError

	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrComponentNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "component not found")
	case errors.Is(err, repository.ErrUnknownComponentKind):
		middleware.RespondWithError(w, http.StatusNotFound, "unknown component category")
	case errors.Is(err, repository.ErrDuplicateSKU):
		middleware.RespondWithError(w, http.StatusConflict, repository.ErrDuplicateSKU.Error())
	case errors.Is(err, repository.ErrComponentInUse):
		middleware.RespondWithError(w, http.StatusConflict, repository.ErrComponentInUse.Error())
	case errors.As(err, &refErr):
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{{
			Field:   refErr.Kind.ProductField(),
			Message: refErr.Error(),
		}})
	default:
		logger.Error("Failed to "+action, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to "+action)
		return
	}

	logger.Debug("Request rejected", zap.String("action", action), zap.Error(err))
}
