package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"beautyadmin/admin-service/internal/app/admin/entity"
	"beautyadmin/admin-service/internal/app/admin/repository"
	"beautyadmin/admin-service/internal/app/admin/service"
	"beautyadmin/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// errorStatus сопоставляет доменную ошибку с HTTP статусом и кодом ответа
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, entity.ErrCodeNotFound
	case errors.Is(err, repository.ErrDuplicateKey):
		return http.StatusConflict, entity.ErrCodeAlreadyExists
	case errors.Is(err, repository.ErrPaymentMethodActive):
		return http.StatusConflict, entity.ErrCodePaymentMethodActive
	case errors.Is(err, repository.ErrVariantExists):
		return http.StatusConflict, entity.ErrCodeVariantExists
	case errors.Is(err, repository.ErrInvalidValidity):
		return http.StatusUnprocessableEntity, entity.ErrCodeInvalidValidity
	case errors.Is(err, service.ErrCouponNotApplicable):
		return http.StatusUnprocessableEntity, entity.ErrCodeCouponNotApplicable
	case errors.Is(err, service.ErrVariantRequired),
		errors.Is(err, service.ErrInvalidVariant),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrInvalidDiscount):
		return http.StatusBadRequest, entity.ErrCodeInvalidInput
	default:
		return http.StatusInternalServerError, entity.ErrCodeInternal
	}
}

func respondError(c *gin.Context, err error) {
	status, code := errorStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		message = "Internal server error"
	}

	c.JSON(status, entity.ErrorResponse{Error: code, Message: message})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: entity.ErrCodeInvalidInput, Message: message})
}

// parseID читает положительный int64 из параметра пути
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// bind разбирает JSON тело и прогоняет его через validator
func bind(c *gin.Context, v *validator.Validate, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		badRequest(c, "Invalid request body")
		return false
	}
	if err := v.Struct(req); err != nil {
		badRequest(c, formatValidationError(err))
		return false
	}
	return true
}

func respondList[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, entity.NewListResponse(items))
}

// respondDeleted отдаёт подтверждение и список каскадно удалённых записей
func respondDeleted(c *gin.Context, kind entity.Kind, refs []entity.Ref) {
	resp := entity.SuccessResponse{Message: kind.Label() + " deleted successfully"}
	if len(refs) > 0 {
		resp.Data = refs
	}
	c.JSON(http.StatusOK, resp)
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldError := validationErrors[0]
		return fieldError.Field() + " is " + fieldError.Tag()
	}
	return "Validation failed"
}
