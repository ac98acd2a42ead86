package httpt

import (
	"context"
	"errors"
	"net/http"

	"shopsample/internal/entity"
	"shopsample/pkg/crud"
	"shopsample/pkg/logger"
	"shopsample/pkg/metric"
	"shopsample/pkg/storage/postgres/transaction"

	"github.com/gin-gonic/gin"
)

func (h *ProductHandler) handleServiceError(c *gin.Context, err error, op string) {
	ctx := c.Request.Context()
	log := h.log.Ctx(ctx)

	switch {
	case errors.Is(err, crud.ErrDoesNotExist), errors.Is(err, entity.ErrDataNotFound):
		log.LogAttrs(ctx, logger.WarnLevel, "product not found",
			logger.String("op", op),
			logger.String("id", c.Param("id")),
			logger.String("client_ip", c.ClientIP()),
		)
		h.crud.Operation(_resourceProduct, op, metric.OutcomeNotFound)
		h.abortWithError(c, http.StatusNotFound, "Product not found", err.Error())
	case errors.Is(err, crud.ErrInvalidPageRequest):
		h.crud.Operation(_resourceProduct, op, metric.OutcomeInvalid)
		h.abortWithError(c, http.StatusConflict, "Invalid paging parameters", err.Error())
	case errors.Is(err, entity.ErrInvalidData), errors.Is(err, transaction.ErrConstraintViolation):
		log.LogAttrs(ctx, logger.WarnLevel, "invalid product data",
			logger.String("op", op),
			logger.Err(err),
		)
		h.crud.Operation(_resourceProduct, op, metric.OutcomeInvalid)
		h.abortWithError(c, http.StatusBadRequest, "Invalid product data", err.Error())
	case errors.Is(err, entity.ErrConflictingData), errors.Is(err, transaction.ErrUniqueViolation):
		h.crud.Operation(_resourceProduct, op, metric.OutcomeInvalid)
		h.abortWithError(c, http.StatusConflict, "Conflicting product data", "")
	case errors.Is(err, context.DeadlineExceeded):
		log.LogAttrs(ctx, logger.WarnLevel, "request timeout",
			logger.String("op", op),
			logger.String("path", c.Request.URL.Path),
			logger.String("client_ip", c.ClientIP()),
		)
		h.crud.Operation(_resourceProduct, op, metric.OutcomeError)
		h.abortWithError(c, http.StatusGatewayTimeout, "Request timed out", "")
	default:
		log.LogAttrs(ctx, logger.ErrorLevel, "internal server error",
			logger.String("op", op),
			logger.Err(err),
			logger.String("path", c.Request.URL.Path),
			logger.String("client_ip", c.ClientIP()),
		)
		h.crud.Operation(_resourceProduct, op, metric.OutcomeError)
		h.abortWithError(c, http.StatusInternalServerError, "Internal service error", "")
	}
}

func (h *ProductHandler) handleBadRequest(c *gin.Context, op, message string, err error) {
	ctx := c.Request.Context()

	h.log.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "bad request",
		logger.String("op", op),
		logger.String("reason", message),
		logger.Err(err),
		logger.String("remote_addr", c.ClientIP()),
	)

	h.crud.Operation(_resourceProduct, op, metric.OutcomeInvalid)
	h.abortWithError(c, http.StatusBadRequest, message, err.Error())
}

func (h *ProductHandler) abortWithError(c *gin.Context, status int, message, detailed string) {
	c.AbortWithStatusJSON(status, newErrorResponse(status, message, detailed))
}
