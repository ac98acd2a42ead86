package httpt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"shopsample/internal/entity"
	"shopsample/pkg/crud"
	"shopsample/pkg/logger"
	"shopsample/pkg/metric"

	"github.com/gin-gonic/gin"
)

const (
	_queryPageNumber = "pageNumber"
	_queryPageSize   = "pageSize"

	_defaultPageNumber = 1
)

var errEmptyBody = errors.New("request body is required")

// @Summary     List products
// @Description Returns every product ordered by id.
// @Tags        Products
// @Produce     json
// @Success     200 {array}  entity.ProductDto
// @Failure     500 {object} httpt.ErrorResponse
// @Router      /api/products [get]
func (h *ProductHandler) listProducts(c *gin.Context) {
	const op = "transport.http.listProducts"

	ctx, cancel := h.requestContext(c)
	defer cancel()

	products, err := h.svc.FindAll(ctx)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	h.crud.Operation(_resourceProduct, op, metric.OutcomeFound)
	c.JSON(http.StatusOK, products)
}

// @Summary     List products page by page
// @Description Returns one page of products ordered by id. Page numbers start at 1.
// @Tags        Products
// @Produce     json
// @Param       pageNumber query    int false "Page number, 1-based" default(1)
// @Param       pageSize   query    int false "Page size"            default(10)
// @Success     200        {object} crud.Page[entity.ProductDto]
// @Failure     400        {object} httpt.ErrorResponse "Non-integer paging parameter"
// @Failure     409        {object} httpt.ErrorResponse "Paging parameter out of range"
// @Failure     500        {object} httpt.ErrorResponse
// @Router      /api/products/paging [get]
func (h *ProductHandler) pageProducts(c *gin.Context) {
	const op = "transport.http.pageProducts"

	pageNumber, err := queryInt(c, _queryPageNumber, _defaultPageNumber)
	if err != nil {
		h.handleBadRequest(c, op, "Invalid paging parameters", err)
		return
	}
	pageSize, err := queryInt(c, _queryPageSize, h.defaultPageSize)
	if err != nil {
		h.handleBadRequest(c, op, "Invalid paging parameters", err)
		return
	}

	if err = h.validatePageRequest(pageNumber, pageSize); err != nil {
		h.handleServiceError(c, err, op)
		return
	}
	h.crud.PageRequested(_resourceProduct, pageSize)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	page, err := h.svc.FindAllWithPaging(ctx, pageNumber, pageSize)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	h.crud.Operation(_resourceProduct, op, metric.OutcomeFound)
	c.JSON(http.StatusOK, page)
}

// @Summary     Get a product
// @Tags        Products
// @Produce     json
// @Param       id  path     int true "Product id"
// @Success     200 {object} entity.ProductDto
// @Failure     400 {object} httpt.ErrorResponse "Malformed id"
// @Failure     404 {object} httpt.ErrorResponse "Product not found"
// @Failure     500 {object} httpt.ErrorResponse
// @Router      /api/products/{id} [get]
func (h *ProductHandler) getProduct(c *gin.Context) {
	const op = "transport.http.getProduct"

	id, err := pathID(c)
	if err != nil {
		h.handleBadRequest(c, op, "Invalid product id", err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.svc.GetByID(ctx, id)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	h.respondFound(c, op, id, result, http.StatusOK)
}

// @Summary     Create a product
// @Description Any id in the body is ignored; the store assigns one.
// @Tags        Products
// @Accept      json
// @Produce     json
// @Param       product body     entity.ProductDto true "Product"
// @Success     201     {object} entity.ProductDto
// @Failure     400     {object} httpt.ErrorResponse
// @Failure     500     {object} httpt.ErrorResponse
// @Router      /api/products [post]
func (h *ProductHandler) createProduct(c *gin.Context) {
	const op = "transport.http.createProduct"

	var dto entity.ProductDto
	if err := bindJSON(c, &dto); err != nil {
		h.handleBadRequest(c, op, "Invalid product data", err)
		return
	}
	dto.ID = nil

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.svc.Create(ctx, &dto)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	created, ok := result.Get()
	if !ok {
		h.handleServiceError(c, fmt.Errorf("%s: create returned no product", op), op)
		return
	}

	id, _ := created.Identifier()
	h.log.Ctx(ctx).LogAttrs(ctx, logger.InfoLevel, "product created",
		logger.String("op", op),
		logger.Int64("id", id),
	)

	h.crud.Operation(_resourceProduct, op, metric.OutcomeFound)
	c.Header("Location", fmt.Sprintf("%s/%d", c.FullPath(), id))
	c.JSON(http.StatusCreated, created)
}

// @Summary     Replace a product
// @Description Overwrites name, description, price and image URL. The path id wins over any id in the body.
// @Tags        Products
// @Accept      json
// @Produce     json
// @Param       id      path     int               true "Product id"
// @Param       product body     entity.ProductDto true "Product"
// @Success     200     {object} entity.ProductDto
// @Failure     400     {object} httpt.ErrorResponse
// @Failure     404     {object} httpt.ErrorResponse
// @Failure     500     {object} httpt.ErrorResponse
// @Router      /api/products/{id} [put]
func (h *ProductHandler) updateProduct(c *gin.Context) {
	const op = "transport.http.updateProduct"

	id, err := pathID(c)
	if err != nil {
		h.handleBadRequest(c, op, "Invalid product id", err)
		return
	}

	var dto entity.ProductDto
	if err = bindJSON(c, &dto); err != nil {
		h.handleBadRequest(c, op, "Invalid product data", err)
		return
	}
	dto.SetIdentifier(id)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.svc.Update(ctx, &dto)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	h.respondFound(c, op, id, result, http.StatusOK)
}

// @Summary     Update a product description
// @Description Changes the description only. A null or missing description clears it.
// @Tags        Products
// @Accept      json
// @Produce     json
// @Param       id      path     int                             true "Product id"
// @Param       request body     entity.DescriptionUpdateRequest true "New description"
// @Success     200     {object} entity.ProductDto
// @Failure     400     {object} httpt.ErrorResponse
// @Failure     404     {object} httpt.ErrorResponse
// @Failure     500     {object} httpt.ErrorResponse
// @Router      /api/products/{id}/description [patch]
func (h *ProductHandler) updateDescription(c *gin.Context) {
	const op = "transport.http.updateDescription"

	id, err := pathID(c)
	if err != nil {
		h.handleBadRequest(c, op, "Invalid product id", err)
		return
	}

	var req entity.DescriptionUpdateRequest
	if err = bindJSON(c, &req); err != nil {
		h.handleBadRequest(c, op, "Invalid description", err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.svc.UpdateDescription(ctx, id, &req)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	h.respondFound(c, op, id, result, http.StatusOK)
}

// @Summary     Delete a product
// @Tags        Products
// @Param       id  path int true "Product id"
// @Success     204
// @Failure     400 {object} httpt.ErrorResponse
// @Failure     404 {object} httpt.ErrorResponse "Product does not exist"
// @Failure     500 {object} httpt.ErrorResponse
// @Router      /api/products/{id} [delete]
func (h *ProductHandler) deleteProduct(c *gin.Context) {
	const op = "transport.http.deleteProduct"

	id, err := pathID(c)
	if err != nil {
		h.handleBadRequest(c, op, "Invalid product id", err)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err = h.svc.Delete(ctx, id); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	h.crud.Operation(_resourceProduct, op, metric.OutcomeFound)
	c.Status(http.StatusNoContent)
}

// @Summary     Health check
// @Tags        Health
// @Produce     json
// @Success     200 {object} httpt.HealthResponse
// @Failure     503 {object} httpt.ErrorResponse
// @Router      /health [get]
func (h *ProductHandler) health(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Ctx(ctx).LogAttrs(ctx, logger.WarnLevel, "health check failed", logger.Err(err))
		h.abortWithError(c, http.StatusServiceUnavailable, "Storage unavailable", "")
		return
	}

	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// respondFound writes the dto or, for an absent result, a 404.
func (h *ProductHandler) respondFound(
	c *gin.Context,
	op string,
	id int64,
	result crud.Optional[*entity.ProductDto],
	status int,
) {
	dto, ok := result.Get()
	if !ok {
		h.handleServiceError(c, fmt.Errorf("product with id %d: %w", id, entity.ErrDataNotFound), op)
		return
	}

	h.crud.Operation(_resourceProduct, op, metric.OutcomeFound)
	c.JSON(status, dto)
}

func (h *ProductHandler) validatePageRequest(pageNumber, pageSize int) error {
	if err := crud.ValidatePageRequest(pageNumber, pageSize); err != nil {
		return err
	}
	if pageSize > h.maxPageSize {
		return fmt.Errorf("page size %d exceeds %d: %w", pageSize, h.maxPageSize, crud.ErrInvalidPageRequest)
	}
	return nil
}

func (h *ProductHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.requestTimeout)
}

func pathID(c *gin.Context) (int64, error) {
	raw := c.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q is not an integer: %w", raw, entity.ErrInvalidData)
	}
	return id, nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer: %w", key, raw, entity.ErrInvalidData)
	}
	return v, nil
}

func bindJSON(c *gin.Context, target any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return fmt.Errorf("%w: %w", errEmptyBody, entity.ErrInvalidData)
	}
	if err := c.ShouldBindJSON(target); err != nil {
		return fmt.Errorf("%w: %w", err, entity.ErrInvalidData)
	}
	return nil
}
