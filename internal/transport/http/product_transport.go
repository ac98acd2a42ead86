package httpt

import (
	"context"
	"time"

	"shopsample/internal/config"
	"shopsample/internal/entity"
	"shopsample/pkg/crud"
	"shopsample/pkg/logger"
	"shopsample/pkg/metric"

	"github.com/gin-gonic/gin"
)

const _resourceProduct = "product"

type (
	ProductService interface {
		Create(ctx context.Context, dto *entity.ProductDto) (crud.Optional[*entity.ProductDto], error)
		GetByID(ctx context.Context, id int64) (crud.Optional[*entity.ProductDto], error)
		Update(ctx context.Context, dto *entity.ProductDto) (crud.Optional[*entity.ProductDto], error)
		Delete(ctx context.Context, id int64) error
		FindAll(ctx context.Context) ([]*entity.ProductDto, error)
		FindAllWithPaging(ctx context.Context, pageNumber, pageSize int) (crud.Page[*entity.ProductDto], error)
		UpdateDescription(
			ctx context.Context,
			id int64,
			req *entity.DescriptionUpdateRequest,
		) (crud.Optional[*entity.ProductDto], error)
	}

	// Pinger reports whether the backing store is reachable.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)

type ProductHandler struct {
	svc    ProductService
	db     Pinger
	log    logger.Logger
	http   metric.HTTP
	crud   metric.CRUD
	router *gin.Engine

	requestTimeout  time.Duration
	defaultPageSize int
	maxPageSize     int
}

func NewProductHandler(
	svc ProductService,
	db Pinger,
	cfg *config.Config,
	log logger.Logger,
	metrics metric.Factory,
) (*ProductHandler, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	h := &ProductHandler{
		svc:             svc,
		db:              db,
		log:             log,
		http:            metrics.HTTP(),
		crud:            metrics.CRUD(),
		requestTimeout:  cfg.HTTP.RequestTimeout,
		defaultPageSize: cfg.Paging.DefaultPageSize,
		maxPageSize:     cfg.Paging.MaxPageSize,
	}

	router := gin.New()

	router.Use(h.requestIDMiddleware())
	router.Use(h.loggingMiddleware())
	router.Use(h.recoveryMiddleware())

	h.router = router
	h.setupRoutes()

	return h, nil
}

func (h *ProductHandler) Engine() *gin.Engine {
	return h.router
}
