package service

import (
	"context"
	"fmt"

	"shopsample/internal/entity"
	"shopsample/internal/mapper"
	"shopsample/pkg/crud"
	"shopsample/pkg/logger"
)

//go:generate mockgen -source=product.go -destination=../repository/mock/product.go -package=mock_repository

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (crud.Optional[*entity.Product], error)
	FindAll(ctx context.Context) ([]*entity.Product, error)
	FindAllPaged(ctx context.Context, page, size int) ([]*entity.Product, int, error)
	Save(ctx context.Context, product *entity.Product) (*entity.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

type productCRUD = crud.Service[int64, entity.Product, entity.ProductDto, *entity.Product, *entity.ProductDto]

// ProductService exposes the generic CRUD operations for products plus the
// description-only patch.
type ProductService struct {
	*productCRUD

	repo   ProductRepository
	mapper mapper.ProductMapper
	log    logger.Logger
}

func NewProductService(repo ProductRepository, log logger.Logger) *ProductService {
	m := mapper.NewProductMapper()
	products := crud.NewService[int64, entity.Product, entity.ProductDto, *entity.Product, *entity.ProductDto](
		repo, m, log,
	)

	return &ProductService{
		productCRUD: products,
		repo:        repo,
		mapper:      m,
		log:         log,
	}
}

// UpdateDescription rewrites the description of an existing product and
// leaves every other field as stored. A nil description clears it.
func (s *ProductService) UpdateDescription(
	ctx context.Context,
	id int64,
	req *entity.DescriptionUpdateRequest,
) (crud.Optional[*entity.ProductDto], error) {
	const op = "service.ProductService.UpdateDescription"
	log := s.log.Ctx(ctx)

	if req == nil {
		req = &entity.DescriptionUpdateRequest{}
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return crud.NotFound[*entity.ProductDto](), fmt.Errorf("%s: find by id: %w", op, err)
	}

	product, ok := found.Get()
	if !ok {
		log.LogAttrs(ctx, logger.WarnLevel, "product not found",
			logger.String("op", op),
			logger.Int64("id", id),
		)
		return crud.NotFound[*entity.ProductDto](), nil
	}

	s.mapper.MergeDescription(req, product)

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return crud.NotFound[*entity.ProductDto](), fmt.Errorf("%s: save: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "product description updated",
		logger.String("op", op),
		logger.Int64("id", id),
	)

	return crud.Found(s.mapper.ToDto(saved)), nil
}
