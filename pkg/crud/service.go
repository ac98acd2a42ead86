package crud

import (
	"context"
	"fmt"

	"shopsample/pkg/logger"
)

// Service implements create, read, update, delete and listing for any
// entity/dto pair over a Repository. E and D are the struct types; PE and PD
// are their pointer types and are inferred.
//
// Update and Delete check existence before mutating. The check and the
// mutation are separate calls to the repository, so two concurrent deletes
// of the same id can both pass the check; the loser then fails inside
// Repository.DeleteByID instead of at the guard.
type Service[K comparable, E, D any, PE Model[K, E], PD Model[K, D]] struct {
	repo   Repository[K, PE]
	mapper Mapper[PE, PD]
	log    logger.Logger
}

func NewService[K comparable, E, D any, PE Model[K, E], PD Model[K, D]](
	repo Repository[K, PE],
	mapper Mapper[PE, PD],
	log logger.Logger,
) *Service[K, E, D, PE, PD] {
	return &Service[K, E, D, PE, PD]{
		repo:   repo,
		mapper: mapper,
		log:    log,
	}
}

func (s *Service[K, E, D, PE, PD]) Create(ctx context.Context, dto PD) (Optional[PD], error) {
	const op = "crud.Service.Create"
	log := s.log.Ctx(ctx)

	if (*D)(dto) == nil {
		log.LogAttrs(ctx, logger.WarnLevel, "attempted to create a nil dto",
			logger.String("op", op),
		)
		return NotFound[PD](), nil
	}

	saved, err := s.repo.Save(ctx, s.mapper.ToEntity(dto))
	if err != nil {
		return NotFound[PD](), fmt.Errorf("%s: save: %w", op, err)
	}

	id, _ := saved.Identifier()
	log.LogAttrs(ctx, logger.InfoLevel, "entity created",
		logger.String("op", op),
		logger.Any("id", id),
	)

	return Found(s.mapper.ToDto(saved)), nil
}

func (s *Service[K, E, D, PE, PD]) GetByID(ctx context.Context, id K) (Optional[PD], error) {
	const op = "crud.Service.GetByID"
	log := s.log.Ctx(ctx)

	log.LogAttrs(ctx, logger.DebugLevel, "fetching entity",
		logger.String("op", op),
		logger.Any("id", id),
	)

	result, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return NotFound[PD](), fmt.Errorf("%s: find by id: %w", op, err)
	}

	entity, ok := result.Get()
	if !ok {
		log.LogAttrs(ctx, logger.WarnLevel, "entity not found",
			logger.String("op", op),
			logger.Any("id", id),
		)
		return NotFound[PD](), nil
	}

	return Found(s.mapper.ToDto(entity)), nil
}

// Update replaces every resource field of an existing entity. It never
// creates a row: a nil dto, a dto without id, or an unknown id all yield
// NotFound.
func (s *Service[K, E, D, PE, PD]) Update(ctx context.Context, dto PD) (Optional[PD], error) {
	const op = "crud.Service.Update"
	log := s.log.Ctx(ctx)

	if (*D)(dto) == nil {
		log.LogAttrs(ctx, logger.WarnLevel, "attempted to update a nil dto",
			logger.String("op", op),
		)
		return NotFound[PD](), nil
	}

	id, ok := dto.Identifier()
	if !ok {
		log.LogAttrs(ctx, logger.WarnLevel, "attempted to update a dto without id",
			logger.String("op", op),
		)
		return NotFound[PD](), nil
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return NotFound[PD](), fmt.Errorf("%s: exists by id: %w", op, err)
	}
	if !exists {
		log.LogAttrs(ctx, logger.WarnLevel, "entity does not exist",
			logger.String("op", op),
			logger.Any("id", id),
		)
		return NotFound[PD](), nil
	}

	entity := s.mapper.ToEntity(dto)
	entity.SetIdentifier(id)

	updated, err := s.repo.Save(ctx, entity)
	if err != nil {
		return NotFound[PD](), fmt.Errorf("%s: save: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "entity updated",
		logger.String("op", op),
		logger.Any("id", id),
	)

	return Found(s.mapper.ToDto(updated)), nil
}

// Delete fails with ErrDoesNotExist when id is unknown; it is not idempotent.
func (s *Service[K, E, D, PE, PD]) Delete(ctx context.Context, id K) error {
	const op = "crud.Service.Delete"
	log := s.log.Ctx(ctx)

	log.LogAttrs(ctx, logger.DebugLevel, "attempting to delete entity",
		logger.String("op", op),
		logger.Any("id", id),
	)

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: exists by id: %w", op, err)
	}
	if !exists {
		log.LogAttrs(ctx, logger.WarnLevel, "entity does not exist",
			logger.String("op", op),
			logger.Any("id", id),
		)
		return fmt.Errorf("%s: entity with id %v: %w", op, id, ErrDoesNotExist)
	}

	if err = s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("%s: delete by id: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "entity deleted",
		logger.String("op", op),
		logger.Any("id", id),
	)

	return nil
}

func (s *Service[K, E, D, PE, PD]) FindAll(ctx context.Context) ([]PD, error) {
	const op = "crud.Service.FindAll"

	entities, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: find all: %w", op, err)
	}

	result := s.toDtos(entities)

	s.log.Ctx(ctx).LogAttrs(ctx, logger.DebugLevel, "fetched entities",
		logger.String("op", op),
		logger.Int("count", len(result)),
	)

	return result, nil
}

// FindAllWithPaging returns page pageNumber (1-based) of size pageSize.
// Callers are expected to reject invalid input first; if they do not, the
// request fails with ErrInvalidPageRequest before reaching the repository.
func (s *Service[K, E, D, PE, PD]) FindAllWithPaging(
	ctx context.Context,
	pageNumber, pageSize int,
) (Page[PD], error) {
	const op = "crud.Service.FindAllWithPaging"

	if err := ValidatePageRequest(pageNumber, pageSize); err != nil {
		return Page[PD]{}, fmt.Errorf("%s: %w", op, err)
	}

	entities, total, err := s.repo.FindAllPaged(ctx, pageNumber-1, pageSize)
	if err != nil {
		return Page[PD]{}, fmt.Errorf("%s: find all paged: %w", op, err)
	}

	s.log.Ctx(ctx).LogAttrs(ctx, logger.DebugLevel, "fetched entities with paging",
		logger.String("op", op),
		logger.Int("page_number", pageNumber),
		logger.Int("page_size", pageSize),
		logger.Int("total_count", total),
	)

	return Paginate(s.toDtos(entities), total, pageNumber, pageSize), nil
}

func (s *Service[K, E, D, PE, PD]) toDtos(entities []PE) []PD {
	result := make([]PD, 0, len(entities))
	for _, entity := range entities {
		result = append(result, s.mapper.ToDto(entity))
	}
	return result
}
