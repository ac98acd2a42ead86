package crud

import (
	"context"
	"errors"
)

var (
	ErrDoesNotExist       = errors.New("entity does not exist")
	ErrInvalidPageRequest = errors.New("page number and page size must be greater than 0")
)

type (
	// Identified is implemented by models that carry a store-assigned key.
	// Identifier reports false while the key has not been assigned.
	Identified[K comparable] interface {
		Identifier() (K, bool)
		SetIdentifier(id K)
	}

	// Model constrains a type parameter to *T where *T is Identified.
	Model[K comparable, T any] interface {
		*T
		Identified[K]
	}

	// Mapper translates between a persisted entity and its wire shape.
	// ToDto and ToEntity return nil for nil input; MergeInto is a no-op
	// when either side is nil.
	Mapper[E, D any] interface {
		ToDto(entity E) D
		ToEntity(dto D) E
		MergeInto(dto D, entity E)
	}

	// Repository is the persistence port. DeleteByID fails with
	// ErrDoesNotExist when the row is absent.
	Repository[K comparable, E any] interface {
		FindByID(ctx context.Context, id K) (Optional[E], error)
		FindAll(ctx context.Context) ([]E, error)
		FindAllPaged(ctx context.Context, page, size int) ([]E, int, error)
		Save(ctx context.Context, entity E) (E, error)
		ExistsByID(ctx context.Context, id K) (bool, error)
		DeleteByID(ctx context.Context, id K) error
	}
)
