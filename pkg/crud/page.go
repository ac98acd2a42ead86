package crud

import (
	"fmt"
	"math"
)

type Page[T any] struct {
	Items       []T  `json:"items"`
	PageNumber  int  `json:"pageNumber"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	TotalPages  int  `json:"totalPages"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// Paginate derives page metadata from the raw counts. pageNumber is 1-based.
// The flags come from arithmetic alone, so a page past the end still reports
// them correctly. pageSize must be positive; see ValidatePageRequest.
func Paginate[T any](items []T, totalCount, pageNumber, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(pageSize)))

	return Page[T]{
		Items:       items,
		PageNumber:  pageNumber,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		HasPrevious: pageNumber > 1,
		HasNext:     pageNumber < totalPages,
	}
}

func ValidatePageRequest(pageNumber, pageSize int) error {
	if pageNumber < 1 {
		return fmt.Errorf("page number %d: %w", pageNumber, ErrInvalidPageRequest)
	}
	if pageSize < 1 {
		return fmt.Errorf("page size %d: %w", pageSize, ErrInvalidPageRequest)
	}
	return nil
}
