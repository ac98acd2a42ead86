package mapper

import (
	"shopsample/internal/entity"
	"shopsample/pkg/crud"
)

var _ crud.Mapper[*entity.Product, *entity.ProductDto] = ProductMapper{}

// ProductMapper is stateless; the zero value is ready to use.
type ProductMapper struct{}

func NewProductMapper() ProductMapper {
	return ProductMapper{}
}

// ToDto copies the resource fields and the id. Timestamps stay behind.
func (ProductMapper) ToDto(p *entity.Product) *entity.ProductDto {
	if p == nil {
		return nil
	}

	dto := &entity.ProductDto{
		Name:        p.Name,
		Description: cloneString(p.Description),
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
	if id, ok := p.Identifier(); ok {
		dto.SetIdentifier(id)
	}
	return dto
}

func (ProductMapper) ToEntity(dto *entity.ProductDto) *entity.Product {
	if dto == nil {
		return nil
	}

	p := &entity.Product{
		Name:        dto.Name,
		Description: cloneString(dto.Description),
		Price:       dto.Price,
		ImageURL:    dto.ImageURL,
	}
	if id, ok := dto.Identifier(); ok {
		p.SetIdentifier(id)
	}
	return p
}

// MergeInto overwrites the resource fields of p from dto. ID and
// timestamps are left alone.
func (ProductMapper) MergeInto(dto *entity.ProductDto, p *entity.Product) {
	if dto == nil || p == nil {
		return
	}

	p.Name = dto.Name
	p.Description = cloneString(dto.Description)
	p.Price = dto.Price
	p.ImageURL = dto.ImageURL
}

// MergeDescription applies a description patch to p and nothing else.
func (ProductMapper) MergeDescription(req *entity.DescriptionUpdateRequest, p *entity.Product) {
	if req == nil || p == nil {
		return
	}

	p.Description = cloneString(req.Description)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
