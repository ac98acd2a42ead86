package mapper_test

import (
	"testing"
	"time"

	"shopsample/internal/entity"
	"shopsample/internal/mapper"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func generateFakeProduct() *entity.Product {
	description := gofakeit.ProductDescription()
	updated := time.Now().UTC()
	return &entity.Product{
		ID:          gofakeit.Int64()&0x7fffffff + 1,
		CreatedOn:   updated.Add(-time.Hour),
		UpdatedOn:   &updated,
		Name:        gofakeit.ProductName(),
		Description: &description,
		Price:       decimal.NewFromFloat(gofakeit.Price(1, 1000)).Round(2),
		ImageURL:    gofakeit.URL(),
	}
}

func TestProductMapper_NilPropagation(t *testing.T) {
	m := mapper.NewProductMapper()

	require.Nil(t, m.ToDto(nil))
	require.Nil(t, m.ToEntity(nil))

	p := generateFakeProduct()
	before := *p
	m.MergeInto(nil, p)
	require.Equal(t, before, *p)

	require.NotPanics(t, func() {
		m.MergeInto(&entity.ProductDto{Name: "x"}, nil)
		m.MergeDescription(nil, p)
	})
}

func TestProductMapper_RoundTrip(t *testing.T) {
	m := mapper.NewProductMapper()

	for range 20 {
		p := generateFakeProduct()

		dto := m.ToDto(p)
		require.NotNil(t, dto.ID)
		require.Equal(t, p.ID, *dto.ID)

		back := m.ToEntity(dto)
		require.Equal(t, p.ID, back.ID)
		require.Equal(t, p.Name, back.Name)
		require.Equal(t, *p.Description, *back.Description)
		require.True(t, p.Price.Equal(back.Price))
		require.Equal(t, p.ImageURL, back.ImageURL)

		require.True(t, back.CreatedOn.IsZero())
		require.Nil(t, back.UpdatedOn)
	}
}

func TestProductMapper_ToEntityWithoutID(t *testing.T) {
	m := mapper.NewProductMapper()

	p := m.ToEntity(&entity.ProductDto{Name: "Lamp", ImageURL: "https://example.com/lamp.jpg"})

	_, ok := p.Identifier()
	require.False(t, ok)
	require.Nil(t, p.Description)
}

func TestProductMapper_MergeInto(t *testing.T) {
	m := mapper.NewProductMapper()
	p := generateFakeProduct()
	id, created, updated := p.ID, p.CreatedOn, p.UpdatedOn

	otherID := p.ID + 1
	dto := &entity.ProductDto{
		ID:       &otherID,
		Name:     "Renamed",
		Price:    decimal.RequireFromString("9.99"),
		ImageURL: "https://example.com/new.jpg",
	}

	m.MergeInto(dto, p)

	require.Equal(t, id, p.ID)
	require.Equal(t, created, p.CreatedOn)
	require.Equal(t, updated, p.UpdatedOn)
	require.Equal(t, "Renamed", p.Name)
	require.Nil(t, p.Description)
	require.Equal(t, "9.99", p.Price.StringFixed(2))
	require.Equal(t, "https://example.com/new.jpg", p.ImageURL)
}

func TestProductMapper_MergeDescription(t *testing.T) {
	m := mapper.NewProductMapper()
	p := generateFakeProduct()
	before := *p

	description := "new description"
	m.MergeDescription(&entity.DescriptionUpdateRequest{Description: &description}, p)

	require.Equal(t, description, *p.Description)
	p.Description = before.Description
	require.Equal(t, before, *p)
}
