package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const DescriptionMaxLen = 510

// Product is the persisted representation. ID is zero until the store
// assigns one; CreatedOn is set once on insert and UpdatedOn on every
// subsequent write.
type Product struct {
	ID          int64
	CreatedOn   time.Time
	UpdatedOn   *time.Time
	Name        string
	Description *string
	Price       decimal.Decimal
	ImageURL    string
}

func (p *Product) Identifier() (int64, bool) {
	if p == nil || p.ID == 0 {
		return 0, false
	}
	return p.ID, true
}

func (p *Product) SetIdentifier(id int64) {
	p.ID = id
}

// ProductDto is the wire representation of a product.
type ProductDto struct {
	ID          *int64          `json:"id,omitempty"`
	Name        string          `json:"name"                  binding:"required"                  example:"Product Name"`
	Description *string         `json:"description,omitempty" binding:"omitempty,max=510"         example:"This is a product description."`
	Price       decimal.Decimal `json:"price"                 binding:"gte=0"                     swaggertype:"string" example:"200.00"`
	ImageURL    string          `json:"imageUrl"              binding:"required,url"              example:"https://www.example.com/image.jpg"`
}

func (d *ProductDto) Identifier() (int64, bool) {
	if d == nil || d.ID == nil {
		return 0, false
	}
	return *d.ID, true
}

func (d *ProductDto) SetIdentifier(id int64) {
	d.ID = &id
}

// DescriptionUpdateRequest carries the only field a description patch may
// touch. A nil Description clears the stored one.
type DescriptionUpdateRequest struct {
	Description *string `json:"description" binding:"omitempty,max=510" example:"This is a product description."`
}
