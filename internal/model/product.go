package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item. Code is the human-readable business key used by
// the cashier/barcode flows; the UUID is the storage key.
type Product struct {
	BaseModel
	Code       string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Price      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	Stock      int             `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category   *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
}

// ProductResponse is the minimal projection embedded in receipt line items
type ProductResponse struct {
	ID    uuid.UUID       `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:    p.ID,
		Code:  p.Code,
		Name:  p.Name,
		Price: p.Price,
	}
}
