package model

import "github.com/shopspring/decimal"

// Discount maps a product code to the percentage currently in effect.
// At most one row per product; a missing row means 0%.
type Discount struct {
	BaseModel
	ProductCode string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"product_code" validate:"required"`
	Percentage  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"percentage"`
}
