package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettingID is the fixed primary key of the singleton settings row
const SettingID = 1

// Setting holds the global tax rate. Exactly one row is meaningful; a missing
// row is treated as a 0% tax rate.
type Setting struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"tax_rate"`
	UpdatedAt time.Time       `json:"updated_at"`
}
