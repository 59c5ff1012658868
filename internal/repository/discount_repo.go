package repository

import (
	"go-pos-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DiscountRepository interface {
	FindAll() ([]model.Discount, error)
	FindByCodes(tx *gorm.DB, codes []string) (map[string]decimal.Decimal, error)
	Upsert(discount *model.Discount) error
	DeleteByProductCode(code string) error
}

type discountRepo struct {
	db *gorm.DB
}

func NewDiscountRepo(db *gorm.DB) DiscountRepository {
	return &discountRepo{db}
}

func (r *discountRepo) FindAll() ([]model.Discount, error) {
	var discounts []model.Discount
	err := r.db.Order("product_code ASC").Find(&discounts).Error
	return discounts, err
}

// FindByCodes batch-loads discount rows for the given product codes and
// returns a code->percentage map. Codes without a row are simply absent.
func (r *discountRepo) FindByCodes(tx *gorm.DB, codes []string) (map[string]decimal.Decimal, error) {
	var discounts []model.Discount
	if err := tx.Where("product_code IN ?", codes).Find(&discounts).Error; err != nil {
		return nil, err
	}

	discountMap := make(map[string]decimal.Decimal, len(discounts))
	for _, d := range discounts {
		discountMap[d.ProductCode] = d.Percentage
	}
	return discountMap, nil
}

func (r *discountRepo) Upsert(discount *model.Discount) error {
	var existing model.Discount
	err := r.db.Where("product_code = ?", discount.ProductCode).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(discount).Error
	}
	if err != nil {
		return err
	}

	existing.Percentage = discount.Percentage
	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	*discount = existing
	return nil
}

func (r *discountRepo) DeleteByProductCode(code string) error {
	return r.db.Where("product_code = ?", code).Delete(&model.Discount{}).Error
}
