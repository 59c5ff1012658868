package repository

import (
	"go-pos-api/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SettingRepository interface {
	Get() (*model.Setting, error)
	GetTaxRate(tx *gorm.DB) (decimal.Decimal, error)
	UpsertTaxRate(rate decimal.Decimal) (*model.Setting, error)
}

type settingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db}
}

func (r *settingRepo) Get() (*model.Setting, error) {
	var setting model.Setting
	if err := r.db.First(&setting, "id = ?", model.SettingID).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

// GetTaxRate reads the singleton row inside the caller's transaction so the
// rate a checkout commits against is the rate it computed with. A missing
// row means a 0% tax rate.
func (r *settingRepo) GetTaxRate(tx *gorm.DB) (decimal.Decimal, error) {
	var setting model.Setting
	err := tx.First(&setting, "id = ?", model.SettingID).Error
	if err == gorm.ErrRecordNotFound {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return setting.TaxRate, nil
}

func (r *settingRepo) UpsertTaxRate(rate decimal.Decimal) (*model.Setting, error) {
	setting := model.Setting{ID: model.SettingID, TaxRate: rate}
	err := r.db.Where("id = ?", model.SettingID).
		Assign(map[string]interface{}{"tax_rate": rate}).
		FirstOrCreate(&setting).Error
	if err != nil {
		return nil, err
	}
	setting.TaxRate = rate
	return &setting, nil
}
