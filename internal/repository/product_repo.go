package repository

import (
	"go-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	FindByCodesForUpdate(tx *gorm.DB, codes []string) ([]model.Product, error)
	FindLowStock(threshold int) ([]model.Product, error)
	FindOutOfStock() ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByCodesForUpdate batch-resolves product codes inside the caller's
// transaction, taking row locks so concurrent checkouts on the same products
// serialize. sqlite has no FOR UPDATE; there the database write lock
// serializes instead.
func (r *productRepo) FindByCodesForUpdate(tx *gorm.DB, codes []string) ([]model.Product, error) {
	var products []model.Product
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.Where("code IN ?", codes).Find(&products).Error
	return products, err
}

// FindLowStock lists products running out but not yet empty
func (r *productRepo) FindLowStock(threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("stock > 0 AND stock <= ?", threshold).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindOutOfStock() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").
		Where("stock = 0").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

// AdjustStock applies a signed stock delta. Must run inside the same
// transaction as the transaction/item inserts; callers validate
// non-negativity under the row lock before calling.
func (r *productRepo) AdjustStock(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}
