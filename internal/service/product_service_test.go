package service

import (
	"testing"

	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) ProductService {
	return NewProductService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), nil)
}

func TestCreateProduct(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	category := &model.Category{Name: "drinks"}
	require.NoError(t, db.Create(category).Error)

	product := &model.Product{
		Code:       "A",
		Name:       "Americano",
		Price:      decimal.NewFromInt(10000),
		Stock:      5,
		CategoryID: &category.ID,
	}
	require.NoError(t, svc.Create(product, "admin"))
	assert.NotEqual(t, uuid.Nil, product.ID)

	fetched, err := svc.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", fetched.Code)
	require.NotNil(t, fetched.Category)
	assert.Equal(t, "drinks", fetched.Category.Name)
}

func TestCreateProduct_DuplicateCode(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "A", "Americano", 10000, 5)
	svc := newProductService(db)

	err := svc.Create(&model.Product{
		Code:  "A",
		Name:  "Another",
		Price: decimal.NewFromInt(5000),
	}, "admin")
	assert.ErrorIs(t, err, ErrProductCodeExists)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	bogus := uuid.New()
	err := svc.Create(&model.Product{
		Code:       "A",
		Name:       "Americano",
		Price:      decimal.NewFromInt(10000),
		CategoryID: &bogus,
	}, "admin")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestUpdateProduct_PartialFields(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "A", "Americano", 10000, 5)
	svc := newProductService(db)

	updated, err := svc.Update(product.ID, &model.Product{Name: "Americano Grande"}, "admin")
	require.NoError(t, err)

	// Untouched fields keep their stored values
	assert.Equal(t, "Americano Grande", updated.Name)
	assert.Equal(t, "A", updated.Code)
	requireDecimal(t, "10000", updated.Price)
	assert.Equal(t, 5, updated.Stock)
}

func TestUpdateProduct_CodeConflict(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "A", "Americano", 10000, 5)
	other := seedProduct(t, db, "B", "Bagel", 5000, 3)
	svc := newProductService(db)

	_, err := svc.Update(other.ID, &model.Product{Code: "A"}, "admin")
	assert.ErrorIs(t, err, ErrProductCodeExists)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	_, err := svc.Update(uuid.New(), &model.Product{Name: "Ghost"}, "admin")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "A", "Americano", 10000, 5)
	svc := newProductService(db)

	require.NoError(t, svc.Delete(product.ID))

	_, err := svc.GetByID(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
