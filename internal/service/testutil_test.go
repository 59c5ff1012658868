package service

import (
	"testing"

	"go-pos-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database and migrates the full
// schema. Each test gets its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Discount{},
		&model.Setting{},
		&model.Transaction{},
		&model.TransactionItem{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()

	user := &model.User{Username: username, Role: role, IsActive: true}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, code, name string, price int64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		Code:  code,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedDiscount(t *testing.T, db *gorm.DB, code string, percentage int64) {
	t.Helper()

	require.NoError(t, db.Create(&model.Discount{
		ProductCode: code,
		Percentage:  decimal.NewFromInt(percentage),
	}).Error)
}

func seedTaxRate(t *testing.T, db *gorm.DB, rate int64) {
	t.Helper()

	require.NoError(t, db.Create(&model.Setting{
		ID:      model.SettingID,
		TaxRate: decimal.NewFromInt(rate),
	}).Error)
}

// requireDecimal asserts a decimal value against its expected string form
func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()

	want, err := decimal.NewFromString(expected)
	require.NoError(t, err)
	require.Truef(t, want.Equal(actual), "expected %s, got %s", expected, actual.String())
}
