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

func newTransactionService(db *gorm.DB) TransactionService {
	return NewTransactionService(
		repository.NewProductRepo(db),
		repository.NewDiscountRepo(db),
		repository.NewSettingRepo(db),
		repository.NewTransactionRepo(db),
		db,
		nil,
	)
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(value).Count(&count).Error)
	return count
}

func productStock(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var product model.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.Stock
}

func TestPostSale_ComputesBreakdown(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	product := seedProduct(t, db, "A", "Americano", 10000, 5)
	seedDiscount(t, db, "A", 10)
	seedTaxRate(t, db, 10)

	svc := newTransactionService(db)

	resp, err := svc.Post(&model.PostTransactionRequest{
		Items:         []model.CartItemRequest{{Code: "A", Qty: 2}},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(20000),
	}, cashier.ID, cashier.Username)
	require.NoError(t, err)

	assert.Equal(t, model.TxSale, resp.Type)
	requireDecimal(t, "20000", resp.Subtotal)
	requireDecimal(t, "2000", resp.DiscountTotal)
	requireDecimal(t, "1800", resp.Tax)
	requireDecimal(t, "19800", resp.Total)
	requireDecimal(t, "20000", resp.PaidAmount)
	requireDecimal(t, "200", resp.ChangeGiven)
	assert.Equal(t, model.PaymentCash, resp.PaymentMethod)

	// Receipt joins: cashier identity and product projection per line
	require.NotNil(t, resp.Cashier)
	assert.Equal(t, "budi", resp.Cashier.Username)
	assert.Equal(t, model.RoleCashier, resp.Cashier.Role)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Qty)
	requireDecimal(t, "10000", resp.Items[0].Price)
	assert.Equal(t, "A", resp.Items[0].Product.Code)
	assert.Equal(t, "Americano", resp.Items[0].Product.Name)

	assert.Equal(t, 3, productStock(t, db, product.ID))
}

func TestPostSale_TotalBalancesAgainstTaxRate(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "sari", model.RoleCashier)
	seedProduct(t, db, "A", "Americano", 12500, 50)
	seedProduct(t, db, "B", "Bagel", 7300, 50)
	seedDiscount(t, db, "B", 25)
	seedTaxRate(t, db, 11)

	svc := newTransactionService(db)

	resp, err := svc.Post(&model.PostTransactionRequest{
		Items: []model.CartItemRequest{
			{Code: "A", Qty: 3},
			{Code: "B", Qty: 2},
		},
		PaymentMethod: model.PaymentQRIS,
		PaidAmount:    decimal.NewFromInt(100000),
	}, cashier.ID, cashier.Username)
	require.NoError(t, err)

	// total == subtotal - discountTotal + tax, tax == taxable * rate/100
	taxable := resp.Subtotal.Sub(resp.DiscountTotal)
	expectedTax := taxable.Mul(decimal.NewFromInt(11)).Div(decimal.NewFromInt(100))
	require.True(t, expectedTax.Equal(resp.Tax), "tax %s != expected %s", resp.Tax, expectedTax)
	require.True(t, taxable.Add(resp.Tax).Equal(resp.Total))
	require.True(t, resp.PaidAmount.Sub(resp.Total).Equal(resp.ChangeGiven))
}

func TestPostSale_InsufficientStock(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	product := seedProduct(t, db, "B", "Bagel", 5000, 1)

	svc := newTransactionService(db)

	_, err := svc.Post(&model.PostTransactionRequest{
		Items:         []model.CartItemRequest{{Code: "B", Qty: 2}},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(50000),
	}, cashier.ID, cashier.Username)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Bagel", stockErr.ProductName)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 2, stockErr.Requested)

	assert.Equal(t, 1, productStock(t, db, product.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.Transaction{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.TransactionItem{}))
}

func TestPostSale_AtomicAcrossItems(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	plenty := seedProduct(t, db, "A", "Americano", 10000, 100)
	scarce := seedProduct(t, db, "B", "Bagel", 5000, 1)

	svc := newTransactionService(db)

	_, err := svc.Post(&model.PostTransactionRequest{
		Items: []model.CartItemRequest{
			{Code: "A", Qty: 3}, // would succeed alone
			{Code: "B", Qty: 2}, // insufficient
		},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(100000),
	}, cashier.ID, cashier.Username)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	// No partial effects: earlier items must not be decremented
	assert.Equal(t, 100, productStock(t, db, plenty.ID))
	assert.Equal(t, 1, productStock(t, db, scarce.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.Transaction{}))
	assert.EqualValues(t, 0, countRows(t, db, &model.TransactionItem{}))
}

func TestPostSale_InsufficientPayment(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	product := seedProduct(t, db, "A", "Americano", 10000, 5)
	seedDiscount(t, db, "A", 10)
	seedTaxRate(t, db, 10)

	svc := newTransactionService(db)

	_, err := svc.Post(&model.PostTransactionRequest{
		Items:         []model.CartItemRequest{{Code: "A", Qty: 2}},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(15000),
	}, cashier.ID, cashier.Username)

	var paymentErr *InsufficientPaymentError
	require.ErrorAs(t, err, &paymentErr)
	requireDecimal(t, "19800", paymentErr.Total)
	requireDecimal(t, "15000", paymentErr.Paid)

	assert.Equal(t, 5, productStock(t, db, product.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.Transaction{}))
}

func TestPostStockIn_IncrementsStockWithoutDiscountOrTax(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin", model.RoleAdmin)
	product := seedProduct(t, db, "C", "Croissant", 8000, 10)
	// Discount and tax exist but must not apply to STOCK_IN
	seedDiscount(t, db, "C", 50)
	seedTaxRate(t, db, 10)

	svc := newTransactionService(db)

	resp, err := svc.Post(&model.PostTransactionRequest{
		Type:  model.TxStockIn,
		Items: []model.CartItemRequest{{Code: "C", Qty: 20}},
	}, admin.ID, admin.Username)
	require.NoError(t, err)

	assert.Equal(t, model.TxStockIn, resp.Type)
	requireDecimal(t, "160000", resp.Subtotal)
	requireDecimal(t, "0", resp.DiscountTotal)
	requireDecimal(t, "0", resp.Tax)
	requireDecimal(t, "160000", resp.Total)
	requireDecimal(t, "0", resp.PaidAmount)
	requireDecimal(t, "0", resp.ChangeGiven)
	assert.Empty(t, resp.PaymentMethod)

	// The acting operator is recorded for STOCK_IN too
	require.NotNil(t, resp.Cashier)
	assert.Equal(t, "admin", resp.Cashier.Username)

	assert.Equal(t, 30, productStock(t, db, product.ID))
}

func TestPost_EmptyItems(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)

	svc := newTransactionService(db)

	_, err := svc.Post(&model.PostTransactionRequest{
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(1000),
	}, cashier.ID, cashier.Username)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "items required", validationErr.Message)
}

func TestPostSale_MissingPaymentMethod(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	seedProduct(t, db, "A", "Americano", 10000, 5)

	svc := newTransactionService(db)

	// Type omitted defaults to SALE, which requires payment fields
	_, err := svc.Post(&model.PostTransactionRequest{
		Items:      []model.CartItemRequest{{Code: "A", Qty: 1}},
		PaidAmount: decimal.NewFromInt(10000),
	}, cashier.ID, cashier.Username)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestPostSale_UnknownPaymentMethod(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	seedProduct(t, db, "A", "Americano", 10000, 5)

	svc := newTransactionService(db)

	_, err := svc.Post(&model.PostTransactionRequest{
		Items:         []model.CartItemRequest{{Code: "A", Qty: 1}},
		PaymentMethod: "BARTER",
		PaidAmount:    decimal.NewFromInt(10000),
	}, cashier.ID, cashier.Username)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestPost_UnknownProductCode(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	product := seedProduct(t, db, "A", "Americano", 10000, 5)

	svc := newTransactionService(db)

	_, err := svc.Post(&model.PostTransactionRequest{
		Items: []model.CartItemRequest{
			{Code: "A", Qty: 1},
			{Code: "NOPE", Qty: 1},
		},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(50000),
	}, cashier.ID, cashier.Username)

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "NOPE", notFoundErr.Code)
	assert.Contains(t, err.Error(), "NOPE")

	assert.Equal(t, 5, productStock(t, db, product.ID))
	assert.EqualValues(t, 0, countRows(t, db, &model.Transaction{}))
}

func TestPostSale_DuplicateCodesCheckedCumulatively(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	product := seedProduct(t, db, "A", "Americano", 10000, 5)

	svc := newTransactionService(db)

	// Each line passes alone, together they overdraw stock
	_, err := svc.Post(&model.PostTransactionRequest{
		Items: []model.CartItemRequest{
			{Code: "A", Qty: 3},
			{Code: "A", Qty: 3},
		},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(100000),
	}, cashier.ID, cashier.Username)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available) // 5 minus the first line's 3
	assert.Equal(t, 5, productStock(t, db, product.ID))
}

func TestPostSale_DuplicateCodesStayIndependentLines(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	product := seedProduct(t, db, "A", "Americano", 10000, 5)

	svc := newTransactionService(db)

	resp, err := svc.Post(&model.PostTransactionRequest{
		Items: []model.CartItemRequest{
			{Code: "A", Qty: 2},
			{Code: "A", Qty: 3},
		},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(100000),
	}, cashier.ID, cashier.Username)
	require.NoError(t, err)

	// Not merged: two line items, stock drained to zero
	require.Len(t, resp.Items, 2)
	requireDecimal(t, "50000", resp.Subtotal)
	assert.Equal(t, 0, productStock(t, db, product.ID))
}

func TestPostSale_NoSettingRowMeansZeroTax(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	seedProduct(t, db, "A", "Americano", 10000, 5)

	svc := newTransactionService(db)

	resp, err := svc.Post(&model.PostTransactionRequest{
		Items:         []model.CartItemRequest{{Code: "A", Qty: 1}},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(10000),
	}, cashier.ID, cashier.Username)
	require.NoError(t, err)

	requireDecimal(t, "0", resp.Tax)
	requireDecimal(t, "10000", resp.Total)
	requireDecimal(t, "0", resp.ChangeGiven)
}

func TestPostSale_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	product := seedProduct(t, db, "A", "Americano", 10000, 5)

	svc := newTransactionService(db)

	resp, err := svc.Post(&model.PostTransactionRequest{
		Items:         []model.CartItemRequest{{Code: "A", Qty: 1}},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(10000),
	}, cashier.ID, cashier.Username)
	require.NoError(t, err)

	// Reprice the product after the sale
	require.NoError(t, db.Model(&model.Product{}).
		Where("id = ?", product.ID).
		Update("price", decimal.NewFromInt(99999)).Error)

	fetched, err := svc.GetByID(resp.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	requireDecimal(t, "10000", fetched.Items[0].Price)
}

func TestPost_ResubmitAppendsNewTransaction(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	product := seedProduct(t, db, "A", "Americano", 10000, 10)

	svc := newTransactionService(db)

	req := func() *model.PostTransactionRequest {
		return &model.PostTransactionRequest{
			Items:         []model.CartItemRequest{{Code: "A", Qty: 2}},
			PaymentMethod: model.PaymentCash,
			PaidAmount:    decimal.NewFromInt(20000),
		}
	}

	first, err := svc.Post(req(), cashier.ID, cashier.Username)
	require.NoError(t, err)
	second, err := svc.Post(req(), cashier.ID, cashier.Username)
	require.NoError(t, err)

	// No deduplication: each call is an independent ledger append
	assert.NotEqual(t, first.ID, second.ID)
	assert.EqualValues(t, 2, countRows(t, db, &model.Transaction{}))
	assert.Equal(t, 6, productStock(t, db, product.ID))
}

func TestGetAll_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	seedProduct(t, db, "A", "Americano", 10000, 10)

	svc := newTransactionService(db)

	for i := 0; i < 3; i++ {
		_, err := svc.Post(&model.PostTransactionRequest{
			Items:         []model.CartItemRequest{{Code: "A", Qty: 1}},
			PaymentMethod: model.PaymentCash,
			PaidAmount:    decimal.NewFromInt(10000),
		}, cashier.ID, cashier.Username)
		require.NoError(t, err)
	}

	all, err := svc.GetAll()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, tx := range all {
		require.Len(t, tx.Items, 1)
		require.NotNil(t, tx.Cashier)
	}
}
