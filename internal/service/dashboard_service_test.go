package service

import (
	"testing"

	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardService(db *gorm.DB) DashboardService {
	return NewDashboardService(repository.NewTransactionRepo(db), repository.NewProductRepo(db))
}

func TestGetStats_TodaySalesAndStockLists(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	seedProduct(t, db, "A", "Americano", 10000, 100)
	seedProduct(t, db, "LOW", "Latte", 9000, 3)
	seedProduct(t, db, "OUT", "Oatmilk", 12000, 0)

	txService := newTransactionService(db)
	for i := 0; i < 2; i++ {
		_, err := txService.Post(&model.PostTransactionRequest{
			Items:         []model.CartItemRequest{{Code: "A", Qty: 1}},
			PaymentMethod: model.PaymentCash,
			PaidAmount:    decimal.NewFromInt(10000),
		}, cashier.ID, cashier.Username)
		require.NoError(t, err)
	}
	// STOCK_IN must not count toward sales
	_, err := txService.Post(&model.PostTransactionRequest{
		Type:  model.TxStockIn,
		Items: []model.CartItemRequest{{Code: "A", Qty: 10}},
	}, cashier.ID, cashier.Username)
	require.NoError(t, err)

	stats, err := newDashboardService(db).GetStats()
	require.NoError(t, err)

	requireDecimal(t, "20000", stats.TotalSalesToday)
	assert.EqualValues(t, 2, stats.TotalTransactionsToday)

	require.Len(t, stats.LowStockProducts, 1)
	assert.Equal(t, "LOW", stats.LowStockProducts[0].Code)
	require.Len(t, stats.OutOfStockProducts, 1)
	assert.Equal(t, "OUT", stats.OutOfStockProducts[0].Code)

	require.Len(t, stats.RecentTransactions, 3)
	for _, recent := range stats.RecentTransactions {
		assert.Equal(t, "budi", recent.Cashier)
	}
}

func TestGetStockMovement_AggregatesByType(t *testing.T) {
	db := newTestDB(t)
	cashier := seedUser(t, db, "budi", model.RoleCashier)
	seedProduct(t, db, "A", "Americano", 10000, 50)

	txService := newTransactionService(db)
	_, err := txService.Post(&model.PostTransactionRequest{
		Items:         []model.CartItemRequest{{Code: "A", Qty: 4}},
		PaymentMethod: model.PaymentCash,
		PaidAmount:    decimal.NewFromInt(40000),
	}, cashier.ID, cashier.Username)
	require.NoError(t, err)
	_, err = txService.Post(&model.PostTransactionRequest{
		Type:  model.TxStockIn,
		Items: []model.CartItemRequest{{Code: "A", Qty: 12}},
	}, cashier.ID, cashier.Username)
	require.NoError(t, err)

	movement, err := newDashboardService(db).GetStockMovement(7)
	require.NoError(t, err)

	require.Len(t, movement, 1)
	assert.Equal(t, 4, movement[0].Sold)
	assert.Equal(t, 12, movement[0].Restocked)
}
