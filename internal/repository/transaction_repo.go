package repository

import (
	"time"

	"go-pos-api/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	CreateItem(tx *gorm.DB, item *model.TransactionItem) error
	FindAll() ([]model.Transaction, error)
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Transaction, error)
	GetSalesSummary(startDate, endDate time.Time) (decimal.Decimal, int64, error)
	FindRecent(limit int) ([]model.Transaction, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
}

// StockMovementData aggregates per-day sold vs restocked quantities for charts
type StockMovementData struct {
	Date      string `json:"date"`
	Sold      int    `json:"sold"`
	Restocked int    `json:"restocked"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

// Create inserts the transaction header inside the caller's transaction
func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

// CreateItem inserts one line item inside the caller's transaction
func (r *transactionRepo) CreateItem(tx *gorm.DB, item *model.TransactionItem) error {
	return tx.Create(item).Error
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Items.Product").
		Preload("Cashier").
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	return r.FindByIDTx(r.db, id)
}

// FindByIDTx fetches the fully-joined transaction through the given handle so
// the engine can re-read its own uncommitted rows before commit.
func (r *transactionRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := tx.
		Preload("Items.Product").
		Preload("Cashier").
		First(&transaction, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// GetSalesSummary returns summed SALE revenue and SALE count for the window
func (r *transactionRepo) GetSalesSummary(startDate, endDate time.Time) (decimal.Decimal, int64, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Transaction{}).
		Where("type = ? AND created_at >= ? AND created_at < ?", model.TxSale, startDate, endDate).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, 0, err
	}

	var count int64
	err = r.db.Model(&model.Transaction{}).
		Where("type = ? AND created_at >= ? AND created_at < ?", model.TxSale, startDate, endDate).
		Count(&count).Error
	if err != nil {
		return decimal.Zero, 0, err
	}

	return total, count, nil
}

func (r *transactionRepo) FindRecent(limit int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.
		Preload("Cashier").
		Order("created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.Model(&model.TransactionItem{}).
		Joins("JOIN transactions ON transactions.id = transaction_items.transaction_id").
		Select(`
			DATE(transactions.created_at) as date,
			COALESCE(SUM(CASE WHEN transactions.type = 'SALE' THEN transaction_items.qty ELSE 0 END), 0) as sold,
			COALESCE(SUM(CASE WHEN transactions.type = 'STOCK_IN' THEN transaction_items.qty ELSE 0 END), 0) as restocked
		`).
		Where("transactions.created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(transactions.created_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Sold, &data.Restocked); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
