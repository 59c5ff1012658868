package service

import (
	"time"

	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"

	"github.com/shopspring/decimal"
)

// Products at or below this stock level show up on the dashboard warning list
const lowStockThreshold = 10

type DashboardStats struct {
	TotalSalesToday        decimal.Decimal     `json:"total_sales_today"`
	TotalTransactionsToday int64               `json:"total_transactions_today"`
	LowStockProducts       []model.Product     `json:"low_stock_products"`
	OutOfStockProducts     []model.Product     `json:"out_of_stock_products"`
	RecentTransactions     []RecentTransaction `json:"recent_transactions"`
}

type RecentTransaction struct {
	ID        string                `json:"id"`
	Type      model.TransactionType `json:"type"`
	Total     decimal.Decimal       `json:"total"`
	CreatedAt time.Time             `json:"created_at"`
	Cashier   string                `json:"cashier"`
}

type DashboardService interface {
	GetStats() (*DashboardStats, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
}

type dashboardService struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
}

func NewDashboardService(txRepo repository.TransactionRepository, productRepo repository.ProductRepository) DashboardService {
	return &dashboardService{txRepo: txRepo, productRepo: productRepo}
}

func (s *dashboardService) GetStats() (*DashboardStats, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.AddDate(0, 0, 1)

	totalSales, txCount, err := s.txRepo.GetSalesSummary(today, tomorrow)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.FindLowStock(lowStockThreshold)
	if err != nil {
		return nil, err
	}

	outOfStock, err := s.productRepo.FindOutOfStock()
	if err != nil {
		return nil, err
	}

	recent, err := s.txRepo.FindRecent(5)
	if err != nil {
		return nil, err
	}

	recentTransactions := make([]RecentTransaction, 0, len(recent))
	for _, tx := range recent {
		cashier := "Unknown"
		if tx.Cashier != nil {
			cashier = tx.Cashier.Username
		}
		recentTransactions = append(recentTransactions, RecentTransaction{
			ID:        tx.ID.String(),
			Type:      tx.Type,
			Total:     tx.Total,
			CreatedAt: tx.CreatedAt,
			Cashier:   cashier,
		})
	}

	return &DashboardStats{
		TotalSalesToday:        totalSales,
		TotalTransactionsToday: txCount,
		LowStockProducts:       lowStock,
		OutOfStockProducts:     outOfStock,
		RecentTransactions:     recentTransactions,
	}, nil
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.txRepo.GetStockMovement(startDate, endDate)
}
