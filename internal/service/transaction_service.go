package service

import (
	"fmt"

	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/internal/ws"
	"go-pos-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

type TransactionService interface {
	Post(req *model.PostTransactionRequest, actorID uuid.UUID, actorName string) (*model.TransactionResponse, error)
	GetAll() ([]model.TransactionResponse, error)
	GetByID(id uuid.UUID) (*model.TransactionResponse, error)
}

type transactionService struct {
	productRepo  repository.ProductRepository
	discountRepo repository.DiscountRepository
	settingRepo  repository.SettingRepository
	txRepo       repository.TransactionRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewTransactionService(
	pRepo repository.ProductRepository,
	dRepo repository.DiscountRepository,
	sRepo repository.SettingRepository,
	tRepo repository.TransactionRepository,
	db *gorm.DB,
	hub *ws.Hub,
) TransactionService {
	return &transactionService{
		productRepo:  pRepo,
		discountRepo: dRepo,
		settingRepo:  sRepo,
		txRepo:       tRepo,
		db:           db,
		wsHub:        hub,
	}
}

// Post validates the cart, computes the monetary breakdown, persists the
// transaction with its line items and adjusts stock, all inside one database
// transaction. Any failure rolls the whole unit back: no transaction row, no
// items, no stock change.
func (s *transactionService) Post(req *model.PostTransactionRequest, actorID uuid.UUID, actorName string) (*model.TransactionResponse, error) {
	// UI may omit type; SALE is the default
	if req.Type == "" {
		req.Type = model.TxSale
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)}
	}

	if len(req.Items) == 0 {
		return nil, &ValidationError{Message: "items required"}
	}

	if req.Type == model.TxSale {
		if req.PaymentMethod == "" {
			return nil, &ValidationError{Message: "payment_method is required for SALE"}
		}
		if req.PaidAmount.IsNegative() {
			return nil, &ValidationError{Message: "paid_amount must not be negative"}
		}
	}

	var committed *model.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 1. Global tax rate, read inside the same atomic boundary as the
		// stock check so a mid-flight rate change cannot skew this commit
		taxRate, err := s.settingRepo.GetTaxRate(tx)
		if err != nil {
			return err
		}

		// 2. Resolve all codes in one locked batch lookup
		codes := make([]string, 0, len(req.Items))
		seen := make(map[string]bool, len(req.Items))
		for _, item := range req.Items {
			if !seen[item.Code] {
				seen[item.Code] = true
				codes = append(codes, item.Code)
			}
		}

		products, err := s.productRepo.FindByCodesForUpdate(tx, codes)
		if err != nil {
			return err
		}

		productMap := make(map[string]*model.Product, len(products))
		for i := range products {
			productMap[products[i].Code] = &products[i]
		}
		for _, code := range codes {
			if _, ok := productMap[code]; !ok {
				return &NotFoundError{Code: code}
			}
		}

		// 3. Discounts apply to SALE only
		var discountMap map[string]decimal.Decimal
		if req.Type == model.TxSale {
			discountMap, err = s.discountRepo.FindByCodes(tx, codes)
			if err != nil {
				return err
			}
		}

		// 4. Validate stock and accumulate subtotal/discount in input order.
		// Duplicate codes stay independent line items, but the stock check
		// runs against projected stock that accrues earlier lines of the
		// same request, so qty 3 + qty 3 against stock 5 is rejected.
		subtotal := decimal.Zero
		discountTotal := decimal.Zero
		projected := make(map[uuid.UUID]int, len(products))

		for _, item := range req.Items {
			product := productMap[item.Code]

			if req.Type == model.TxSale {
				remaining, ok := projected[product.ID]
				if !ok {
					remaining = product.Stock
				}
				if remaining < item.Qty {
					return &InsufficientStockError{
						ProductName: product.Name,
						Available:   remaining,
						Requested:   item.Qty,
					}
				}
				projected[product.ID] = remaining - item.Qty
			}

			itemTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
			subtotal = subtotal.Add(itemTotal)

			if req.Type == model.TxSale {
				discountPercent := discountMap[item.Code] // zero when absent
				discountTotal = discountTotal.Add(itemTotal.Mul(discountPercent).Div(oneHundred))
			}
		}

		// 5. Monetary breakdown. STOCK_IN carries no discount or tax.
		tax := decimal.Zero
		total := subtotal
		if req.Type == model.TxSale {
			taxableAmount := subtotal.Sub(discountTotal)
			tax = taxableAmount.Mul(taxRate).Div(oneHundred)
			total = taxableAmount.Add(tax)
		}

		// 6. Payment check
		paidAmount := decimal.Zero
		changeGiven := decimal.Zero
		paymentMethod := ""
		if req.Type == model.TxSale {
			if req.PaidAmount.LessThan(total) {
				return &InsufficientPaymentError{Total: total, Paid: req.PaidAmount}
			}
			paidAmount = req.PaidAmount
			changeGiven = paidAmount.Sub(total)
			paymentMethod = req.PaymentMethod
		}

		// 7. Persist header, line items (price snapshot) and stock deltas
		transaction := &model.Transaction{
			Type:          req.Type,
			Subtotal:      subtotal,
			DiscountTotal: discountTotal,
			Tax:           tax,
			Total:         total,
			PaymentMethod: paymentMethod,
			PaidAmount:    paidAmount,
			ChangeGiven:   changeGiven,
			UserID:        actorID,
		}
		if err := s.txRepo.Create(tx, transaction); err != nil {
			return err
		}

		for _, item := range req.Items {
			product := productMap[item.Code]

			txItem := &model.TransactionItem{
				TransactionID: transaction.ID,
				ProductID:     product.ID,
				Qty:           item.Qty,
				Price:         product.Price,
			}
			if err := s.txRepo.CreateItem(tx, txItem); err != nil {
				return err
			}

			delta := item.Qty
			if req.Type == model.TxSale {
				delta = -item.Qty
			}
			if err := s.productRepo.AdjustStock(tx, product.ID, delta); err != nil {
				return err
			}
		}

		// 8-9. Re-fetch the joined record through the same handle for the receipt
		committed, err = s.txRepo.FindByIDTx(tx, transaction.ID)
		return err
	})

	if err != nil {
		return nil, err
	}

	go func() {
		s.wsHub.BroadcastJSON(map[string]interface{}{
			"type":   "pos_update",
			"action": "transaction_posted",
			"transaction": map[string]interface{}{
				"id":    committed.ID,
				"kind":  committed.Type,
				"total": committed.Total,
				"items": len(committed.Items),
			},
			"user": map[string]interface{}{
				"id":   actorID,
				"name": actorName,
			},
			"message": fmt.Sprintf("%s posted a %s of %s", actorName, committed.Type, committed.Total.String()),
		})
	}()

	resp := committed.ToResponse()
	return &resp, nil
}

func (s *transactionService) GetAll() ([]model.TransactionResponse, error) {
	transactions, err := s.txRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, transactions[i].ToResponse())
	}
	return responses, nil
}

func (s *transactionService) GetByID(id uuid.UUID) (*model.TransactionResponse, error) {
	transaction, err := s.txRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := transaction.ToResponse()
	return &resp, nil
}
