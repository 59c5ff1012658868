package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxSale    TransactionType = "SALE"
	TxStockIn TransactionType = "STOCK_IN"
)

// Payment methods accepted for SALE transactions. The method is recorded,
// never processed.
const (
	PaymentCash       = "CASH"
	PaymentDebitCard  = "DEBIT_CARD"
	PaymentCreditCard = "CREDIT_CARD"
	PaymentQRIS       = "QRIS"
	PaymentEWallet    = "E_WALLET"
)

// Transaction is one committed checkout (SALE) or replenishment (STOCK_IN).
// Rows are append-only: no update or delete path exists once committed.
type Transaction struct {
	BaseModel
	Type          TransactionType `gorm:"type:varchar(10);not null" json:"type"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"subtotal"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"discount_total"`
	Tax           decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"tax"`
	Total         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"total"`
	PaymentMethod string          `gorm:"type:varchar(20)" json:"payment_method,omitempty"` // SALE only
	PaidAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"paid_amount"`
	ChangeGiven   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"change_given"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Cashier       *User           `gorm:"foreignKey:UserID" json:"-"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TransactionItem is one line of a transaction. Price is the unit price
// captured at posting time so historical receipts survive later price edits.
type TransactionItem struct {
	BaseModel
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"transaction_id"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	Product       *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Qty           int             `gorm:"not null" json:"qty"`
	Price         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
}

// CartItemRequest is one requested line: a product code plus quantity
type CartItemRequest struct {
	Code string `json:"code" validate:"required"`
	Qty  int    `json:"qty" validate:"required,gt=0"`
}

// PostTransactionRequest is the engine's input contract. Type defaults to
// SALE when empty. PaymentMethod and PaidAmount are required for SALE only.
type PostTransactionRequest struct {
	Type          TransactionType   `json:"type" validate:"omitempty,oneof=SALE STOCK_IN"`
	Items         []CartItemRequest `json:"items" validate:"dive"`
	PaymentMethod string            `json:"payment_method" validate:"omitempty,oneof=CASH DEBIT_CARD CREDIT_CARD QRIS E_WALLET"`
	PaidAmount    decimal.Decimal   `json:"paid_amount"`
}

// TransactionItemResponse is one receipt line joined to its product projection
type TransactionItemResponse struct {
	ID      uuid.UUID       `json:"id"`
	Qty     int             `json:"qty"`
	Price   decimal.Decimal `json:"price"`
	Product ProductResponse `json:"product"`
}

// TransactionResponse is the committed transaction shaped for receipt rendering
type TransactionResponse struct {
	ID            uuid.UUID                 `json:"id"`
	Type          TransactionType           `json:"type"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	DiscountTotal decimal.Decimal           `json:"discount_total"`
	Tax           decimal.Decimal           `json:"tax"`
	Total         decimal.Decimal           `json:"total"`
	PaymentMethod string                    `json:"payment_method,omitempty"`
	PaidAmount    decimal.Decimal           `json:"paid_amount"`
	ChangeGiven   decimal.Decimal           `json:"change_given"`
	CreatedAt     string                    `json:"created_at"`
	Cashier       *UserResponse             `json:"cashier,omitempty"`
	Items         []TransactionItemResponse `json:"items"`
}

// ToResponse converts a fully-preloaded Transaction to its receipt shape
func (t *Transaction) ToResponse() TransactionResponse {
	resp := TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Subtotal:      t.Subtotal,
		DiscountTotal: t.DiscountTotal,
		Tax:           t.Tax,
		Total:         t.Total,
		PaymentMethod: t.PaymentMethod,
		PaidAmount:    t.PaidAmount,
		ChangeGiven:   t.ChangeGiven,
		CreatedAt:     t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Items:         make([]TransactionItemResponse, 0, len(t.Items)),
	}

	if t.Cashier != nil {
		cashier := t.Cashier.ToResponse()
		resp.Cashier = &cashier
	}

	for _, item := range t.Items {
		itemResp := TransactionItemResponse{
			ID:    item.ID,
			Qty:   item.Qty,
			Price: item.Price,
		}
		if item.Product != nil {
			itemResp.Product = item.Product.ToResponse()
		}
		resp.Items = append(resp.Items, itemResp)
	}

	return resp
}
