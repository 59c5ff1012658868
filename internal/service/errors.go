package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Business-rule failures raised by the transaction engine. All of them abort
// the whole unit with no partial effect and are never retried internally;
// the handler layer maps them to 400-class rejections.

// ValidationError signals a malformed or incomplete request
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError signals a referenced product code that does not exist
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.Code)
}

// InsufficientStockError signals a SALE quantity exceeding available stock
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock not enough for %s (available %d, requested %d)", e.ProductName, e.Available, e.Requested)
}

// InsufficientPaymentError signals a paid amount short of the computed total
type InsufficientPaymentError struct {
	Total decimal.Decimal
	Paid  decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("paid amount %s is less than total %s", e.Paid.String(), e.Total.String())
}

// IsBusinessError reports whether err is one of the typed business-rule
// failures (as opposed to an infrastructural persistence failure)
func IsBusinessError(err error) bool {
	var (
		validationErr *ValidationError
		notFoundErr   *NotFoundError
		stockErr      *InsufficientStockError
		paymentErr    *InsufficientPaymentError
	)
	return errors.As(err, &validationErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &stockErr) ||
		errors.As(err, &paymentErr)
}
