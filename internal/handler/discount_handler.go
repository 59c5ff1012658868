package handler

import (
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountHandler manages the per-product discount table consumed read-only
// by the transaction engine.
type DiscountHandler struct {
	discountRepo repository.DiscountRepository
	productRepo  repository.ProductRepository
}

func NewDiscountHandler(dRepo repository.DiscountRepository, pRepo repository.ProductRepository) *DiscountHandler {
	return &DiscountHandler{discountRepo: dRepo, productRepo: pRepo}
}

func (h *DiscountHandler) List(c *fiber.Ctx) error {
	discounts, err := h.discountRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch discounts"})
	}
	return c.JSON(discounts)
}

// Upsert sets the discount percentage in effect for a product code
// PUT /api/v1/discounts
func (h *DiscountHandler) Upsert(c *fiber.Ctx) error {
	var discount model.Discount
	if err := c.BodyParser(&discount); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	if discount.ProductCode == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Product code is required"})
	}
	if discount.Percentage.IsNegative() || discount.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return c.Status(400).JSON(fiber.Map{"message": "Percentage must be between 0 and 100"})
	}

	if _, err := h.productRepo.FindByCode(discount.ProductCode); err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(404).JSON(fiber.Map{"message": "Product not found: " + discount.ProductCode})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to save discount"})
	}

	if err := h.discountRepo.Upsert(&discount); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to save discount"})
	}

	return c.JSON(fiber.Map{"message": "Discount saved", "data": discount})
}

// Delete removes the discount for a product code
// DELETE /api/v1/discounts/:code
func (h *DiscountHandler) Delete(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Product code is required"})
	}

	if err := h.discountRepo.DeleteByProductCode(code); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to delete discount"})
	}

	return c.JSON(fiber.Map{"message": "Discount deleted"})
}
