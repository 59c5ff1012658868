package handler

import (
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SettingHandler exposes the global tax-rate singleton
type SettingHandler struct {
	settingRepo repository.SettingRepository
}

func NewSettingHandler(repo repository.SettingRepository) *SettingHandler {
	return &SettingHandler{settingRepo: repo}
}

// Get returns the current settings; a missing row reads as a 0% tax rate
// GET /api/v1/settings
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	setting, err := h.settingRepo.Get()
	if err == gorm.ErrRecordNotFound {
		return c.JSON(model.Setting{ID: model.SettingID, TaxRate: decimal.Zero})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch settings"})
	}
	return c.JSON(setting)
}

// UpdateSettingRequest carries the new tax rate percentage
type UpdateSettingRequest struct {
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// Update upserts the singleton row with the new tax rate
// PUT /api/v1/settings
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	var req UpdateSettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	if req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return c.Status(400).JSON(fiber.Map{"message": "Tax rate must be between 0 and 100"})
	}

	setting, err := h.settingRepo.UpsertTaxRate(req.TaxRate)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to update settings"})
	}

	return c.JSON(fiber.Map{"message": "Settings updated", "data": setting})
}
