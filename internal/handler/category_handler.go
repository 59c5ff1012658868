package handler

import (
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CategoryHandler works straight off the repository; categories have no
// business rules beyond name uniqueness.
type CategoryHandler struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryHandler(repo repository.CategoryRepository) *CategoryHandler {
	return &CategoryHandler{categoryRepo: repo}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categoryRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch categories"})
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	if category.Name == "" {
		return c.Status(400).JSON(fiber.Map{"message": "Category name is required"})
	}

	existing, err := h.categoryRepo.FindByName(category.Name)
	if err != nil && err != gorm.ErrRecordNotFound {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to create category"})
	}
	if existing != nil {
		return c.Status(409).JSON(fiber.Map{"message": "Category name already exists"})
	}

	if err := h.categoryRepo.Create(&category); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to create category"})
	}

	return c.Status(201).JSON(category)
}
