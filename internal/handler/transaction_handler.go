package handler

import (
	"go-pos-api/internal/model"
	"go-pos-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// Helpers to read the operator identity from context (set by RequireAuth)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return ""
	}
	return userID.(string)
}

func getUsername(c *fiber.Ctx) string {
	username := c.Locals("username")
	if username == nil {
		return "Unknown"
	}
	return username.(string)
}

// Create posts a checkout or stock replenishment through the engine
// POST /api/v1/transactions
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req model.PostTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid JSON"})
	}

	actorID, err := uuid.Parse(getUserID(c))
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"message": "Unauthorized"})
	}

	transaction, err := h.service.Post(&req, actorID, getUsername(c))
	if err != nil {
		if service.IsBusinessError(err) {
			return c.Status(400).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"message": "Failed to create transaction"})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction created", "data": transaction})
}

// List returns transaction history, newest first
// GET /api/v1/transactions
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	transactions, err := h.service.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "Failed to fetch transactions"})
	}
	return c.JSON(fiber.Map{"data": transactions})
}

// Get returns one committed transaction with its items
// GET /api/v1/transactions/:id
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "Transaction not found"})
	}
	return c.JSON(fiber.Map{"data": transaction})
}
