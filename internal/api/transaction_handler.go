package api

import (
	"github.com/gofiber/fiber/v2"
	"walle.finance/internal/domain"
)

// TransactionHandler exposes the caller-scoped transaction CRUD.
type TransactionHandler struct {
	transactions domain.TransactionService
}

func NewTransactionHandler(transactions domain.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type createTransactionRequest struct {
	Type        string   `json:"type"`
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
}

// POST /transaction/create
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var req createTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	tx, err := h.transactions.Create(c.Context(), requesterID(c), domain.CreateTransactionInput{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusCreated, true, "TRANSACTION_CREATED", "Transaction created successfully.", tx)
}

type updateTransactionRequest struct {
	Type        string   `json:"type"`
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Description *string  `json:"description"`
	Date        string   `json:"date"`
}

// PUT /transaction/edit/:id
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	var req updateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return send(c, fiber.StatusBadRequest, false, "INVALID_BODY", "Invalid request body.", nil)
	}

	tx, err := h.transactions.Update(c.Context(), requesterID(c), c.Params("id"), domain.UpdateTransactionInput{
		Type:        req.Type,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "TRANSACTION_UPDATED", "Transaction updated successfully.", tx)
}

// DELETE /transaction/delete/:id
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.transactions.Delete(c.Context(), requesterID(c), c.Params("id")); err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "TRANSACTION_DELETED", "Transaction deleted successfully.", nil)
}

// GET /transaction/
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	txs, err := h.transactions.ListByUser(c.Context(), requesterID(c))
	if err != nil {
		return handleError(c, err)
	}

	return send(c, fiber.StatusOK, true, "TRANSACTIONS_FOUND", "Transactions retrieved successfully.", txs)
}
