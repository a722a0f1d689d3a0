package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nph-platform/casas-api/internal/application/dto"
	"github.com/nph-platform/casas-api/internal/application/ledger"
)

// TransactionHandler maneja las peticiones HTTP del log de transacciones
// de stock (protegido).
type TransactionHandler struct {
	uc *ledger.RecordTransactionUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.RecordTransactionUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica un movimiento ENTRADA/SALIDA/AJUSTE/DAÑO sobre el
//	inventario, con foto previous/new atómica. AJUSTE exige direction IN u OUT.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordTransactionRequest  true  "inventory_id, product_id, type, quantity, direction (AJUSTE), reason"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.uc.Record(c.Context(), ledger.MovementInput{
		InventoryID: in.InventoryID,
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Direction:   in.Direction,
		Reason:      in.Reason,
		UserID:      GetUserID(c),
		Date:        in.Date,
		Status:      in.Status,
		Reference:   GetRequestID(c),
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransaction(tx))
}

func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	tx, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

// Update solo acepta metadatos correctivos (reason, status, user_id).
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	var in dto.UpdateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

// Deactivate marca la transacción inactiva sin revertir su efecto en stock.
func (h *TransactionHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.uc.Deactivate(c.Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "la transacción ha sido inactivada"})
}

func (h *TransactionHandler) Restore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	tx, err := h.uc.Restore(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}

func (h *TransactionHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromTransactions(list))
}

func (h *TransactionHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.uc.ListActive(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromTransactions(list))
}

func (h *TransactionHandler) ListByInventory(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "inventoryId")
	if err != nil {
		return domainError(c, err)
	}
	list, err := h.uc.ListByInventory(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromTransactions(list))
}

func (h *TransactionHandler) ListByProduct(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "productId")
	if err != nil {
		return domainError(c, err)
	}
	list, err := h.uc.ListByProduct(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromTransactions(list))
}

func (h *TransactionHandler) ListByType(c *fiber.Ctx) error {
	list, err := h.uc.ListByType(c.Context(), c.Params("type"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromTransactions(list))
}
