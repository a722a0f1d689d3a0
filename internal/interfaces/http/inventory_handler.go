package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nph-platform/casas-api/internal/application/dto"
	"github.com/nph-platform/casas-api/internal/application/ledger"
)

// InventoryHandler maneja las peticiones HTTP del ciclo de vida del inventario
// y de su conciliación contra el log (protegido).
type InventoryHandler struct {
	uc     *ledger.InventoryUseCase
	ledger *ledger.RecordTransactionUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.InventoryUseCase, recorder *ledger.RecordTransactionUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, ledger: recorder}
}

// Create godoc
// @Summary      Crear fila de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "product_id, initial_stock, current_stock, status opcional"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromInventory(inv))
}

func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	inv, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromInventory(inv))
}

// Update aplica un merge parcial: campos ausentes o inválidos se ignoran.
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inv, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromInventory(inv))
}

func (h *InventoryHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.uc.Deactivate(c.Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "el inventario ha sido inactivado"})
}

func (h *InventoryHandler) Restore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	inv, err := h.uc.Restore(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromInventory(inv))
}

func (h *InventoryHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromInventories(list))
}

func (h *InventoryHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.uc.ListActive(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromInventories(list))
}

func (h *InventoryHandler) ListInactive(c *fiber.Ctx) error {
	list, err := h.uc.ListInactive(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromInventories(list))
}

// Reconciliation godoc
// @Summary      Conciliar inventario contra el log de transacciones
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/reconciliation [get]
func (h *InventoryHandler) Reconciliation(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	rec, err := h.ledger.Reconcile(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(rec)
}
