package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nph-platform/casas-api/internal/application/consumption"
	"github.com/nph-platform/casas-api/internal/application/dto"
)

// ConsumptionHandler maneja las peticiones HTTP de consumos del hogar.
type ConsumptionHandler struct {
	uc *consumption.ConsumptionUseCase
}

// NewConsumptionHandler construye el handler.
func NewConsumptionHandler(uc *consumption.ConsumptionUseCase) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar consumo
// @Description  Crea un consumo del hogar. Si el body incluye inventory_id el
//	consumo descuenta stock mediante una SALIDA atómica enlazada.
// @Tags         consumption
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordConsumptionRequest  true  "date (yyyy-MM-dd, nunca futura), id_home, product_id, quantity, weight, price, salevalue"
// @Success      201   {object}  dto.ConsumptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumption [post]
func (h *ConsumptionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cons, err := h.uc.Record(c.Context(), GetUserID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromConsumption(cons))
}

func (h *ConsumptionHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	cons, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromConsumption(cons))
}

func (h *ConsumptionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	var in dto.UpdateConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cons, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromConsumption(cons))
}

// Deactivate oculta el consumo de los listados activos; no devuelve stock.
func (h *ConsumptionHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.uc.Deactivate(c.Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "el consumo ha sido inactivado"})
}

func (h *ConsumptionHandler) Restore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	cons, err := h.uc.Restore(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromConsumption(cons))
}

func (h *ConsumptionHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromConsumptions(list))
}

func (h *ConsumptionHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.uc.ListActive(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromConsumptions(list))
}

func (h *ConsumptionHandler) ListInactive(c *fiber.Ctx) error {
	list, err := h.uc.ListInactive(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromConsumptions(list))
}

// ListByDateRange godoc
// @Summary      Consumos por rango de fechas
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        startDate   query  string  true   "yyyy-MM-dd"
// @Param        endDate     query  string  true   "yyyy-MM-dd"
// @Param        activeOnly  query  bool    false  "solo estado A"
// @Success      200  {array}   dto.ConsumptionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/consumption/date-range [get]
func (h *ConsumptionHandler) ListByDateRange(c *fiber.Ctx) error {
	list, err := h.uc.ListByDateRange(
		c.Context(),
		c.Query("startDate"),
		c.Query("endDate"),
		c.QueryBool("activeOnly", false),
	)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromConsumptions(list))
}

// GetProduct consulta el catálogo externo de productos.
func (h *ConsumptionHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseIntParam(c, "productId")
	if err != nil {
		return domainError(c, err)
	}
	product, err := h.uc.GetProduct(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(product)
}
