package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nph-platform/casas-api/internal/application/dto"
	"github.com/nph-platform/casas-api/internal/application/usecase"
)

// HomeHandler maneja el CRUD de hogares.
type HomeHandler struct {
	uc *usecase.HomeUseCase
}

func NewHomeHandler(uc *usecase.HomeUseCase) *HomeHandler {
	return &HomeHandler{uc: uc}
}

func (h *HomeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateHomeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	home, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromHome(home))
}

func (h *HomeHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	home, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromHome(home))
}

func (h *HomeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	var in dto.UpdateHomeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	home, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromHome(home))
}

func (h *HomeHandler) Deactivate(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	if err := h.uc.Deactivate(c.Context(), id); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "el hogar ha sido inactivado"})
}

func (h *HomeHandler) Restore(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return domainError(c, err)
	}
	home, err := h.uc.Restore(c.Context(), id)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromHome(home))
}

func (h *HomeHandler) ListAll(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromHomes(list))
}

func (h *HomeHandler) ListActive(c *fiber.Ctx) error {
	list, err := h.uc.ListActive(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromHomes(list))
}

func (h *HomeHandler) ListInactive(c *fiber.Ctx) error {
	list, err := h.uc.ListInactive(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.FromHomes(list))
}
