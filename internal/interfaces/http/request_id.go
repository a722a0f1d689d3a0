package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID asigna un id de correlación a cada petición. Se propaga en la
// respuesta (X-Request-Id) y queda disponible para los handlers, que lo usan
// como referencia de los movimientos que generan.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Locals(LocalRequestID, id)
		c.Set("X-Request-Id", id)
		return c.Next()
	}
}

// GetRequestID devuelve el id de correlación de la petición.
func GetRequestID(c *fiber.Ctx) string {
	v := c.Locals(LocalRequestID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
