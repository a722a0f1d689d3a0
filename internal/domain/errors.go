package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidMovementType = errors.New("tipo de transacción inválido; permitidos: ENTRADA, SALIDA, AJUSTE, DAÑO")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConflict            = errors.New("conflicto de concurrencia sobre el inventario; reintente")
	ErrUpstreamUnavailable = errors.New("servicio externo no disponible")
)
