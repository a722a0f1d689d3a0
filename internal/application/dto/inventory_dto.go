package dto

// CreateInventoryRequest body para POST /api/inventory.
// El id lo asigna el servicio; uno enviado por el caller se ignora.
type CreateInventoryRequest struct {
	ProductID    *int64 `json:"product_id"`
	InitialStock *int   `json:"initial_stock"`
	CurrentStock *int   `json:"current_stock"`
	Status       string `json:"status,omitempty"`
}

// UpdateInventoryRequest body para PUT /api/inventory/:id.
// Actualización parcial: solo los campos presentes y válidos se aplican
// (merge, no replace). Campos ausentes o inválidos se ignoran en silencio.
type UpdateInventoryRequest struct {
	ProductID    *int64  `json:"product_id"`
	InitialStock *int    `json:"initial_stock"`
	CurrentStock *int    `json:"current_stock"`
	Status       *string `json:"status"`
}

// ReconciliationResponse resultado de conciliar un inventario contra su log.
type ReconciliationResponse struct {
	InventoryID  int64 `json:"inventory_id"`
	InitialStock int   `json:"initial_stock"`
	CurrentStock int   `json:"current_stock"`
	ActiveDelta  int   `json:"active_delta"` // suma con signo de transacciones activas
	Consistent   bool  `json:"consistent"`   // current - initial == active_delta
}
