package dto

import "time"

// RecordTransactionRequest body para POST /api/transactions.
// Direction solo aplica (y es obligatorio) cuando type es AJUSTE.
type RecordTransactionRequest struct {
	InventoryID int64      `json:"inventory_id"`
	ProductID   int64      `json:"product_id"`
	Type        string     `json:"type"`
	Quantity    int        `json:"quantity"`
	Direction   string     `json:"direction,omitempty"` // "IN" | "OUT"
	Reason      string     `json:"reason,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Status      string     `json:"status,omitempty"`
}

// UpdateTransactionRequest body para PUT /api/transactions/:id.
// Solo metadatos correctivos; cantidad, stocks y tipo son inmutables y
// cualquier otro campo enviado se ignora.
type UpdateTransactionRequest struct {
	Reason *string `json:"reason"`
	Status *string `json:"status"`
	UserID *int64  `json:"user_id"`
}
