package dto

import "github.com/shopspring/decimal"

// RecordConsumptionRequest body para POST /api/consumption.
// Si inventory_id viene informado, el consumo descuenta stock: se registra
// una transacción SALIDA en la misma operación y ambas quedan enlazadas.
type RecordConsumptionRequest struct {
	Date        string          `json:"date"` // yyyy-MM-dd, nunca futura
	HomeID      int64           `json:"id_home"`
	ProductID   int64           `json:"product_id"`
	Names       string          `json:"names,omitempty"`
	Quantity    int             `json:"quantity"`
	Weight      decimal.Decimal `json:"weight"`
	Price       decimal.Decimal `json:"price"`
	SaleValue   decimal.Decimal `json:"salevalue"`
	InventoryID *int64          `json:"inventory_id,omitempty"`
	Reason      string          `json:"reason,omitempty"`
}

// UpdateConsumptionRequest body para PUT /api/consumption/:id.
// Merge parcial; nunca toca inventario ni transacciones ya enlazadas.
type UpdateConsumptionRequest struct {
	Date      *string          `json:"date"`
	HomeID    *int64           `json:"id_home"`
	ProductID *int64           `json:"product_id"`
	Names     *string          `json:"names"`
	Quantity  *int             `json:"quantity"`
	Weight    *decimal.Decimal `json:"weight"`
	Price     *decimal.Decimal `json:"price"`
	SaleValue *decimal.Decimal `json:"salevalue"`
}

// ProductDTO respuesta del catálogo externo de productos.
type ProductDTO struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
}
