package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Consumption es el reporte de uso de un hogar (tabla consumption). Referencia
// un Home y un producto del catálogo externo; su fecha nunca es futura.
// Se inactiva/restaura de forma independiente a la transacción que lo respaldó.
type Consumption struct {
	ID        int64
	Date      time.Time // solo fecha (sin hora)
	HomeID    int64
	ProductID int64
	Names     string // nombre para mostrar, puede venir del catálogo externo
	Quantity  int
	Weight    decimal.Decimal
	Price     decimal.Decimal
	SaleValue decimal.Decimal
	Status    string
}
