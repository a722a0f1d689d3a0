package entity

import "time"

// Tipos de movimiento del libro de inventario.
const (
	TypeEntrada = "ENTRADA" // ingreso de stock
	TypeSalida  = "SALIDA"  // consumo o retiro
	TypeAjuste  = "AJUSTE"  // corrección manual, requiere dirección explícita
	TypeDano    = "DAÑO"    // merma por producto dañado
)

// Dirección de un AJUSTE. El tipo por sí solo no define el signo.
const (
	AdjustIn  = "IN"
	AdjustOut = "OUT"
)

// IsValidTransactionType indica si el tipo está en la enumeración permitida.
func IsValidTransactionType(t string) bool {
	return t == TypeEntrada || t == TypeSalida || t == TypeAjuste || t == TypeDano
}

// Transaction es el registro inmutable de un movimiento de stock, con la foto
// del stock antes y después. Una vez creado solo Reason, Status y UserID son
// corregibles; los campos numéricos y el tipo nunca se revisan.
type Transaction struct {
	ID            int64
	InventoryID   int64
	ProductID     int64
	Type          string
	Quantity      int // siempre > 0; el signo lo da el tipo (y la dirección en AJUSTE)
	PreviousStock int
	NewStock      int
	Reason        string
	Date          time.Time
	UserID        int64 // 0 = sin actor registrado
	Status        string
	ConsumptionID *int64 // consumo que originó el movimiento, si aplica
	Reference     string // id de correlación de la petición que lo generó
}

// SignedQuantity devuelve la cantidad con el signo que aplicó sobre el stock.
// Para AJUSTE el signo se recupera de la foto previous/new.
func (t *Transaction) SignedQuantity() int {
	switch t.Type {
	case TypeEntrada:
		return t.Quantity
	case TypeSalida, TypeDano:
		return -t.Quantity
	case TypeAjuste:
		if t.NewStock >= t.PreviousStock {
			return t.Quantity
		}
		return -t.Quantity
	}
	return 0
}
