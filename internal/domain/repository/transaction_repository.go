package repository

import "github.com/nph-platform/casas-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia para el log de
// transacciones. Los listados devuelven siempre las más recientes primero.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id int64) (*entity.Transaction, error)
	// UpdateMetadata persiste solo reason, status y user_id. Los campos
	// numéricos y el tipo son inmutables a nivel de almacenamiento.
	UpdateMetadata(tx *entity.Transaction) error
	ListAll() ([]*entity.Transaction, error)
	ListByInventory(inventoryID int64) ([]*entity.Transaction, error)
	ListByProduct(productID int64) ([]*entity.Transaction, error)
	ListByType(txType string) ([]*entity.Transaction, error)
	ListByStatus(status string) ([]*entity.Transaction, error)
	// SumActiveByInventory devuelve la suma con signo de las cantidades de
	// transacciones activas del inventario (para conciliación).
	SumActiveByInventory(inventoryID int64) (int, error)
}
