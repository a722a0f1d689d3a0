package repository

import "github.com/nph-platform/casas-api/internal/domain/entity"

// InventoryRepository define el puerto de persistencia para Inventory.
type InventoryRepository interface {
	// Create asigna el ID en la inserción (el ID del caller se ignora).
	Create(inv *entity.Inventory) error
	GetByID(id int64) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(id int64) (*entity.Inventory, error)
	Update(inv *entity.Inventory) error
	// UpdateStock persiste únicamente current_stock; usado por el motor de
	// movimientos para no pisar otros campos.
	UpdateStock(id int64, currentStock int) error
	ListAll() ([]*entity.Inventory, error)
	ListByStatus(status string) ([]*entity.Inventory, error)
}
