package ledger

import (
	"context"

	"github.com/nph-platform/casas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre la actualización
// del inventario y la inserción de su transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
	) error) error

	// RunWithConsumption añade el repositorio de consumos a la misma tx
	// (para el alta de consumo que descuenta stock, todo-o-nada).
	RunWithConsumption(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		txRepo repository.TransactionRepository,
		consRepo repository.ConsumptionRepository,
	) error) error
}
