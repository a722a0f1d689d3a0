package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nph-platform/casas-api/internal/application/ledger"
	"github.com/nph-platform/casas-api/internal/domain"
	"github.com/nph-platform/casas-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Las fallas
// de serialización/deadlock se traducen a domain.ErrConflict para que el caso
// de uso pueda reintentarlas.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewInventoryRepository(q), NewTransactionRepository(q))
	})
}

// RunWithConsumption igual que Run, con el repositorio de consumos en la misma tx.
func (r *TxRunner) RunWithConsumption(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	consRepo repository.ConsumptionRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewInventoryRepository(q), NewTransactionRepository(q), NewConsumptionRepository(q))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", domain.ErrConflict, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
