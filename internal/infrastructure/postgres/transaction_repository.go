package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/nph-platform/casas-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

const transactionColumns = `id_transaction, inventory_id, product_id, type, quantity,
	previous_stock, new_stock, reason, date, user_id, status, consumption_id, reference`

// TransactionRepo implementación del log de transacciones sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la transacción y asigna el id generado por la BD.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	query := `
		INSERT INTO transactions (inventory_id, product_id, type, quantity, previous_stock,
			new_stock, reason, date, user_id, status, consumption_id, reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id_transaction`
	userID := (*int64)(nil)
	if tx.UserID != 0 {
		userID = &tx.UserID
	}
	err := r.q.QueryRow(context.Background(), query,
		tx.InventoryID, tx.ProductID, tx.Type, tx.Quantity, tx.PreviousStock,
		tx.NewStock, tx.Reason, tx.Date, userID, tx.Status, tx.ConsumptionID, tx.Reference,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por id; nil si no existe.
func (r *TransactionRepo) GetByID(id int64) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id_transaction = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// UpdateMetadata persiste solo reason, status y user_id. El resto de columnas
// queda fuera del UPDATE a propósito: inmutabilidad numérica a nivel de SQL.
func (r *TransactionRepo) UpdateMetadata(tx *entity.Transaction) error {
	query := `UPDATE transactions SET reason = $2, status = $3, user_id = $4 WHERE id_transaction = $1`
	userID := (*int64)(nil)
	if tx.UserID != 0 {
		userID = &tx.UserID
	}
	_, err := r.q.Exec(context.Background(), query, tx.ID, tx.Reason, tx.Status, userID)
	if err != nil {
		return fmt.Errorf("update transaction metadata: %w", err)
	}
	return nil
}

// ListAll lista todas las transacciones, más recientes primero.
func (r *TransactionRepo) ListAll() ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date DESC`
	return r.list(query)
}

// ListByInventory lista las transacciones de un inventario, más recientes primero.
func (r *TransactionRepo) ListByInventory(inventoryID int64) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE inventory_id = $1 ORDER BY date DESC`
	return r.list(query, inventoryID)
}

// ListByProduct lista las transacciones de un producto, más recientes primero.
func (r *TransactionRepo) ListByProduct(productID int64) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE product_id = $1 ORDER BY date DESC`
	return r.list(query, productID)
}

// ListByType lista las transacciones de un tipo, más recientes primero.
func (r *TransactionRepo) ListByType(txType string) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE type = $1 ORDER BY date DESC`
	return r.list(query, txType)
}

// ListByStatus lista las transacciones con el estado dado, más recientes primero.
func (r *TransactionRepo) ListByStatus(status string) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = $1 ORDER BY date DESC`
	return r.list(query, status)
}

// SumActiveByInventory suma con signo las cantidades activas del inventario:
// ENTRADA y AJUSTE con new_stock >= previous_stock suman, el resto resta.
func (r *TransactionRepo) SumActiveByInventory(inventoryID int64) (int, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE
				WHEN type = 'ENTRADA' THEN quantity
				WHEN type = 'AJUSTE' AND new_stock >= previous_stock THEN quantity
				ELSE -quantity
			END
		), 0)
		FROM transactions WHERE inventory_id = $1 AND status = 'A'`
	var sum int
	err := r.q.QueryRow(context.Background(), query, inventoryID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum active transactions: %w", err)
	}
	return sum, nil
}

func (r *TransactionRepo) list(query string, args ...any) ([]*entity.Transaction, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var tx entity.Transaction
	var userID *int64
	var reason *string
	err := row.Scan(
		&tx.ID, &tx.InventoryID, &tx.ProductID, &tx.Type, &tx.Quantity,
		&tx.PreviousStock, &tx.NewStock, &reason, &tx.Date, &userID,
		&tx.Status, &tx.ConsumptionID, &tx.Reference,
	)
	if err != nil {
		return nil, err
	}
	if reason != nil {
		tx.Reason = *reason
	}
	if userID != nil {
		tx.UserID = *userID
	}
	return &tx, nil
}
