package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/nph-platform/casas-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (tabla inventory_consumption; usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Create inserta la fila y asigna el id generado por la BD.
func (r *InventoryRepo) Create(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory_consumption (product_id, initial_stock, current_stock, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id_inventory`
	err := r.q.QueryRow(context.Background(), query,
		inv.ProductID, inv.InitialStock, inv.CurrentStock, inv.Status,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("create inventory: %w", err)
	}
	return nil
}

// GetByID obtiene la fila por id; nil si no existe.
func (r *InventoryRepo) GetByID(id int64) (*entity.Inventory, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE). Solo tiene
// efecto dentro de una transacción.
func (r *InventoryRepo) GetForUpdate(id int64) (*entity.Inventory, error) {
	return r.get(id, true)
}

func (r *InventoryRepo) get(id int64, forUpdate bool) (*entity.Inventory, error) {
	query := `
		SELECT id_inventory, product_id, initial_stock, current_stock, status
		FROM inventory_consumption WHERE id_inventory = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.ProductID, &inv.InitialStock, &inv.CurrentStock, &inv.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}

// Update persiste todos los campos mutables de la fila.
func (r *InventoryRepo) Update(inv *entity.Inventory) error {
	query := `
		UPDATE inventory_consumption
		SET product_id = $2, initial_stock = $3, current_stock = $4, status = $5
		WHERE id_inventory = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ProductID, inv.InitialStock, inv.CurrentStock, inv.Status,
	)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// UpdateStock persiste únicamente current_stock.
func (r *InventoryRepo) UpdateStock(id int64, currentStock int) error {
	query := `UPDATE inventory_consumption SET current_stock = $2 WHERE id_inventory = $1`
	_, err := r.q.Exec(context.Background(), query, id, currentStock)
	if err != nil {
		return fmt.Errorf("update inventory stock: %w", err)
	}
	return nil
}

// ListAll lista todas las filas.
func (r *InventoryRepo) ListAll() ([]*entity.Inventory, error) {
	query := `
		SELECT id_inventory, product_id, initial_stock, current_stock, status
		FROM inventory_consumption ORDER BY id_inventory`
	return r.list(query)
}

// ListByStatus lista las filas con el estado dado.
func (r *InventoryRepo) ListByStatus(status string) ([]*entity.Inventory, error) {
	query := `
		SELECT id_inventory, product_id, initial_stock, current_stock, status
		FROM inventory_consumption WHERE status = $1 ORDER BY id_inventory`
	return r.list(query, status)
}

func (r *InventoryRepo) list(query string, args ...any) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.InitialStock, &inv.CurrentStock, &inv.Status); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}
