package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/nph-platform/casas-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

const consumptionColumns = `id_consumption, date, id_home, product_id, names,
	quantity, weight, price, salevalue, status`

// ConsumptionRepo implementación de ConsumptionRepository sobre PostgreSQL
// (usable con pool o tx).
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// Create inserta el consumo y asigna el id generado por la BD.
func (r *ConsumptionRepo) Create(c *entity.Consumption) error {
	query := `
		INSERT INTO consumption (date, id_home, product_id, names, quantity, weight, price, salevalue, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id_consumption`
	err := r.q.QueryRow(context.Background(), query,
		c.Date, c.HomeID, c.ProductID, c.Names, c.Quantity, c.Weight, c.Price, c.SaleValue, c.Status,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create consumption: %w", err)
	}
	return nil
}

// GetByID obtiene el consumo por id; nil si no existe.
func (r *ConsumptionRepo) GetByID(id int64) (*entity.Consumption, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption WHERE id_consumption = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	c, err := scanConsumption(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumption: %w", err)
	}
	return c, nil
}

// Update persiste todos los campos mutables del registro.
func (r *ConsumptionRepo) Update(c *entity.Consumption) error {
	query := `
		UPDATE consumption
		SET date = $2, id_home = $3, product_id = $4, names = $5, quantity = $6,
			weight = $7, price = $8, salevalue = $9, status = $10
		WHERE id_consumption = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Date, c.HomeID, c.ProductID, c.Names, c.Quantity, c.Weight, c.Price, c.SaleValue, c.Status,
	)
	if err != nil {
		return fmt.Errorf("update consumption: %w", err)
	}
	return nil
}

// ListAll lista todos los consumos, más recientes primero.
func (r *ConsumptionRepo) ListAll() ([]*entity.Consumption, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption ORDER BY date DESC, id_consumption DESC`
	return r.list(query)
}

// ListByStatus lista los consumos con el estado dado.
func (r *ConsumptionRepo) ListByStatus(status string) ([]*entity.Consumption, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption WHERE status = $1 ORDER BY date DESC, id_consumption DESC`
	return r.list(query, status)
}

// ListByDateRange lista los consumos con fecha en [from, to] inclusive.
// status vacío = sin filtro de estado.
func (r *ConsumptionRepo) ListByDateRange(from, to time.Time, status string) ([]*entity.Consumption, error) {
	query := `SELECT ` + consumptionColumns + ` FROM consumption WHERE date >= $1 AND date <= $2`
	args := []any{from, to}
	if status != "" {
		query += ` AND status = $3`
		args = append(args, status)
	}
	query += ` ORDER BY date DESC, id_consumption DESC`
	return r.list(query, args...)
}

func (r *ConsumptionRepo) list(query string, args ...any) ([]*entity.Consumption, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consumption: %w", err)
	}
	defer rows.Close()
	var list []*entity.Consumption
	for rows.Next() {
		c, err := scanConsumption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanConsumption(row pgx.Row) (*entity.Consumption, error) {
	var c entity.Consumption
	var names *string
	err := row.Scan(
		&c.ID, &c.Date, &c.HomeID, &c.ProductID, &names,
		&c.Quantity, &c.Weight, &c.Price, &c.SaleValue, &c.Status,
	)
	if err != nil {
		return nil, err
	}
	if names != nil {
		c.Names = *names
	}
	return &c, nil
}
