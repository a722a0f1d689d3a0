package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/nph-platform/casas-api/internal/domain/repository"
)

var _ repository.HomeRepository = (*HomeRepo)(nil)

// HomeRepo implementación de HomeRepository sobre PostgreSQL.
type HomeRepo struct {
	q Querier
}

// NewHomeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHomeRepository(q Querier) *HomeRepo {
	return &HomeRepo{q: q}
}

// Create inserta el hogar y asigna el id generado por la BD.
func (r *HomeRepo) Create(h *entity.Home) error {
	query := `INSERT INTO home (names, address, status) VALUES ($1, $2, $3) RETURNING id_home`
	err := r.q.QueryRow(context.Background(), query, h.Names, h.Address, h.Status).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("create home: %w", err)
	}
	return nil
}

// GetByID obtiene el hogar por id; nil si no existe.
func (r *HomeRepo) GetByID(id int64) (*entity.Home, error) {
	query := `SELECT id_home, names, address, status FROM home WHERE id_home = $1`
	var h entity.Home
	err := r.q.QueryRow(context.Background(), query, id).Scan(&h.ID, &h.Names, &h.Address, &h.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get home: %w", err)
	}
	return &h, nil
}

// Update persiste los campos mutables del hogar.
func (r *HomeRepo) Update(h *entity.Home) error {
	query := `UPDATE home SET names = $2, address = $3, status = $4 WHERE id_home = $1`
	_, err := r.q.Exec(context.Background(), query, h.ID, h.Names, h.Address, h.Status)
	if err != nil {
		return fmt.Errorf("update home: %w", err)
	}
	return nil
}

// ListAll lista todos los hogares.
func (r *HomeRepo) ListAll() ([]*entity.Home, error) {
	return r.list(`SELECT id_home, names, address, status FROM home ORDER BY id_home`)
}

// ListByStatus lista los hogares con el estado dado.
func (r *HomeRepo) ListByStatus(status string) ([]*entity.Home, error) {
	return r.list(`SELECT id_home, names, address, status FROM home WHERE status = $1 ORDER BY id_home`, status)
}

func (r *HomeRepo) list(query string, args ...any) ([]*entity.Home, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list homes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Home
	for rows.Next() {
		var h entity.Home
		if err := rows.Scan(&h.ID, &h.Names, &h.Address, &h.Status); err != nil {
			return nil, fmt.Errorf("scan home: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
