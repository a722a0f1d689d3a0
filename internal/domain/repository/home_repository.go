package repository

import "github.com/nph-platform/casas-api/internal/domain/entity"

// HomeRepository define el puerto de persistencia para Home.
type HomeRepository interface {
	Create(h *entity.Home) error
	GetByID(id int64) (*entity.Home, error)
	Update(h *entity.Home) error
	ListAll() ([]*entity.Home, error)
	ListByStatus(status string) ([]*entity.Home, error)
}
