package repository

import (
	"time"

	"github.com/nph-platform/casas-api/internal/domain/entity"
)

// ConsumptionRepository define el puerto de persistencia para Consumption.
type ConsumptionRepository interface {
	Create(c *entity.Consumption) error
	GetByID(id int64) (*entity.Consumption, error)
	Update(c *entity.Consumption) error
	ListAll() ([]*entity.Consumption, error)
	ListByStatus(status string) ([]*entity.Consumption, error)
	// ListByDateRange devuelve los consumos con fecha en [from, to].
	// status vacío = sin filtro de estado.
	ListByDateRange(from, to time.Time, status string) ([]*entity.Consumption, error)
}
