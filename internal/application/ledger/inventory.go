package ledger

import (
	"context"
	"fmt"

	"github.com/nph-platform/casas-api/internal/application/dto"
	"github.com/nph-platform/casas-api/internal/domain"
	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/nph-platform/casas-api/internal/domain/repository"
)

// InventoryUseCase gestiona el ciclo de vida de las filas de inventario.
// Ninguna de estas operaciones toca el stock por la vía del log: los cambios
// de stock con respaldo contable van por RecordTransactionUseCase.
type InventoryUseCase struct {
	invRepo repository.InventoryRepository
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(invRepo repository.InventoryRepository) *InventoryUseCase {
	return &InventoryUseCase{invRepo: invRepo}
}

// Create valida y persiste una fila nueva. El id lo asigna la BD; el status
// por defecto es activo.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) (*entity.Inventory, error) {
	if in.ProductID == nil || *in.ProductID <= 0 {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if in.InitialStock == nil || *in.InitialStock < 0 {
		return nil, fmt.Errorf("%w: initial_stock debe ser un número no negativo", domain.ErrInvalidInput)
	}
	if in.CurrentStock == nil || *in.CurrentStock < 0 {
		return nil, fmt.Errorf("%w: current_stock debe ser un número no negativo", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	if !entity.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: status debe ser A o I", domain.ErrInvalidInput)
	}

	inv := &entity.Inventory{
		ProductID:    *in.ProductID,
		InitialStock: *in.InitialStock,
		CurrentStock: *in.CurrentStock,
		Status:       status,
	}
	if err := uc.invRepo.Create(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Update aplica un merge parcial: solo los campos presentes y válidos
// sobrescriben; los ausentes o inválidos se ignoran sin error.
func (uc *InventoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateInventoryRequest) (*entity.Inventory, error) {
	inv, err := uc.getExisting(id)
	if err != nil {
		return nil, err
	}
	if in.ProductID != nil && *in.ProductID > 0 {
		inv.ProductID = *in.ProductID
	}
	if in.InitialStock != nil && *in.InitialStock >= 0 {
		inv.InitialStock = *in.InitialStock
	}
	if in.CurrentStock != nil && *in.CurrentStock >= 0 {
		inv.CurrentStock = *in.CurrentStock
	}
	if in.Status != nil && entity.IsValidStatus(*in.Status) {
		inv.Status = *in.Status
	}
	if err := uc.invRepo.Update(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Deactivate marca la fila como inactiva. Idempotente.
func (uc *InventoryUseCase) Deactivate(ctx context.Context, id int64) error {
	inv, err := uc.getExisting(id)
	if err != nil {
		return err
	}
	if inv.Status == entity.StatusInactive {
		return nil
	}
	inv.Status = entity.StatusInactive
	return uc.invRepo.Update(inv)
}

// Restore marca la fila como activa. Idempotente.
func (uc *InventoryUseCase) Restore(ctx context.Context, id int64) (*entity.Inventory, error) {
	inv, err := uc.getExisting(id)
	if err != nil {
		return nil, err
	}
	if inv.Status != entity.StatusActive {
		inv.Status = entity.StatusActive
		if err := uc.invRepo.Update(inv); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// GetByID devuelve la fila o ErrNotFound.
func (uc *InventoryUseCase) GetByID(ctx context.Context, id int64) (*entity.Inventory, error) {
	return uc.getExisting(id)
}

func (uc *InventoryUseCase) ListAll(ctx context.Context) ([]*entity.Inventory, error) {
	return uc.invRepo.ListAll()
}

func (uc *InventoryUseCase) ListActive(ctx context.Context) ([]*entity.Inventory, error) {
	return uc.invRepo.ListByStatus(entity.StatusActive)
}

func (uc *InventoryUseCase) ListInactive(ctx context.Context) ([]*entity.Inventory, error) {
	return uc.invRepo.ListByStatus(entity.StatusInactive)
}

func (uc *InventoryUseCase) getExisting(id int64) (*entity.Inventory, error) {
	inv, err := uc.invRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("inventario %d: %w", id, domain.ErrNotFound)
	}
	return inv, nil
}
