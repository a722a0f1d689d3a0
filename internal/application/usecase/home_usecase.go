package usecase

import (
	"context"
	"fmt"

	"github.com/nph-platform/casas-api/internal/application/dto"
	"github.com/nph-platform/casas-api/internal/domain"
	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/nph-platform/casas-api/internal/domain/repository"
)

// HomeUseCase administra la tabla de referencia de hogares. Es un registro
// plano: no participa del libro de stock.
type HomeUseCase struct {
	homeRepo repository.HomeRepository
}

// NewHomeUseCase construye el caso de uso.
func NewHomeUseCase(homeRepo repository.HomeRepository) *HomeUseCase {
	return &HomeUseCase{homeRepo: homeRepo}
}

// Create valida y persiste un hogar nuevo.
func (uc *HomeUseCase) Create(ctx context.Context, in dto.CreateHomeRequest) (*entity.Home, error) {
	if in.Names == "" {
		return nil, fmt.Errorf("%w: names es obligatorio", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	if !entity.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: status debe ser A o I", domain.ErrInvalidInput)
	}
	home := &entity.Home{Names: in.Names, Address: in.Address, Status: status}
	if err := uc.homeRepo.Create(home); err != nil {
		return nil, err
	}
	return home, nil
}

// Update modifica nombre y dirección (merge parcial).
func (uc *HomeUseCase) Update(ctx context.Context, id int64, in dto.UpdateHomeRequest) (*entity.Home, error) {
	home, err := uc.getExisting(id)
	if err != nil {
		return nil, err
	}
	if in.Names != nil && *in.Names != "" {
		home.Names = *in.Names
	}
	if in.Address != nil {
		home.Address = *in.Address
	}
	if err := uc.homeRepo.Update(home); err != nil {
		return nil, err
	}
	return home, nil
}

// Deactivate marca el hogar como inactivo. Idempotente.
func (uc *HomeUseCase) Deactivate(ctx context.Context, id int64) error {
	home, err := uc.getExisting(id)
	if err != nil {
		return err
	}
	if home.Status == entity.StatusInactive {
		return nil
	}
	home.Status = entity.StatusInactive
	return uc.homeRepo.Update(home)
}

// Restore marca el hogar como activo. Idempotente.
func (uc *HomeUseCase) Restore(ctx context.Context, id int64) (*entity.Home, error) {
	home, err := uc.getExisting(id)
	if err != nil {
		return nil, err
	}
	if home.Status != entity.StatusActive {
		home.Status = entity.StatusActive
		if err := uc.homeRepo.Update(home); err != nil {
			return nil, err
		}
	}
	return home, nil
}

// GetByID devuelve el hogar o ErrNotFound.
func (uc *HomeUseCase) GetByID(ctx context.Context, id int64) (*entity.Home, error) {
	return uc.getExisting(id)
}

func (uc *HomeUseCase) ListAll(ctx context.Context) ([]*entity.Home, error) {
	return uc.homeRepo.ListAll()
}

func (uc *HomeUseCase) ListActive(ctx context.Context) ([]*entity.Home, error) {
	return uc.homeRepo.ListByStatus(entity.StatusActive)
}

func (uc *HomeUseCase) ListInactive(ctx context.Context) ([]*entity.Home, error) {
	return uc.homeRepo.ListByStatus(entity.StatusInactive)
}

func (uc *HomeUseCase) getExisting(id int64) (*entity.Home, error) {
	home, err := uc.homeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return nil, fmt.Errorf("hogar %d: %w", id, domain.ErrNotFound)
	}
	return home, nil
}
