package consumption

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nph-platform/casas-api/internal/application/dto"
	"github.com/nph-platform/casas-api/internal/application/ledger"
	"github.com/nph-platform/casas-api/internal/domain"
	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/nph-platform/casas-api/internal/domain/repository"
	"github.com/nph-platform/casas-api/pkg/logger"
)

// Formato de fecha de los consumos (sin hora), igual que la API original.
const dateLayout = "2006-01-02"

// CatalogClient es el catálogo externo de productos (solo lectura).
// Colaborador inyectado y sin estado; puede ser nil si no hay catálogo
// configurado.
type CatalogClient interface {
	GetProduct(ctx context.Context, productID int64) (*dto.ProductDTO, error)
}

// ConsumptionUseCase registra y administra los reportes de consumo de los
// hogares. Un alta puede, opcionalmente, descontar stock: en ese caso el
// consumo y su transacción SALIDA se escriben en una sola transacción de BD.
type ConsumptionUseCase struct {
	consRepo repository.ConsumptionRepository
	txRunner ledger.TxRunner
	recorder *ledger.RecordTransactionUseCase
	catalog  CatalogClient
	log      *logger.Logger
}

// NewConsumptionUseCase construye el caso de uso. catalog puede ser nil.
func NewConsumptionUseCase(
	consRepo repository.ConsumptionRepository,
	txRunner ledger.TxRunner,
	recorder *ledger.RecordTransactionUseCase,
	catalog CatalogClient,
	log *logger.Logger,
) *ConsumptionUseCase {
	return &ConsumptionUseCase{
		consRepo: consRepo,
		txRunner: txRunner,
		recorder: recorder,
		catalog:  catalog,
		log:      log,
	}
}

// Record valida y persiste un consumo. La fecha nunca puede ser futura.
// El nombre para mostrar se enriquece desde el catálogo externo si está
// disponible; una falla del catálogo no bloquea el alta. Si el request trae
// inventory_id, el stock se descuenta con una SALIDA enlazada y, si no hay
// stock suficiente, no se persiste nada.
func (uc *ConsumptionUseCase) Record(ctx context.Context, userID int64, in dto.RecordConsumptionRequest) (*entity.Consumption, error) {
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if in.HomeID <= 0 {
		return nil, fmt.Errorf("%w: id_home es obligatorio", domain.ErrInvalidInput)
	}
	if in.ProductID <= 0 {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if in.InventoryID != nil && in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser mayor que 0 para descontar stock", domain.ErrInvalidInput)
	}

	cons := &entity.Consumption{
		Date:      date,
		HomeID:    in.HomeID,
		ProductID: in.ProductID,
		Names:     in.Names,
		Quantity:  in.Quantity,
		Weight:    in.Weight,
		Price:     in.Price,
		SaleValue: in.SaleValue,
		Status:    entity.StatusActive,
	}
	uc.enrichNames(ctx, cons)

	if in.InventoryID == nil {
		if err := uc.consRepo.Create(cons); err != nil {
			return nil, err
		}
		return cons, nil
	}

	// Alta con descuento de stock: consumo + SALIDA en una sola tx de BD.
	reason := in.Reason
	if reason == "" {
		reason = fmt.Sprintf("consumo del hogar %d", in.HomeID)
	}
	for attempt := 0; ; attempt++ {
		err = uc.txRunner.RunWithConsumption(ctx, func(
			invRepo repository.InventoryRepository,
			txRepo repository.TransactionRepository,
			consRepo repository.ConsumptionRepository,
		) error {
			if err := consRepo.Create(cons); err != nil {
				return err
			}
			_, err := uc.recorder.RecordInTx(invRepo, txRepo, ledger.MovementInput{
				InventoryID:   *in.InventoryID,
				ProductID:     in.ProductID,
				Type:          entity.TypeSalida,
				Quantity:      in.Quantity,
				Reason:        reason,
				UserID:        userID,
				ConsumptionID: &cons.ID,
			})
			return err
		})
		if errors.Is(err, domain.ErrConflict) && attempt < 2 {
			cons.ID = 0 // el insert anterior hizo rollback
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}
	return cons, nil
}

// enrichNames completa el nombre para mostrar desde el catálogo externo.
// Best-effort: cualquier falla se registra y el alta continúa.
func (uc *ConsumptionUseCase) enrichNames(ctx context.Context, cons *entity.Consumption) {
	if uc.catalog == nil || cons.Names != "" {
		return
	}
	product, err := uc.catalog.GetProduct(ctx, cons.ProductID)
	if err != nil {
		uc.log.Warn().Err(err).
			Int64("product_id", cons.ProductID).
			Msg("catálogo de productos no disponible, consumo sin enriquecer")
		return
	}
	cons.Names = product.Name
}

// Update aplica un merge parcial sobre el registro. Nunca toca el inventario
// ni la transacción ya enlazada: es una corrección puramente documental.
func (uc *ConsumptionUseCase) Update(ctx context.Context, id int64, in dto.UpdateConsumptionRequest) (*entity.Consumption, error) {
	cons, err := uc.getExisting(id)
	if err != nil {
		return nil, err
	}
	if in.Date != nil {
		date, err := parseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		cons.Date = date
	}
	if in.HomeID != nil && *in.HomeID > 0 {
		cons.HomeID = *in.HomeID
	}
	if in.ProductID != nil && *in.ProductID > 0 {
		cons.ProductID = *in.ProductID
	}
	if in.Names != nil {
		cons.Names = *in.Names
	}
	if in.Quantity != nil && *in.Quantity > 0 {
		cons.Quantity = *in.Quantity
	}
	if in.Weight != nil {
		cons.Weight = *in.Weight
	}
	if in.Price != nil {
		cons.Price = *in.Price
	}
	if in.SaleValue != nil {
		cons.SaleValue = *in.SaleValue
	}
	if err := uc.consRepo.Update(cons); err != nil {
		return nil, err
	}
	return cons, nil
}

// Deactivate marca el consumo como inactivo. No revierte el movimiento de
// stock que lo respaldó. Idempotente.
func (uc *ConsumptionUseCase) Deactivate(ctx context.Context, id int64) error {
	cons, err := uc.getExisting(id)
	if err != nil {
		return err
	}
	if cons.Status == entity.StatusInactive {
		return nil
	}
	cons.Status = entity.StatusInactive
	return uc.consRepo.Update(cons)
}

// Restore marca el consumo como activo. Idempotente.
func (uc *ConsumptionUseCase) Restore(ctx context.Context, id int64) (*entity.Consumption, error) {
	cons, err := uc.getExisting(id)
	if err != nil {
		return nil, err
	}
	if cons.Status != entity.StatusActive {
		cons.Status = entity.StatusActive
		if err := uc.consRepo.Update(cons); err != nil {
			return nil, err
		}
	}
	return cons, nil
}

// GetByID devuelve el consumo o ErrNotFound.
func (uc *ConsumptionUseCase) GetByID(ctx context.Context, id int64) (*entity.Consumption, error) {
	return uc.getExisting(id)
}

func (uc *ConsumptionUseCase) ListAll(ctx context.Context) ([]*entity.Consumption, error) {
	return uc.consRepo.ListAll()
}

func (uc *ConsumptionUseCase) ListActive(ctx context.Context) ([]*entity.Consumption, error) {
	return uc.consRepo.ListByStatus(entity.StatusActive)
}

func (uc *ConsumptionUseCase) ListInactive(ctx context.Context) ([]*entity.Consumption, error) {
	return uc.consRepo.ListByStatus(entity.StatusInactive)
}

// ListByDateRange devuelve los consumos con fecha en [from, to] inclusive.
func (uc *ConsumptionUseCase) ListByDateRange(ctx context.Context, from, to string, activeOnly bool) ([]*entity.Consumption, error) {
	start, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q, formato esperado yyyy-MM-dd", domain.ErrInvalidInput, to)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}
	status := ""
	if activeOnly {
		status = entity.StatusActive
	}
	return uc.consRepo.ListByDateRange(start, end, status)
}

// GetProduct consulta el catálogo externo. A diferencia del enriquecimiento,
// aquí la falla sí se reporta (ErrUpstreamUnavailable) porque el lookup es el
// resultado pedido.
func (uc *ConsumptionUseCase) GetProduct(ctx context.Context, productID int64) (*dto.ProductDTO, error) {
	if uc.catalog == nil {
		return nil, domain.ErrUpstreamUnavailable
	}
	product, err := uc.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return product, nil
}

func (uc *ConsumptionUseCase) getExisting(id int64) (*entity.Consumption, error) {
	cons, err := uc.consRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cons == nil {
		return nil, fmt.Errorf("consumo %d: %w", id, domain.ErrNotFound)
	}
	return cons, nil
}

// parseDate valida formato y rechaza fechas futuras.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date es obligatoria", domain.ErrInvalidInput)
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q, formato esperado yyyy-MM-dd", domain.ErrInvalidInput, s)
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if d.After(today) {
		return time.Time{}, fmt.Errorf("%w: la fecha del consumo no puede ser futura", domain.ErrInvalidInput)
	}
	return d, nil
}
