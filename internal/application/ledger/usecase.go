package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nph-platform/casas-api/internal/application/dto"
	"github.com/nph-platform/casas-api/internal/domain"
	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/nph-platform/casas-api/internal/domain/repository"
	"github.com/nph-platform/casas-api/pkg/logger"
)

// Reintentos ante conflicto de serialización antes de devolver ErrConflict.
const maxConflictRetries = 3

// RecordTransactionUseCase es el motor del libro de stock: registra movimientos
// (ENTRADA, SALIDA, AJUSTE, DAÑO) de forma transaccional con bloqueo de fila
// (SELECT FOR UPDATE) sobre el inventario, y expone las consultas y
// correcciones de metadatos sobre el log.
type RecordTransactionUseCase struct {
	txRunner TxRunner
	invRepo  repository.InventoryRepository  // lecturas fuera de tx
	txRepo   repository.TransactionRepository // lecturas fuera de tx
	log      *logger.Logger
}

// NewRecordTransactionUseCase construye el caso de uso.
func NewRecordTransactionUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	log *logger.Logger,
) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		txRunner: txRunner,
		invRepo:  invRepo,
		txRepo:   txRepo,
		log:      log,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
// Direction es obligatorio solo cuando Type es AJUSTE ("IN" u "OUT").
type MovementInput struct {
	InventoryID   int64
	ProductID     int64
	Type          string
	Quantity      int
	Direction     string
	Reason        string
	UserID        int64
	Date          *time.Time
	Status        string
	ConsumptionID *int64
	Reference     string // id de correlación; se genera si viene vacío
}

// Record valida el movimiento y lo aplica dentro de una transacción de BD:
// bloquea la fila del inventario, calcula la foto previous/new, inserta la
// transacción y persiste el nuevo stock. Un conflicto de serialización se
// reintenta hasta maxConflictRetries veces antes de devolver ErrConflict.
func (uc *RecordTransactionUseCase) Record(ctx context.Context, input MovementInput) (*entity.Transaction, error) {
	if err := validateMovement(input); err != nil {
		return nil, err
	}

	var created *entity.Transaction
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = uc.txRunner.Run(ctx, func(
			invRepo repository.InventoryRepository,
			txRepo repository.TransactionRepository,
		) error {
			tx, txErr := uc.RecordInTx(invRepo, txRepo, input)
			if txErr != nil {
				return txErr
			}
			created = tx
			return nil
		})
		if !errors.Is(err, domain.ErrConflict) {
			break
		}
		uc.log.Warn().
			Int64("inventory_id", input.InventoryID).
			Int("attempt", attempt+1).
			Msg("conflicto de serialización sobre inventario, reintentando")
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RecordInTx aplica el movimiento usando los repositorios proporcionados
// (misma transacción del caller). Lo usa Record y también el alta de consumo
// con descuento de stock, que necesita insertar consumo y SALIDA en una sola tx.
func (uc *RecordTransactionUseCase) RecordInTx(
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	input MovementInput,
) (*entity.Transaction, error) {
	// Bloquea la fila del inventario: sección crítica por inventory_id.
	inv, err := invRepo.GetForUpdate(input.InventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("inventario %d: %w", input.InventoryID, domain.ErrNotFound)
	}

	delta, err := signedDelta(input.Type, input.Direction, input.Quantity)
	if err != nil {
		return nil, err
	}

	previous := inv.CurrentStock
	newStock := previous + delta
	if newStock < 0 {
		// Se rechaza sin mutación parcial: la tx hace rollback completo.
		return nil, fmt.Errorf("%w: producto %d tiene %d y se solicitan %d",
			domain.ErrInsufficientStock, input.ProductID, previous, input.Quantity)
	}

	now := time.Now()
	date := now
	if input.Date != nil {
		date = *input.Date
	}
	status := input.Status
	if status == "" {
		status = entity.StatusActive
	}
	reference := input.Reference
	if reference == "" {
		reference = uuid.New().String()
	}

	tx := &entity.Transaction{
		InventoryID:   input.InventoryID,
		ProductID:     input.ProductID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		PreviousStock: previous,
		NewStock:      newStock,
		Reason:        input.Reason,
		Date:          date,
		UserID:        input.UserID,
		Status:        status,
		ConsumptionID: input.ConsumptionID,
		Reference:     reference,
	}
	if err := txRepo.Create(tx); err != nil {
		return nil, err
	}
	if err := invRepo.UpdateStock(inv.ID, newStock); err != nil {
		return nil, err
	}
	return tx, nil
}

// Update corrige solo los metadatos de una transacción existente: reason,
// status y user_id. Cantidad, stocks y tipo nunca se revisan.
func (uc *RecordTransactionUseCase) Update(ctx context.Context, id int64, in dto.UpdateTransactionRequest) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("transacción %d: %w", id, domain.ErrNotFound)
	}
	if in.Reason != nil {
		tx.Reason = *in.Reason
	}
	if in.Status != nil && entity.IsValidStatus(*in.Status) {
		tx.Status = *in.Status
	}
	if in.UserID != nil {
		tx.UserID = *in.UserID
	}
	if err := uc.txRepo.UpdateMetadata(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Deactivate marca la transacción como inactiva. No revierte el efecto sobre
// el stock: el movimiento sigue siendo históricamente cierto, solo queda
// fuera del saldo activo. Idempotente.
func (uc *RecordTransactionUseCase) Deactivate(ctx context.Context, id int64) error {
	return uc.setStatus(id, entity.StatusInactive)
}

// Restore marca la transacción como activa de nuevo. Tampoco reaplica stock.
// Idempotente.
func (uc *RecordTransactionUseCase) Restore(ctx context.Context, id int64) (*entity.Transaction, error) {
	if err := uc.setStatus(id, entity.StatusActive); err != nil {
		return nil, err
	}
	return uc.txRepo.GetByID(id)
}

func (uc *RecordTransactionUseCase) setStatus(id int64, status string) error {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tx == nil {
		return fmt.Errorf("transacción %d: %w", id, domain.ErrNotFound)
	}
	if tx.Status == status {
		return nil
	}
	tx.Status = status
	return uc.txRepo.UpdateMetadata(tx)
}

// GetByID devuelve la transacción o ErrNotFound.
func (uc *RecordTransactionUseCase) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	tx, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("transacción %d: %w", id, domain.ErrNotFound)
	}
	return tx, nil
}

// Listados, siempre más recientes primero.
func (uc *RecordTransactionUseCase) ListAll(ctx context.Context) ([]*entity.Transaction, error) {
	return uc.txRepo.ListAll()
}

func (uc *RecordTransactionUseCase) ListByInventory(ctx context.Context, inventoryID int64) ([]*entity.Transaction, error) {
	return uc.txRepo.ListByInventory(inventoryID)
}

func (uc *RecordTransactionUseCase) ListByProduct(ctx context.Context, productID int64) ([]*entity.Transaction, error) {
	return uc.txRepo.ListByProduct(productID)
}

func (uc *RecordTransactionUseCase) ListByType(ctx context.Context, txType string) ([]*entity.Transaction, error) {
	if !entity.IsValidTransactionType(txType) {
		return nil, domain.ErrInvalidMovementType
	}
	return uc.txRepo.ListByType(txType)
}

func (uc *RecordTransactionUseCase) ListActive(ctx context.Context) ([]*entity.Transaction, error) {
	return uc.txRepo.ListByStatus(entity.StatusActive)
}

// Reconcile verifica que current_stock - initial_stock coincida con la suma
// con signo de las transacciones activas del inventario.
func (uc *RecordTransactionUseCase) Reconcile(ctx context.Context, inventoryID int64) (*dto.ReconciliationResponse, error) {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("inventario %d: %w", inventoryID, domain.ErrNotFound)
	}
	delta, err := uc.txRepo.SumActiveByInventory(inventoryID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationResponse{
		InventoryID:  inv.ID,
		InitialStock: inv.InitialStock,
		CurrentStock: inv.CurrentStock,
		ActiveDelta:  delta,
		Consistent:   inv.CurrentStock-inv.InitialStock == delta,
	}, nil
}

func validateMovement(input MovementInput) error {
	if input.InventoryID <= 0 {
		return fmt.Errorf("%w: inventory_id es obligatorio", domain.ErrInvalidInput)
	}
	if input.ProductID <= 0 {
		return fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if !entity.IsValidTransactionType(input.Type) {
		return domain.ErrInvalidMovementType
	}
	if input.Quantity <= 0 {
		return fmt.Errorf("%w: quantity debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if input.Type == entity.TypeAjuste && input.Direction != entity.AdjustIn && input.Direction != entity.AdjustOut {
		return fmt.Errorf("%w: AJUSTE requiere direction IN u OUT", domain.ErrInvalidInput)
	}
	if input.Status != "" && !entity.IsValidStatus(input.Status) {
		return fmt.Errorf("%w: status debe ser A o I", domain.ErrInvalidInput)
	}
	return nil
}

// signedDelta traduce tipo (y dirección en AJUSTE) a delta con signo.
func signedDelta(txType, direction string, quantity int) (int, error) {
	switch txType {
	case entity.TypeEntrada:
		return quantity, nil
	case entity.TypeSalida, entity.TypeDano:
		return -quantity, nil
	case entity.TypeAjuste:
		switch direction {
		case entity.AdjustIn:
			return quantity, nil
		case entity.AdjustOut:
			return -quantity, nil
		}
		return 0, fmt.Errorf("%w: AJUSTE requiere direction IN u OUT", domain.ErrInvalidInput)
	}
	return 0, domain.ErrInvalidMovementType
}
