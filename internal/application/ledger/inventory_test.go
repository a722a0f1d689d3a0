package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nph-platform/casas-api/internal/application/dto"
	"github.com/nph-platform/casas-api/internal/application/ledger"
	"github.com/nph-platform/casas-api/internal/domain"
	"github.com/nph-platform/casas-api/internal/domain/entity"
)

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func TestInventoryCreate_AsignaIDYStatusPorDefecto(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	uc := ledger.NewInventoryUseCase(invRepo)

	inv, err := uc.Create(context.Background(), dto.CreateInventoryRequest{
		ProductID:    int64Ptr(12),
		InitialStock: intPtr(20),
		CurrentStock: intPtr(20),
	})
	require.NoError(t, err)

	assert.NotZero(t, inv.ID, "el id lo asigna la persistencia")
	assert.Equal(t, entity.StatusActive, inv.Status, "sin status explícito la fila nace activa")
}

func TestInventoryCreate_ValidaCampos(t *testing.T) {
	uc := ledger.NewInventoryUseCase(newFakeInventoryRepo())

	cases := []struct {
		name string
		in   dto.CreateInventoryRequest
	}{
		{"sin product_id", dto.CreateInventoryRequest{InitialStock: intPtr(1), CurrentStock: intPtr(1)}},
		{"sin initial_stock", dto.CreateInventoryRequest{ProductID: int64Ptr(1), CurrentStock: intPtr(1)}},
		{"initial_stock negativo", dto.CreateInventoryRequest{ProductID: int64Ptr(1), InitialStock: intPtr(-5), CurrentStock: intPtr(1)}},
		{"current_stock negativo", dto.CreateInventoryRequest{ProductID: int64Ptr(1), InitialStock: intPtr(1), CurrentStock: intPtr(-1)}},
		{"status desconocido", dto.CreateInventoryRequest{ProductID: int64Ptr(1), InitialStock: intPtr(1), CurrentStock: intPtr(1), Status: "X"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// El merge parcial ignora los campos ausentes o inválidos en lugar de fallar.
func TestInventoryUpdate_MergeParcial(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	uc := ledger.NewInventoryUseCase(invRepo)

	created, err := uc.Create(context.Background(), dto.CreateInventoryRequest{
		ProductID:    int64Ptr(12),
		InitialStock: intPtr(20),
		CurrentStock: intPtr(15),
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateInventoryRequest{
		ProductID:    int64Ptr(-3), // inválido, se ignora
		CurrentStock: intPtr(9),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(12), updated.ProductID, "un product_id inválido no sobrescribe")
	assert.Equal(t, 9, updated.CurrentStock)
	assert.Equal(t, 20, updated.InitialStock, "los campos ausentes se conservan")
}

func TestInventoryDeactivateYRestore_Idempotentes(t *testing.T) {
	invRepo := newFakeInventoryRepo()
	uc := ledger.NewInventoryUseCase(invRepo)

	created, err := uc.Create(context.Background(), dto.CreateInventoryRequest{
		ProductID:    int64Ptr(12),
		InitialStock: intPtr(5),
		CurrentStock: intPtr(5),
	})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate(context.Background(), created.ID))
	require.NoError(t, uc.Deactivate(context.Background(), created.ID))

	inactive, err := uc.ListInactive(context.Background())
	require.NoError(t, err)
	assert.Len(t, inactive, 1)
	active, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active, "la fila inactiva no aparece en el listado activo")

	restored, err := uc.Restore(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, restored.Status)
	assert.Equal(t, 5, restored.CurrentStock, "inactivar y restaurar no toca el stock")
}

func TestInventoryGetByID_Inexistente(t *testing.T) {
	uc := ledger.NewInventoryUseCase(newFakeInventoryRepo())

	_, err := uc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
