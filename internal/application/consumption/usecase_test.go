package consumption_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconsumption "github.com/nph-platform/casas-api/internal/application/consumption"
	"github.com/nph-platform/casas-api/internal/application/dto"
	"github.com/nph-platform/casas-api/internal/application/ledger"
	"github.com/nph-platform/casas-api/internal/domain"
	"github.com/nph-platform/casas-api/internal/domain/entity"
	"github.com/nph-platform/casas-api/internal/domain/repository"
	"github.com/nph-platform/casas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeConsumptionRepo struct {
	items  map[int64]*entity.Consumption
	nextID int64
}

func newFakeConsumptionRepo() *fakeConsumptionRepo {
	return &fakeConsumptionRepo{items: map[int64]*entity.Consumption{}}
}

func (r *fakeConsumptionRepo) Create(c *entity.Consumption) error {
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeConsumptionRepo) GetByID(id int64) (*entity.Consumption, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConsumptionRepo) Update(c *entity.Consumption) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeConsumptionRepo) ListAll() ([]*entity.Consumption, error) {
	out := make([]*entity.Consumption, 0, len(r.items))
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeConsumptionRepo) ListByStatus(status string) ([]*entity.Consumption, error) {
	var out []*entity.Consumption
	for _, c := range r.items {
		if c.Status == status {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeConsumptionRepo) ListByDateRange(from, to time.Time, status string) ([]*entity.Consumption, error) {
	var out []*entity.Consumption
	for _, c := range r.items {
		if c.Date.Before(from) || c.Date.After(to) {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type fakeInventoryRepo struct {
	items map[int64]*entity.Inventory
}

func (r *fakeInventoryRepo) Create(inv *entity.Inventory) error { return nil }

func (r *fakeInventoryRepo) GetByID(id int64) (*entity.Inventory, error) {
	inv, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInventoryRepo) GetForUpdate(id int64) (*entity.Inventory, error) {
	return r.GetByID(id)
}

func (r *fakeInventoryRepo) Update(inv *entity.Inventory) error { return nil }

func (r *fakeInventoryRepo) UpdateStock(id int64, currentStock int) error {
	r.items[id].CurrentStock = currentStock
	return nil
}

func (r *fakeInventoryRepo) ListAll() ([]*entity.Inventory, error) { return nil, nil }

func (r *fakeInventoryRepo) ListByStatus(status string) ([]*entity.Inventory, error) {
	return nil, nil
}

type fakeTransactionRepo struct {
	items  []*entity.Transaction
	nextID int64
}

func (r *fakeTransactionRepo) Create(tx *entity.Transaction) error {
	r.nextID++
	tx.ID = r.nextID
	cp := *tx
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeTransactionRepo) GetByID(id int64) (*entity.Transaction, error) {
	for _, tx := range r.items {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) UpdateMetadata(tx *entity.Transaction) error { return nil }

func (r *fakeTransactionRepo) ListAll() ([]*entity.Transaction, error) { return r.items, nil }

func (r *fakeTransactionRepo) ListByInventory(int64) ([]*entity.Transaction, error) { return nil, nil }

func (r *fakeTransactionRepo) ListByProduct(int64) ([]*entity.Transaction, error) { return nil, nil }

func (r *fakeTransactionRepo) ListByType(string) ([]*entity.Transaction, error) { return nil, nil }

func (r *fakeTransactionRepo) ListByStatus(string) ([]*entity.Transaction, error) { return nil, nil }

func (r *fakeTransactionRepo) SumActiveByInventory(int64) (int, error) { return 0, nil }

// fakeTxRunner sin transaccionalidad real: limpia el consumo creado cuando el
// fn falla, para imitar el rollback de una tx de verdad.
type fakeTxRunner struct {
	inv  *fakeInventoryRepo
	txs  *fakeTransactionRepo
	cons *fakeConsumptionRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
) error) error {
	return fn(r.inv, r.txs)
}

func (r *fakeTxRunner) RunWithConsumption(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	consRepo repository.ConsumptionRepository,
) error) error {
	before := r.cons.nextID
	err := fn(r.inv, r.txs, r.cons)
	if err != nil {
		for id := before + 1; id <= r.cons.nextID; id++ {
			delete(r.cons.items, id)
		}
	}
	return err
}

type fakeCatalog struct {
	product *dto.ProductDTO
	err     error
	calls   int
}

func (c *fakeCatalog) GetProduct(ctx context.Context, productID int64) (*dto.ProductDTO, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.product, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	consRepo *fakeConsumptionRepo
	invRepo  *fakeInventoryRepo
	txRepo   *fakeTransactionRepo
	uc       *appconsumption.ConsumptionUseCase
}

func newFixture(t *testing.T, catalog appconsumption.CatalogClient, stock int) *fixture {
	t.Helper()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	consRepo := newFakeConsumptionRepo()
	invRepo := &fakeInventoryRepo{items: map[int64]*entity.Inventory{
		1: {ID: 1, ProductID: 77, InitialStock: stock, CurrentStock: stock, Status: entity.StatusActive},
	}}
	txRepo := &fakeTransactionRepo{}
	runner := &fakeTxRunner{inv: invRepo, txs: txRepo, cons: consRepo}
	recorder := ledger.NewRecordTransactionUseCase(runner, invRepo, txRepo, log)
	uc := appconsumption.NewConsumptionUseCase(consRepo, runner, recorder, catalog, log)
	return &fixture{consRepo: consRepo, invRepo: invRepo, txRepo: txRepo, uc: uc}
}

func yesterday() string {
	return time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
}

func baseRequest() dto.RecordConsumptionRequest {
	return dto.RecordConsumptionRequest{
		Date:      yesterday(),
		HomeID:    3,
		ProductID: 77,
		Quantity:  2,
		Weight:    decimal.NewFromFloat(1.5),
		Price:     decimal.NewFromFloat(3200),
		SaleValue: decimal.NewFromFloat(4000),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Record
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_AltaSimpleSinInventario(t *testing.T) {
	f := newFixture(t, nil, 10)

	cons, err := f.uc.Record(context.Background(), 9, baseRequest())
	require.NoError(t, err)

	assert.NotZero(t, cons.ID)
	assert.Equal(t, entity.StatusActive, cons.Status)
	list, _ := f.txRepo.ListAll()
	assert.Empty(t, list, "sin inventory_id no debe registrarse movimiento de stock")
}

func TestRecord_FechaFutura_Rechazada(t *testing.T) {
	f := newFixture(t, nil, 10)

	in := baseRequest()
	in.Date = time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	_, err := f.uc.Record(context.Background(), 9, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un consumo no puede reportarse a futuro")
}

func TestRecord_FechaInvalida_Rechazada(t *testing.T) {
	f := newFixture(t, nil, 10)

	in := baseRequest()
	in.Date = "14/03/2026"
	_, err := f.uc.Record(context.Background(), 9, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in.Date = ""
	_, err = f.uc.Record(context.Background(), 9, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Alta con inventory_id: el consumo y su SALIDA se registran juntos y la
// transacción queda enlazada al consumo.
func TestRecord_ConInventario_DescuentaStockYEnlaza(t *testing.T) {
	f := newFixture(t, nil, 10)

	in := baseRequest()
	invID := int64(1)
	in.InventoryID = &invID
	cons, err := f.uc.Record(context.Background(), 9, in)
	require.NoError(t, err)

	inv, _ := f.invRepo.GetByID(1)
	assert.Equal(t, 8, inv.CurrentStock, "el stock debe bajar por la SALIDA enlazada")

	list, _ := f.txRepo.ListAll()
	require.Len(t, list, 1)
	tx := list[0]
	assert.Equal(t, entity.TypeSalida, tx.Type)
	require.NotNil(t, tx.ConsumptionID)
	assert.Equal(t, cons.ID, *tx.ConsumptionID, "la transacción debe referenciar el consumo")
	assert.Equal(t, int64(9), tx.UserID)
}

// Si el stock no alcanza, no queda ni el consumo ni la transacción.
func TestRecord_ConInventarioSinStock_NoPersisteNada(t *testing.T) {
	f := newFixture(t, nil, 1)

	in := baseRequest()
	invID := int64(1)
	in.InventoryID = &invID
	in.Quantity = 5
	_, err := f.uc.Record(context.Background(), 9, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	all, _ := f.consRepo.ListAll()
	assert.Empty(t, all, "el consumo no debe sobrevivir al rollback")
	txs, _ := f.txRepo.ListAll()
	assert.Empty(t, txs)

	inv, _ := f.invRepo.GetByID(1)
	assert.Equal(t, 1, inv.CurrentStock)
}

func TestRecord_ConInventarioCantidadCero_Rechazado(t *testing.T) {
	f := newFixture(t, nil, 10)

	in := baseRequest()
	invID := int64(1)
	in.InventoryID = &invID
	in.Quantity = 0
	_, err := f.uc.Record(context.Background(), 9, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests catálogo externo
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_EnriqueceNombreDesdeCatalogo(t *testing.T) {
	cat := &fakeCatalog{product: &dto.ProductDTO{ID: 77, Name: "Arroz blanco 500g"}}
	f := newFixture(t, cat, 10)

	cons, err := f.uc.Record(context.Background(), 9, baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "Arroz blanco 500g", cons.Names)
	assert.Equal(t, 1, cat.calls)
}

func TestRecord_NombreExplicitoNoConsultaCatalogo(t *testing.T) {
	cat := &fakeCatalog{product: &dto.ProductDTO{ID: 77, Name: "Arroz blanco 500g"}}
	f := newFixture(t, cat, 10)

	in := baseRequest()
	in.Names = "Arroz integral"
	cons, err := f.uc.Record(context.Background(), 9, in)
	require.NoError(t, err)
	assert.Equal(t, "Arroz integral", cons.Names, "el nombre del caller tiene prioridad")
	assert.Zero(t, cat.calls)
}

// Una caída del catálogo no bloquea el alta: el consumo queda sin enriquecer.
func TestRecord_CatalogoCaido_AltaContinua(t *testing.T) {
	cat := &fakeCatalog{err: fmt.Errorf("connection refused")}
	f := newFixture(t, cat, 10)

	cons, err := f.uc.Record(context.Background(), 9, baseRequest())
	require.NoError(t, err, "el catálogo es best-effort en el alta")
	assert.Empty(t, cons.Names)
}

func TestGetProduct_CatalogoCaido_ReportaUpstream(t *testing.T) {
	cat := &fakeCatalog{err: fmt.Errorf("connection refused")}
	f := newFixture(t, cat, 10)

	_, err := f.uc.GetProduct(context.Background(), 77)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable,
		"en el lookup directo la falla sí se reporta")
}

func TestGetProduct_SinCatalogoConfigurado(t *testing.T) {
	f := newFixture(t, nil, 10)

	_, err := f.uc.GetProduct(context.Background(), 77)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ciclo de vida y rango de fechas
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_MergeDocumental(t *testing.T) {
	f := newFixture(t, nil, 10)

	created, err := f.uc.Record(context.Background(), 9, baseRequest())
	require.NoError(t, err)

	names := "Lentejas"
	qty := 4
	updated, err := f.uc.Update(context.Background(), created.ID, dto.UpdateConsumptionRequest{
		Names:    &names,
		Quantity: &qty,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lentejas", updated.Names)
	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, created.HomeID, updated.HomeID, "los campos ausentes se conservan")
}

func TestDeactivateYRestore_Idempotentes(t *testing.T) {
	f := newFixture(t, nil, 10)

	created, err := f.uc.Record(context.Background(), 9, baseRequest())
	require.NoError(t, err)

	require.NoError(t, f.uc.Deactivate(context.Background(), created.ID))
	require.NoError(t, f.uc.Deactivate(context.Background(), created.ID))

	active, _ := f.uc.ListActive(context.Background())
	assert.Empty(t, active, "el consumo inactivo queda fuera del listado activo")

	restored, err := f.uc.Restore(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, restored.Status)
}

func TestDeactivate_NoDevuelveStock(t *testing.T) {
	f := newFixture(t, nil, 10)

	in := baseRequest()
	invID := int64(1)
	in.InventoryID = &invID
	created, err := f.uc.Record(context.Background(), 9, in)
	require.NoError(t, err)

	require.NoError(t, f.uc.Deactivate(context.Background(), created.ID))

	inv, _ := f.invRepo.GetByID(1)
	assert.Equal(t, 8, inv.CurrentStock, "inactivar el consumo no revierte la SALIDA")
}

func TestListByDateRange_InclusivoYFiltrado(t *testing.T) {
	f := newFixture(t, nil, 10)

	day := func(offset int) string {
		return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
	}
	for _, d := range []string{day(-5), day(-3), day(-1)} {
		in := baseRequest()
		in.Date = d
		_, err := f.uc.Record(context.Background(), 9, in)
		require.NoError(t, err)
	}

	list, err := f.uc.ListByDateRange(context.Background(), day(-3), day(-1), false)
	require.NoError(t, err)
	assert.Len(t, list, 2, "los extremos del rango son inclusivos")
}

func TestListByDateRange_RangoInvertido(t *testing.T) {
	f := newFixture(t, nil, 10)

	_, err := f.uc.ListByDateRange(context.Background(), yesterday(), "2020-01-01", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListByDateRange_ActiveOnlyExcluyeInactivos(t *testing.T) {
	f := newFixture(t, nil, 10)

	first, err := f.uc.Record(context.Background(), 9, baseRequest())
	require.NoError(t, err)
	_, err = f.uc.Record(context.Background(), 9, baseRequest())
	require.NoError(t, err)
	require.NoError(t, f.uc.Deactivate(context.Background(), first.ID))

	list, err := f.uc.ListByDateRange(context.Background(), "2020-01-01", yesterday(), true)
	require.NoError(t, err)
	assert.Len(t, list, 1, "activeOnly debe excluir los consumos inactivos")

	list, err = f.uc.ListByDateRange(context.Background(), "2020-01-01", yesterday(), false)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
