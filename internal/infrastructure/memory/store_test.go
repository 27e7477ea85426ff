package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTxRunner_CommitPublicaCambios(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var id int64
	err := store.TxRunner().Run(ctx, func(repos repository.Repositories) error {
		plan := &entity.ProductionPlan{ProductCode: "PR-001", PlannedQuantity: 5, Status: entity.PlanStatusPlanned, StartDate: day("2026-11-01")}
		if err := repos.Plans.Create(ctx, plan); err != nil {
			return err
		}
		id = plan.ID
		return nil
	})
	require.NoError(t, err)

	got, err := store.Repositories().Plans.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.PlannedQuantity)
}

func TestTxRunner_ErrorDescartaTodo(t *testing.T) {
	store := NewStore()
	store.SetStock("A", decimal.NewFromInt(10))
	ctx := context.Background()
	boom := errors.New("fallo a mitad")

	err := store.TxRunner().Run(ctx, func(repos repository.Repositories) error {
		require.NoError(t, repos.Inventory.SetCurrentStock(ctx, "A", decimal.NewFromInt(3)))
		require.NoError(t, repos.Plans.Create(ctx, &entity.ProductionPlan{ProductCode: "PR-001", PlannedQuantity: 1}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	stock, err := store.Repositories().Inventory.GetByParts(ctx, []string{"A"})
	require.NoError(t, err)
	assert.True(t, stock["A"].CurrentStock.Equal(decimal.NewFromInt(10)))

	plans, err := store.Repositories().Plans.List(ctx, repository.PlanFilter{})
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.TxRunner().Run(ctx, func(repository.Repositories) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestReservations_RefrescanReservedStock(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	repos := store.Repositories()

	require.NoError(t, repos.Reservations.CreateBatch(ctx, []*entity.InventoryReservation{
		{ProductionPlanID: 1, PartCode: "A", ReservedQuantity: decimal.NewFromInt(4)},
		{ProductionPlanID: 2, PartCode: "A", ReservedQuantity: decimal.NewFromInt(6)},
	}))
	require.NoError(t, repos.Inventory.RefreshReservedStock(ctx, []string{"A"}))

	inv, err := repos.Inventory.GetByParts(ctx, []string{"A"})
	require.NoError(t, err)
	assert.True(t, inv["A"].ReservedStock.Equal(decimal.NewFromInt(10)))

	deleted, err := repos.Reservations.DeleteByPlan(ctx, 1)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	require.NoError(t, repos.Inventory.RefreshReservedStock(ctx, []string{"A"}))

	sums, err := repos.Reservations.SumByParts(ctx, nil)
	require.NoError(t, err)
	assert.True(t, sums["A"].Equal(decimal.NewFromInt(6)))

	again, err := repos.Reservations.DeleteByPlan(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestReceipts_SumOutstandingRespetaFechaYEstado(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	requested := day("2026-11-05")
	scheduledEarly := day("2026-10-30")
	confirmed := decimal.NewFromInt(8)

	// Fecha solicitada después del inicio: no cuenta.
	store.AddScheduledReceipt(entity.ScheduledReceipt{PartCode: "A", OrderQuantity: decimal.NewFromInt(5), RequestedDate: &requested, Status: entity.ReceiptStatusAwaitingReply})
	// La fecha programada manda sobre la solicitada y la cantidad programada sobre la pedida.
	store.AddScheduledReceipt(entity.ScheduledReceipt{PartCode: "A", OrderQuantity: decimal.NewFromInt(10), ScheduledQuantity: &confirmed, RequestedDate: &requested, ScheduledDate: &scheduledEarly, Status: entity.ReceiptStatusScheduled})
	// Ya recibida: no cuenta.
	store.AddScheduledReceipt(entity.ScheduledReceipt{PartCode: "A", OrderQuantity: decimal.NewFromInt(100), ScheduledDate: &scheduledEarly, Status: entity.ReceiptStatusReceived})

	until := day("2026-11-01")
	sums, err := store.Repositories().Receipts.SumOutstanding(ctx, []string{"A"}, &until)
	require.NoError(t, err)
	assert.True(t, sums["A"].Equal(decimal.NewFromInt(8)), "got %s", sums["A"])

	all, err := store.Repositories().Receipts.SumOutstanding(ctx, nil, nil)
	require.NoError(t, err)
	assert.True(t, all["A"].Equal(decimal.NewFromInt(13)), "got %s", all["A"])
}

func TestBOM_OmiteLineasYPiezasInactivas(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	store.AddPart(entity.Part{PartCode: "A", IsActive: true})
	store.AddPart(entity.Part{PartCode: "B", IsActive: false})
	store.AddPart(entity.Part{PartCode: "C", IsActive: true})
	store.AddBOMLine("PR-001", "A", decimal.NewFromInt(2))
	store.AddBOMLine("PR-001", "B", decimal.NewFromInt(1))
	store.AddBOMLine("PR-001", "C", decimal.NewFromInt(3))
	store.DeactivateBOMLines("PR-001", "C")

	lines, err := store.Repositories().BOM.ListActiveLines(ctx, "PR-001")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "A", lines[0].PartCode)
}

func TestPlans_ListFiltraYPagina(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	store.PutPlan(entity.ProductionPlan{BuildingNo: "B1", ProductCode: "PR-001", PlannedQuantity: 1, Status: entity.PlanStatusPlanned, StartDate: day("2026-11-03")})
	store.PutPlan(entity.ProductionPlan{BuildingNo: "B1", ProductCode: "PR-002", PlannedQuantity: 1, Status: entity.PlanStatusCompleted, StartDate: day("2026-11-01")})
	store.PutPlan(entity.ProductionPlan{BuildingNo: "B2", ProductCode: "PR-001", PlannedQuantity: 1, Status: entity.PlanStatusPlanned, StartDate: day("2026-11-02")})

	repos := store.Repositories()
	b1, err := repos.Plans.List(ctx, repository.PlanFilter{BuildingNo: "B1"})
	require.NoError(t, err)
	require.Len(t, b1, 2)
	assert.Equal(t, "PR-002", b1[0].ProductCode, "ordenados por start_date")

	planned, err := repos.Plans.List(ctx, repository.PlanFilter{Status: entity.PlanStatusPlanned, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, planned, 1)
	assert.Equal(t, "B1", planned[0].BuildingNo)

	empty, err := repos.Plans.List(ctx, repository.PlanFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPlans_LecturasDevuelvenCopias(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	id := store.PutPlan(entity.ProductionPlan{ProductCode: "PR-001", PlannedQuantity: 5, Status: entity.PlanStatusPlanned})

	got, err := store.Repositories().Plans.GetByID(ctx, id)
	require.NoError(t, err)
	got.PlannedQuantity = 99

	again, err := store.Repositories().Plans.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, again.PlannedQuantity)
}

func TestSeedDemo_BOMCompleto(t *testing.T) {
	store := NewStore()
	SeedDemo(store)
	ctx := context.Background()

	lines, err := store.Repositories().BOM.ListActiveLines(ctx, "PR-001")
	require.NoError(t, err)
	assert.Len(t, lines, 3)

	parts, err := store.Repositories().Parts.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, parts, 4)
}
