package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository              = (*ProductRepo)(nil)
	_ repository.PartRepository                 = (*PartRepo)(nil)
	_ repository.BOMRepository                  = (*BOMRepo)(nil)
	_ repository.StationRepository              = (*StationRepo)(nil)
	_ repository.ProductionPlanRepository       = (*PlanRepo)(nil)
	_ repository.ReservationRepository          = (*ReservationRepo)(nil)
	_ repository.ScheduledReceiptRepository     = (*ReceiptRepo)(nil)
	_ repository.InventoryRepository            = (*InventoryRepo)(nil)
	_ repository.InventoryTransactionRepository = (*TransactionRepo)(nil)
)

func codeSet(codes []string) map[string]struct{} {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// inSet con set nil acepta cualquier código.
func inSet(set map[string]struct{}, code string) bool {
	if set == nil {
		return true
	}
	_, ok := set[code]
	return ok
}

// ProductRepo productos terminados.
type ProductRepo struct{ s *session }

func (r *ProductRepo) GetByCode(_ context.Context, productCode string) (*entity.Product, error) {
	var out *entity.Product
	r.s.read(func(st *state) {
		if p, ok := st.products[productCode]; ok {
			out = copyProduct(p)
		}
	})
	return out, nil
}

// PartRepo maestro de piezas.
type PartRepo struct{ s *session }

func (r *PartRepo) GetByCodes(_ context.Context, partCodes []string) (map[string]*entity.Part, error) {
	out := make(map[string]*entity.Part, len(partCodes))
	r.s.read(func(st *state) {
		for _, code := range partCodes {
			if p, ok := st.parts[code]; ok {
				out[code] = copyPart(p)
			}
		}
	})
	return out, nil
}

func (r *PartRepo) ListActive(_ context.Context) ([]*entity.Part, error) {
	out := make([]*entity.Part, 0)
	r.s.read(func(st *state) {
		for _, p := range st.parts {
			if p.IsActive {
				out = append(out, copyPart(p))
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].PartCode < out[j].PartCode })
	return out, nil
}

// BOMRepo líneas de BOM.
type BOMRepo struct{ s *session }

func (r *BOMRepo) ListActiveLines(_ context.Context, productCode string) ([]*entity.BOMLine, error) {
	out := make([]*entity.BOMLine, 0)
	r.s.read(func(st *state) {
		for _, l := range st.bom {
			if l.ProductCode != productCode || !l.IsActive {
				continue
			}
			if p, ok := st.parts[l.PartCode]; ok && p.IsActive {
				c := *l
				out = append(out, &c)
			}
		}
	})
	return out, nil
}

// StationRepo uso de piezas por estación.
type StationRepo struct{ s *session }

func (r *StationRepo) ListUsages(_ context.Context, productCode string) ([]*entity.StationUsage, error) {
	out := make([]*entity.StationUsage, 0)
	r.s.read(func(st *state) {
		for _, u := range st.stations {
			if u.ProductCode == productCode {
				c := u
				out = append(out, &c)
			}
		}
	})
	return out, nil
}

// PlanRepo planes de producción.
type PlanRepo struct{ s *session }

func (r *PlanRepo) Create(_ context.Context, plan *entity.ProductionPlan) error {
	r.s.write(func(st *state) {
		plan.ID = st.nextPlanID
		st.nextPlanID++
		st.plans[plan.ID] = copyPlan(plan)
	})
	return nil
}

func (r *PlanRepo) GetByID(_ context.Context, id int64) (*entity.ProductionPlan, error) {
	var out *entity.ProductionPlan
	r.s.read(func(st *state) {
		if p, ok := st.plans[id]; ok {
			out = copyPlan(p)
		}
	})
	return out, nil
}

// GetForUpdate en memoria el bloqueo lo da la serialización de transacciones.
func (r *PlanRepo) GetForUpdate(ctx context.Context, id int64) (*entity.ProductionPlan, error) {
	return r.GetByID(ctx, id)
}

func (r *PlanRepo) Update(_ context.Context, plan *entity.ProductionPlan) error {
	r.s.write(func(st *state) {
		if _, ok := st.plans[plan.ID]; ok {
			st.plans[plan.ID] = copyPlan(plan)
		}
	})
	return nil
}

func (r *PlanRepo) Delete(_ context.Context, id int64) (bool, error) {
	var found bool
	r.s.write(func(st *state) {
		if _, found = st.plans[id]; found {
			delete(st.plans, id)
		}
	})
	return found, nil
}

func (r *PlanRepo) List(_ context.Context, f repository.PlanFilter) ([]*entity.ProductionPlan, error) {
	out := make([]*entity.ProductionPlan, 0)
	r.s.read(func(st *state) {
		for _, p := range st.plans {
			if f.Status != "" && p.Status != f.Status {
				continue
			}
			if f.BuildingNo != "" && p.BuildingNo != f.BuildingNo {
				continue
			}
			if f.ProductCode != "" && p.ProductCode != f.ProductCode {
				continue
			}
			out = append(out, copyPlan(p))
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	if f.Offset >= len(out) {
		return []*entity.ProductionPlan{}, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// ReservationRepo reservas de inventario.
type ReservationRepo struct{ s *session }

func (r *ReservationRepo) CreateBatch(_ context.Context, reservations []*entity.InventoryReservation) error {
	r.s.write(func(st *state) {
		for _, res := range reservations {
			res.ID = st.nextReservationID
			st.nextReservationID++
			st.reservations = append(st.reservations, copyReservation(res))
		}
	})
	return nil
}

func (r *ReservationRepo) ListByPlan(_ context.Context, planID int64) ([]*entity.InventoryReservation, error) {
	out := make([]*entity.InventoryReservation, 0)
	r.s.read(func(st *state) {
		for _, res := range st.reservations {
			if res.ProductionPlanID == planID {
				out = append(out, copyReservation(res))
			}
		}
	})
	return out, nil
}

func (r *ReservationRepo) DeleteByPlan(_ context.Context, planID int64) ([]*entity.InventoryReservation, error) {
	deleted := make([]*entity.InventoryReservation, 0)
	r.s.write(func(st *state) {
		kept := st.reservations[:0]
		for _, res := range st.reservations {
			if res.ProductionPlanID == planID {
				deleted = append(deleted, copyReservation(res))
				continue
			}
			kept = append(kept, res)
		}
		st.reservations = kept
	})
	return deleted, nil
}

func (r *ReservationRepo) SumByParts(_ context.Context, partCodes []string) (map[string]decimal.Decimal, error) {
	set := codeSet(partCodes)
	out := make(map[string]decimal.Decimal)
	r.s.read(func(st *state) {
		for _, res := range st.reservations {
			if !inSet(set, res.PartCode) {
				continue
			}
			out[res.PartCode] = out[res.PartCode].Add(res.ReservedQuantity)
		}
	})
	return out, nil
}

// ReceiptRepo recepciones programadas.
type ReceiptRepo struct{ s *session }

func (r *ReceiptRepo) SumOutstanding(_ context.Context, partCodes []string, until *time.Time) (map[string]decimal.Decimal, error) {
	set := codeSet(partCodes)
	out := make(map[string]decimal.Decimal)
	r.s.read(func(st *state) {
		for _, rc := range st.receipts {
			if !rc.IsOutstanding() || !inSet(set, rc.PartCode) {
				continue
			}
			if until != nil {
				d := rc.ExpectedDate()
				if d == nil || d.After(*until) {
					continue
				}
			}
			out[rc.PartCode] = out[rc.PartCode].Add(rc.ExpectedQuantity())
		}
	})
	return out, nil
}

// InventoryRepo stock por pieza.
type InventoryRepo struct{ s *session }

func (r *InventoryRepo) GetByParts(_ context.Context, partCodes []string) (map[string]*entity.Inventory, error) {
	out := make(map[string]*entity.Inventory, len(partCodes))
	r.s.read(func(st *state) {
		for _, code := range partCodes {
			if inv, ok := st.inventory[code]; ok {
				out[code] = copyInventory(inv)
				continue
			}
			out[code] = &entity.Inventory{PartCode: code, CurrentStock: decimal.Zero, ReservedStock: decimal.Zero}
		}
	})
	return out, nil
}

// LockByParts crea las filas faltantes en cero; el bloqueo lo da la serialización de transacciones.
func (r *InventoryRepo) LockByParts(_ context.Context, partCodes []string) (map[string]*entity.Inventory, error) {
	out := make(map[string]*entity.Inventory, len(partCodes))
	r.s.write(func(st *state) {
		for _, code := range partCodes {
			out[code] = copyInventory(st.inventoryRow(code))
		}
	})
	return out, nil
}

func (r *InventoryRepo) SetCurrentStock(_ context.Context, partCode string, currentStock decimal.Decimal) error {
	r.s.write(func(st *state) {
		inv := st.inventoryRow(partCode)
		inv.CurrentStock = currentStock
		inv.UpdatedAt = r.s.now()
	})
	return nil
}

func (r *InventoryRepo) RefreshReservedStock(_ context.Context, partCodes []string) error {
	r.s.write(func(st *state) {
		st.refreshReserved(partCodes, r.s.now())
	})
	return nil
}

// TransactionRepo historial de movimientos de stock.
type TransactionRepo struct{ s *session }

func (r *TransactionRepo) Create(_ context.Context, txn *entity.InventoryTransaction) error {
	r.s.write(func(st *state) {
		txn.ID = st.nextTxnID
		st.nextTxnID++
		st.transactions = append(st.transactions, copyTransaction(txn))
	})
	return nil
}

func (r *TransactionRepo) ListByReference(_ context.Context, referenceType string, referenceID int64) ([]*entity.InventoryTransaction, error) {
	out := make([]*entity.InventoryTransaction, 0)
	r.s.read(func(st *state) {
		for _, t := range st.transactions {
			if t.ReferenceType == referenceType && t.ReferenceID == referenceID {
				out = append(out, copyTransaction(t))
			}
		}
	})
	return out, nil
}
