// Package memory implementa los repositorios sobre estructuras en memoria.
// Sirve para STORE_DRIVER=memory (demo, desarrollo local) y para los tests de casos de uso.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

type state struct {
	products     map[string]*entity.Product
	parts        map[string]*entity.Part
	bom          []*entity.BOMLine
	stations     []entity.StationUsage
	plans        map[int64]*entity.ProductionPlan
	reservations []*entity.InventoryReservation
	receipts     []*entity.ScheduledReceipt
	inventory    map[string]*entity.Inventory
	transactions []*entity.InventoryTransaction

	nextPlanID        int64
	nextReservationID int64
	nextReceiptID     int64
	nextBOMID         int64
	nextTxnID         int64
}

func newState() *state {
	return &state{
		products:          map[string]*entity.Product{},
		parts:             map[string]*entity.Part{},
		plans:             map[int64]*entity.ProductionPlan{},
		inventory:         map[string]*entity.Inventory{},
		nextPlanID:        1,
		nextReservationID: 1,
		nextReceiptID:     1,
		nextBOMID:         1,
		nextTxnID:         1,
	}
}

// clone copia profunda: la transacción trabaja sobre la copia y solo se publica en Commit.
func (s *state) clone() *state {
	c := &state{
		products:          make(map[string]*entity.Product, len(s.products)),
		parts:             make(map[string]*entity.Part, len(s.parts)),
		bom:               make([]*entity.BOMLine, 0, len(s.bom)),
		stations:          append([]entity.StationUsage(nil), s.stations...),
		plans:             make(map[int64]*entity.ProductionPlan, len(s.plans)),
		reservations:      make([]*entity.InventoryReservation, 0, len(s.reservations)),
		receipts:          make([]*entity.ScheduledReceipt, 0, len(s.receipts)),
		inventory:         make(map[string]*entity.Inventory, len(s.inventory)),
		transactions:      make([]*entity.InventoryTransaction, 0, len(s.transactions)),
		nextPlanID:        s.nextPlanID,
		nextReservationID: s.nextReservationID,
		nextReceiptID:     s.nextReceiptID,
		nextBOMID:         s.nextBOMID,
		nextTxnID:         s.nextTxnID,
	}
	for k, v := range s.products {
		c.products[k] = copyProduct(v)
	}
	for k, v := range s.parts {
		c.parts[k] = copyPart(v)
	}
	for _, v := range s.bom {
		l := *v
		c.bom = append(c.bom, &l)
	}
	for k, v := range s.plans {
		c.plans[k] = copyPlan(v)
	}
	for _, v := range s.reservations {
		c.reservations = append(c.reservations, copyReservation(v))
	}
	for _, v := range s.receipts {
		r := *v
		c.receipts = append(c.receipts, &r)
	}
	for k, v := range s.inventory {
		c.inventory[k] = copyInventory(v)
	}
	for _, v := range s.transactions {
		c.transactions = append(c.transactions, copyTransaction(v))
	}
	return c
}

// Store base de datos en memoria. Las transacciones se serializan con txMu;
// las lecturas fuera de transacción ven siempre el último estado confirmado.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	st   *state
	now  func() time.Time
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// Ping siempre disponible; existe para que /health trate igual a ambos drivers.
func (s *Store) Ping(context.Context) error { return nil }

// Repositories devuelve repos sobre el estado confirmado (lecturas y escrituras sueltas).
func (s *Store) Repositories() repository.Repositories {
	return newRepositories(&session{store: s, now: s.now})
}

// TxRunner devuelve el runner transaccional del store.
func (s *Store) TxRunner() *TxRunner {
	return &TxRunner{store: s}
}

// TxRunner ejecuta fn sobre una copia del estado y la publica solo si fn devuelve nil.
type TxRunner struct {
	store *Store
}

// Run inicia una "transacción", ejecuta fn con repos atados a la copia y hace Commit o descarta.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	r.store.mu.RLock()
	work := r.store.st.clone()
	r.store.mu.RUnlock()

	if err := fn(newRepositories(&session{tx: work, now: r.store.now})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	r.store.mu.Lock()
	r.store.st = work
	r.store.mu.Unlock()
	return nil
}

// session resuelve sobre qué estado opera un repo: el confirmado (store) o la copia de una tx.
type session struct {
	store *Store
	tx    *state
	now   func() time.Time
}

func (s *session) read(fn func(st *state)) {
	if s.tx != nil {
		fn(s.tx)
		return
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	fn(s.store.st)
}

func (s *session) write(fn func(st *state)) {
	if s.tx != nil {
		fn(s.tx)
		return
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	fn(s.store.st)
}

func newRepositories(s *session) repository.Repositories {
	return repository.Repositories{
		Products:     &ProductRepo{s: s},
		Parts:        &PartRepo{s: s},
		BOM:          &BOMRepo{s: s},
		Stations:     &StationRepo{s: s},
		Plans:        &PlanRepo{s: s},
		Reservations: &ReservationRepo{s: s},
		Receipts:     &ReceiptRepo{s: s},
		Inventory:    &InventoryRepo{s: s},
		Transactions: &TransactionRepo{s: s},
	}
}

// --- Carga de datos maestros (seed y tests) ---

// AddProduct registra un producto activo.
func (s *Store) AddProduct(productCode, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.st.products[productCode] = &entity.Product{ProductCode: productCode, Name: name, IsActive: true, CreatedAt: now, UpdatedAt: now}
}

// AddPart registra o reemplaza una pieza del maestro.
func (s *Store) AddPart(p entity.Part) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.parts[p.PartCode] = copyPart(&p)
}

// AddBOMLine agrega una línea activa al BOM de productCode.
func (s *Store) AddBOMLine(productCode, partCode string, quantity decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.st.bom = append(s.st.bom, &entity.BOMLine{
		ID: s.st.nextBOMID, ProductCode: productCode, PartCode: partCode,
		Quantity: quantity, IsActive: true, CreatedAt: now, UpdatedAt: now,
	})
	s.st.nextBOMID++
}

// DeactivateBOMLines desactiva todas las líneas de productCode que usan partCode.
func (s *Store) DeactivateBOMLines(productCode, partCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.st.bom {
		if l.ProductCode == productCode && l.PartCode == partCode {
			l.IsActive = false
		}
	}
}

// AddStationUsage agrega el uso de una pieza en una estación.
func (s *Store) AddStationUsage(u entity.StationUsage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.stations = append(s.st.stations, u)
}

// SetStock fija current_stock de la pieza.
func (s *Store) SetStock(partCode string, currentStock decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv := s.st.inventoryRow(partCode)
	inv.CurrentStock = currentStock
	inv.UpdatedAt = s.now()
}

// AddScheduledReceipt registra una recepción programada y devuelve su ID.
func (s *Store) AddScheduledReceipt(r entity.ScheduledReceipt) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.st.nextReceiptID
	s.st.nextReceiptID++
	s.st.receipts = append(s.st.receipts, &r)
	return r.ID
}

// PutPlan inserta el plan tal cual (sin reservas). Si ID es cero asigna uno.
func (s *Store) PutPlan(p entity.ProductionPlan) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.st.nextPlanID
	}
	if p.ID >= s.st.nextPlanID {
		s.st.nextPlanID = p.ID + 1
	}
	s.st.plans[p.ID] = copyPlan(&p)
	return p.ID
}

// PutReservation inserta una reserva directamente y actualiza reserved_stock.
func (s *Store) PutReservation(r entity.InventoryReservation) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.st.nextReservationID
	s.st.nextReservationID++
	s.st.reservations = append(s.st.reservations, copyReservation(&r))
	s.st.refreshReserved([]string{r.PartCode}, s.now())
	return r.ID
}

// inventoryRow devuelve la fila de inventario, creándola en cero si no existe.
func (st *state) inventoryRow(partCode string) *entity.Inventory {
	inv, ok := st.inventory[partCode]
	if !ok {
		inv = &entity.Inventory{PartCode: partCode, CurrentStock: decimal.Zero, ReservedStock: decimal.Zero}
		st.inventory[partCode] = inv
	}
	return inv
}

func (st *state) refreshReserved(partCodes []string, now time.Time) {
	for _, code := range partCodes {
		sum := decimal.Zero
		for _, r := range st.reservations {
			if r.PartCode == code {
				sum = sum.Add(r.ReservedQuantity)
			}
		}
		inv := st.inventoryRow(code)
		inv.ReservedStock = sum
		inv.UpdatedAt = now
	}
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyPart(p *entity.Part) *entity.Part {
	c := *p
	return &c
}

func copyPlan(p *entity.ProductionPlan) *entity.ProductionPlan {
	c := *p
	if p.ActualQuantity != nil {
		v := *p.ActualQuantity
		c.ActualQuantity = &v
	}
	if p.StartedAt != nil {
		v := *p.StartedAt
		c.StartedAt = &v
	}
	if p.CompletedAt != nil {
		v := *p.CompletedAt
		c.CompletedAt = &v
	}
	return &c
}

func copyReservation(r *entity.InventoryReservation) *entity.InventoryReservation {
	c := *r
	return &c
}

func copyInventory(i *entity.Inventory) *entity.Inventory {
	c := *i
	return &c
}

func copyTransaction(t *entity.InventoryTransaction) *entity.InventoryTransaction {
	c := *t
	return &c
}
