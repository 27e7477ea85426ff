package production

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jhoicas/produccion-api/internal/application/dto"
	"github.com/jhoicas/produccion-api/internal/domain"
	"github.com/jhoicas/produccion-api/internal/domain/entity"
	"github.com/jhoicas/produccion-api/internal/domain/planning"
	"github.com/jhoicas/produccion-api/internal/domain/repository"
)

const (
	maxBuildingNoLen = 50
	maxRemarksLen    = 500
)

// PlanUseCase ciclo de vida del plan de producción: 計画 → 生産中 → 完了, o 計画 → キャンセル.
// Cada mutación corre en una sola transacción junto con la reescritura de reservas.
type PlanUseCase struct {
	txRunner     TxRunner
	repos        repository.Repositories
	reservations *ReservationManager
	calculator   *SufficiencyCalculator
	log          zerolog.Logger
	now          func() time.Time
	newBatchID   func() string
}

// NewPlanUseCase construye el caso de uso. repos son los de lectura (fuera de transacción).
func NewPlanUseCase(txRunner TxRunner, repos repository.Repositories, log zerolog.Logger) *PlanUseCase {
	return &PlanUseCase{
		txRunner:     txRunner,
		repos:        repos,
		reservations: NewReservationManager(log),
		calculator:   NewSufficiencyCalculator(repos),
		log:          log.With().Str("component", "production_plan").Logger(),
		now:          time.Now,
		newBatchID:   newBatchID,
	}
}

// planInput PlanRequest ya normalizado y validado.
type planInput struct {
	BuildingNo      string
	ProductCode     string
	PlannedQuantity int
	StartDate       time.Time
	Status          string
	Remarks         string
}

// validatePlanRequest rechaza la entrada antes de abrir la transacción.
func validatePlanRequest(in dto.PlanRequest) (planInput, error) {
	out := planInput{
		BuildingNo:      planning.NormalizeCode(in.BuildingNo),
		ProductCode:     planning.NormalizeCode(in.ProductCode),
		PlannedQuantity: in.PlannedQuantity,
		Status:          planning.NormalizeCode(in.Status),
		Remarks:         in.Remarks,
	}
	if out.BuildingNo == "" {
		return out, domain.Validationf("building_no es requerido")
	}
	if utf8.RuneCountInString(out.BuildingNo) > maxBuildingNoLen {
		return out, domain.Validationf("building_no admite hasta %d caracteres", maxBuildingNoLen)
	}
	if out.ProductCode == "" {
		return out, domain.Validationf("product_code es requerido")
	}
	if out.PlannedQuantity <= 0 {
		return out, domain.Validationf("planned_quantity debe ser mayor que 0 (recibido %d)", out.PlannedQuantity)
	}
	start, err := planning.ParseDate(in.StartDate)
	if err != nil {
		return out, domain.Validationf("start_date debe tener formato YYYY-MM-DD (recibido %q)", in.StartDate)
	}
	out.StartDate = start
	if out.Status != "" && !planning.IsValidStatus(out.Status) {
		return out, domain.Validationf("status desconocido %q", out.Status)
	}
	if utf8.RuneCountInString(out.Remarks) > maxRemarksLen {
		return out, domain.Validationf("remarks admite hasta %d caracteres", maxRemarksLen)
	}
	return out, nil
}

func checkProduct(ctx context.Context, repos repository.Repositories, productCode string) error {
	product, err := repos.Products.GetByCode(ctx, productCode)
	if err != nil {
		return err
	}
	if product == nil || !product.IsActive {
		return domain.ErrProductNotFound
	}
	return nil
}

func loadPlanForUpdate(ctx context.Context, repos repository.Repositories, id int64) (*entity.ProductionPlan, error) {
	plan, err := repos.Plans.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}
	return plan, nil
}

// Create inserta el plan en 計画 y reserva el material de su BOM en la misma transacción.
// Un producto sin BOM crea el plan sin reservas y lo señala con BOMWarning=NO_BOM_DATA.
func (uc *PlanUseCase) Create(ctx context.Context, actor string, in dto.PlanRequest) (*dto.PlanMutationResponse, error) {
	input, err := validatePlanRequest(in)
	if err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = entity.PlanStatusPlanned
	}
	if input.Status != entity.PlanStatusPlanned {
		return nil, domain.Validationf("un plan nuevo debe iniciar en %s", entity.PlanStatusPlanned)
	}

	var out *dto.PlanMutationResponse
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if err := checkProduct(ctx, repos, input.ProductCode); err != nil {
			return err
		}
		now := uc.now()
		plan := &entity.ProductionPlan{
			BuildingNo:      input.BuildingNo,
			ProductCode:     input.ProductCode,
			PlannedQuantity: input.PlannedQuantity,
			StartDate:       input.StartDate,
			Status:          input.Status,
			Remarks:         input.Remarks,
			CreatedBy:       actor,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := repos.Plans.Create(ctx, plan); err != nil {
			return err
		}
		var created []*entity.InventoryReservation
		if planning.CarriesReservations(plan.Status) {
			created, err = uc.reservations.CreateReservations(ctx, repos, plan.ID, plan.ProductCode, plan.PlannedQuantity, actor)
			if err != nil {
				return err
			}
		}
		out = &dto.PlanMutationResponse{
			Plan:         toPlanResponse(plan, created),
			Reservations: dto.ReservationSyncResponse{Action: ReservationActionCreated, Created: len(created)},
		}
		if len(created) == 0 {
			out.BOMWarning = dto.WarningNoBOMData
		}
		return nil
	})
	if err != nil {
		uc.logFailure(err, 0, "create")
		return nil, err
	}
	uc.log.Info().
		Int64("plan_id", out.Plan.ID).
		Str("product_code", out.Plan.ProductCode).
		Int("planned_quantity", out.Plan.PlannedQuantity).
		Int("reservations_created", out.Reservations.Created).
		Str("actor", actor).
		Msg("plan de producción creado")
	return out, nil
}

// Update edita un plan no terminal y reescribe sus reservas (borrar y recrear) en la misma transacción.
// En 生産中 el material ya fue consumido: producto y cantidad quedan fijos y no se vuelve a reservar.
func (uc *PlanUseCase) Update(ctx context.Context, id int64, actor string, in dto.PlanRequest) (*dto.PlanMutationResponse, error) {
	input, err := validatePlanRequest(in)
	if err != nil {
		return nil, err
	}

	var out *dto.PlanMutationResponse
	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		plan, err := loadPlanForUpdate(ctx, repos, id)
		if err != nil {
			return err
		}
		next := input.Status
		if next == "" {
			next = plan.Status
		}
		if err := planning.CheckEdit(plan.Status, next); err != nil {
			return err
		}
		materialChanged := plan.ProductCode != input.ProductCode || plan.PlannedQuantity != input.PlannedQuantity
		if plan.Status == entity.PlanStatusInProduction && materialChanged {
			return domain.Validationf("el plan %d ya consumió material: product_code y planned_quantity no se pueden modificar", plan.ID)
		}
		if plan.ProductCode != input.ProductCode {
			if err := checkProduct(ctx, repos, input.ProductCode); err != nil {
				return err
			}
		}

		plan.BuildingNo = input.BuildingNo
		plan.ProductCode = input.ProductCode
		plan.PlannedQuantity = input.PlannedQuantity
		plan.StartDate = input.StartDate
		plan.Remarks = input.Remarks
		plan.Status = next
		plan.UpdatedBy = actor
		plan.UpdatedAt = uc.now()
		if err := repos.Plans.Update(ctx, plan); err != nil {
			return err
		}

		sync := SyncResult{Action: ReservationActionUnchanged}
		if next != entity.PlanStatusInProduction {
			sync, err = uc.reservations.UpdateReservations(ctx, repos, plan.ID, plan.ProductCode, plan.PlannedQuantity, next, actor)
			if err != nil {
				return err
			}
		}
		out = &dto.PlanMutationResponse{
			Plan:         toPlanResponse(plan, sync.Created),
			Reservations: toSyncResponse(sync),
		}
		if sync.Action == ReservationActionRecreated && len(sync.Created) == 0 {
			out.BOMWarning = dto.WarningNoBOMData
		}
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "update")
		return nil, err
	}
	uc.log.Info().
		Int64("plan_id", id).
		Str("status", out.Plan.Status).
		Str("reservation_action", out.Reservations.Action).
		Int("reservations_deleted", out.Reservations.Deleted).
		Int("reservations_created", out.Reservations.Created).
		Str("actor", actor).
		Msg("plan de producción actualizado")
	return out, nil
}

// Cancel 計画 → キャンセル liberando las reservas.
func (uc *PlanUseCase) Cancel(ctx context.Context, id int64, actor string) (*dto.PlanMutationResponse, error) {
	var out *dto.PlanMutationResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		plan, err := loadPlanForUpdate(ctx, repos, id)
		if err != nil {
			return err
		}
		if err := planning.CheckCancel(plan.Status); err != nil {
			return err
		}
		plan.Status = entity.PlanStatusCancelled
		plan.UpdatedBy = actor
		plan.UpdatedAt = uc.now()
		if err := repos.Plans.Update(ctx, plan); err != nil {
			return err
		}
		sync, err := uc.reservations.UpdateReservations(ctx, repos, plan.ID, plan.ProductCode, plan.PlannedQuantity, plan.Status, actor)
		if err != nil {
			return err
		}
		out = &dto.PlanMutationResponse{Plan: toPlanResponse(plan, nil), Reservations: toSyncResponse(sync)}
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "cancel")
		return nil, err
	}
	uc.log.Info().Int64("plan_id", id).Int("reservations_deleted", out.Reservations.Deleted).Str("actor", actor).Msg("plan de producción cancelado")
	return out, nil
}

// Delete elimina el plan desde cualquier estado y reporta cuántas reservas se liberaron.
func (uc *PlanUseCase) Delete(ctx context.Context, id int64, actor string) (*dto.PlanDeleteResponse, error) {
	var out *dto.PlanDeleteResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if _, err := loadPlanForUpdate(ctx, repos, id); err != nil {
			return err
		}
		del, err := uc.reservations.DeleteReservations(ctx, repos, id)
		if err != nil {
			return err
		}
		found, err := repos.Plans.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrPlanNotFound
		}
		out = &dto.PlanDeleteResponse{ID: id, ReleasedReservations: del.DeletedCount}
		return nil
	})
	if err != nil {
		uc.logFailure(err, id, "delete")
		return nil, err
	}
	uc.log.Info().Int64("plan_id", id).Int("reservations_released", out.ReleasedReservations).Str("actor", actor).Msg("plan de producción eliminado")
	return out, nil
}

// GetByID devuelve el plan con sus reservas vigentes.
func (uc *PlanUseCase) GetByID(ctx context.Context, id int64) (*dto.PlanResponse, error) {
	plan, err := uc.repos.Plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrPlanNotFound
	}
	reservations, err := uc.repos.Reservations.ListByPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toPlanResponse(plan, reservations)
	return &out, nil
}

// List lista planes con filtros opcionales.
func (uc *PlanUseCase) List(ctx context.Context, q dto.PlanListQuery) (*dto.PlanListResponse, error) {
	q.DefaultPage()
	plans, err := uc.repos.Plans.List(ctx, repository.PlanFilter{
		BuildingNo:  planning.NormalizeCode(q.BuildingNo),
		ProductCode: planning.NormalizeCode(q.ProductCode),
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return toPlanList(plans, q.PageRequest), nil
}

// ListByStatus lista planes en un estado dado.
func (uc *PlanUseCase) ListByStatus(ctx context.Context, status string, page dto.PageRequest) (*dto.PlanListResponse, error) {
	status = planning.NormalizeCode(status)
	if !planning.IsValidStatus(status) {
		return nil, domain.Validationf("status desconocido %q", status)
	}
	page.DefaultPage()
	plans, err := uc.repos.Plans.List(ctx, repository.PlanFilter{Status: status, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	return toPlanList(plans, page), nil
}

// ListReservations reservas vigentes del plan.
func (uc *PlanUseCase) ListReservations(ctx context.Context, id int64) ([]dto.ReservationResponse, error) {
	if err := uc.ensurePlan(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.repos.Reservations.ListByPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReservationResponses(list), nil
}

// ListTransactions movimientos de inventario que referencian al plan.
func (uc *PlanUseCase) ListTransactions(ctx context.Context, id int64) ([]dto.InventoryTransactionResponse, error) {
	if err := uc.ensurePlan(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.repos.Transactions.ListByReference(ctx, entity.ReferenceProductionPlan, id)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(list), nil
}

// Requirements ejecuta el calculador de suficiencia para el plan.
func (uc *PlanUseCase) Requirements(ctx context.Context, id int64) (*dto.RequirementsResponse, error) {
	return uc.calculator.Calculate(ctx, id)
}

func (uc *PlanUseCase) ensurePlan(ctx context.Context, id int64) error {
	plan, err := uc.repos.Plans.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrPlanNotFound
	}
	return nil
}

func toPlanList(plans []*entity.ProductionPlan, page dto.PageRequest) *dto.PlanListResponse {
	items := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		items = append(items, toPlanResponse(p, nil))
	}
	return &dto.PlanListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Count: len(items)},
	}
}

// logFailure errores de negocio a warn, el resto a error.
func (uc *PlanUseCase) logFailure(err error, planID int64, action string) {
	ev := uc.log.Error()
	if isBusinessError(err) {
		ev = uc.log.Warn()
	}
	ev.Err(err).Int64("plan_id", planID).Str("action", action).Msg("operación de plan rechazada")
}

func isBusinessError(err error) bool {
	for _, target := range []error{
		domain.ErrValidation, domain.ErrPlanNotFound, domain.ErrProductNotFound,
		domain.ErrInvalidStatusForStart, domain.ErrInvalidStatusForComplete, domain.ErrInvalidStatusTransition,
		domain.ErrNoBOMData, domain.ErrInsufficientInventory,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
