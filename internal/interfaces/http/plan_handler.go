package http

import (
	"context"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/produccion-api/internal/application/dto"
	"github.com/jhoicas/produccion-api/internal/domain"
)

// PlanService casos de uso de planes consumidos por el handler.
type PlanService interface {
	Create(ctx context.Context, actor string, in dto.PlanRequest) (*dto.PlanMutationResponse, error)
	Update(ctx context.Context, id int64, actor string, in dto.PlanRequest) (*dto.PlanMutationResponse, error)
	Delete(ctx context.Context, id int64, actor string) (*dto.PlanDeleteResponse, error)
	Cancel(ctx context.Context, id int64, actor string) (*dto.PlanMutationResponse, error)
	StartProduction(ctx context.Context, id int64, actor string) (*dto.StartProductionResponse, error)
	CompleteProduction(ctx context.Context, id int64, actor string, in dto.CompleteProductionRequest) (*dto.PlanResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.PlanResponse, error)
	List(ctx context.Context, q dto.PlanListQuery) (*dto.PlanListResponse, error)
	ListByStatus(ctx context.Context, status string, page dto.PageRequest) (*dto.PlanListResponse, error)
	Requirements(ctx context.Context, id int64) (*dto.RequirementsResponse, error)
	ListReservations(ctx context.Context, id int64) ([]dto.ReservationResponse, error)
	ListTransactions(ctx context.Context, id int64) ([]dto.InventoryTransactionResponse, error)
}

// PlanHandler maneja las peticiones HTTP de planes de producción (protegido).
type PlanHandler struct {
	svc PlanService
	errorResponder
}

// NewPlanHandler construye el handler.
func NewPlanHandler(svc PlanService, errs errorResponder) *PlanHandler {
	return &PlanHandler{svc: svc, errorResponder: errs}
}

func decodeParam(raw string) (string, error) {
	return url.PathUnescape(raw)
}

func planID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validationf("id de plan inválido %q", c.Params("id"))
	}
	return id, nil
}

// Create godoc
// @Summary      Crear plan de producción
// @Description  Crea el plan en 計画 y reserva el material del BOM en la misma transacción.
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PlanRequest  true  "building_no, product_code, planned_quantity, start_date (YYYY-MM-DD), remarks"
// @Success      201   {object}  dto.APIResponse{data=dto.PlanMutationResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/plans [post]
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "plan creado"))
}

// Update godoc
// @Summary      Actualizar plan de producción
// @Description  Reescribe las reservas (borrar y recrear) según el nuevo producto y cantidad.
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "ID del plan"
// @Param        body  body      dto.PlanRequest  true  "mismos campos que al crear; status opcional (solo キャンセル)"
// @Success      200   {object}  dto.APIResponse{data=dto.PlanMutationResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/plans/{id} [put]
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	id, err := planID(c)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.PlanRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Update(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, "plan actualizado"))
}

// Delete godoc
// @Summary      Eliminar plan de producción
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del plan"
// @Success      200  {object}  dto.APIResponse{data=dto.PlanDeleteResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/plans/{id} [delete]
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	id, err := planID(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.svc.Delete(c.Context(), id, GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, "plan eliminado"))
}

// Cancel godoc
// @Summary      Cancelar plan (計画 → キャンセル)
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del plan"
// @Success      200  {object}  dto.APIResponse{data=dto.PlanMutationResponse}
// @Failure      400  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/plans/{id}/cancel [post]
func (h *PlanHandler) Cancel(c *fiber.Ctx) error {
	id, err := planID(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.svc.Cancel(c.Context(), id, GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, "plan cancelado"))
}

// StartProduction godoc
// @Summary      Iniciar producción (計画 → 生産中)
// @Description  Consume el material del BOM. Con cualquier faltante no modifica nada y devuelve el detalle en data.
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del plan"
// @Success      200  {object}  dto.APIResponse{data=dto.StartProductionResponse}
// @Failure      400  {object}  dto.APIResponse{data=[]domain.ShortageDetail}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/plans/{id}/start-production [post]
func (h *PlanHandler) StartProduction(c *fiber.Ctx) error {
	id, err := planID(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.svc.StartProduction(c.Context(), id, GetUserID(c))
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, "producción iniciada"))
}

// CompleteProduction godoc
// @Summary      Completar producción (生産中 → 完了)
// @Tags         plans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                            true   "ID del plan"
// @Param        body  body      dto.CompleteProductionRequest  false  "actual_quantity (por defecto la planificada)"
// @Success      200   {object}  dto.APIResponse{data=dto.PlanResponse}
// @Failure      400   {object}  dto.APIResponse
// @Failure      404   {object}  dto.APIResponse
// @Router       /api/plans/{id}/complete-production [post]
func (h *PlanHandler) CompleteProduction(c *fiber.Ctx) error {
	id, err := planID(c)
	if err != nil {
		return h.respond(c, err)
	}
	var in dto.CompleteProductionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.svc.CompleteProduction(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, "producción completada"))
}

// GetByID godoc
// @Summary      Obtener plan con sus reservas
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del plan"
// @Success      200  {object}  dto.APIResponse{data=dto.PlanResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/plans/{id} [get]
func (h *PlanHandler) GetByID(c *fiber.Ctx) error {
	id, err := planID(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// List godoc
// @Summary      Listar planes
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        building_no   query     string  false  "Filtrar por edificio"
// @Param        product_code  query     string  false  "Filtrar por producto"
// @Param        limit         query     int     false  "Máximo de filas (por defecto 50, tope 500)"
// @Param        offset        query     int     false  "Desplazamiento"
// @Success      200  {object}  dto.APIResponse{data=dto.PlanListResponse}
// @Router       /api/plans [get]
func (h *PlanHandler) List(c *fiber.Ctx) error {
	var q dto.PlanListQuery
	if err := c.QueryParser(&q); err != nil {
		return h.respond(c, domain.Validationf("parámetros de consulta inválidos"))
	}
	out, err := h.svc.List(c.Context(), q)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// ListByStatus godoc
// @Summary      Listar planes por estado
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        status  path      string  true   "計画 | 生産中 | 完了 | キャンセル"
// @Param        limit   query     int     false  "Máximo de filas"
// @Param        offset  query     int     false  "Desplazamiento"
// @Success      200  {object}  dto.APIResponse{data=dto.PlanListResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/plans/status/{status} [get]
func (h *PlanHandler) ListByStatus(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return h.respond(c, domain.Validationf("parámetros de consulta inválidos"))
	}
	// Fiber no decodifica los params: 計画 llega como %E8%A8%88%E7%94%BB.
	status, err := decodeParam(c.Params("status"))
	if err != nil {
		return h.respond(c, domain.Validationf("status inválido"))
	}
	out, err := h.svc.ListByStatus(c.Context(), status, page)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// Requirements godoc
// @Summary      Calcular suficiencia de material
// @Description  Necesidad por pieza contra stock, reservas de todos los planes y recepciones hasta la fecha de inicio.
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del plan"
// @Success      200  {object}  dto.APIResponse{data=dto.RequirementsResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/plans/{id}/requirements [post]
func (h *PlanHandler) Requirements(c *fiber.Ctx) error {
	id, err := planID(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.svc.Requirements(c.Context(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// ListReservations godoc
// @Summary      Reservas vigentes del plan
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del plan"
// @Success      200  {object}  dto.APIResponse{data=[]dto.ReservationResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/plans/{id}/reservations [get]
func (h *PlanHandler) ListReservations(c *fiber.Ctx) error {
	id, err := planID(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.svc.ListReservations(c.Context(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// ListTransactions godoc
// @Summary      Movimientos de inventario del plan
// @Tags         plans
// @Security     Bearer
// @Produce      json
// @Param        id   path      int  true  "ID del plan"
// @Success      200  {object}  dto.APIResponse{data=[]dto.InventoryTransactionResponse}
// @Failure      404  {object}  dto.APIResponse
// @Router       /api/plans/{id}/transactions [get]
func (h *PlanHandler) ListTransactions(c *fiber.Ctx) error {
	id, err := planID(c)
	if err != nil {
		return h.respond(c, err)
	}
	out, err := h.svc.ListTransactions(c.Context(), id)
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}
