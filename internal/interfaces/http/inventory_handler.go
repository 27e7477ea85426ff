package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/produccion-api/internal/application/dto"
)

// ReplenishmentService lista de reposición consumida por el handler.
type ReplenishmentService interface {
	GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error)
}

// InventoryHandler maneja las peticiones HTTP de inventario (protegido).
type InventoryHandler struct {
	replenishment ReplenishmentService
	errorResponder
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment ReplenishmentService, errs errorResponder) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment, errorResponder: errs}
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición de piezas
// @Description  Piezas activas cuyo stock libre (actual − reservado + recepciones pendientes)
//
//	quedó bajo el stock de seguridad, ordenadas por mayor déficit.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.ReplenishmentSuggestionDTO}
// @Failure      401  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(dto.OK(list, ""))
}
