package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/produccion-api/internal/application/dto"
	"github.com/jhoicas/produccion-api/internal/domain"
	apphttp "github.com/jhoicas/produccion-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/produccion-api/pkg/jwt"
)

type mockPlans struct{ mock.Mock }

func (m *mockPlans) Create(ctx context.Context, actor string, in dto.PlanRequest) (*dto.PlanMutationResponse, error) {
	args := m.Called(ctx, actor, in)
	out, _ := args.Get(0).(*dto.PlanMutationResponse)
	return out, args.Error(1)
}

func (m *mockPlans) Update(ctx context.Context, id int64, actor string, in dto.PlanRequest) (*dto.PlanMutationResponse, error) {
	args := m.Called(ctx, id, actor, in)
	out, _ := args.Get(0).(*dto.PlanMutationResponse)
	return out, args.Error(1)
}

func (m *mockPlans) Delete(ctx context.Context, id int64, actor string) (*dto.PlanDeleteResponse, error) {
	args := m.Called(ctx, id, actor)
	out, _ := args.Get(0).(*dto.PlanDeleteResponse)
	return out, args.Error(1)
}

func (m *mockPlans) Cancel(ctx context.Context, id int64, actor string) (*dto.PlanMutationResponse, error) {
	args := m.Called(ctx, id, actor)
	out, _ := args.Get(0).(*dto.PlanMutationResponse)
	return out, args.Error(1)
}

func (m *mockPlans) StartProduction(ctx context.Context, id int64, actor string) (*dto.StartProductionResponse, error) {
	args := m.Called(ctx, id, actor)
	out, _ := args.Get(0).(*dto.StartProductionResponse)
	return out, args.Error(1)
}

func (m *mockPlans) CompleteProduction(ctx context.Context, id int64, actor string, in dto.CompleteProductionRequest) (*dto.PlanResponse, error) {
	args := m.Called(ctx, id, actor, in)
	out, _ := args.Get(0).(*dto.PlanResponse)
	return out, args.Error(1)
}

func (m *mockPlans) GetByID(ctx context.Context, id int64) (*dto.PlanResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*dto.PlanResponse)
	return out, args.Error(1)
}

func (m *mockPlans) List(ctx context.Context, q dto.PlanListQuery) (*dto.PlanListResponse, error) {
	args := m.Called(ctx, q)
	out, _ := args.Get(0).(*dto.PlanListResponse)
	return out, args.Error(1)
}

func (m *mockPlans) ListByStatus(ctx context.Context, status string, page dto.PageRequest) (*dto.PlanListResponse, error) {
	args := m.Called(ctx, status, page)
	out, _ := args.Get(0).(*dto.PlanListResponse)
	return out, args.Error(1)
}

func (m *mockPlans) Requirements(ctx context.Context, id int64) (*dto.RequirementsResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*dto.RequirementsResponse)
	return out, args.Error(1)
}

func (m *mockPlans) ListReservations(ctx context.Context, id int64) ([]dto.ReservationResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]dto.ReservationResponse)
	return out, args.Error(1)
}

func (m *mockPlans) ListTransactions(ctx context.Context, id int64) ([]dto.InventoryTransactionResponse, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).([]dto.InventoryTransactionResponse)
	return out, args.Error(1)
}

type mockReplenishment struct{ mock.Mock }

func (m *mockReplenishment) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]dto.ReplenishmentSuggestionDTO)
	return out, args.Error(1)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func newRouterApp(plans *mockPlans, repl *mockReplenishment, hideInternal bool) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Plans:              plans,
		Replenishment:      repl,
		Store:              fakePinger{},
		JWTSecret:          testJWTSecret,
		Log:                zerolog.Nop(),
		HideInternalErrors: hideInternal,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, role, body string) (int, dto.APIResponse) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "-" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env dto.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestPlanHandler_CreateDevuelve201(t *testing.T) {
	plans := new(mockPlans)
	in := dto.PlanRequest{BuildingNo: "B1", ProductCode: "PR-001", PlannedQuantity: 10, StartDate: "2026-11-01"}
	plans.On("Create", mock.Anything, testUserID, in).
		Return(&dto.PlanMutationResponse{Plan: dto.PlanResponse{ID: 7, Status: "計画"}}, nil).Once()
	app := newRouterApp(plans, new(mockReplenishment), false)

	status, env := call(t, app, http.MethodPost, "/api/plans", pkgjwt.RoleProductionManager,
		`{"building_no":"B1","product_code":"PR-001","planned_quantity":10,"start_date":"2026-11-01"}`)

	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	plans.AssertExpectations(t)
}

func TestPlanHandler_ViewerNoPuedeEscribir(t *testing.T) {
	plans := new(mockPlans)
	app := newRouterApp(plans, new(mockReplenishment), false)

	status, env := call(t, app, http.MethodPost, "/api/plans/1/start-production", pkgjwt.RoleViewer, "")

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", env.Error)
	plans.AssertNotCalled(t, "StartProduction", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlanHandler_ViewerPuedeLeer(t *testing.T) {
	plans := new(mockPlans)
	plans.On("GetByID", mock.Anything, int64(3)).Return(&dto.PlanResponse{ID: 3}, nil).Once()
	app := newRouterApp(plans, new(mockReplenishment), false)

	status, env := call(t, app, http.MethodGet, "/api/plans/3", pkgjwt.RoleViewer, "")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	plans.AssertExpectations(t)
}

func TestPlanHandler_SinTokenRetorna401(t *testing.T) {
	app := newRouterApp(new(mockPlans), new(mockReplenishment), false)
	status, env := call(t, app, http.MethodGet, "/api/plans", "-", "")

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", env.Error)
}

func TestPlanHandler_MapeoDeErrores(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
		code   string
	}{
		"validación":        {domain.Validationf("planned_quantity debe ser mayor que 0"), http.StatusBadRequest, "VALIDATION_ERROR"},
		"plan inexistente":  {domain.ErrPlanNotFound, http.StatusNotFound, "PLAN_NOT_FOUND"},
		"producto":          {domain.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		"estado de inicio":  {domain.ErrInvalidStatusForStart, http.StatusBadRequest, "INVALID_STATUS_FOR_START"},
		"sin BOM":           {domain.ErrNoBOMData, http.StatusBadRequest, "NO_BOM_DATA"},
		"error inesperado":  {errors.New("conexión perdida"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		"error envuelto":    {errors.Join(errors.New("ctx"), domain.ErrInvalidStatusTransition), http.StatusBadRequest, "INVALID_STATUS_TRANSITION"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			plans := new(mockPlans)
			plans.On("StartProduction", mock.Anything, int64(1), testUserID).Return(nil, tc.err).Once()
			app := newRouterApp(plans, new(mockReplenishment), false)

			status, env := call(t, app, http.MethodPost, "/api/plans/1/start-production", pkgjwt.RoleAdmin, "")

			assert.Equal(t, tc.status, status)
			assert.False(t, env.Success)
			assert.Equal(t, tc.code, env.Error)
		})
	}
}

func TestPlanHandler_FaltantesVanEnData(t *testing.T) {
	plans := new(mockPlans)
	shortErr := &domain.InsufficientInventoryError{PlanID: 1, Shortages: []domain.ShortageDetail{{
		PartCode:         "B",
		RequiredQuantity: decimal.NewFromInt(30),
		AvailableStock:   decimal.NewFromInt(5),
		ShortageQuantity: decimal.NewFromInt(25),
	}}}
	plans.On("StartProduction", mock.Anything, int64(1), testUserID).Return(nil, shortErr).Once()
	app := newRouterApp(plans, new(mockReplenishment), false)

	status, env := call(t, app, http.MethodPost, "/api/plans/1/start-production", pkgjwt.RoleAdmin, "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_INVENTORY", env.Error)
	lines, ok := env.Data.([]any)
	require.True(t, ok, "data debe ser la lista de faltantes")
	require.Len(t, lines, 1)
	line := lines[0].(map[string]any)
	assert.Equal(t, "B", line["part_code"])
	assert.Equal(t, "25", line["shortage_quantity"])
}

func TestPlanHandler_OcultaDetalleInterno(t *testing.T) {
	plans := new(mockPlans)
	plans.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("pq: password authentication failed")).Once()
	app := newRouterApp(plans, new(mockReplenishment), true)

	status, env := call(t, app, http.MethodGet, "/api/plans/1", pkgjwt.RoleAdmin, "")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, env.Message, "password")
}

func TestPlanHandler_IDInvalido(t *testing.T) {
	plans := new(mockPlans)
	app := newRouterApp(plans, new(mockReplenishment), false)

	status, env := call(t, app, http.MethodGet, "/api/plans/abc", pkgjwt.RoleAdmin, "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
	plans.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPlanHandler_CuerpoInvalido(t *testing.T) {
	app := newRouterApp(new(mockPlans), new(mockReplenishment), false)

	status, env := call(t, app, http.MethodPut, "/api/plans/1", pkgjwt.RoleAdmin, `{"planned_quantity":`)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", env.Error)
}

func TestPlanHandler_CompleteSinCuerpo(t *testing.T) {
	plans := new(mockPlans)
	plans.On("CompleteProduction", mock.Anything, int64(4), testUserID, dto.CompleteProductionRequest{}).
		Return(&dto.PlanResponse{ID: 4, Status: "完了"}, nil).Once()
	app := newRouterApp(plans, new(mockReplenishment), false)

	status, _ := call(t, app, http.MethodPost, "/api/plans/4/complete-production", pkgjwt.RoleProductionManager, "")

	assert.Equal(t, http.StatusOK, status)
	plans.AssertExpectations(t)
}

func TestPlanHandler_ListByStatusDecodificaEstado(t *testing.T) {
	plans := new(mockPlans)
	plans.On("ListByStatus", mock.Anything, "生産中", dto.PageRequest{Limit: 10}).
		Return(&dto.PlanListResponse{Items: []dto.PlanResponse{}}, nil).Once()
	app := newRouterApp(plans, new(mockReplenishment), false)

	status, _ := call(t, app, http.MethodGet, "/api/plans/status/%E7%94%9F%E7%94%A3%E4%B8%AD?limit=10", pkgjwt.RoleViewer, "")

	assert.Equal(t, http.StatusOK, status)
	plans.AssertExpectations(t)
}

func TestPlanHandler_RequirementsPorGETyPOST(t *testing.T) {
	plans := new(mockPlans)
	plans.On("Requirements", mock.Anything, int64(2)).Return(&dto.RequirementsResponse{}, nil).Twice()
	app := newRouterApp(plans, new(mockReplenishment), false)

	getStatus, _ := call(t, app, http.MethodGet, "/api/plans/2/requirements", pkgjwt.RoleViewer, "")
	postStatus, _ := call(t, app, http.MethodPost, "/api/plans/2/requirements", pkgjwt.RoleViewer, "")

	assert.Equal(t, http.StatusOK, getStatus)
	assert.Equal(t, http.StatusOK, postStatus)
	plans.AssertExpectations(t)
}

func TestInventoryHandler_Reposicion(t *testing.T) {
	repl := new(mockReplenishment)
	repl.On("GenerateReplenishmentList", mock.Anything).
		Return([]dto.ReplenishmentSuggestionDTO{{PartCode: "A", Priority: 1}}, nil).Once()
	app := newRouterApp(new(mockPlans), repl, false)

	status, env := call(t, app, http.MethodGet, "/api/inventory/replenishment", pkgjwt.RoleViewer, "")

	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	repl.AssertExpectations(t)
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/health", apphttp.Health(fakePinger{err: errors.New("down")}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
