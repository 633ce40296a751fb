package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"

	"lotadmin/internal/registry/handler"
	"lotadmin/internal/registry/model"
	"lotadmin/internal/registry/router"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

// MockRegistryService is a mock of service.RegistryService.
type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func (m *MockRegistryService) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockRegistryService) CreateCustomer(ctx context.Context, req model.UpsertCustomerReq) (*model.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockRegistryService) UpdateCustomer(ctx context.Context, id int64, req model.UpsertCustomerReq) (*model.Customer, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockRegistryService) DeleteCustomer(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegistryService) ListLots(ctx context.Context) ([]*model.Lot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Lot), args.Error(1)
}

func (m *MockRegistryService) GetLot(ctx context.Context, id int64) (*model.Lot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lot), args.Error(1)
}

func (m *MockRegistryService) CreateLot(ctx context.Context, req model.UpsertLotReq) (*model.Lot, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lot), args.Error(1)
}

func (m *MockRegistryService) UpdateLot(ctx context.Context, id int64, req model.UpsertLotReq) (*model.Lot, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lot), args.Error(1)
}

func (m *MockRegistryService) DeleteLot(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegistryService) GetHistory(ctx context.Context, req model.GetHistoryReq) ([]*model.ChangeRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ChangeRecord), args.Error(1)
}

func SetupServer(svc *MockRegistryService) *echo.Echo {
	e := echo.New()
	router.RegisterRoutes(e, handler.NewRegistryHandler(svc))
	return e
}

func PerformRequest(e *echo.Echo, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	switch b := body.(type) {
	case nil:
		bodyReader = strings.NewReader("")
	case string:
		bodyReader = strings.NewReader(b)
	default:
		raw, _ := json.Marshal(b)
		bodyReader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(rec *httptest.ResponseRecorder) model.ErrorResponse {
	var body model.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}
