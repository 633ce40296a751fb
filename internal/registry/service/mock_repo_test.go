package service

import (
	"context"

	"lotadmin/internal/registry/model"

	"github.com/stretchr/testify/mock"
)

// MockStore is a shared mock of the customer, lot and history repositories.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Customer), args.Error(1)
}

func (m *MockStore) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockStore) GetCustomerByCode(ctx context.Context, code string) (*model.Customer, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockStore) CreateCustomer(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStore) UpdateCustomer(ctx context.Context, c *model.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockStore) DeleteCustomer(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CountChildCustomers(ctx context.Context, code string) (int64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) ListLots(ctx context.Context) ([]*model.Lot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Lot), args.Error(1)
}

func (m *MockStore) GetLot(ctx context.Context, id int64) (*model.Lot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lot), args.Error(1)
}

func (m *MockStore) CreateLot(ctx context.Context, l *model.Lot) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockStore) UpdateLot(ctx context.Context, l *model.Lot) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockStore) DeleteLot(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStore) CountLotsByCustomer(ctx context.Context, code string) (int64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) CreateHistory(ctx context.Context, rec *model.ChangeRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStore) FindHistory(ctx context.Context, req model.GetHistoryReq) ([]*model.ChangeRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ChangeRecord), args.Error(1)
}
