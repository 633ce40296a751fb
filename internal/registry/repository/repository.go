package repository

import (
	"context"
	"errors"

	"lotadmin/internal/registry/model"
)

var (
	ErrDuplicate = errors.New("duplicate record")
	ErrNotFound  = errors.New("record not found")
)

type CustomerRepository interface {
	// List all customers ordered by id
	ListCustomers(ctx context.Context) ([]*model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	GetCustomerByCode(ctx context.Context, code string) (*model.Customer, error)
	// Create assigns CustomerID on success
	CreateCustomer(ctx context.Context, c *model.Customer) error
	UpdateCustomer(ctx context.Context, c *model.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
	// Count customers whose parent is code
	CountChildCustomers(ctx context.Context, code string) (int64, error)
}

type LotRepository interface {
	ListLots(ctx context.Context) ([]*model.Lot, error)
	GetLot(ctx context.Context, id int64) (*model.Lot, error)
	// Create assigns LotID on success
	CreateLot(ctx context.Context, l *model.Lot) error
	UpdateLot(ctx context.Context, l *model.Lot) error
	DeleteLot(ctx context.Context, id int64) error
	CountLotsByCustomer(ctx context.Context, code string) (int64, error)
}

// Store is everything the registry service persists, behind one backend.
type Store interface {
	CustomerRepository
	LotRepository
	HistoryRepository
	// Initialize indexes / schema
	EnsureIndexes(ctx context.Context) error
	Close(ctx context.Context) error
}
