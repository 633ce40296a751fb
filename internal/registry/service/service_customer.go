package service

import (
	"context"
	"errors"
	"fmt"

	"lotadmin/internal/registry/model"
	"lotadmin/internal/registry/repository"

	"github.com/rs/zerolog/log"
)

func (s *Service) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	return s.Customers.ListCustomers(ctx)
}

func (s *Service) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.Customers.GetCustomer(ctx, id)
	return c, mapRepoErr(err)
}

func (s *Service) CreateCustomer(ctx context.Context, req model.UpsertCustomerReq) (*model.Customer, error) {
	customer := req.ToCustomer()

	if err := s.checkParent(ctx, customer.CustomerCode, customer.ParentCode()); err != nil {
		return nil, err
	}

	if err := s.Customers.CreateCustomer(ctx, customer); err != nil {
		return nil, mapRepoErr(err)
	}

	log.Info().Int64("customer_id", customer.CustomerID).Str("code", customer.CustomerCode).Msg("Customer created")
	s.recordHistory(ctx, repository.HistoryEntry{
		Operation: model.OpCreate,
		Kind:      model.KindCustomer,
		RecordID:  customer.CustomerID,
		Code:      customer.CustomerCode,
	})
	return customer, nil
}

func (s *Service) UpdateCustomer(ctx context.Context, id int64, req model.UpsertCustomerReq) (*model.Customer, error) {
	existing, err := s.Customers.GetCustomer(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	customer := req.ToCustomer()
	customer.CustomerID = id
	customer.CreatedAt = existing.CreatedAt

	// Renaming a code would orphan whoever points at the old one.
	if customer.CustomerCode != existing.CustomerCode {
		if err := s.ensureUnreferenced(ctx, existing.CustomerCode); err != nil {
			return nil, err
		}
	}

	if err := s.checkParent(ctx, customer.CustomerCode, customer.ParentCode()); err != nil {
		return nil, err
	}

	if err := s.Customers.UpdateCustomer(ctx, customer); err != nil {
		return nil, mapRepoErr(err)
	}

	log.Info().Int64("customer_id", id).Str("code", customer.CustomerCode).Msg("Customer updated")
	s.recordHistory(ctx, repository.HistoryEntry{
		Operation: model.OpUpdate,
		Kind:      model.KindCustomer,
		RecordID:  id,
		Code:      customer.CustomerCode,
	})
	return customer, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	existing, err := s.Customers.GetCustomer(ctx, id)
	if err != nil {
		return mapRepoErr(err)
	}

	if err := s.ensureUnreferenced(ctx, existing.CustomerCode); err != nil {
		return err
	}

	if err := s.Customers.DeleteCustomer(ctx, id); err != nil {
		return mapRepoErr(err)
	}

	log.Info().Int64("customer_id", id).Str("code", existing.CustomerCode).Msg("Customer deleted")
	s.recordHistory(ctx, repository.HistoryEntry{
		Operation: model.OpDelete,
		Kind:      model.KindCustomer,
		RecordID:  id,
		Code:      existing.CustomerCode,
	})
	return nil
}

func (s *Service) ensureUnreferenced(ctx context.Context, code string) error {
	lots, err := s.Lots.CountLotsByCustomer(ctx, code)
	if err != nil {
		return err
	}
	children, err := s.Customers.CountChildCustomers(ctx, code)
	if err != nil {
		return err
	}
	if lots > 0 || children > 0 {
		return fmt.Errorf("%w: %d lot(s), %d child customer(s) use %q", ErrCustomerInUse, lots, children, code)
	}
	return nil
}

// checkParent verifies that parentCode names an existing customer and that
// following parents from it never leads back to code.
func (s *Service) checkParent(ctx context.Context, code, parentCode string) error {
	if parentCode == "" {
		return nil
	}
	if parentCode == code {
		return fmt.Errorf("%w: customer cannot be its own parent", ErrBadRequest)
	}

	next := parentCode
	for depth := 0; next != ""; depth++ {
		if depth >= maxParentDepth {
			return fmt.Errorf("%w: parent chain too deep", ErrBadRequest)
		}
		parent, err := s.Customers.GetCustomerByCode(ctx, next)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				if next == parentCode {
					return fmt.Errorf("%w: %q", ErrUnknownParent, parentCode)
				}
				return nil
			}
			return err
		}
		next = parent.ParentCode()
		if next == code {
			return fmt.Errorf("%w: parent %q would create a cycle", ErrBadRequest, parentCode)
		}
	}
	return nil
}
