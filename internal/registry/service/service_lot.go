package service

import (
	"context"
	"errors"
	"fmt"

	"lotadmin/internal/registry/model"
	"lotadmin/internal/registry/repository"

	"github.com/rs/zerolog/log"
)

func (s *Service) ListLots(ctx context.Context) ([]*model.Lot, error) {
	return s.Lots.ListLots(ctx)
}

func (s *Service) GetLot(ctx context.Context, id int64) (*model.Lot, error) {
	l, err := s.Lots.GetLot(ctx, id)
	return l, mapRepoErr(err)
}

func (s *Service) CreateLot(ctx context.Context, req model.UpsertLotReq) (*model.Lot, error) {
	lot := req.ToLot()

	if err := s.checkCustomer(ctx, lot.CustomerCode); err != nil {
		return nil, err
	}

	if err := s.Lots.CreateLot(ctx, lot); err != nil {
		return nil, mapRepoErr(err)
	}

	log.Info().Int64("lot_id", lot.LotID).Str("customer_code", lot.CustomerCode).Msg("Lot created")
	s.recordHistory(ctx, repository.HistoryEntry{
		Operation: model.OpCreate,
		Kind:      model.KindLot,
		RecordID:  lot.LotID,
		Code:      lot.CustomerCode,
	})
	return lot, nil
}

func (s *Service) UpdateLot(ctx context.Context, id int64, req model.UpsertLotReq) (*model.Lot, error) {
	existing, err := s.Lots.GetLot(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	lot := req.ToLot()
	lot.LotID = id
	lot.CreatedAt = existing.CreatedAt

	if err := s.checkCustomer(ctx, lot.CustomerCode); err != nil {
		return nil, err
	}

	if err := s.Lots.UpdateLot(ctx, lot); err != nil {
		return nil, mapRepoErr(err)
	}

	log.Info().Int64("lot_id", id).Msg("Lot updated")
	s.recordHistory(ctx, repository.HistoryEntry{
		Operation: model.OpUpdate,
		Kind:      model.KindLot,
		RecordID:  id,
		Code:      lot.CustomerCode,
	})
	return lot, nil
}

func (s *Service) DeleteLot(ctx context.Context, id int64) error {
	if err := s.Lots.DeleteLot(ctx, id); err != nil {
		return mapRepoErr(err)
	}

	log.Info().Int64("lot_id", id).Msg("Lot deleted")
	s.recordHistory(ctx, repository.HistoryEntry{
		Operation: model.OpDelete,
		Kind:      model.KindLot,
		RecordID:  id,
	})
	return nil
}

func (s *Service) checkCustomer(ctx context.Context, code string) error {
	if _, err := s.Customers.GetCustomerByCode(ctx, code); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrUnknownCustomer, code)
		}
		return err
	}
	return nil
}
