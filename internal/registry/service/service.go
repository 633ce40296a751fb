package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"lotadmin/internal/registry/model"
	"lotadmin/internal/registry/repository"

	"github.com/rs/zerolog/log"
)

var (
	ErrBadRequest      = errors.New("bad request")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict: customer code already exists")
	ErrCustomerInUse   = errors.New("conflict: customer is referenced by other records")
	ErrUnknownCustomer = errors.New("unknown customer code")
	ErrUnknownParent   = errors.New("unknown parent customer code")
)

// Parent chains longer than this are treated as corrupt.
const maxParentDepth = 64

type RegistryService interface {
	ListCustomers(ctx context.Context) ([]*model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
	CreateCustomer(ctx context.Context, req model.UpsertCustomerReq) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, req model.UpsertCustomerReq) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	ListLots(ctx context.Context) ([]*model.Lot, error)
	GetLot(ctx context.Context, id int64) (*model.Lot, error)
	CreateLot(ctx context.Context, req model.UpsertLotReq) (*model.Lot, error)
	UpdateLot(ctx context.Context, id int64, req model.UpsertLotReq) (*model.Lot, error)
	DeleteLot(ctx context.Context, id int64) error

	GetHistory(ctx context.Context, req model.GetHistoryReq) ([]*model.ChangeRecord, error)
}

type Service struct {
	Customers   repository.CustomerRepository
	Lots        repository.LotRepository
	HistoryRepo repository.HistoryRepository

	pending sync.WaitGroup
}

func NewService(customers repository.CustomerRepository, lots repository.LotRepository, historyRepo repository.HistoryRepository) *Service {
	return &Service{Customers: customers, Lots: lots, HistoryRepo: historyRepo}
}

// Wait blocks until queued history writes have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) GetHistory(ctx context.Context, req model.GetHistoryReq) ([]*model.ChangeRecord, error) {
	if s.HistoryRepo == nil {
		return []*model.ChangeRecord{}, nil
	}
	return s.HistoryRepo.FindHistory(ctx, req)
}

// recordHistory is a helper to record history asynchronously (fire-and-forget)
func (s *Service) recordHistory(ctx context.Context, entry repository.HistoryEntry) {
	if s.HistoryRepo == nil {
		return
	}
	entry.RequestID = RequestIDFrom(ctx)
	rec := entry.ToChangeRecord()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.HistoryRepo.CreateHistory(ctx, rec); err != nil {
			log.Warn().Err(err).
				Str("kind", rec.Kind).
				Str("operation", rec.Operation).
				Int64("record_id", rec.RecordID).
				Msg("Failed to record change history")
		}
	}()
}

// mapRepoErr translates storage errors that callers are expected to handle.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrConflict
	default:
		return err
	}
}

type requestIDKey struct{}

// WithRequestID tags ctx so that history entries can be traced to a request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
