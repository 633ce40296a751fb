package repository

import (
	"context"
	"time"

	"lotadmin/internal/registry/model"
)

// HistoryRepository defines the interface for change history operations
type HistoryRepository interface {
	// CreateHistory creates a new history record (append-only)
	CreateHistory(ctx context.Context, rec *model.ChangeRecord) error
	// FindHistory returns the newest records first
	FindHistory(ctx context.Context, req model.GetHistoryReq) ([]*model.ChangeRecord, error)
}

// HistoryEntry is a helper struct for creating history records
type HistoryEntry struct {
	Operation string
	Kind      string
	RecordID  int64
	Code      string
	RequestID string
}

// ToChangeRecord converts HistoryEntry to ChangeRecord with timestamp
func (e *HistoryEntry) ToChangeRecord() *model.ChangeRecord {
	return &model.ChangeRecord{
		Operation: e.Operation,
		Kind:      e.Kind,
		RecordID:  e.RecordID,
		Code:      e.Code,
		RequestID: e.RequestID,
		CreatedAt: time.Now().UTC(),
	}
}
