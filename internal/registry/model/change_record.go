package model

import (
	"strings"
	"time"
)

// ChangeRecord is an append-only audit entry written after every mutation.
type ChangeRecord struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Operation string    `json:"operation" bson:"operation"`
	Kind      string    `json:"kind" bson:"kind"`
	RecordID  int64     `json:"recordId" bson:"record_id"`
	Code      string    `json:"code,omitempty" bson:"code,omitempty"`
	RequestID string    `json:"requestId,omitempty" bson:"request_id,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type GetHistoryReq struct {
	Kind  string `query:"kind" validate:"omitempty,oneof=customer lot"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

const DefaultHistoryLimit = 100

func (r *GetHistoryReq) Validate() error {
	r.Kind = strings.ToLower(strings.TrimSpace(r.Kind))

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	if r.Limit == 0 {
		r.Limit = DefaultHistoryLimit
	}
	return nil
}
