package repository

import (
	"context"

	"lotadmin/internal/registry/model"
)

func (r *SQLiteRepository) CreateHistory(ctx context.Context, rec *model.ChangeRecord) error {
	if rec.ID == "" {
		rec.ID = newHistoryID()
	}
	_, err := r.DB.ExecContext(ctx, `INSERT INTO change_history
			(id, operation, kind, record_id, code, request_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Operation, rec.Kind, rec.RecordID, rec.Code, rec.RequestID, formatTime(rec.CreatedAt))
	return err
}

func (r *SQLiteRepository) FindHistory(ctx context.Context, req model.GetHistoryReq) ([]*model.ChangeRecord, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = model.DefaultHistoryLimit
	}

	query := `SELECT id, operation, kind, record_id, code, request_id, created_at FROM change_history`
	args := []any{}
	if req.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, req.Kind)
	}
	query += ` ORDER BY created_at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*model.ChangeRecord{}
	for rows.Next() {
		var (
			rec       model.ChangeRecord
			createdAt string
		)
		if err := rows.Scan(&rec.ID, &rec.Operation, &rec.Kind, &rec.RecordID, &rec.Code, &rec.RequestID, &createdAt); err != nil {
			return nil, err
		}
		if rec.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
