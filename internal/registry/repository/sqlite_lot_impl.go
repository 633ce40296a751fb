package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lotadmin/internal/registry/model"

	"github.com/shopspring/decimal"
)

const lotColumns = `id, lot_name, customer_code, price, currency_code, nds_rate,
	place_delivery, date_delivery, created_at, updated_at`

func scanLot(row rowScanner) (*model.Lot, error) {
	var (
		l                                 model.Lot
		price                             string
		dateDelivery, createdAt, updateAt string
	)
	err := row.Scan(&l.LotID, &l.LotName, &l.CustomerCode, &price, &l.CurrencyCode, &l.NdsRate,
		&l.PlaceDelivery, &dateDelivery, &createdAt, &updateAt)
	if err != nil {
		return nil, err
	}
	if l.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("lot %d price: %w", l.LotID, err)
	}
	if l.DateDelivery, err = parseTime(dateDelivery); err != nil {
		return nil, err
	}
	if l.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if l.UpdatedAt, err = parseTime(updateAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *SQLiteRepository) ListLots(ctx context.Context) ([]*model.Lot, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+lotColumns+` FROM lots ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lots := []*model.Lot{}
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, err
		}
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

func (r *SQLiteRepository) GetLot(ctx context.Context, id int64) (*model.Lot, error) {
	l, err := scanLot(r.DB.QueryRowContext(ctx, `SELECT `+lotColumns+` FROM lots WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return l, err
}

func (r *SQLiteRepository) CreateLot(ctx context.Context, l *model.Lot) error {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx, `INSERT INTO lots (
			lot_name, customer_code, price, currency_code, nds_rate,
			place_delivery, date_delivery, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.LotName, l.CustomerCode, l.Price.String(), l.CurrencyCode, l.NdsRate,
		l.PlaceDelivery, formatTime(l.DateDelivery), formatTime(now), formatTime(now))
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.LotID = id
	l.CreatedAt = now
	l.UpdatedAt = now
	return nil
}

func (r *SQLiteRepository) UpdateLot(ctx context.Context, l *model.Lot) error {
	l.UpdatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx, `UPDATE lots SET
			lot_name = ?, customer_code = ?, price = ?, currency_code = ?, nds_rate = ?,
			place_delivery = ?, date_delivery = ?, updated_at = ?
		WHERE id = ?`,
		l.LotName, l.CustomerCode, l.Price.String(), l.CurrencyCode, l.NdsRate,
		l.PlaceDelivery, formatTime(l.DateDelivery), formatTime(l.UpdatedAt), l.LotID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) DeleteLot(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM lots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) CountLotsByCustomer(ctx context.Context, code string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM lots WHERE customer_code = ?`, code).Scan(&n)
	return n, err
}
