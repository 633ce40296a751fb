package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"lotadmin/internal/registry/model"
)

const customerColumns = `id, customer_code, customer_name, customer_inn, customer_kpp,
	customer_legal_address, customer_postal_address, customer_email,
	customer_code_main, is_organization, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*model.Customer, error) {
	var (
		c                    model.Customer
		codeMain             sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&c.CustomerID, &c.CustomerCode, &c.CustomerName, &c.CustomerInn, &c.CustomerKpp,
		&c.CustomerLegalAddress, &c.CustomerPostalAddress, &c.CustomerEmail,
		&codeMain, &c.IsOrganization, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if codeMain.Valid {
		main := codeMain.String
		c.CustomerCodeMain = &main
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	c.Normalize()
	return &c, nil
}

func nullableCode(code *string) sql.NullString {
	if code == nil || *code == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *code, Valid: true}
}

func (r *SQLiteRepository) ListCustomers(ctx context.Context) ([]*model.Customer, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []*model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *SQLiteRepository) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id)
	return r.customerOrNotFound(row)
}

func (r *SQLiteRepository) GetCustomerByCode(ctx context.Context, code string) (*model.Customer, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_code = ?`, code)
	return r.customerOrNotFound(row)
}

func (r *SQLiteRepository) customerOrNotFound(row *sql.Row) (*model.Customer, error) {
	c, err := scanCustomer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *SQLiteRepository) CreateCustomer(ctx context.Context, c *model.Customer) error {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx, `INSERT INTO customers (
			customer_code, customer_name, customer_inn, customer_kpp,
			customer_legal_address, customer_postal_address, customer_email,
			customer_code_main, is_organization, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CustomerCode, c.CustomerName, c.CustomerInn, c.CustomerKpp,
		c.CustomerLegalAddress, c.CustomerPostalAddress, c.CustomerEmail,
		nullableCode(c.CustomerCodeMain), c.IsOrganization, formatTime(now), formatTime(now))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.CustomerID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Normalize()
	return nil
}

func (r *SQLiteRepository) UpdateCustomer(ctx context.Context, c *model.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	res, err := r.DB.ExecContext(ctx, `UPDATE customers SET
			customer_code = ?, customer_name = ?, customer_inn = ?, customer_kpp = ?,
			customer_legal_address = ?, customer_postal_address = ?, customer_email = ?,
			customer_code_main = ?, is_organization = ?, updated_at = ?
		WHERE id = ?`,
		c.CustomerCode, c.CustomerName, c.CustomerInn, c.CustomerKpp,
		c.CustomerLegalAddress, c.CustomerPostalAddress, c.CustomerEmail,
		nullableCode(c.CustomerCodeMain), c.IsOrganization, formatTime(c.UpdatedAt), c.CustomerID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	if err := affectedOrNotFound(res); err != nil {
		return err
	}
	c.Normalize()
	return nil
}

func (r *SQLiteRepository) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

func (r *SQLiteRepository) CountChildCustomers(ctx context.Context, code string) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers WHERE customer_code_main = ?`, code).Scan(&n)
	return n, err
}
