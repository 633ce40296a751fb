package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lotadmin/internal/registry/model"

	"github.com/rs/zerolog/log"
)

// RegistryClient is the HTTP client for the registry REST service
type RegistryClient struct {
	baseURL    string
	httpClient *http.Client
}

// APIError is a non-2xx answer from the registry service
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("registry request failed with status: %d", e.Status)
	}
	return fmt.Sprintf("registry request failed with status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the registry.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// NewRegistryClient creates a new registry client
func NewRegistryClient(baseURL string, timeout time.Duration) *RegistryClient {
	return &RegistryClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListCustomers fetches every customer
func (c *RegistryClient) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	if err := c.do(ctx, http.MethodGet, "/api/customers", nil, &customers, http.StatusOK); err != nil {
		return nil, err
	}
	for i := range customers {
		customers[i].Normalize()
	}
	return customers, nil
}

// GetCustomer fetches one customer by id
func (c *RegistryClient) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/customers/%d", id), nil, &customer, http.StatusOK); err != nil {
		return nil, err
	}
	customer.Normalize()
	return &customer, nil
}

// CreateCustomer posts a new customer and returns it with its id
func (c *RegistryClient) CreateCustomer(ctx context.Context, req model.UpsertCustomerReq) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodPost, "/api/customers", customerPayload(req), &customer, http.StatusCreated); err != nil {
		return nil, err
	}
	customer.Normalize()
	return &customer, nil
}

// UpdateCustomer replaces the customer with the given id
func (c *RegistryClient) UpdateCustomer(ctx context.Context, id int64, req model.UpsertCustomerReq) (*model.Customer, error) {
	var customer model.Customer
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/customers/%d", id), customerPayload(req), &customer, http.StatusOK); err != nil {
		return nil, err
	}
	customer.Normalize()
	return &customer, nil
}

// DeleteCustomer removes the customer with the given id
func (c *RegistryClient) DeleteCustomer(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/customers/%d", id), nil, nil, http.StatusNoContent)
}

// ListCustomerCodes fetches the customer collection and returns its codes in list order.
// Pickers call it every time they open, the result is never cached.
func (c *RegistryClient) ListCustomerCodes(ctx context.Context) ([]string, error) {
	customers, err := c.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]string, 0, len(customers))
	for _, cu := range customers {
		codes = append(codes, cu.CustomerCode)
	}
	return codes, nil
}

// ListLots fetches every lot
func (c *RegistryClient) ListLots(ctx context.Context) ([]model.Lot, error) {
	var lots []model.Lot
	if err := c.do(ctx, http.MethodGet, "/api/lots", nil, &lots, http.StatusOK); err != nil {
		return nil, err
	}
	return lots, nil
}

// GetLot fetches one lot by id
func (c *RegistryClient) GetLot(ctx context.Context, id int64) (*model.Lot, error) {
	var lot model.Lot
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/lots/%d", id), nil, &lot, http.StatusOK); err != nil {
		return nil, err
	}
	return &lot, nil
}

// CreateLot posts a new lot and returns it with its id
func (c *RegistryClient) CreateLot(ctx context.Context, req model.UpsertLotReq) (*model.Lot, error) {
	var lot model.Lot
	if err := c.do(ctx, http.MethodPost, "/api/lots", req, &lot, http.StatusCreated); err != nil {
		return nil, err
	}
	return &lot, nil
}

// UpdateLot replaces the lot with the given id
func (c *RegistryClient) UpdateLot(ctx context.Context, id int64, req model.UpsertLotReq) (*model.Lot, error) {
	var lot model.Lot
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/lots/%d", id), req, &lot, http.StatusOK); err != nil {
		return nil, err
	}
	return &lot, nil
}

// DeleteLot removes the lot with the given id
func (c *RegistryClient) DeleteLot(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/lots/%d", id), nil, nil, http.StatusNoContent)
}

// customerPayload drops an empty parent code so it is never sent as "".
func customerPayload(req model.UpsertCustomerReq) model.UpsertCustomerReq {
	if req.CustomerCodeMain != nil && strings.TrimSpace(*req.CustomerCodeMain) == "" {
		req.CustomerCodeMain = nil
	}
	return req
}

func (c *RegistryClient) do(ctx context.Context, method, path string, in, out interface{}, want int) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("request_id", resp.Header.Get("X-Request-ID")).
		Msg("Registry call")

	if resp.StatusCode != want {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body model.ErrorResponse
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error.Code != "" {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
		apiErr.Fields = body.Error.Fields
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
