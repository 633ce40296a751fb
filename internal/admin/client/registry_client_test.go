package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lotadmin/internal/registry/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *RegistryClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRegistryClient(srv.URL+"/", 2*time.Second)
}

func TestListCustomers(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/customers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"customerId":1,"customerCode":"A","isOrganization":true},
			{"customerId":2,"customerCode":"B","customerCodeMain":"A","isOrganization":false}
		]`)
	})

	customers, err := c.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.False(t, customers[0].IsPerson)
	assert.True(t, customers[1].IsPerson)
	assert.Equal(t, "A", customers[1].ParentCode())
}

func TestListCustomerCodesFetchesEveryTime(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = io.WriteString(w, `[{"customerCode":"A"},{"customerCode":"B"}]`)
	})

	codes, err := c.ListCustomerCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, codes)

	_, err = c.ListCustomerCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCreateCustomerOmitsEmptyParent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, present := body["customerCodeMain"]
		assert.False(t, present)
		assert.Equal(t, false, body["isOrganization"])

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"customerId":7,"customerCode":"P","isOrganization":false}`)
	})

	empty := ""
	org := false
	customer, err := c.CreateCustomer(context.Background(), model.UpsertCustomerReq{
		CustomerCode:     "P",
		CustomerCodeMain: &empty,
		IsOrganization:   &org,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), customer.CustomerID)
	assert.True(t, customer.IsPerson)
}

func TestUpdateCustomerSendsParent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/customers/3", r.URL.Path)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "HEAD", body["customerCodeMain"])

		_, _ = io.WriteString(w, `{"customerId":3,"customerCode":"C","customerCodeMain":"HEAD"}`)
	})

	parent := "HEAD"
	org := true
	_, err := c.UpdateCustomer(context.Background(), 3, model.UpsertCustomerReq{
		CustomerCode:     "C",
		CustomerCodeMain: &parent,
		IsOrganization:   &org,
	})
	require.NoError(t, err)
}

func TestDeleteCustomerConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":{"code":"customer_in_use","message":"customer is referenced"}}`)
	})

	err := c.DeleteCustomer(context.Background(), 9)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "customer_in_use", apiErr.Code)
	assert.Contains(t, err.Error(), "customer is referenced")
	assert.False(t, IsNotFound(err))
}

func TestCreateLotSendsNumericPrice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Contains(t, string(raw), `"price":12.5`)
		assert.Contains(t, string(raw), `"dateDelivery":"2025-03-01T10:00"`)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"lotId":4,"lotName":"L","price":12.5,"dateDelivery":"2025-03-01T10:00:00Z"}`)
	})

	lot, err := c.CreateLot(context.Background(), model.UpsertLotReq{
		LotName:      "L",
		CustomerCode: "A",
		Price:        decimal.RequireFromString("12.5"),
		CurrencyCode: model.CurrencyRUB,
		NdsRate:      model.NdsRateNone,
		DateDelivery: "2025-03-01T10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), lot.LotID)
	assert.True(t, lot.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 10, lot.DateDelivery.Hour())
}

func TestLotNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	_, err := c.GetLot(context.Background(), 1)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "gone")

	err = c.DeleteLot(context.Background(), 1)
	assert.True(t, IsNotFound(err))
}

func TestUnreachableService(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewRegistryClient(url, time.Second)
	_, err := c.ListLots(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
