package router

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lotadmin/internal/registry/handler"
	"lotadmin/internal/registry/model"
	"lotadmin/internal/registry/repository"
	"lotadmin/internal/registry/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) (*echo.Echo, *service.Service) {
	t.Helper()
	store, err := repository.NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.EnsureIndexes(context.Background()))

	svc := service.NewService(store, store, store)
	t.Cleanup(func() {
		svc.Wait()
		_ = store.Close(context.Background())
	})

	e := echo.New()
	RegisterRoutes(e, handler.NewRegistryHandler(svc))
	return e, svc
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const customerJSON = `{
	"customerCode": "%s",
	"customerName": "Acme",
	"customerInn": "7701234567",
	"customerKpp": "770101001",
	"customerLegalAddress": "Legal",
	"customerPostalAddress": "Postal",
	"customerEmail": "acme@example.test",
	"customerCodeMain": "%s",
	"isOrganization": %t
}`

func customerBody(code, parent string, org bool) string {
	return fmt.Sprintf(customerJSON, code, parent, org)
}

const lotJSON = `{
	"lotName": "Pipes",
	"customerCode": "%s",
	"price": 99.90,
	"currencyCode": "usd",
	"ndsRate": "20%%",
	"placeDelivery": "Tula",
	"dateDelivery": "2025-06-01T12:30"
}`

func TestHealth(t *testing.T) {
	e, _ := setupServer(t)
	rec := do(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCustomerAndLotLifecycle(t *testing.T) {
	e, svc := setupServer(t)

	rec := do(e, http.MethodPost, "/api/customers", customerBody("HEAD", "", true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var head model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &head))
	assert.Nil(t, head.CustomerCodeMain)
	assert.False(t, head.IsPerson)

	rec = do(e, http.MethodPost, "/api/customers", customerBody("BRANCH", "HEAD", false))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var branch model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &branch))
	assert.Equal(t, "HEAD", branch.ParentCode())
	assert.True(t, branch.IsPerson)

	// duplicate code
	rec = do(e, http.MethodPost, "/api/customers", customerBody("HEAD", "", true))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// parent that does not exist
	rec = do(e, http.MethodPost, "/api/customers", customerBody("ORPHAN", "NOPE", true))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(e, http.MethodPost, "/api/lots", fmt.Sprintf(lotJSON, "BRANCH"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var lot map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lot))
	assert.Equal(t, 99.9, lot["price"])
	assert.Equal(t, "USD", lot["currencyCode"])
	assert.Equal(t, "2025-06-01T12:30:00Z", lot["dateDelivery"])

	rec = do(e, http.MethodPost, "/api/lots", fmt.Sprintf(lotJSON, "GHOST"))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// BRANCH is referenced by the lot
	rec = do(e, http.MethodDelete, fmt.Sprintf("/api/customers/%d", branch.CustomerID), "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// HEAD is referenced by BRANCH
	rec = do(e, http.MethodPut, fmt.Sprintf("/api/customers/%d", head.CustomerID), customerBody("HEAD2", "", true))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodDelete, fmt.Sprintf("/api/lots/%d", int64(lot["lotId"].(float64))), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodDelete, fmt.Sprintf("/api/customers/%d", branch.CustomerID), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(e, http.MethodGet, "/api/customers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "HEAD", list[0].CustomerCode)

	rec = do(e, http.MethodGet, "/api/lots", "")
	assert.JSONEq(t, `[]`, rec.Body.String())

	svc.Wait()
	rec = do(e, http.MethodGet, "/api/history?kind=lot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var history []model.ChangeRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 2)
	assert.Equal(t, model.OpDelete, history[0].Operation)
	assert.Equal(t, model.OpCreate, history[1].Operation)
}

func TestExportRouteIsNotAnID(t *testing.T) {
	e, _ := setupServer(t)
	rec := do(e, http.MethodGet, "/api/customers/export", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
}

func TestCORSPreflight(t *testing.T) {
	e, _ := setupServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/lots", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}
