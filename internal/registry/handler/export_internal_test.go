package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lotadmin/internal/registry/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteExportBuildFailure(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/lots/export?format=xlsx", nil), rec)

	// excelize refuses sheet names with brackets.
	err := writeExport(c, formatXLSX, "Lots[1]", "lots", lotExportHeaders, [][]string{{"1"}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)

	var body model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body.Error.Code)
}

func TestBuildExcelReturnsWorkbook(t *testing.T) {
	buf, err := buildExcel("Lots", lotExportHeaders, [][]string{{"1", "Pipes"}})
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())

	_, err = buildExcel("Lots[1]", lotExportHeaders, nil)
	assert.Error(t, err)
}
