package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"lotadmin/internal/registry/model"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var customerExportHeaders = []string{
	"ID", "Code", "Name", "INN", "KPP", "Legal Address", "Postal Address", "Email", "Main Code", "Type",
}

var lotExportHeaders = []string{
	"ID", "Name", "Customer Code", "Price", "Currency", "VAT", "Delivery Place", "Delivery Date",
}

// ExportCustomers handles GET /api/customers/export?format=csv|xlsx
func (h *RegistryHandler) ExportCustomers(c echo.Context) error {
	format, ok := exportFormat(c)
	if !ok {
		return badRequest(c, "format must be csv or xlsx")
	}

	customers, err := h.Service.ListCustomers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	data := make([][]string, 0, len(customers))
	for _, cu := range customers {
		kind := "organization"
		if !cu.IsOrganization {
			kind = "person"
		}
		data = append(data, []string{
			strconv.FormatInt(cu.CustomerID, 10), cu.CustomerCode, cu.CustomerName,
			cu.CustomerInn, cu.CustomerKpp, cu.CustomerLegalAddress, cu.CustomerPostalAddress,
			cu.CustomerEmail, cu.ParentCode(), kind,
		})
	}

	log.Info().Str("kind", model.KindCustomer).Str("format", format).Int("rows", len(data)).Msg("Data export")
	return writeExport(c, format, "Customers", "customers", customerExportHeaders, data)
}

// ExportLots handles GET /api/lots/export?format=csv|xlsx
func (h *RegistryHandler) ExportLots(c echo.Context) error {
	format, ok := exportFormat(c)
	if !ok {
		return badRequest(c, "format must be csv or xlsx")
	}

	lots, err := h.Service.ListLots(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	data := make([][]string, 0, len(lots))
	for _, l := range lots {
		data = append(data, []string{
			strconv.FormatInt(l.LotID, 10), l.LotName, l.CustomerCode, l.Price.String(),
			l.CurrencyCode, l.NdsRate, l.PlaceDelivery, l.DateDelivery.Format(time.RFC3339),
		})
	}

	log.Info().Str("kind", model.KindLot).Str("format", format).Int("rows", len(data)).Msg("Data export")
	return writeExport(c, format, "Lots", "lots", lotExportHeaders, data)
}

func exportFormat(c echo.Context) (string, bool) {
	switch f := c.QueryParam("format"); f {
	case "", formatCSV:
		return formatCSV, true
	case formatXLSX:
		return formatXLSX, true
	default:
		return f, false
	}
}

// writeExport renders the whole file before anything is written, so a
// failure still answers with a JSON error instead of a truncated download.
func writeExport(c echo.Context, format, sheetName, fileBase string, headers []string, data [][]string) error {
	build, contentType := buildCSV, "text/csv; charset=utf-8"
	if format == formatXLSX {
		build, contentType = buildExcel, mimeXLSX
	}

	buf, err := build(sheetName, headers, data)
	if err != nil {
		return fail(c, fmt.Errorf("build %s export: %w", format, err))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.%s", fileBase, format))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

func buildCSV(_ string, headers []string, data [][]string) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	cw := csv.NewWriter(buf)
	if err := cw.Write(headers); err != nil {
		return nil, err
	}
	if err := cw.WriteAll(data); err != nil {
		return nil, err
	}
	return buf, nil
}

func buildExcel(sheetName string, headers []string, data [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range data {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, 18); err != nil {
			return nil, err
		}
	}

	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
