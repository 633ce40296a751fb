package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PickerData feeds the picker option list fragment.
type PickerData struct {
	Target     string
	Selected   string
	AllowEmpty bool
	Codes      []string
	Error      string
}

// CustomerPicker handles GET /picker/customers. It asks the registry for the
// current customer codes on every call.
func (s *Server) CustomerPicker(c echo.Context) error {
	data := PickerData{
		Target:     c.QueryParam("target"),
		Selected:   c.QueryParam("selected"),
		AllowEmpty: c.QueryParam("optional") == "1",
	}
	if data.Target == "" {
		data.Target = "customerCode"
	}

	codes, err := s.registry.ListCustomerCodes(c.Request().Context())
	if err != nil {
		logAPIFailure(c, "list customer codes", err)
		data.Error = "Не удалось загрузить клиентов"
		return c.Render(http.StatusBadGateway, "picker", data)
	}
	data.Codes = codes
	return c.Render(http.StatusOK, "picker", data)
}
