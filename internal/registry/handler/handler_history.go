package handler

import (
	"net/http"

	"lotadmin/internal/registry/model"

	"github.com/labstack/echo/v4"
)

// GetHistory handles GET /api/history
func (h *RegistryHandler) GetHistory(c echo.Context) error {
	var req model.GetHistoryReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid parameters")
	}

	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return respondError(c, code, body)
	}

	records, err := h.Service.GetHistory(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	if records == nil {
		records = []*model.ChangeRecord{}
	}
	return c.JSON(http.StatusOK, records)
}
