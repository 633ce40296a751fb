package handler

import (
	"net/http"

	"lotadmin/internal/registry/model"

	"github.com/labstack/echo/v4"
)

// GetLots handles GET /api/lots
func (h *RegistryHandler) GetLots(c echo.Context) error {
	lots, err := h.Service.ListLots(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	if lots == nil {
		lots = []*model.Lot{}
	}
	return c.JSON(http.StatusOK, lots)
}

// GetLot handles GET /api/lots/:id
func (h *RegistryHandler) GetLot(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid lot id")
	}

	lot, err := h.Service.GetLot(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, lot)
}

// PostLot handles POST /api/lots
func (h *RegistryHandler) PostLot(c echo.Context) error {
	var req model.UpsertLotReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return respondError(c, code, body)
	}

	lot, err := h.Service.CreateLot(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, lot)
}

// PutLot handles PUT /api/lots/:id
func (h *RegistryHandler) PutLot(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid lot id")
	}

	var req model.UpsertLotReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid body")
	}

	if err := req.Validate(); err != nil {
		code, body := validationError(err)
		return respondError(c, code, body)
	}

	lot, err := h.Service.UpdateLot(c.Request().Context(), id, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, lot)
}

// DeleteLot handles DELETE /api/lots/:id
func (h *RegistryHandler) DeleteLot(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "Invalid lot id")
	}

	if err := h.Service.DeleteLot(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
