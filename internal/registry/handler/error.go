package handler

import (
	"errors"
	"net/http"

	"lotadmin/internal/registry/model"
	"lotadmin/internal/registry/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// Helper to map errors to HTTP status and body
func httpError(err error) (int, model.ErrorResponse) {
	var code string
	var msg string
	var status int

	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
		msg = "Record not found"
	case errors.Is(err, service.ErrCustomerInUse):
		status = http.StatusConflict
		code = "customer_in_use"
		msg = err.Error()
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		code = "conflict"
		msg = "Customer code already exists"
	case errors.Is(err, service.ErrUnknownCustomer):
		status = http.StatusUnprocessableEntity
		code = "unknown_customer"
		msg = err.Error()
	case errors.Is(err, service.ErrUnknownParent):
		status = http.StatusUnprocessableEntity
		code = "unknown_parent"
		msg = err.Error()
	case errors.Is(err, service.ErrBadRequest):
		status = http.StatusBadRequest
		code = "bad_request"
		msg = err.Error()
	default:
		status = http.StatusInternalServerError
		code = "internal_error"
		msg = "Internal server error"
	}

	return status, model.ErrorResponse{
		Error: model.ErrorDetail{Code: code, Message: msg},
	}
}

// validationError maps a Validate() failure to a 400 body.
func validationError(err error) (int, model.ErrorResponse) {
	var detail *model.ErrorDetail
	if errors.As(err, &detail) {
		return http.StatusBadRequest, model.ErrorResponse{Error: *detail}
	}
	return http.StatusBadRequest, model.ErrorResponse{
		Error: model.ErrorDetail{Code: "bad_request", Message: err.Error()},
	}
}

func respondError(c echo.Context, status int, body model.ErrorResponse) error {
	body.Error.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)
	return c.JSON(status, body)
}

func badRequest(c echo.Context, msg string) error {
	return respondError(c, http.StatusBadRequest, model.ErrorResponse{
		Error: model.ErrorDetail{Code: "bad_request", Message: msg},
	})
}

func fail(c echo.Context, err error) error {
	status, body := httpError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("uri", c.Request().RequestURI).
			Msg("Unhandled service error")
	}
	return respondError(c, status, body)
}
